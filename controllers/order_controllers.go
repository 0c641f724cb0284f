package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/accelconnect/restauration-gateway/live"
	"github.com/accelconnect/restauration-gateway/models"
	"github.com/accelconnect/restauration-gateway/services"
	"github.com/accelconnect/restauration-gateway/utils"
)

type OrderController struct {
	Registry  *services.CartRegistry
	Orders    *services.OrderClient
	Validator *services.CartValidationGateway
	Now       func() time.Time
}

func NewOrderController(registry *services.CartRegistry, orders *services.OrderClient, validator *services.CartValidationGateway) *OrderController {
	return &OrderController{
		Registry:  registry,
		Orders:    orders,
		Validator: validator,
		Now:       time.Now,
	}
}

// respondBackendError maps a backend failure onto the gateway response:
// backend statuses pass through, transport failures become 502.
func respondBackendError(c *gin.Context, err error) {
	var backendErr *services.BackendError
	if errors.As(err, &backendErr) {
		utils.RespondError(c, backendErr.StatusCode, errors.New(backendErr.Message))
		return
	}
	utils.RespondError(c, http.StatusBadGateway, err)
}

// Checkout turns the cart into a confirmed backend order. The cart is
// re-validated against today's menus right before submission; withdrawn
// meals are pruned and reported instead of silently ordered.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	now := oc.Now()
	today := now.Format("2006-01-02")

	if services.IsWeekend(today) {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("meal ordering is closed on weekends"))
		return
	}

	store := oc.Registry.ForUser(userID)
	lines := store.Lines()
	if len(lines) == 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("cart is empty"))
		return
	}

	result, err := oc.Validator.Validate(c.Request.Context(), lines, today)
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}

	removed := store.ApplyValidation(result)
	if len(store.Lines()) == 0 {
		utils.RespondJSON(c, http.StatusConflict, "All cart items are no longer available", gin.H{
			"removedItems": removed,
		})
		return
	}

	order, err := oc.Orders.CreateOrder(c.Request.Context(), bearerToken(c), store.PrepareOrderData())
	if err != nil {
		respondBackendError(c, err)
		return
	}

	store.Clear()
	live.BroadcastOrderCreated(*order)

	utils.InfoLogger.Printf("Order %d confirmed for user %s (%s)", order.ID, userID, utils.FormatCurrencyFCFA(order.TotalAmount))

	utils.RespondJSON(c, http.StatusCreated, "Order confirmed", gin.H{
		"order":        order,
		"removedItems": removed,
	})
}

// GetMyOrders lists the caller's orders as the backend reports them.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	orders, err := oc.Orders.GetMyOrders(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved", orders)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), bearerToken(c), uint(orderID))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order retrieved", order)
}

// CancelOrder cancels a confirmed order placed for today, before the
// midday deadline.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), bearerToken(c), uint(orderID))
	if err != nil {
		respondBackendError(c, err)
		return
	}

	now := oc.Now()
	if !services.CanCancel(order, now.Format("2006-01-02"), now.Hour()) {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("this order can no longer be cancelled"))
		return
	}

	cancelled, err := oc.Orders.CancelOrder(c.Request.Context(), bearerToken(c), uint(orderID))
	if err != nil {
		respondBackendError(c, err)
		return
	}

	live.BroadcastOrderCancelled(*cancelled)
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", cancelled)
}

// ModifyOrder cancels today's order and reloads its items into the cart
// so the user can adjust and check out again. Same window as cancellation.
func (oc *OrderController) ModifyOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), bearerToken(c), uint(orderID))
	if err != nil {
		respondBackendError(c, err)
		return
	}

	now := oc.Now()
	if !services.CanModify(order, now.Format("2006-01-02"), now.Hour()) {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("this order can no longer be modified"))
		return
	}

	cancelled, err := oc.Orders.CancelOrder(c.Request.Context(), bearerToken(c), uint(orderID))
	if err != nil {
		respondBackendError(c, err)
		return
	}

	store := oc.Registry.ForUser(userID)
	store.Clear()
	for _, item := range order.Items {
		store.AddItem(models.CartLine{
			MealID:         item.MealID,
			RestaurantID:   item.RestaurantID,
			MealName:       item.MealName,
			RestaurantName: item.RestaurantName,
			UnitPrice:      item.UnitPrice,
			Quantity:       item.Quantity,
		})
	}

	live.BroadcastOrderCancelled(*cancelled)

	summary := services.Summarize(store.Lines(), services.SubsidyAmount)
	utils.RespondJSON(c, http.StatusOK, "Order reopened for modification", gin.H{
		"cancelledOrder": cancelled,
		"cart":           summary,
	})
}
