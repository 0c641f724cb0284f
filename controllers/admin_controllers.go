package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/accelconnect/restauration-gateway/live"
	"github.com/accelconnect/restauration-gateway/models"
	"github.com/accelconnect/restauration-gateway/services"
	"github.com/accelconnect/restauration-gateway/utils"
)

type AdminController struct {
	Orders  *services.OrderClient
	Wallets *services.WalletClient
	Now     func() time.Time
}

func NewAdminController(orders *services.OrderClient, wallets *services.WalletClient) *AdminController {
	return &AdminController{
		Orders:  orders,
		Wallets: wallets,
		Now:     time.Now,
	}
}

// GetDashboard aggregates a day's orders per restaurant and per user,
// enriched with wallet stats.
func (ac *AdminController) GetDashboard(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = ac.Now().Format("2006-01-02")
	}

	orders, err := ac.Orders.GetOrdersByDate(c.Request.Context(), bearerToken(c), date)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	// Wallet stats only enrich the view; the dashboard still renders
	// without them.
	stats, err := ac.Wallets.GetAllUserStats(c.Request.Context(), bearerToken(c))
	if err != nil {
		utils.ErrorLogger.Printf("wallet stats unavailable for dashboard: %v", err)
		stats = nil
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard retrieved", services.BuildDashboard(date, orders, stats))
}

// ExportOrdersCSV streams a restaurant's day of orders as a CSV download
// for the back-office.
func (ac *AdminController) ExportOrdersCSV(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = ac.Now().Format("2006-01-02")
	}

	orders, err := ac.Orders.GetOrdersByDate(c.Request.Context(), bearerToken(c), date)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	filename := fmt.Sprintf("commandes_%s.csv", date)
	if raw := c.Query("restaurant_id"); raw != "" {
		restaurantID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
			return
		}
		orders = services.FilterOrdersByRestaurant(orders, uint(restaurantID))
		filename = fmt.Sprintf("commandes_%s_restaurant_%d.csv", date, restaurantID)
	}

	payload, err := services.ExportOrdersCSV(orders)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

// Deposit credits a user's wallet on the backend and notifies the live
// feed.
func (ac *AdminController) Deposit(c *gin.Context) {
	var req models.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx, err := ac.Wallets.Deposit(c.Request.Context(), bearerToken(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	live.BroadcastWalletDeposit(*tx)
	utils.InfoLogger.Printf("Deposit of %s recorded for user %d", utils.FormatCurrencyFCFA(req.Amount), req.UserID)

	utils.RespondJSON(c, http.StatusCreated, "Deposit recorded", tx)
}

// GetAllUserStats lists every user's wallet standing for the back-office.
func (ac *AdminController) GetAllUserStats(c *gin.Context) {
	stats, err := ac.Wallets.GetAllUserStats(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User stats retrieved", stats)
}

// GetPaymentSummary shows what the company owes each restaurant over the
// current settlement window.
func (ac *AdminController) GetPaymentSummary(c *gin.Context) {
	summary, err := ac.Wallets.GetPaymentSummary(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment summary retrieved", summary)
}

// CanValidatePayments tells the back-office whether the settlement button
// should be live today. Computed locally, no backend call.
func (ac *AdminController) CanValidatePayments(c *gin.Context) {
	today := ac.Now().Format("2006-01-02")
	canValidate := services.IsSettlementDay(today)

	data := gin.H{"canValidate": canValidate, "date": today}
	if !canValidate {
		data["reason"] = "restaurant payments can only be validated on Fridays"
	}
	utils.RespondJSON(c, http.StatusOK, "Settlement availability", data)
}

// ValidatePayments runs the weekly restaurant settlement. The run is
// gated to Fridays before the backend is ever called.
func (ac *AdminController) ValidatePayments(c *gin.Context) {
	today := ac.Now().Format("2006-01-02")
	if !services.IsSettlementDay(today) {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("restaurant payments can only be validated on Fridays"))
		return
	}

	var req models.PaymentValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := ac.Wallets.ValidatePayments(c.Request.Context(), bearerToken(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	live.BroadcastSettlementValidated(*result)
	utils.InfoLogger.Printf("Settlement validated for %s to %s: %d orders, %d users", req.StartDate, req.EndDate, result.AffectedOrders, result.AffectedUsers)

	utils.RespondJSON(c, http.StatusOK, "Payments validated", result)
}

func (ac *AdminController) GetLastPaymentDate(c *gin.Context) {
	date, err := ac.Wallets.GetLastPaymentDate(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Last payment date retrieved", gin.H{
		"lastPaymentDate": date,
	})
}
