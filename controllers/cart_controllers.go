package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/accelconnect/restauration-gateway/models"
	"github.com/accelconnect/restauration-gateway/services"
	"github.com/accelconnect/restauration-gateway/utils"
)

type CartController struct {
	Registry *services.CartRegistry
}

func NewCartController(registry *services.CartRegistry) *CartController {
	return &CartController{Registry: registry}
}

// currentUserID pulls the identity resolved by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}

// bearerToken returns the raw token the auth middleware validated, for
// forwarding to the backend.
func bearerToken(c *gin.Context) string {
	v, exists := c.Get("token")
	if !exists {
		return ""
	}
	token, _ := v.(string)
	return token
}

// GetCart returns the caller's cart with its derived summary.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	store := cc.Registry.ForUser(userID)
	summary := services.Summarize(store.Lines(), services.SubsidyAmount)
	utils.RespondJSON(c, http.StatusOK, "Cart retrieved", summary)
}

// AddItem adds a meal to the cart, merging with an existing line of the
// same meal and restaurant.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		MealID         uint    `json:"mealId" binding:"required"`
		RestaurantID   uint    `json:"restaurantId" binding:"required"`
		MealName       string  `json:"mealName" binding:"required"`
		RestaurantName string  `json:"restaurantName" binding:"required"`
		UnitPrice      float64 `json:"unitPrice" binding:"required,gt=0"`
		Quantity       int     `json:"quantity" binding:"required,gt=0"`
		ImageURL       string  `json:"imageUrl"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	store := cc.Registry.ForUser(userID)
	store.AddItem(models.CartLine{
		MealID:         req.MealID,
		RestaurantID:   req.RestaurantID,
		MealName:       req.MealName,
		RestaurantName: req.RestaurantName,
		UnitPrice:      req.UnitPrice,
		Quantity:       req.Quantity,
		ImageURL:       req.ImageURL,
	})

	summary := services.Summarize(store.Lines(), services.SubsidyAmount)
	utils.RespondJSON(c, http.StatusOK, "Item added to cart", summary)
}

// UpdateItem sets a line's quantity; zero removes the line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		MealID       uint `json:"mealId" binding:"required"`
		RestaurantID uint `json:"restaurantId" binding:"required"`
		Quantity     int  `json:"quantity"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	store := cc.Registry.ForUser(userID)
	store.UpdateQuantity(req.MealID, req.RestaurantID, req.Quantity)

	summary := services.Summarize(store.Lines(), services.SubsidyAmount)
	utils.RespondJSON(c, http.StatusOK, "Cart updated", summary)
}

// RemoveItem drops one line from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}
	mealID, err := strconv.ParseUint(c.Param("meal_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid meal id"))
		return
	}

	store := cc.Registry.ForUser(userID)
	store.RemoveItem(uint(mealID), uint(restaurantID))

	summary := services.Summarize(store.Lines(), services.SubsidyAmount)
	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", summary)
}

// ClearCart empties the caller's cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	store := cc.Registry.ForUser(userID)
	store.Clear()

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", services.Summarize(nil, services.SubsidyAmount))
}
