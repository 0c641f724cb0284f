package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/accelconnect/restauration-gateway/models"
	"github.com/accelconnect/restauration-gateway/services"
	"github.com/accelconnect/restauration-gateway/utils"
)

type MenuController struct {
	Menus *services.MenuClient
}

func NewMenuController(menus *services.MenuClient) *MenuController {
	return &MenuController{Menus: menus}
}

// menuDate resolves the requested date, defaulting to today.
func menuDate(c *gin.Context) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return time.Now().Format("2006-01-02")
}

// GetTodayMenus lists the menus published for the requested date.
func (mc *MenuController) GetTodayMenus(c *gin.Context) {
	menus, err := mc.Menus.GetMenusByDate(c.Request.Context(), menuDate(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menus retrieved", menus)
}

func (mc *MenuController) GetRestaurants(c *gin.Context) {
	restaurants, err := mc.Menus.GetRestaurants(c.Request.Context())
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurants retrieved", restaurants)
}

// GetRestaurantsWithMenus serves the portal's landing view: every partner
// restaurant, with its menu of the day when one is published.
func (mc *MenuController) GetRestaurantsWithMenus(c *gin.Context) {
	entries, err := mc.Menus.GetRestaurantsWithMenus(c.Request.Context(), menuDate(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurants with menus retrieved", entries)
}

// CreateOrUpdateMenu publishes a restaurant's menu for a date; the
// back-office uses it for both creation and edits.
func (mc *MenuController) CreateOrUpdateMenu(c *gin.Context) {
	var req models.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu, err := mc.Menus.CreateOrUpdateMenu(c.Request.Context(), bearerToken(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	utils.InfoLogger.Printf("Menu published for restaurant %d on %s (%d meals)", req.RestaurantID, req.MenuDate, len(req.MealIDs))
	utils.RespondJSON(c, http.StatusCreated, "Menu saved", menu)
}

// DeleteMenu withdraws a published menu.
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	menuID, err := strconv.ParseUint(c.Param("menu_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	if err := mc.Menus.DeleteMenu(c.Request.Context(), bearerToken(c), uint(menuID)); err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", nil)
}

// CreateRestaurant registers a new partner restaurant.
func (mc *MenuController) CreateRestaurant(c *gin.Context) {
	var req models.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant, err := mc.Menus.CreateRestaurant(c.Request.Context(), bearerToken(c), req)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant registered: %s", req.RestaurantName)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// AddMealToRestaurant attaches an existing meal to a restaurant's
// catalogue.
func (mc *MenuController) AddMealToRestaurant(c *gin.Context) {
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

	restaurant, err := mc.Menus.AddMealToRestaurant(c.Request.Context(), bearerToken(c), uint(restaurantID), uint(mealID))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal added to restaurant", restaurant)
}
