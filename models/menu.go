package models

// Meal is a dish offered by a partner restaurant.
type Meal struct {
	ID          uint    `json:"id"`
	MealName    string  `json:"mealName"`
	UnitPrice   float64 `json:"unitPrice"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Menu is a restaurant's published offering for one calendar date.
type Menu struct {
	ID             uint   `json:"id"`
	RestaurantID   uint   `json:"restaurantId"`
	RestaurantName string `json:"restaurantName,omitempty"`
	MenuDate       string `json:"menuDate"` // YYYY-MM-DD
	Meals          []Meal `json:"meals"`
	IsActive       bool   `json:"isActive"`
}

// OffersMeal reports whether the menu contains the given meal.
func (m Menu) OffersMeal(mealID uint) bool {
	for _, meal := range m.Meals {
		if meal.ID == mealID {
			return true
		}
	}
	return false
}

// CreateMenuRequest publishes (or republishes) a restaurant's menu for a
// date. The backend upserts on (restaurantId, menuDate).
type CreateMenuRequest struct {
	RestaurantID uint   `json:"restaurantId" binding:"required"`
	MenuDate     string `json:"menuDate" binding:"required"`
	MealIDs      []uint `json:"mealIds" binding:"required,min=1"`
}

type Restaurant struct {
	ID             uint    `json:"id"`
	RestaurantName string  `json:"restaurantName"`
	Address        string  `json:"address,omitempty"`
	Contact        string  `json:"contact,omitempty"`
	DeliveryFee    float64 `json:"deliveryFee"`
	Meals          []Meal  `json:"meals,omitempty"`
}

// CreateRestaurantRequest registers a new partner restaurant.
type CreateRestaurantRequest struct {
	RestaurantName string  `json:"restaurantName" binding:"required"`
	Address        string  `json:"address,omitempty"`
	Contact        string  `json:"contact,omitempty"`
	DeliveryFee    float64 `json:"deliveryFee" binding:"gte=0"`
}

// RestaurantWithMenu joins a restaurant with its menu for a date, for the
// portal's landing view.
type RestaurantWithMenu struct {
	Restaurant Restaurant `json:"restaurant"`
	Menu       *Menu      `json:"menu"`
	HasMenu    bool       `json:"hasMenu"`
	ItemCount  int        `json:"itemCount"`
}
