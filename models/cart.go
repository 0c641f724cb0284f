package models

import "time"

// CartLine is one meal selection in a user's daily cart.
// Identity is the (MealID, RestaurantID) pair.
type CartLine struct {
	MealID         uint    `json:"mealId"`
	RestaurantID   uint    `json:"restaurantId"`
	MealName       string  `json:"mealName"`
	RestaurantName string  `json:"restaurantName"`
	UnitPrice      float64 `json:"unitPrice"`
	Quantity       int     `json:"quantity"`
	ImageURL       string  `json:"imageUrl,omitempty"`
}

// SameIdentity reports whether two lines refer to the same meal of the
// same restaurant.
func (l CartLine) SameIdentity(mealID, restaurantID uint) bool {
	return l.MealID == mealID && l.RestaurantID == restaurantID
}

// CartSummary is derived from the line collection, never stored.
type CartSummary struct {
	TotalItems         int        `json:"totalItems"`
	Subtotal           float64    `json:"subtotal"`
	SubsidyAmount      float64    `json:"subsidyAmount"`
	AmountAfterSubsidy float64    `json:"amountAfterSubsidy"`
	Items              []CartLine `json:"items"`
}

// CartSnapshot is the persisted form of a user's cart, one row per user.
// The whole snapshot is written atomically on every mutation; Items holds
// the serialized line collection.
type CartSnapshot struct {
	UserKey   string    `gorm:"primaryKey;type:varchar(64)" json:"user_key"`
	Items     string    `gorm:"type:text;not null" json:"items"`
	SavedDate string    `gorm:"type:varchar(10);not null" json:"saved_date"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
