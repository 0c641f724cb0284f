package models

// Order statuses as reported by the AccelEats backend.
const (
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCancelled = "CANCELLED"
)

// Order mirrors the backend order resource. Amount fields past the
// subtotal (delivery fee share, debt/refund effects) are computed
// server-side and carried through untouched.
type Order struct {
	ID                 uint        `json:"id"`
	UserID             uint        `json:"userId"`
	Username           string      `json:"username"`
	OrderDate          string      `json:"orderDate"` // YYYY-MM-DD
	RestaurantName     string      `json:"restaurantName,omitempty"`
	Subtotal           float64     `json:"subtotal"`
	SubsidyAmount      float64     `json:"subsidyAmount"`
	AmountAfterSubsidy float64     `json:"amountAfterSubsidy"`
	DeliveryFeeShare   float64     `json:"deliveryFeeShare"`
	TotalAmount        float64     `json:"totalAmount"`
	Status             string      `json:"status"`
	Items              []OrderItem `json:"items"`
	CreatedAt          string      `json:"createdAt"`
}

type OrderItem struct {
	ID             uint    `json:"id"`
	MealID         uint    `json:"mealId"`
	MealName       string  `json:"mealName"`
	RestaurantID   uint    `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	Subtotal       float64 `json:"subtotal"`
}

// CreateOrderRequest is the exact checkout payload the backend accepts.
type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

type CreateOrderItem struct {
	MealID       uint    `json:"mealId"`
	RestaurantID uint    `json:"restaurantId"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
}
