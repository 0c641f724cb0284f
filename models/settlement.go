package models

// RestaurantPaymentSummary totals what the company owes one restaurant
// over a settlement window.
type RestaurantPaymentSummary struct {
	RestaurantID             uint    `json:"restaurantId"`
	RestaurantName           string  `json:"restaurantName"`
	TotalAmountWithSubsidy   float64 `json:"totalAmountWithSubsidy"`
	TotalAmountWithoutSubsdy float64 `json:"totalAmountWithoutSubsidy"`
	SubsidyAmount            float64 `json:"subsidyAmount"`
	DeliveryFees             float64 `json:"deliveryFees"`
	OrderCount               int     `json:"orderCount"`
	UserCount                int     `json:"userCount"`
}

type PaymentSummary struct {
	StartDate       string                     `json:"startDate"`
	EndDate         string                     `json:"endDate"`
	LastPaymentDate string                     `json:"lastPaymentDate,omitempty"`
	Restaurants     []RestaurantPaymentSummary `json:"restaurants"`
	GlobalStats     PaymentGlobalStats         `json:"globalStats"`
}

type PaymentGlobalStats struct {
	TotalAmountWithSubsidy   float64 `json:"totalAmountWithSubsidy"`
	TotalAmountWithoutSubsdy float64 `json:"totalAmountWithoutSubsidy"`
	TotalSubsidy             float64 `json:"totalSubsidy"`
	TotalDeliveryFees        float64 `json:"totalDeliveryFees"`
	TotalOrders              int     `json:"totalOrders"`
	TotalUsers               int     `json:"totalUsers"`
}

type PaymentValidationRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type PaymentValidationResponse struct {
	Success                bool   `json:"success"`
	Message                string `json:"message"`
	DeliveryFeesCalculated bool   `json:"deliveryFeesCalculated"`
	AffectedOrders         int    `json:"affectedOrders"`
	AffectedUsers          int    `json:"affectedUsers"`
	PaymentDate            string `json:"paymentDate"`
}
