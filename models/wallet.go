package models

// Wallet transaction types.
const (
	TransactionCredit = "CREDIT"
	TransactionDebit  = "DEBIT"
	TransactionRefund = "REFUND"
)

// WalletBalance is the backend's detailed balance view for one user.
type WalletBalance struct {
	Balance        float64 `json:"balance"`
	TotalDeposited float64 `json:"totalDeposited"`
	TotalSpent     float64 `json:"totalSpent"`
	HasDebt        bool    `json:"hasDebt"`
	DebtAmount     float64 `json:"debtAmount"`
	RefundableAmnt float64 `json:"refundableAmount"`
	Message        string  `json:"message,omitempty"`
}

type Transaction struct {
	ID             uint    `json:"id"`
	WalletID       uint    `json:"walletId"`
	OrderID        *uint   `json:"orderId,omitempty"`
	OrderReference string  `json:"orderReference,omitempty"`
	Type           string  `json:"type"`
	Amount         float64 `json:"amount"`
	BalanceBefore  float64 `json:"balanceBefore"`
	BalanceAfter   float64 `json:"balanceAfter"`
	Description    string  `json:"description"`
	CreatedAt      string  `json:"createdAt"`
}

// DepositRequest credits a user's wallet; admin only, executed by the
// backend.
type DepositRequest struct {
	UserID      uint    `json:"userId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description,omitempty"`
	Reference   string  `json:"reference,omitempty"`
}

// UserWalletStats is one row of the admin wallet dashboard.
type UserWalletStats struct {
	UserID         uint    `json:"userId"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Balance        float64 `json:"balance"`
	TotalDeposited float64 `json:"totalDeposited"`
	TotalSpent     float64 `json:"totalSpent"`
	OrderCount     int     `json:"orderCount"`
	HasDebt        bool    `json:"hasDebt"`
	DebtAmount     float64 `json:"debtAmount"`
}

// WeeklyBudget is the backend's per-week accounting snapshot for a user.
type WeeklyBudget struct {
	ID              uint    `json:"id"`
	UserID          uint    `json:"userId"`
	WeekStartDate   string  `json:"weekStartDate"`
	WeekEndDate     string  `json:"weekEndDate"`
	DepositedAmount float64 `json:"depositedAmount"`
	SpentAmount     float64 `json:"spentAmount"`
	DeliveryFees    float64 `json:"deliveryFees"`
	Balance         float64 `json:"balance"`
	IsInDebt        bool    `json:"isInDebt"`
	DebtAmount      float64 `json:"debtAmount"`
}
