package services

import (
	"context"
	"net/http"

	"github.com/accelconnect/restauration-gateway/models"
	"github.com/google/uuid"
)

// WalletClient fronts the backend's wallet, weekly-budget and settlement
// endpoints. All money movement happens backend-side; the gateway only
// reads, forwards and tags requests.
type WalletClient struct {
	backend *BackendClient
}

func NewWalletClient(backend *BackendClient) *WalletClient {
	return &WalletClient{backend: backend}
}

func (w *WalletClient) GetBalance(ctx context.Context, token string) (*models.WalletBalance, error) {
	var balance models.WalletBalance
	if err := w.backend.doJSON(ctx, http.MethodGet, "/wallet/balance", token, nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (w *WalletClient) GetTransactions(ctx context.Context, token string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := w.backend.doJSON(ctx, http.MethodGet, "/wallet/transactions", token, nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// Deposit credits a user's wallet. A reference is attached so a retried
// request cannot double-credit.
func (w *WalletClient) Deposit(ctx context.Context, token string, req models.DepositRequest) (*models.Transaction, error) {
	if req.Reference == "" {
		req.Reference = uuid.NewString()
	}
	var tx models.Transaction
	if err := w.backend.doJSON(ctx, http.MethodPost, "/wallet/deposit", token, req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (w *WalletClient) GetAllUserStats(ctx context.Context, token string) ([]models.UserWalletStats, error) {
	var stats []models.UserWalletStats
	if err := w.backend.doJSON(ctx, http.MethodGet, "/wallet/admin/stats", token, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (w *WalletClient) GetCurrentBudget(ctx context.Context, token string) (*models.WeeklyBudget, error) {
	var budget models.WeeklyBudget
	if err := w.backend.doJSON(ctx, http.MethodGet, "/budget/current", token, nil, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (w *WalletClient) GetBudgetHistory(ctx context.Context, token string) ([]models.WeeklyBudget, error) {
	var budgets []models.WeeklyBudget
	if err := w.backend.doJSON(ctx, http.MethodGet, "/budget/history", token, nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

func (w *WalletClient) GetPaymentSummary(ctx context.Context, token string) (*models.PaymentSummary, error) {
	var summary models.PaymentSummary
	if err := w.backend.doJSON(ctx, http.MethodGet, "/admin/payments/summary", token, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (w *WalletClient) ValidatePayments(ctx context.Context, token string, req models.PaymentValidationRequest) (*models.PaymentValidationResponse, error) {
	var resp models.PaymentValidationResponse
	if err := w.backend.doJSON(ctx, http.MethodPost, "/admin/payments/validate", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (w *WalletClient) GetLastPaymentDate(ctx context.Context, token string) (string, error) {
	var out struct {
		LastPaymentDate string `json:"lastPaymentDate"`
	}
	if err := w.backend.doJSON(ctx, http.MethodGet, "/admin/payments/last-payment-date", token, nil, &out); err != nil {
		return "", err
	}
	return out.LastPaymentDate, nil
}
