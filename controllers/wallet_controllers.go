package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/accelconnect/restauration-gateway/services"
	"github.com/accelconnect/restauration-gateway/utils"
)

type WalletController struct {
	Wallets *services.WalletClient
}

func NewWalletController(wallets *services.WalletClient) *WalletController {
	return &WalletController{Wallets: wallets}
}

// GetBalance returns the caller's wallet state as the backend computes it.
func (wc *WalletController) GetBalance(c *gin.Context) {
	balance, err := wc.Wallets.GetBalance(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Balance retrieved", balance)
}

func (wc *WalletController) GetTransactions(c *gin.Context) {
	txs, err := wc.Wallets.GetTransactions(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Transactions retrieved", txs)
}

// GetCurrentBudget returns the caller's accounting for the running week.
func (wc *WalletController) GetCurrentBudget(c *gin.Context) {
	budget, err := wc.Wallets.GetCurrentBudget(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current budget retrieved", budget)
}

func (wc *WalletController) GetBudgetHistory(c *gin.Context) {
	budgets, err := wc.Wallets.GetBudgetHistory(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Budget history retrieved", budgets)
}
