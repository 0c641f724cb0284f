package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/accelconnect/restauration-gateway/models"
)

func sampleOrders() []models.Order {
	return []models.Order{
		{
			ID: 1, UserID: 10, Username: "awa", OrderDate: "2026-03-04",
			TotalAmount: 2000, Status: models.OrderStatusConfirmed,
			Items: []models.OrderItem{
				{MealID: 1, MealName: "Thieboudienne", RestaurantID: 1, RestaurantName: "Chez Fatou", Quantity: 2, UnitPrice: 1500, Subtotal: 3000},
			},
		},
		{
			ID: 2, UserID: 11, Username: "moussa", OrderDate: "2026-03-04",
			TotalAmount: 500, Status: models.OrderStatusConfirmed,
			Items: []models.OrderItem{
				{MealID: 2, MealName: "Yassa poulet", RestaurantID: 1, RestaurantName: "Chez Fatou", Quantity: 1, UnitPrice: 1500, Subtotal: 1500},
			},
		},
		{
			ID: 3, UserID: 10, Username: "awa", OrderDate: "2026-03-04",
			TotalAmount: 1200, Status: models.OrderStatusCancelled,
			Items: []models.OrderItem{
				{MealID: 3, MealName: "Mafé", RestaurantID: 2, RestaurantName: "Le Baobab", Quantity: 1, UnitPrice: 2200, Subtotal: 2200},
			},
		},
	}
}

func TestBuildDashboardRestaurantStats(t *testing.T) {
	view := BuildDashboard("2026-03-04", sampleOrders(), nil)

	assert.Len(t, view.RestaurantStats, 2)

	// Sorted by confirmed amount, Chez Fatou first.
	fatou := view.RestaurantStats[0]
	assert.Equal(t, "Chez Fatou", fatou.RestaurantName)
	assert.Equal(t, 4500.0, fatou.TotalAmount)
	assert.Equal(t, 2, fatou.ConfirmedCount)
	assert.Equal(t, 0, fatou.CancelledCount)

	baobab := view.RestaurantStats[1]
	assert.Equal(t, "Le Baobab", baobab.RestaurantName)
	assert.Equal(t, 0.0, baobab.TotalAmount, "cancelled orders carry no amount")
	assert.Equal(t, 1, baobab.CancelledCount)
}

func TestBuildDashboardUserSummaries(t *testing.T) {
	stats := []models.UserWalletStats{
		{UserID: 10, Email: "awa@accelconnect.com", Balance: 3500, HasDebt: false},
	}

	view := BuildDashboard("2026-03-04", sampleOrders(), stats)

	assert.Len(t, view.UserOrders, 2)

	awa := view.UserOrders[0]
	assert.Equal(t, "awa", awa.Username)
	assert.Equal(t, 2000.0, awa.TotalAmount, "cancelled order excluded")
	assert.Len(t, awa.Orders, 2)
	assert.ElementsMatch(t, []string{"Chez Fatou", "Le Baobab"}, awa.Restaurants)
	assert.Equal(t, "awa@accelconnect.com", awa.Email)
	assert.Equal(t, 3500.0, awa.Balance)
}

func TestBuildDashboardGlobalStats(t *testing.T) {
	view := BuildDashboard("2026-03-04", sampleOrders(), nil)

	assert.Equal(t, 3, view.GlobalStats.TotalOrders)
	assert.Equal(t, 2500.0, view.GlobalStats.TotalAmount)
	assert.Equal(t, 2, view.GlobalStats.TotalUsers)
	assert.Equal(t, 2, view.GlobalStats.TotalRestaurants)
}

func TestBuildDashboardEmptyDay(t *testing.T) {
	view := BuildDashboard("2026-03-07", nil, nil)

	assert.Empty(t, view.RestaurantStats)
	assert.Empty(t, view.UserOrders)
	assert.Equal(t, 0, view.GlobalStats.TotalOrders)
}

func TestExportOrdersCSV(t *testing.T) {
	payload, err := ExportOrdersCSV(sampleOrders()[:2])
	assert.NoError(t, err)

	out := string(payload)
	assert.Contains(t, out, "Utilisateur,Plats,Quantité,Montant Total")
	assert.Contains(t, out, "awa")
	assert.Contains(t, out, "Thieboudienne (×2)")
	assert.Contains(t, out, "2000")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3) // header + two orders
}

func TestFilterOrdersByRestaurant(t *testing.T) {
	filtered := FilterOrdersByRestaurant(sampleOrders(), 2)

	assert.Len(t, filtered, 1)
	assert.Equal(t, uint(3), filtered[0].ID)
}
