package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/accelconnect/restauration-gateway/models"
)

// RestaurantStats totals one restaurant's confirmed business for a date.
type RestaurantStats struct {
	RestaurantID   uint    `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	TotalOrders    int     `json:"totalOrders"`
	TotalAmount    float64 `json:"totalAmount"`
	ConfirmedCount int     `json:"confirmedCount"`
	CancelledCount int     `json:"cancelledCount"`
}

// MealCount is one aggregated meal row of a user's day.
type MealCount struct {
	Name       string `json:"name"`
	Restaurant string `json:"restaurant"`
	Quantity   int    `json:"quantity"`
}

// UserOrderSummary groups one user's orders for the dashboard, enriched
// with wallet state when available.
type UserOrderSummary struct {
	UserID      uint           `json:"userId"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	Orders      []models.Order `json:"orders"`
	TotalAmount float64        `json:"totalAmount"`
	Restaurants []string       `json:"restaurants"`
	Meals       []MealCount    `json:"meals"`
	Balance     float64        `json:"balance"`
	HasDebt     bool           `json:"hasDebt"`
}

type DashboardGlobalStats struct {
	TotalOrders      int     `json:"totalOrders"`
	TotalAmount      float64 `json:"totalAmount"`
	TotalUsers       int     `json:"totalUsers"`
	TotalRestaurants int     `json:"totalRestaurants"`
}

// DashboardView is the admin back-office aggregation for one date.
type DashboardView struct {
	Date            string               `json:"date"`
	RestaurantStats []RestaurantStats    `json:"restaurantStats"`
	UserOrders      []UserOrderSummary   `json:"userOrders"`
	GlobalStats     DashboardGlobalStats `json:"globalStats"`
}

// BuildDashboard aggregates a day's orders per restaurant and per user.
// Cancelled orders count toward order totals but never toward amounts.
func BuildDashboard(date string, orders []models.Order, walletStats []models.UserWalletStats) DashboardView {
	restaurantMap := make(map[uint]*RestaurantStats)
	userMap := make(map[uint]*UserOrderSummary)
	var restaurantOrder, userOrder []uint

	for _, order := range orders {
		for _, item := range order.Items {
			rs, ok := restaurantMap[item.RestaurantID]
			if !ok {
				rs = &RestaurantStats{
					RestaurantID:   item.RestaurantID,
					RestaurantName: item.RestaurantName,
				}
				restaurantMap[item.RestaurantID] = rs
				restaurantOrder = append(restaurantOrder, item.RestaurantID)
			}
			rs.TotalOrders++
			if order.Status == models.OrderStatusConfirmed {
				rs.TotalAmount += item.Subtotal
				rs.ConfirmedCount++
			} else {
				rs.CancelledCount++
			}
		}

		us, ok := userMap[order.UserID]
		if !ok {
			us = &UserOrderSummary{
				UserID:   order.UserID,
				Username: order.Username,
			}
			userMap[order.UserID] = us
			userOrder = append(userOrder, order.UserID)
		}
		us.Orders = append(us.Orders, order)
		if order.Status == models.OrderStatusConfirmed {
			us.TotalAmount += order.TotalAmount
		}

		for _, item := range order.Items {
			if !containsString(us.Restaurants, item.RestaurantName) {
				us.Restaurants = append(us.Restaurants, item.RestaurantName)
			}
			merged := false
			for i := range us.Meals {
				if us.Meals[i].Name == item.MealName && us.Meals[i].Restaurant == item.RestaurantName {
					us.Meals[i].Quantity += item.Quantity
					merged = true
					break
				}
			}
			if !merged {
				us.Meals = append(us.Meals, MealCount{
					Name:       item.MealName,
					Restaurant: item.RestaurantName,
					Quantity:   item.Quantity,
				})
			}
		}
	}

	for _, stat := range walletStats {
		if us, ok := userMap[stat.UserID]; ok {
			us.Email = stat.Email
			us.Balance = stat.Balance
			us.HasDebt = stat.HasDebt
		}
	}

	view := DashboardView{Date: date}
	for _, id := range restaurantOrder {
		view.RestaurantStats = append(view.RestaurantStats, *restaurantMap[id])
	}
	sort.SliceStable(view.RestaurantStats, func(i, j int) bool {
		return view.RestaurantStats[i].TotalAmount > view.RestaurantStats[j].TotalAmount
	})

	for _, id := range userOrder {
		view.UserOrders = append(view.UserOrders, *userMap[id])
	}
	sort.SliceStable(view.UserOrders, func(i, j int) bool {
		return view.UserOrders[i].TotalAmount > view.UserOrders[j].TotalAmount
	})

	view.GlobalStats = DashboardGlobalStats{
		TotalOrders:      len(orders),
		TotalUsers:       len(view.UserOrders),
		TotalRestaurants: len(view.RestaurantStats),
	}
	for _, order := range orders {
		if order.Status == models.OrderStatusConfirmed {
			view.GlobalStats.TotalAmount += order.TotalAmount
		}
	}
	return view
}

// ExportOrdersCSV renders a restaurant's day of orders as CSV, one row per
// order, prefixed with a UTF-8 BOM so spreadsheet imports keep accents.
func ExportOrdersCSV(orders []models.Order) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Utilisateur", "Plats", "Quantité", "Montant Total"}); err != nil {
		return nil, err
	}

	for _, order := range orders {
		var meals []string
		quantity := 0
		for _, item := range order.Items {
			meals = append(meals, fmt.Sprintf("%s (×%d)", item.MealName, item.Quantity))
			quantity += item.Quantity
		}
		row := []string{
			order.Username,
			strings.Join(meals, ", "),
			fmt.Sprintf("%d", quantity),
			fmt.Sprintf("%.0f", order.TotalAmount),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FilterOrdersByRestaurant keeps the orders containing at least one item
// from the given restaurant, in input order.
func FilterOrdersByRestaurant(orders []models.Order, restaurantID uint) []models.Order {
	var out []models.Order
	for _, order := range orders {
		for _, item := range order.Items {
			if item.RestaurantID == restaurantID {
				out = append(out, order)
				break
			}
		}
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
