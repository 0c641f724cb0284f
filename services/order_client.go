package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/accelconnect/restauration-gateway/models"
)

// OrderClient drives the backend's order endpoints on behalf of the
// calling user; the user's own bearer token is forwarded so the backend
// enforces ownership.
type OrderClient struct {
	backend *BackendClient
}

func NewOrderClient(backend *BackendClient) *OrderClient {
	return &OrderClient{backend: backend}
}

func (o *OrderClient) CreateOrder(ctx context.Context, token string, payload models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := o.backend.doJSON(ctx, http.MethodPost, "/orders", token, payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrderClient) GetMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := o.backend.doJSON(ctx, http.MethodGet, "/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (o *OrderClient) GetOrder(ctx context.Context, token string, orderID uint) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/orders/%d", orderID)
	if err := o.backend.doJSON(ctx, http.MethodGet, path, token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrderClient) CancelOrder(ctx context.Context, token string, orderID uint) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/orders/%d/cancel", orderID)
	if err := o.backend.doJSON(ctx, http.MethodPut, path, token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByDate returns every user's orders for a date; admin only,
// enforced by the backend through the forwarded token.
func (o *OrderClient) GetOrdersByDate(ctx context.Context, token, date string) ([]models.Order, error) {
	var orders []models.Order
	path := "/admin/orders/by-date?date=" + url.QueryEscape(date)
	if err := o.backend.doJSON(ctx, http.MethodGet, path, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
