package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/accelconnect/restauration-gateway/models"
)

// MenuClient reads the published menus and partner restaurants from the
// backend. Menus are public portal data, no user token needed.
type MenuClient struct {
	backend *BackendClient
}

func NewMenuClient(backend *BackendClient) *MenuClient {
	return &MenuClient{backend: backend}
}

// GetMenusByDate returns every active menu published for a date.
func (m *MenuClient) GetMenusByDate(ctx context.Context, date string) ([]models.Menu, error) {
	var menus []models.Menu
	path := "/menus/active?date=" + url.QueryEscape(date)
	if err := m.backend.doJSON(ctx, http.MethodGet, path, "", nil, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func (m *MenuClient) GetRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := m.backend.doJSON(ctx, http.MethodGet, "/restaurants", "", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// CreateOrUpdateMenu publishes a restaurant's menu for a date; the
// backend upserts on (restaurantId, menuDate). Admin only, enforced by
// the forwarded token.
func (m *MenuClient) CreateOrUpdateMenu(ctx context.Context, token string, req models.CreateMenuRequest) (*models.Menu, error) {
	var menu models.Menu
	if err := m.backend.doJSON(ctx, http.MethodPost, "/menus", token, req, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// DeleteMenu withdraws a published menu.
func (m *MenuClient) DeleteMenu(ctx context.Context, token string, menuID uint) error {
	path := fmt.Sprintf("/menus/%d", menuID)
	return m.backend.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

// CreateRestaurant registers a new partner restaurant.
func (m *MenuClient) CreateRestaurant(ctx context.Context, token string, req models.CreateRestaurantRequest) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := m.backend.doJSON(ctx, http.MethodPost, "/restaurants", token, req, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// AddMealToRestaurant attaches an existing meal to a restaurant's
// catalogue and returns the updated restaurant.
func (m *MenuClient) AddMealToRestaurant(ctx context.Context, token string, restaurantID, mealID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	path := fmt.Sprintf("/restaurants/%d/meals/%d", restaurantID, mealID)
	if err := m.backend.doJSON(ctx, http.MethodPost, path, token, nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetRestaurantsWithMenus joins the restaurant list with the menus of a
// date for the portal's landing view.
func (m *MenuClient) GetRestaurantsWithMenus(ctx context.Context, date string) ([]models.RestaurantWithMenu, error) {
	restaurants, err := m.GetRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	menus, err := m.GetMenusByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	byRestaurant := make(map[uint]models.Menu, len(menus))
	for _, menu := range menus {
		byRestaurant[menu.RestaurantID] = menu
	}

	out := make([]models.RestaurantWithMenu, 0, len(restaurants))
	for _, r := range restaurants {
		entry := models.RestaurantWithMenu{Restaurant: r}
		if menu, ok := byRestaurant[r.ID]; ok {
			menuCopy := menu
			entry.Menu = &menuCopy
			entry.HasMenu = true
			entry.ItemCount = len(menu.Meals)
		}
		out = append(out, entry)
	}
	return out, nil
}
