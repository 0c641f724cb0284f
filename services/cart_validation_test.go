package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/accelconnect/restauration-gateway/models"
)

type stubMenuSource struct {
	menus []models.Menu
	err   error
}

func (s stubMenuSource) GetMenusByDate(ctx context.Context, date string) ([]models.Menu, error) {
	return s.menus, s.err
}

func menusFor(restaurantID uint, mealIDs ...uint) []models.Menu {
	meals := make([]models.Meal, 0, len(mealIDs))
	for _, id := range mealIDs {
		meals = append(meals, models.Meal{ID: id})
	}
	return []models.Menu{{RestaurantID: restaurantID, Meals: meals, IsActive: true}}
}

func TestValidatePartitionsWithdrawnMeals(t *testing.T) {
	gateway := NewCartValidationGateway(stubMenuSource{menus: menusFor(1, 6, 7)})

	lines := []models.CartLine{
		line(6, 1, 1500, 1),
		line(5, 1, 1000, 2), // withdrawn from today's menu
	}

	result, err := gateway.Validate(context.Background(), lines, "2026-03-04")
	assert.NoError(t, err)
	assert.Len(t, result.ValidItems, 1)
	assert.Equal(t, uint(6), result.ValidItems[0].MealID)
	assert.Len(t, result.RemovedItems, 1)
	assert.Equal(t, uint(5), result.RemovedItems[0].MealID)
}

func TestValidateRestaurantWithoutMenu(t *testing.T) {
	gateway := NewCartValidationGateway(stubMenuSource{menus: menusFor(1, 6)})

	lines := []models.CartLine{
		line(6, 2, 1500, 1), // restaurant 2 published nothing today
	}

	result, err := gateway.Validate(context.Background(), lines, "2026-03-04")
	assert.NoError(t, err)
	assert.Empty(t, result.ValidItems)
	assert.Len(t, result.RemovedItems, 1)
}

func TestValidatePropagatesFetchFailure(t *testing.T) {
	gateway := NewCartValidationGateway(stubMenuSource{err: errors.New("connection refused")})

	_, err := gateway.Validate(context.Background(), []models.CartLine{line(1, 1, 1500, 1)}, "2026-03-04")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "menu lookup failed")
}

func TestClassifyLinesEmptyCart(t *testing.T) {
	result := ClassifyLines(nil, menusFor(1, 6))
	assert.Empty(t, result.ValidItems)
	assert.Empty(t, result.RemovedItems)
}

func TestClassifyLinesPreservesOrder(t *testing.T) {
	menus := menusFor(1, 1, 2, 3)
	lines := []models.CartLine{
		line(3, 1, 500, 1),
		line(1, 1, 700, 1),
		line(2, 1, 900, 1),
	}

	result := ClassifyLines(lines, menus)
	assert.Len(t, result.ValidItems, 3)
	assert.Equal(t, uint(3), result.ValidItems[0].MealID)
	assert.Equal(t, uint(1), result.ValidItems[1].MealID)
	assert.Equal(t, uint(2), result.ValidItems[2].MealID)
}
