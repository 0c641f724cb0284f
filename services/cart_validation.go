package services

import (
	"context"
	"fmt"

	"github.com/accelconnect/restauration-gateway/models"
)

// ValidationResult partitions cart lines into those still offered today
// and those referencing meals that dropped off the menus. Both slices
// preserve the input order.
type ValidationResult struct {
	ValidItems   []models.CartLine `json:"validItems"`
	RemovedItems []models.CartLine `json:"removedItems"`
}

// MenuSource is the slice of the menu collaborator the validator needs.
type MenuSource interface {
	GetMenusByDate(ctx context.Context, date string) ([]models.Menu, error)
}

// CartValidationGateway checks cart lines against the day's published
// menus so checkout never references a withdrawn meal. It is stateless;
// applying the result back to the store is the caller's job.
type CartValidationGateway struct {
	Menus MenuSource
}

func NewCartValidationGateway(menus MenuSource) *CartValidationGateway {
	return &CartValidationGateway{Menus: menus}
}

// Validate fetches today's menus and classifies every line. A failed menu
// fetch propagates: a network error must block checkout, not wave all
// items through.
func (g *CartValidationGateway) Validate(ctx context.Context, lines []models.CartLine, date string) (ValidationResult, error) {
	menus, err := g.Menus.GetMenusByDate(ctx, date)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("menu lookup failed: %w", err)
	}
	return ClassifyLines(lines, menus), nil
}

// ClassifyLines partitions lines against an already fetched menu set.
// A line is valid only if its restaurant published a menu for the date
// and that menu offers the meal.
func ClassifyLines(lines []models.CartLine, menus []models.Menu) ValidationResult {
	byRestaurant := make(map[uint]models.Menu, len(menus))
	for _, menu := range menus {
		byRestaurant[menu.RestaurantID] = menu
	}

	result := ValidationResult{
		ValidItems:   []models.CartLine{},
		RemovedItems: []models.CartLine{},
	}
	for _, line := range lines {
		menu, ok := byRestaurant[line.RestaurantID]
		if ok && menu.OffersMeal(line.MealID) {
			result.ValidItems = append(result.ValidItems, line)
		} else {
			result.RemovedItems = append(result.RemovedItems, line)
		}
	}
	return result
}
