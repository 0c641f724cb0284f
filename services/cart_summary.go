package services

import "github.com/accelconnect/restauration-gateway/models"

// SubsidyAmount is the company's flat per-order meal subsidy in FCFA.
const SubsidyAmount = 1000.0

// Summarize derives the cart summary from a line collection. It is pure:
// display order follows insertion order and the amount after subsidy is
// clamped at zero.
func Summarize(lines []models.CartLine, subsidy float64) models.CartSummary {
	summary := models.CartSummary{
		SubsidyAmount: subsidy,
		Items:         make([]models.CartLine, len(lines)),
	}
	copy(summary.Items, lines)

	for _, line := range lines {
		summary.TotalItems += line.Quantity
		summary.Subtotal += line.UnitPrice * float64(line.Quantity)
	}

	summary.AmountAfterSubsidy = summary.Subtotal - subsidy
	if summary.AmountAfterSubsidy < 0 {
		summary.AmountAfterSubsidy = 0
	}
	return summary
}
