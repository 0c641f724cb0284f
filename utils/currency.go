package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrencyFCFA formats an amount as FCFA with space-grouped
// thousands, the way the portal front-end displays prices.
// Example: 12500 -> "12 500 FCFA"
func FormatCurrencyFCFA(amount float64) string {
	rounded := int64(math.Round(amount))

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := fmt.Sprintf("%d", rounded)
	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	out := strings.Join(groups, " ") + " FCFA"
	if negative {
		out = "-" + out
	}
	return out
}
