package view

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/wishlist/internal/money"
	"github.com/Makepad-fr/wishlist/internal/summary"
)

// RenderSummary returns "" when there are no items, which hides the panel.
func RenderSummary(s summary.Summary) string {
	if s.TotalItems == 0 {
		return ""
	}
	counts := fmt.Sprintf("%s %d   %s %d",
		mutedStyle.Render("Items"), s.TotalItems,
		mutedStyle.Render("With price"), s.ItemsWithPrice)

	totals := mutedStyle.Render("No prices tracked yet")
	if s.HasTotals() {
		parts := make([]string, 0, len(s.Currencies))
		for _, code := range s.Currencies {
			parts = append(parts, priceStyle.Render(money.Format(code, s.Totals[code])))
		}
		totals = mutedStyle.Render("Total ") + strings.Join(parts, "  ")
	}
	return summaryStyle.Render(titleStyle.Render("Summary") + "\n" + counts + "\n" + totals)
}
