// Package summary aggregates a snapshot into counts and per-currency totals.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/Makepad-fr/wishlist/internal/model"
)

type Summary struct {
	TotalItems     int
	ItemsWithPrice int
	Totals         map[string]decimal.Decimal
	Currencies     []string // keys of Totals in first-seen order
}

// Summarize is recomputed from scratch for every render.
func Summarize(items []model.Item) Summary {
	s := Summary{
		TotalItems: len(items),
		Totals:     make(map[string]decimal.Decimal),
	}
	for _, it := range items {
		if !it.HasPrice() {
			continue
		}
		s.ItemsWithPrice++
		if it.Currency == "" {
			continue
		}
		cur, seen := s.Totals[it.Currency]
		if !seen {
			s.Currencies = append(s.Currencies, it.Currency)
		}
		s.Totals[it.Currency] = cur.Add(*it.CurrentPrice)
	}
	return s
}

// HasTotals reports whether any currency breakdown exists.
func (s Summary) HasTotals() bool { return len(s.Currencies) > 0 }
