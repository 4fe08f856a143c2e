package summary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/wishlist/internal/model"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	require.Equal(t, 0, s.TotalItems)
	require.Equal(t, 0, s.ItemsWithPrice)
	require.False(t, s.HasTotals())
	require.Empty(t, s.Totals)
}

func TestSummarize_GroupsByCurrency(t *testing.T) {
	items := []model.Item{
		{ID: 1, CurrentPrice: price("10.10"), Currency: "USD"},
		{ID: 2, CurrentPrice: price("5.25"), Currency: "GBP"},
		{ID: 3, Currency: "GBP"},
		{ID: 4, CurrentPrice: price("0.20"), Currency: "USD"},
		{ID: 5, CurrentPrice: price("7"), Currency: "JPY"},
	}
	s := Summarize(items)

	require.Equal(t, len(items), s.TotalItems)
	require.Equal(t, 4, s.ItemsWithPrice)
	require.Equal(t, []string{"USD", "GBP", "JPY"}, s.Currencies)
	require.True(t, s.Totals["USD"].Equal(decimal.RequireFromString("10.30")))
	require.True(t, s.Totals["GBP"].Equal(decimal.RequireFromString("5.25")))
	require.True(t, s.Totals["JPY"].Equal(decimal.NewFromInt(7)))
}

func TestSummarize_PriceWithoutCurrencyCountsButIsNotTotalled(t *testing.T) {
	s := Summarize([]model.Item{{ID: 1, CurrentPrice: price("3")}})
	require.Equal(t, 1, s.ItemsWithPrice)
	require.False(t, s.HasTotals())
}

func TestSummarize_NoPrices(t *testing.T) {
	s := Summarize([]model.Item{{ID: 1, Currency: "GBP"}, {ID: 2, Currency: "USD"}})
	require.Equal(t, 2, s.TotalItems)
	require.Equal(t, 0, s.ItemsWithPrice)
	require.False(t, s.HasTotals())
}
