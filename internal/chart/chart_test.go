package chart

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/wishlist/internal/model"
)

func entry(price string, day int) model.PriceHistoryEntry {
	return model.PriceHistoryEntry{
		Price:     decimal.RequireFromString(price),
		CheckedAt: model.Timestamp{Time: time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC)},
	}
}

func TestNewSeries_OrdersByTime(t *testing.T) {
	s := NewSeries([]model.PriceHistoryEntry{entry("12", 3), entry("10", 1), entry("11", 2)}, "GBP", "2006-01-02")

	require.Equal(t, "Price (£)", s.Legend)
	require.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, s.Labels())
	prices := s.Prices()
	require.Len(t, prices, 3)
	require.True(t, prices[0].Equal(decimal.NewFromInt(10)))
	require.True(t, prices[2].Equal(decimal.NewFromInt(12)))
	require.Equal(t, "£10.00", s.Tick(prices[0]))
}

func TestNewSeries_UnknownCurrencyLegend(t *testing.T) {
	s := NewSeries([]model.PriceHistoryEntry{entry("1", 1)}, "JPY", "2006-01-02")
	require.Equal(t, "Price (JPY)", s.Legend)
}

func TestRender_ContainsAxesAndPoints(t *testing.T) {
	c := New(NewSeries([]model.PriceHistoryEntry{entry("10", 1), entry("12.5", 2), entry("11", 3)}, "USD", "02 Jan"))
	out := c.Render(60, 12)

	require.Contains(t, out, "Price ($)")
	require.Contains(t, out, "$12.50")
	require.Contains(t, out, "$10.00")
	require.Contains(t, out, "01 Jan")
	require.Contains(t, out, "03 Jan")
	require.Equal(t, 3, strings.Count(out, string(dot)))
}

func TestRender_FlatAndSingle(t *testing.T) {
	out := New(NewSeries([]model.PriceHistoryEntry{entry("5", 1)}, "EUR", "2006-01-02")).Render(40, 8)
	require.Contains(t, out, "€5.50")
	require.Contains(t, out, "€4.50")
	require.Equal(t, 1, strings.Count(out, string(dot)))

	require.Contains(t, New(Series{}).Render(40, 8), "no data")
}
