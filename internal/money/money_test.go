package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	cases := map[string]string{
		"GBP": "£",
		"USD": "$",
		"EUR": "€",
		"JPY": "JPY",
		"gbp": "gbp",
		"Usd": "Usd",
		"":    "",
	}
	for in, want := range cases {
		require.Equal(t, want, Symbol(in), "Symbol(%q)", in)
	}
}

func TestFormat(t *testing.T) {
	require.Equal(t, "£12.50", Format("GBP", decimal.RequireFromString("12.5")))
	require.Equal(t, "JPY1200.00", Format("JPY", decimal.NewFromInt(1200)))
	require.Equal(t, "$0.00", Format("USD", decimal.Zero))
}
