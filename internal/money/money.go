// Package money formats prices for display.
package money

import "github.com/shopspring/decimal"

// DefaultCurrency is what the server stores when a create request omits one.
const DefaultCurrency = "GBP"

// Currencies offered by the add form, in display order.
var Currencies = []string{"GBP", "USD", "EUR"}

var symbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

// Symbol maps an upper-case currency code to its symbol. Anything else,
// including a lower-case code, comes back as-is.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

// Format renders amount with the currency symbol and two decimals.
func Format(code string, amount decimal.Decimal) string {
	return Symbol(code) + amount.StringFixed(2)
}
