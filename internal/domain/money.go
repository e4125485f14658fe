package domain

import (
	"fmt"
)

// CurrencyPrefix is the display prefix for amounts. The engines are
// currency-agnostic; this only affects rendered descriptions.
const CurrencyPrefix = "Rs."

// FormatAmount renders an amount for insight descriptions and reports,
// e.g. "Rs.1250.00". The format is stable so descriptions stay comparable
// across runs.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencyPrefix, amount)
}
