package utils

import "github.com/shopspring/decimal"

// FormatAmount renders a monetary amount with two decimal places for display
// in notifications, e.g. 1234.5 -> "1234.50".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
