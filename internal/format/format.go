// Package format renders statement figures with the fixed decimal and
// percent patterns the dashboard uses.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/finlens/finlens/internal/statement"
)

// Unavailable is shown wherever a figure could not be computed.
const Unavailable = "N/A"

var printer = message.NewPrinter(language.English)

// Value renders a reported value as a whole number with thousands
// separators: 1234567.8 -> "1,234,568".
func Value(v float64) string {
	return printer.Sprint(number.Decimal(v,
		number.MaxFractionDigits(0),
	))
}

// Percent renders a derived percentage: 40.0 -> "40.00%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Ratio renders a liquidity ratio, or Unavailable when it did not compute.
func Ratio(r statement.Ratio) string {
	if !r.Valid {
		return Unavailable
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// Delta renders a signed ratio change: +1.00, -0.25.
func Delta(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}
