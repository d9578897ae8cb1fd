package export

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// formatAmount renders a rupee amount with Indian digit grouping, two
// decimals, e.g. 12,34,567.89.
func formatAmount(v float64) string {
	return inr.Sprintf("%.2f", v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}
