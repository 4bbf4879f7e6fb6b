package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatIDR formats an amount as Indonesian rupiah for display.
// Example: 750000 returns "Rp750.000"
// Example: 1234567.5 returns "Rp1.234.567,5"
// Example: -2500 returns "-Rp2.500"
func FormatIDR(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	digits := amount.Abs().String()

	intPart, fracPart, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("Rp")

	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteString(".")
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteString(".")
		}
	}

	if fracPart != "" {
		b.WriteString(",")
		b.WriteString(fracPart)
	}
	return b.String()
}
