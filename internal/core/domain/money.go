package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are stored in "minor units" (cents).
// Example: 5.00 is stored as 500. 15.25 is stored as 1525.

// ParseAmount converts a decimal string like "5", "5.0" or "15.25" into
// cents. Anything with more than two fraction digits is rejected rather
// than rounded.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}

	return cents.IntPart(), nil
}

// FormatAmount renders cents as a plain decimal number for feed lines.
// No currency symbol, no thousands separator, minimum one fraction digit:
// 500 -> "5.0", 550 -> "5.5", 1525 -> "15.25".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	if frac%10 == 0 {
		return fmt.Sprintf("%s%d.%d", sign, whole, frac/10)
	}
	return fmt.Sprintf("%s%d.%02d", sign, whole, frac)
}
