package budget

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/household-budget/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// CoerceNumber converts user-entered numeric text into a number. Text that
// does not parse, or parses to NaN or an infinity, becomes 0.
func CoerceNumber(text string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || !mathutil.IsFinite(value) {
		return 0
	}
	return value
}

// ParseAmount parses an expense amount. Empty, non-numeric and negative
// amounts are rejected with ErrInvalidInput.
func ParseAmount(text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is empty", ErrInvalidInput)
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", ErrInvalidInput, text)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount %q is negative", ErrInvalidInput, text)
	}
	return amount, nil
}
