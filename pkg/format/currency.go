// Package format renders amounts for display.
package format

import (
	"math"
	"strconv"

	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a whole-krona amount with thousands separators and the
// currency suffix (e.g., "-1,234 kr").
func Currency(amount float64) string {
	return NumericCurrency(amount) + " " + constants.CurrencySuffix
}

// NumericCurrency returns a whole-krona amount with thousands separators and
// no suffix (e.g., "24,966"). Non-finite values render as "-".
func NumericCurrency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return "-"
	}
	rounded := mathutil.RoundCurrency(amount)
	if rounded == 0 {
		rounded = math.Abs(rounded)
	}
	return printer.Sprintf("%d", int64(rounded))
}

// Percent returns a percentage in its shortest form (e.g., "4.6%").
func Percent(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}
