// Package format renders monetary amounts for reports.
package format

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/mathutil"
	"github.com/shopspring/decimal"
)

var numeric = money.NewFormatter(constants.MinorUnitDigits, ".", ",", "", "1")

// Currency returns amount formatted for the ISO 4217 code, with the
// currency symbol and thousands separators (e.g., "$1,234.56" for USD).
// Unknown codes fall back to the numeric form followed by the code.
func Currency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = constants.DefaultCurrency
	}
	cur := money.GetCurrency(code)
	if cur == nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NumericCurrency(amount) + " " + code
	}
	units := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(units)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return numeric.Format(mathutil.ToMinorUnits(amount))
}

// Percent renders a percentage with two decimals ("17.50%").
func Percent(value float64) string {
	return numeric.Format(mathutil.ToMinorUnits(value)) + "%"
}
