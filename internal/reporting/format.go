package reporting

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// NotAvailable is shown for a supply limit of zero.
const NotAvailable = "—"

// exactDigits is enough fraction digits to print any float64 exactly.
const exactDigits = 1074

// Fixed2 formats v with exactly two decimals. Rounding applies to the exact
// binary value, half away from zero, so 1.005 (stored just below) gives "1.00".
func Fixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	exact := decimal.RequireFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	return exact.StringFixed(2)
}

// SupplyText formats a supply limit, or NotAvailable when it is zero.
func SupplyText(v float64) string {
	if v == 0 {
		return NotAvailable
	}
	return Fixed2(v)
}

// Percent converts an allocation level in [0, 1] to a whole percentage,
// truncating toward zero.
func Percent(level float64) int {
	return int(math.Trunc(level * 100))
}
