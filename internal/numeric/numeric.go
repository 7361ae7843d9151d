// Package numeric provides exact decimal-string arithmetic for financial values.
//
// Every price, amount, fee, and margin figure in the adapter layer is carried as
// a decimal string and combined through these helpers so binary floating point
// never touches a value that is compared against venue limits or signed into a
// request.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// divScale is the working scale for division before the caller truncates further.
const divScale = 18

// Parse converts a decimal string into a decimal value.
// On failure, it returns (zero, false).
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Add returns the exact sum of two decimal strings, or "" when either is invalid.
func Add(a, b string) string {
	da, ok := Parse(a)
	if !ok {
		return ""
	}
	db, ok := Parse(b)
	if !ok {
		return ""
	}
	return da.Add(db).String()
}

// Sub returns the exact difference a-b, or "" when either operand is invalid.
func Sub(a, b string) string {
	da, ok := Parse(a)
	if !ok {
		return ""
	}
	db, ok := Parse(b)
	if !ok {
		return ""
	}
	return da.Sub(db).String()
}

// Mul returns the exact product of two decimal strings, or "" when either is invalid.
func Mul(a, b string) string {
	da, ok := Parse(a)
	if !ok {
		return ""
	}
	db, ok := Parse(b)
	if !ok {
		return ""
	}
	return da.Mul(db).String()
}

// Div returns a÷b truncated toward zero at 18 fractional digits.
// Division by zero or an invalid operand yields "".
func Div(a, b string) string {
	da, ok := Parse(a)
	if !ok {
		return ""
	}
	db, ok := Parse(b)
	if !ok || db.IsZero() {
		return ""
	}
	return da.DivRound(db, divScale+2).Truncate(divScale).String()
}

// Cmp compares two decimal strings: -1 when a<b, 0 when equal, +1 when a>b.
// Invalid operands compare as zero.
func Cmp(a, b string) int {
	da, _ := Parse(a)
	db, _ := Parse(b)
	return da.Cmp(db)
}

// Abs returns the absolute value of a decimal string.
func Abs(a string) string {
	da, ok := Parse(a)
	if !ok {
		return ""
	}
	return da.Abs().String()
}

// Neg returns the negation of a decimal string.
func Neg(a string) string {
	da, ok := Parse(a)
	if !ok {
		return ""
	}
	return da.Neg().String()
}

// IsZero reports whether s parses to exactly zero.
func IsZero(s string) bool {
	d, ok := Parse(s)
	return ok && d.IsZero()
}

// Gt reports whether a is strictly greater than b.
func Gt(a, b string) bool { return Cmp(a, b) > 0 }

// Lt reports whether a is strictly less than b.
func Lt(a, b string) bool { return Cmp(a, b) < 0 }

// Equals reports whether two decimal strings denote the same value.
func Equals(a, b string) bool {
	da, oka := Parse(a)
	db, okb := Parse(b)
	return oka && okb && da.Equal(db)
}

// OmitZero maps empty, invalid, and exactly-zero strings to "", passing other
// values through normalized. Venues emit "0.00" for unset prices; callers treat
// that as absent.
func OmitZero(s string) string {
	d, ok := Parse(s)
	if !ok || d.IsZero() {
		return ""
	}
	return d.String()
}

// ScaleFromStep derives the effective fractional precision from a decimal
// "step" string, e.g. "0.0010" -> 3 and "1" -> 0.
func ScaleFromStep(step string) int32 {
	step = strings.TrimSpace(step)
	if step == "" {
		return 0
	}
	idx := strings.IndexByte(step, '.')
	if idx < 0 {
		return 0
	}
	frac := strings.TrimRight(step[idx+1:], "0")
	return int32(len(frac))
}

// TruncateToStep truncates value to the scale implied by step. Truncation, not
// rounding: rounding up can push an order size past a venue-declared limit.
func TruncateToStep(value, step string) string {
	d, ok := Parse(value)
	if !ok {
		return ""
	}
	return d.Truncate(ScaleFromStep(step)).String()
}

// Truncate truncates value toward zero at the given fractional scale.
func Truncate(value string, scale int32) string {
	d, ok := Parse(value)
	if !ok {
		return ""
	}
	return d.Truncate(scale).String()
}

// StepFromDigits converts a decimal-digit count ("3") into its tick size
// ("0.001"). Some venues declare precision as a digit count rather than a step.
func StepFromDigits(digits string) string {
	d, ok := Parse(digits)
	if !ok {
		return ""
	}
	n := d.IntPart()
	if n <= 0 {
		return "1"
	}
	return "0." + strings.Repeat("0", int(n)-1) + "1"
}
