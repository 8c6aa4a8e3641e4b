package safecalc

import (
	"math"
	"strconv"
)

// Format renders a result for display.
//
// Magnitudes above 1e15 or below 1e-4 use scientific notation with six
// fractional digits. Values within 1e-12 of an integer print as that integer.
// Everything else prints with up to ten significant digits.
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	a := math.Abs(v)
	if a > 1e15 || (a < 1e-4 && v != 0) {
		return strconv.FormatFloat(v, 'e', 6, 64)
	}
	if r := math.Round(v); math.Abs(v-r) < 1e-12 {
		if r == 0 {
			// No negative zero.
			return "0"
		}
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}
