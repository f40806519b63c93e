package ir

import (
	"math"
	"strconv"
)

// MaxSafeInt is the largest magnitude below which every integer is exactly
// representable as a float64.
const MaxSafeInt = 1 << 53

// FormatNumber formats f in canonical decimal form: integral values of
// magnitude at most MaxSafeInt have no fraction or exponent, other values use
// the shortest representation which parses back to f.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) <= MaxSafeInt {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
