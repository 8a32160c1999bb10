package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
// The comparison is absolute near zero and relative otherwise.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Frac returns the fractional part of x in [0, 1).
// Negative inputs wrap modulo 1, so Frac(-0.25) = 0.75.
func Frac(x float64) float64 {
	r := x - math.Floor(x)
	if r >= 1 {
		// x was a tiny negative number and x - floor(x) rounded up to 1.
		return 0
	}
	return r
}
