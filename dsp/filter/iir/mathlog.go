//go:build !fastmath

package iir

import "math"

func logMagnitude(x float64) float64 {
	return math.Log(x)
}
