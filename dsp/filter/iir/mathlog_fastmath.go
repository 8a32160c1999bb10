//go:build fastmath

package iir

import "github.com/meko-christian/algo-approx"

// logMagnitude only feeds the truncation-length estimate, so the
// approximation never touches accumulated samples.
func logMagnitude(x float64) float64 {
	return approx.FastLog(x)
}
