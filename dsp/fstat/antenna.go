package fstat

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// AMCoeffs holds per-segment antenna-pattern amplitudes and the entries of
// their covariance matrix.
type AMCoeffs struct {
	A, B []float64
	// Ad = sum a^2, Bd = sum b^2, Cd = sum a*b, Dd = Ad*Bd - Cd^2.
	Ad, Bd, Cd, Dd float64
}

// WeighAMCoeffs scales the antenna-pattern amplitudes a and b by the square
// root of the per-segment noise weights and returns them with their
// covariance sums. A nil weights slice means unit weights. The inputs are
// not modified.
func WeighAMCoeffs(a, b, weights []float64) (AMCoeffs, error) {
	if len(a) != len(b) {
		return AMCoeffs{}, fmt.Errorf("%w: %d a values, %d b values", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return AMCoeffs{}, fmt.Errorf("%w: no segments", ErrInvalidParams)
	}

	wa := slices.Clone(a)
	wb := slices.Clone(b)
	if weights != nil {
		if len(weights) != len(a) {
			return AMCoeffs{}, fmt.Errorf("%w: %d weights for %d segments",
				ErrLengthMismatch, len(weights), len(a))
		}
		sqrtW := make([]float64, len(weights))
		for i, w := range weights {
			if !(w >= 0) || math.IsInf(w, 0) {
				return AMCoeffs{}, fmt.Errorf("%w: weight %d is %v", ErrInvalidParams, i, w)
			}
			sqrtW[i] = math.Sqrt(w)
		}
		vecmath.MulBlock(wa, a, sqrtW)
		vecmath.MulBlock(wb, b, sqrtW)
	}

	ad := floats.Dot(wa, wa)
	bd := floats.Dot(wb, wb)
	cd := floats.Dot(wa, wb)
	return AMCoeffs{
		A:  wa,
		B:  wb,
		Ad: ad,
		Bd: bd,
		Cd: cd,
		Dd: ad*bd - cd*cd,
	}, nil
}
