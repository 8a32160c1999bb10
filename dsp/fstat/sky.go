package fstat

import (
	"fmt"
	"math"
)

// SkyConstants holds the per-segment coefficients of the phase model.
//
// Each segment owns 2*(Order+1) consecutive values in Data: the Y and X
// coefficients of the frequency term, followed by one Y, X pair per
// spin-down term. X terms give the signal's bin position inside the SFT
// (xTemp = f*X(alpha, -1) + sum_s spin[s]*X(alpha, s)) and Y terms its phase
// at the segment reference time, in cycles.
type SkyConstants struct {
	Order int
	Data  []float64
}

// NewSkyConstants returns zeroed constants for the given number of segments
// and spin-down terms.
func NewSkyConstants(segments, order int) SkyConstants {
	return SkyConstants{
		Order: order,
		Data:  make([]float64, 2*segments*(order+1)),
	}
}

func (s SkyConstants) stride() int {
	return 2 * (s.Order + 1)
}

// Segments returns the number of segments the layout holds.
func (s SkyConstants) Segments() int {
	if s.Order < 0 {
		return 0
	}
	return len(s.Data) / s.stride()
}

// X returns the bin-position coefficient of term for segment alpha. Term -1
// is the frequency coefficient, terms 0..Order-1 the spin-down coefficients.
func (s SkyConstants) X(alpha, term int) float64 {
	return s.Data[alpha*s.stride()+3+2*term]
}

// Y returns the phase coefficient of term for segment alpha, indexed like X.
func (s SkyConstants) Y(alpha, term int) float64 {
	return s.Data[alpha*s.stride()+2+2*term]
}

// SetX stores an X coefficient.
func (s SkyConstants) SetX(alpha, term int, v float64) {
	s.Data[alpha*s.stride()+3+2*term] = v
}

// SetY stores a Y coefficient.
func (s SkyConstants) SetY(alpha, term int, v float64) {
	s.Data[alpha*s.stride()+2+2*term] = v
}

// Validate checks that the layout holds exactly segments segments.
func (s SkyConstants) Validate(segments int) error {
	if s.Order < 0 {
		return fmt.Errorf("%w: sky constant order %d", ErrInvalidParams, s.Order)
	}
	if want := 2 * segments * (s.Order + 1); len(s.Data) != want {
		return fmt.Errorf("%w: %d sky constants, want %d for %d segments of order %d",
			ErrLengthMismatch, len(s.Data), want, segments, s.Order)
	}
	return nil
}

// NoDopplerSkyConstants returns the constants of a detector at rest relative
// to the source, for SFTs of length tsft seconds starting at starts[alpha]
// seconds after the spin-down reference time.
//
// The signal frequency at time t is f + sum_s spin[s]*t^(s+1)/(s+1)!, so
//
//	X(alpha, -1) = tsft      X(alpha, s) = tsft * t^(s+1)/(s+1)!
//	Y(alpha, -1) = t         Y(alpha, s) = t^(s+2)/(s+2)!
//
// with t = starts[alpha].
func NoDopplerSkyConstants(starts []float64, tsft float64, order int) (SkyConstants, error) {
	if !(tsft > 0) || math.IsInf(tsft, 0) {
		return SkyConstants{}, fmt.Errorf("%w: tsft must be > 0 and finite: %v", ErrInvalidParams, tsft)
	}
	if order < 0 {
		return SkyConstants{}, fmt.Errorf("%w: spin-down order must be >= 0: %d", ErrInvalidParams, order)
	}

	sky := NewSkyConstants(len(starts), order)
	for alpha, t := range starts {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return SkyConstants{}, fmt.Errorf("%w: segment %d start is %v", ErrInvalidParams, alpha, t)
		}
		sky.SetX(alpha, -1, tsft)
		sky.SetY(alpha, -1, t)

		// term = t^(s+1)/(s+1)!, built up incrementally.
		term := t
		for s := range order {
			sky.SetX(alpha, s, tsft*term)
			term *= t / float64(s+2)
			sky.SetY(alpha, s, term)
		}
	}
	return sky, nil
}
