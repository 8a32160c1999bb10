package iir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-gw/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// FourierTransform evaluates the continuous-time Fourier transform of one
// filter's impulse response at bin j of a jmax-point grid, in closed form.
//
// hfcos is the transform of the real part of the response (a cosine-phase
// template) and hfsin that of the imaginary part, both scaled so the delay is
// measured from the end of a jmax-sample window.
func FourierTransform(j, jmax int, f Filter) (hfcos, hfsin complex128) {
	logMag := math.Log(cmplx.Abs(f.A1))
	arg := cmplx.Phase(f.A1)
	w := 2 * math.Pi * float64(j) / float64(jmax)

	scl := cmplx.Rect(0.5, -w*float64(jmax-f.Delay))
	ft := f.B0 / complex(-logMag, -arg-w)
	ftConj := cmplx.Conj(f.B0) / complex(-logMag, arg-w)

	return scl * (ft + ftConj), scl * (ft - ftConj)
}

// InnerProduct returns the noise-weighted norm of the set's cosine-phase
// template against a one-sided power spectral density:
//
//	sum_j |sum_k hfcos_k(j, 2P)|^2 / (psd[j]*P),  P = len(psd)
//
// Bins are independent and may be spread over workers with [WithWorkers];
// the final sum is always taken in bin order, so the result does not depend
// on the worker count.
func InnerProduct(s *Set, psd []float64, opts ...Option) (float64, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return 0, err
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := validatePSD(psd); err != nil {
		return 0, err
	}

	bins := len(psd)
	jmax := 2 * bins
	re := make([]float64, bins)
	im := make([]float64, bins)

	err = core.ParallelRanges(bins, cfg.workers, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			var h complex128
			for k := range s.A1 {
				hfcos, _ := FourierTransform(j, jmax, s.Filter(k))
				h += hfcos
			}
			re[j], im[j] = real(h), imag(h)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	scale := float64(bins)
	ip := 0.0
	for j, pw := range power {
		ip += pw / (psd[j] * scale)
	}
	return ip, nil
}

func validatePSD(psd []float64) error {
	if len(psd) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPSD)
	}
	for j, v := range psd {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bin %d is %v", ErrInvalidPSD, j, v)
		}
	}
	return nil
}
