package iir

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Spectrum returns the n-point DFT of the set's impulse response. n must be
// a power of two.
func (s *Set) Spectrum(n int) ([]complex128, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: spectrum size %d is not a power of two", ErrInvalidLength, n)
	}

	resp, err := s.ImpulseResponse(n)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("iir: create FFT plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, resp); err != nil {
		return nil, fmt.Errorf("iir: forward FFT: %w", err)
	}
	return out, nil
}
