package iir

import (
	"fmt"
	"math"
	"math/cmplx"

	"go.uber.org/zap"
)

const (
	// minStep is the smallest spacing between consecutive filters.
	minStep = 2
	// maxStep caps the spacing where the phase has no measurable curvature.
	maxStep = math.MaxInt32
	// reserveCap bounds the up-front allocation for long envelopes.
	reserveCap = 4096
)

// Params controls how densely [Synthesize] places filters.
type Params struct {
	// Epsilon is the tolerated phase error in cycles between a filter's
	// linear phase model and the waveform over one step. Must be > 0.
	Epsilon float64
	// Alpha positions the anchor sample inside the step, as a fraction of
	// the step length behind the cursor.
	Alpha float64
	// Beta sets the decay per step: |a1| = exp(-Beta/step).
	Beta float64
	// Padding is reserved for envelope padding and has no effect yet. A
	// negative value is accepted with a warning.
	Padding float64
}

// Validate checks that all parameters are finite and Epsilon is positive.
func (p Params) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"epsilon", p.Epsilon},
		{"alpha", p.Alpha},
		{"beta", p.Beta},
		{"padding", p.Padding},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s must be finite: %v", ErrInvalidParams, v.name, v.value)
		}
	}
	if p.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon must be > 0: %v", ErrInvalidParams, p.Epsilon)
	}
	return nil
}

// Synthesize builds a filter set whose summed impulse response approximates
// the time reverse of amp[n]*exp(i*phase[n]).
//
// phase must be unwrapped and in radians. A cursor walks backward from the
// last sample. At each position the local phase curvature fixes a step
// length, an anchor sample is chosen Alpha steps behind the cursor, and one
// filter is emitted that reproduces the waveform's instantaneous frequency
// and phase there. The walk ends once the anchor reaches the first two
// samples or the cursor drops to 3. Envelopes shorter than 5 samples yield
// an empty set.
func Synthesize(amp, phase []float64, p Params, opts ...Option) (*Set, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if len(amp) != len(phase) {
		return nil, fmt.Errorf("%w: amplitude has %d samples, phase has %d",
			ErrLengthMismatch, len(amp), len(phase))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Padding < 0 {
		cfg.logger.Warn("envelope padding is not supported, ignoring", zap.Float64("padding", p.Padding))
	}

	n := len(amp)
	set := newSet(min(n/minStep+1, reserveCap))

	// The cursor starts on the last sample, so the first filter has delay 0.
	for j := n - 1; j > 3; {
		ddot, tdot := phaseCurvature(phase, j, curvatureStencil(j, n))
		step := stepSize(p.Epsilon, ddot, tdot)

		k := anchor(j, step, p.Alpha)
		if k < 1 {
			step = j
			k = anchor(j, step, p.Alpha)
		}
		if k < 0 || k >= n {
			return nil, fmt.Errorf("%w: k=%d at j=%d (step %d, alpha %g, %d samples)",
				ErrAnchorOutOfRange, k, j, step, p.Alpha, n)
		}

		slope := phaseSlope(phase, k, slopeStencil(k, n))
		set.Append(Filter{
			A1:    cmplx.Rect(math.Exp(-p.Beta/float64(step)), -slope),
			B0:    cmplx.Rect(amp[k], phase[k]+slope*float64(j-k)),
			Delay: n - 1 - j,
		})

		if k < 2 {
			break
		}
		j -= step
	}

	set.clip()
	cfg.logger.Debug("synthesized filter set",
		zap.Int("samples", n),
		zap.Int("filters", set.Len()),
		zap.Float64("epsilon", p.Epsilon))
	return set, nil
}

// stepSize returns the spacing that keeps the second- and third-order phase
// error within epsilon cycles.
func stepSize(epsilon, ddot, tdot float64) int {
	second := math.Floor(math.Sqrt(2*epsilon/ddot) + 0.5)
	third := math.Floor(math.Cbrt(6*epsilon/tdot) + 0.5)
	step := math.Min(second, third)
	if !(step <= maxStep) {
		step = maxStep
	}
	return max(int(step), minStep)
}

func anchor(j, step int, alpha float64) int {
	return int(math.Floor(float64(j) - alpha*float64(step) + 0.5))
}
