package fstat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams is returned for unusable demodulation parameters.
	ErrInvalidParams = errors.New("fstat: invalid parameters")

	// ErrLengthMismatch is returned when per-segment inputs disagree on the
	// number of segments or spin-down terms.
	ErrLengthMismatch = errors.New("fstat: length mismatch")

	// ErrNonFinitePhase is wrapped by [NumericError] when the frequency-domain
	// phase model evaluates to NaN or Inf.
	ErrNonFinitePhase = errors.New("fstat: phase model is not finite")

	// ErrNegativePhase is wrapped by [NumericError] when the frequency-domain
	// phase model is negative.
	ErrNegativePhase = errors.New("fstat: phase model is negative")

	// ErrSFTIndex is wrapped by [IndexError] when the kernel window does not
	// fit inside an SFT.
	ErrSFTIndex = errors.New("fstat: SFT index out of range")
)

// NumericError reports a phase model value that cannot be demodulated,
// together with the terms that produced it.
type NumericError struct {
	Err      error   // ErrNonFinitePhase or ErrNegativePhase
	Bin      int     // trial frequency index
	Segment  int     // SFT index
	Freq     float64 // trial frequency
	XTemp    float64 // f*SkyX + SpinSum
	SkyX     float64 // frequency coefficient of the segment's sky constants
	SpinSum  float64 // spin-down contribution to XTemp
	YTemp    float64 // f*SkyY + YSpinSum; zero when XTemp failed first
	SkyY     float64 // phase coefficient of the segment's sky constants
	YSpinSum float64 // spin-down contribution to YTemp
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("%v: bin %d, segment %d, f=%g, xTemp=%g, sky=%g, spin-down sum=%g, yTemp=%g, skyY=%g, y spin-down sum=%g",
		e.Err, e.Bin, e.Segment, e.Freq, e.XTemp, e.SkyX, e.SpinSum, e.YTemp, e.SkyY, e.YSpinSum)
}

func (e *NumericError) Unwrap() error { return e.Err }

// IndexError reports a kernel window [First, Last] that falls outside an SFT
// of Len bins.
type IndexError struct {
	Bin     int
	Segment int
	XTemp   float64
	First   int
	Last    int
	Len     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: bin %d, segment %d, window [%d, %d] for %d bins, xTemp=%.17g",
		ErrSFTIndex, e.Bin, e.Segment, e.First, e.Last, e.Len, e.XTemp)
}

func (e *IndexError) Unwrap() error { return ErrSFTIndex }
