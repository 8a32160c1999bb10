package iir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-gw/dsp/core"
)

// truncationLevel is the relative magnitude below which a decaying filter
// output is no longer accumulated.
const truncationLevel = 1e-13

var logTruncationLevel = math.Log(truncationLevel)

// Response writes the summed impulse response of the set into dst, which is
// zeroed first. Filter i contributes B0*A1^m at dst[Delay+m] until its
// output has decayed by truncationLevel or dst ends. Filters delayed past
// the end of dst contribute nothing.
func (s *Set) Response(dst []complex128) error {
	if err := s.Validate(); err != nil {
		return err
	}
	core.ZeroComplex(dst)

	for i, a1 := range s.A1 {
		delay := s.Delay[i]
		room := len(dst) - delay
		if room <= 0 {
			continue
		}

		out := dst[delay : delay+truncationLength(a1, room)]
		y := s.B0[i]
		for m := range out {
			out[m] += y
			y *= a1
		}
	}
	return nil
}

// ImpulseResponse allocates an n-sample buffer and fills it with
// [Set.Response].
func (s *Set) ImpulseResponse(n int) ([]complex128, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: response length %d", ErrInvalidLength, n)
	}
	out := make([]complex128, n)
	if err := s.Response(out); err != nil {
		return nil, err
	}
	return out, nil
}

// truncationLength returns how many samples of a filter with feedback a1 are
// worth accumulating, at least one and at most limit.
func truncationLength(a1 complex128, limit int) int {
	mag := cmplx.Abs(a1)
	if !(mag < 1) {
		return limit
	}
	if mag == 0 {
		return 1
	}
	length := logTruncationLevel / logMagnitude(mag)
	if !(length < float64(limit)) {
		return limit
	}
	return max(int(length), 1)
}
