package fstat

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-gw/dsp/core"
	"github.com/cwbudde/algo-gw/dsp/lut"
)

// SmallOffset is the fractional bin offset (cycles) below which the kernel
// window may contain a term whose argument is too close to zero to divide
// by.
const SmallOffset = smallArg / (2 * math.Pi)

// smallArg is the kernel argument (radians) below which a term takes the
// x -> 0 limit.
const smallArg = 1e-9

// Params describes one demodulation run.
type Params struct {
	F0      float64 // first trial frequency
	DF      float64 // trial frequency spacing
	NumBins int     // number of trial frequencies
	Dterms  int     // kernel half-width; 2*Dterms bins are summed per SFT
	IFMin   int     // frequency index of element 0 of every SFT

	SpinDown []float64
	Sky      SkyConstants
	AM       AMCoeffs

	// ReturnFaFb keeps the per-bin partial sums in the result.
	ReturnFaFb bool
}

// Result holds the statistic per trial frequency and, on request, the
// partial sums it was built from.
type Result struct {
	F  []float64
	Fa []complex128
	Fb []complex128
}

// segment is the per-SFT state that does not depend on the trial frequency.
type segment struct {
	data       []complex128
	skyX, skyY float64
	xSum, ySum float64
	a, b       float64
}

func (p Params) validate(sfts [][]complex128) error {
	m := len(sfts)
	switch {
	case m == 0:
		return fmt.Errorf("%w: no SFTs", ErrInvalidParams)
	case p.Dterms < 1:
		return fmt.Errorf("%w: dterms must be >= 1: %d", ErrInvalidParams, p.Dterms)
	case p.NumBins < 0:
		return fmt.Errorf("%w: bin count must be >= 0: %d", ErrInvalidParams, p.NumBins)
	case !core.IsFinite(p.F0) || !core.IsFinite(p.DF):
		return fmt.Errorf("%w: frequency grid f0=%v df=%v", ErrInvalidParams, p.F0, p.DF)
	case p.AM.Dd == 0 || !core.IsFinite(p.AM.Dd):
		return fmt.Errorf("%w: antenna-pattern determinant is %v", ErrInvalidParams, p.AM.Dd)
	case len(p.AM.A) != m || len(p.AM.B) != m:
		return fmt.Errorf("%w: %d SFTs, %d a values, %d b values",
			ErrLengthMismatch, m, len(p.AM.A), len(p.AM.B))
	case p.Sky.Order != len(p.SpinDown):
		return fmt.Errorf("%w: sky constants of order %d, %d spin-down values",
			ErrLengthMismatch, p.Sky.Order, len(p.SpinDown))
	}
	return p.Sky.Validate(m)
}

// Compute evaluates the F-statistic at NumBins trial frequencies
// F0 + i*DF from one SFT per segment.
//
// A phase model that is negative or not finite aborts with a
// [*NumericError]; a kernel window that leaves an SFT aborts with an
// [*IndexError]. No partial result is returned on error.
func Compute(sfts [][]complex128, p Params, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := p.validate(sfts); err != nil {
		return nil, err
	}

	segs := make([]segment, len(sfts))
	for alpha := range segs {
		seg := segment{
			data: sfts[alpha],
			skyX: p.Sky.X(alpha, -1),
			skyY: p.Sky.Y(alpha, -1),
			a:    p.AM.A[alpha],
			b:    p.AM.B[alpha],
		}
		for s, spin := range p.SpinDown {
			seg.xSum += spin * p.Sky.X(alpha, s)
			seg.ySum += spin * p.Sky.Y(alpha, s)
		}
		segs[alpha] = seg
	}

	res := &Result{F: make([]float64, p.NumBins)}
	if p.ReturnFaFb {
		res.Fa = make([]complex128, p.NumBins)
		res.Fb = make([]complex128, p.NumBins)
	}

	// Build the table before workers read it.
	lut.Init()

	norm := 4 / (float64(len(segs)) * p.AM.Dd)
	err = core.ParallelRanges(p.NumBins, cfg.workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			f := p.F0 + float64(i)*p.DF

			var fa, fb complex128
			for alpha := range segs {
				seg := &segs[alpha]
				qxp, err := seg.demodulate(f, p.Dterms, p.IFMin)
				if err != nil {
					return annotate(err, i, alpha)
				}
				fa += complex(seg.a, 0) * qxp
				fb += complex(seg.b, 0) * qxp
			}

			faSq := real(fa)*real(fa) + imag(fa)*imag(fa)
			fbSq := real(fb)*real(fb) + imag(fb)*imag(fb)
			faFb := real(fa)*real(fb) + imag(fa)*imag(fb)
			res.F[i] = norm * (p.AM.Bd*faSq + p.AM.Ad*fbSq - 2*p.AM.Cd*faFb)
			if p.ReturnFaFb {
				res.Fa[i] = fa
				res.Fb[i] = fb
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// demodulate returns the phase-corrected kernel sum Q*XP of one SFT at
// trial frequency f. Errors carry no bin or segment; the caller adds them.
func (s *segment) demodulate(f float64, dterms, ifmin int) (complex128, error) {
	xTemp := f*s.skyX + s.xSum
	if !core.IsFinite(xTemp) {
		return 0, &NumericError{Err: ErrNonFinitePhase, Freq: f, XTemp: xTemp, SkyX: s.skyX, SpinSum: s.xSum}
	}
	if xTemp < 0 {
		return 0, &NumericError{Err: ErrNegativePhase, Freq: f, XTemp: xTemp, SkyX: s.skyX, SpinSum: s.xSum}
	}

	whole := math.Floor(xTemp)
	first := int(whole) - dterms + 1 - ifmin
	last := first + 2*dterms - 1
	if first < 0 || last > len(s.data)-1 {
		return 0, &IndexError{XTemp: xTemp, First: first, Last: last, Len: len(s.data)}
	}

	yTemp := f*s.skyY + s.ySum
	if !core.IsFinite(yTemp) {
		return 0, &NumericError{
			Err: ErrNonFinitePhase, Freq: f,
			XTemp: xTemp, SkyX: s.skyX, SpinSum: s.xSum,
			YTemp: yTemp, SkyY: s.skyY, YSpinSum: s.ySum,
		}
	}

	t0 := xTemp - whole
	tsin, tcos := lut.SinCos(t0)
	xp := kernelSum(s.data[first:last+1], t0, dterms, tsin, tcos-1)

	ySin, yCos := lut.SinCos(lut.Wrap(yTemp))
	return complex(yCos, -ySin) * xp, nil
}

// kernelSum returns sum_k x[k]*P_k with P_k = (tsin + i*tcos)/(2*pi*tf1)
// and tf1 = t0 + dterms - 1 - k. tcos is cos(2*pi*t0) - 1. For t0 below
// SmallOffset, terms whose argument is effectively zero add x[k] unweighted.
func kernelSum(x []complex128, t0 float64, dterms int, tsin, tcos float64) complex128 {
	var re, im float64

	if t0 < SmallOffset {
		for k, v := range x {
			arg := 2 * math.Pi * (t0 + float64(dterms-1-k))
			if math.Abs(arg) < smallArg {
				re += real(v)
				im += imag(v)
				continue
			}
			pr, pi := tsin/arg, tcos/arg
			re += real(v)*pr - imag(v)*pi
			im += real(v)*pi + imag(v)*pr
		}
		return complex(re, im)
	}

	for k, v := range x {
		inv := 1 / (2 * math.Pi * (t0 + float64(dterms-1-k)))
		pr, pi := tsin*inv, tcos*inv
		re += real(v)*pr - imag(v)*pi
		im += real(v)*pi + imag(v)*pr
	}
	return complex(re, im)
}

// annotate fills in the bin and segment of an error from demodulate.
func annotate(err error, bin, alpha int) error {
	switch e := err.(type) {
	case *NumericError:
		e.Bin, e.Segment = bin, alpha
	case *IndexError:
		e.Bin, e.Segment = bin, alpha
	}
	return err
}
