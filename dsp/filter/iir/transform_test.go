package iir

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-gw/internal/testutil"
)

func TestFourierTransformRealDecayAtDC(t *testing.T) {
	// For real a1 and b0 at DC the transform reduces to b0/(-ln a1).
	f := Filter{A1: 0.5, B0: 2, Delay: 16}
	hfcos, hfsin := FourierTransform(0, 16, f)

	if want := 2 / math.Ln2; cmplx.Abs(hfcos-complex(want, 0)) > 1e-12 {
		t.Fatalf("hfcos = %v, want %v", hfcos, want)
	}
	if cmplx.Abs(hfsin) > 1e-12 {
		t.Fatalf("hfsin = %v, want 0", hfsin)
	}
}

func TestFourierTransformDelayIsPhaseShift(t *testing.T) {
	const (
		j    = 5
		jmax = 64
		d    = 3
	)
	f := Filter{A1: cmplx.Rect(0.9, 0.4), B0: complex(0.3, -1.2), Delay: 7}
	shifted := f
	shifted.Delay += d

	c0, s0 := FourierTransform(j, jmax, f)
	c1, s1 := FourierTransform(j, jmax, shifted)

	rot := cmplx.Rect(1, 2*math.Pi*j/jmax*d)
	if cmplx.Abs(c1-c0*rot) > 1e-12 || cmplx.Abs(s1-s0*rot) > 1e-12 {
		t.Fatalf("delay shift mismatch: (%v, %v) vs (%v, %v)", c1, s1, c0*rot, s0*rot)
	}
}

func TestFourierTransformCosSinSplit(t *testing.T) {
	// hfcos + hfsin and hfcos - hfsin isolate the two halves of the sum.
	f := Filter{A1: cmplx.Rect(0.8, -0.7), B0: cmplx.Rect(1.5, 0.2), Delay: 2}
	hfcos, hfsin := FourierTransform(3, 32, f)

	w := 2 * math.Pi * 3 / 32
	scl := cmplx.Rect(0.5, -w*float64(32-f.Delay))
	ft := f.B0 / (-cmplx.Log(f.A1) - complex(0, w))
	if cmplx.Abs((hfcos+hfsin)/2-scl*ft) > 1e-12 {
		t.Fatalf("hfcos+hfsin = %v, want %v", hfcos+hfsin, 2*scl*ft)
	}
}

func TestInnerProductSingleFilter(t *testing.T) {
	f := Filter{A1: cmplx.Rect(0.95, 0.6), B0: 1, Delay: 4}
	set := newSet(1)
	set.Append(f)
	psd := []float64{1, 2, 0.5, 4, 1, 1, 3, 2}

	got, err := InnerProduct(set, psd)
	if err != nil {
		t.Fatalf("InnerProduct() error = %v", err)
	}

	want := 0.0
	for j, s := range psd {
		hfcos, _ := FourierTransform(j, 2*len(psd), f)
		want += real(hfcos*cmplx.Conj(hfcos)) / (s * float64(len(psd)))
	}
	if math.Abs(got-want) > 1e-12*want {
		t.Fatalf("InnerProduct = %v, want %v", got, want)
	}
}

func chirpSet(t testing.TB) *Set {
	t.Helper()
	amp, phase := chirpEnvelope(t)
	set, err := Synthesize(amp, phase, Params{Epsilon: 0.02, Alpha: 0.99, Beta: 0.25})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	return set
}

func TestInnerProductScalesInversely(t *testing.T) {
	set := chirpSet(t)
	psd := testutil.Ones(512)
	for i := range psd {
		psd[i] += 0.5 * math.Sin(float64(i)/40)
	}
	base, err := InnerProduct(set, psd)
	if err != nil {
		t.Fatalf("InnerProduct() error = %v", err)
	}
	if !(base > 0) {
		t.Fatalf("InnerProduct = %v, want > 0", base)
	}

	const c = 7.5
	scaled := make([]float64, len(psd))
	for i, v := range psd {
		scaled[i] = c * v
	}
	got, err := InnerProduct(set, scaled)
	if err != nil {
		t.Fatalf("InnerProduct() error = %v", err)
	}
	if math.Abs(got-base/c) > 1e-12*base {
		t.Fatalf("scaled = %v, want %v", got, base/c)
	}
}

func TestInnerProductWorkersAgree(t *testing.T) {
	set := chirpSet(t)
	psd := testutil.Ones(300)

	serial, err := InnerProduct(set, psd, WithWorkers(1))
	if err != nil {
		t.Fatalf("InnerProduct() error = %v", err)
	}
	for _, workers := range []int{0, 2, 7} {
		got, err := InnerProduct(set, psd, WithWorkers(workers))
		if err != nil {
			t.Fatalf("workers=%d: error = %v", workers, err)
		}
		if got != serial {
			t.Fatalf("workers=%d: %v != serial %v", workers, got, serial)
		}
	}
}

func TestInnerProductEmptySet(t *testing.T) {
	got, err := InnerProduct(&Set{}, []float64{1, 1})
	if err != nil || got != 0 {
		t.Fatalf("InnerProduct(empty) = %v, %v", got, err)
	}
}

func TestInnerProductErrors(t *testing.T) {
	set := &Set{A1: []complex128{0.5}, B0: []complex128{1}, Delay: []int{0}}
	tests := []struct {
		name string
		set  *Set
		psd  []float64
		opts []Option
		want error
	}{
		{"empty psd", set, nil, nil, ErrInvalidPSD},
		{"zero bin", set, []float64{1, 0}, nil, ErrInvalidPSD},
		{"negative bin", set, []float64{-1}, nil, ErrInvalidPSD},
		{"nan bin", set, []float64{math.NaN()}, nil, ErrInvalidPSD},
		{"inf bin", set, []float64{math.Inf(1)}, nil, ErrInvalidPSD},
		{"ragged set", &Set{A1: []complex128{0.5}}, []float64{1}, nil, ErrLengthMismatch},
		{"nil set", nil, []float64{1}, nil, ErrNilSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := InnerProduct(tt.set, tt.psd, tt.opts...); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := InnerProduct(set, []float64{1}, WithWorkers(-1)); err == nil {
		t.Fatal("expected error for negative workers")
	}
}

func TestSpectrumMatchesGeometricSeries(t *testing.T) {
	const n = 64
	set := &Set{A1: []complex128{0.5}, B0: []complex128{1}, Delay: []int{0}}
	got, err := set.Spectrum(n)
	if err != nil {
		t.Fatalf("Spectrum() error = %v", err)
	}

	want := make([]complex128, n)
	for k := range want {
		z := cmplx.Rect(1, -2*math.Pi*float64(k)/n)
		want[k] = 1 / (1 - 0.5*z)
	}
	testutil.RequireComplexNearlyEqual(t, got, want, 1e-9)
}

func TestSpectrumRejectsBadSize(t *testing.T) {
	set := &Set{}
	for _, n := range []int{0, -4, 12} {
		if _, err := set.Spectrum(n); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("Spectrum(%d) error = %v", n, err)
		}
	}
}

func BenchmarkInnerProduct(b *testing.B) {
	set := chirpSet(b)
	psd := testutil.Ones(1024)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := InnerProduct(set, psd); err != nil {
			b.Fatal(err)
		}
	}
}
