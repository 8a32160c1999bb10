package lut

import (
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-gw/internal/testutil"
)

const accuracy = 1e-6

func TestSinCosAccuracySweep(t *testing.T) {
	const steps = 200000

	worstSin, worstCos := 0.0, 0.0
	for i := range steps {
		x := float64(i) / steps
		s, c := SinCos(x)

		worstSin = math.Max(worstSin, math.Abs(s-math.Sin(2*math.Pi*x)))
		worstCos = math.Max(worstCos, math.Abs(c-math.Cos(2*math.Pi*x)))
	}

	if worstSin >= accuracy {
		t.Fatalf("worst sin error = %g, want < %g", worstSin, accuracy)
	}
	if worstCos >= accuracy {
		t.Fatalf("worst cos error = %g, want < %g", worstCos, accuracy)
	}
	if bound := MaxError() + 1e-15; worstSin > bound || worstCos > bound {
		t.Fatalf("worst errors (%g, %g) exceed analytic bound %g", worstSin, worstCos, bound)
	}
}

func TestSinCosRandomPhases(t *testing.T) {
	phases := testutil.DeterministicNoise(7, 1, 4096)
	for i, p := range phases {
		x := Wrap(p * 13.7)
		s, c := SinCos(x)

		if d := math.Abs(s - math.Sin(2*math.Pi*x)); d >= accuracy {
			t.Fatalf("phase %d (x=%v): sin error %g", i, x, d)
		}
		if d := math.Abs(c - math.Cos(2*math.Pi*x)); d >= accuracy {
			t.Fatalf("phase %d (x=%v): cos error %g", i, x, d)
		}
	}
}

func TestSinCosAtKnotsIsExact(t *testing.T) {
	for k := range Resolution {
		x := float64(k) / Resolution
		s, c := SinCos(x)

		if math.Abs(s-math.Sin(2*math.Pi*x)) > 1e-15 {
			t.Fatalf("knot %d: sin = %v", k, s)
		}
		if math.Abs(c-math.Cos(2*math.Pi*x)) > 1e-15 {
			t.Fatalf("knot %d: cos = %v", k, c)
		}
	}
}

func TestSinCosNearUpperEdge(t *testing.T) {
	x := math.Nextafter(1, 0)
	s, c := SinCos(x)
	if math.Abs(s) > accuracy || math.Abs(c-1) > accuracy {
		t.Fatalf("SinCos(1-ulp) = (%v, %v), want (0, 1)", s, c)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.75, 0.75},
		{3.25, 0.25},
		{-0.25, 0.75},
		{-3.5, 0.5},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConcurrentFirstUse(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]float64, 8)
	for g := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			x := float64(g) / 8
			errs[g] = math.Abs(Sin(x) - math.Sin(2*math.Pi*x))
		}()
	}
	wg.Wait()

	for g, e := range errs {
		if e >= accuracy {
			t.Fatalf("goroutine %d: error %g", g, e)
		}
	}
}

func BenchmarkSinCos(b *testing.B) {
	Init()
	x := 0.0
	var acc float64
	for b.Loop() {
		s, c := SinCos(x)
		acc += s + c
		x += 0.001
		if x >= 1 {
			x -= 1
		}
	}
	_ = acc
}

func BenchmarkMathSincos(b *testing.B) {
	x := 0.0
	var acc float64
	for b.Loop() {
		s, c := math.Sincos(2 * math.Pi * x)
		acc += s + c
		x += 0.001
		if x >= 1 {
			x -= 1
		}
	}
	_ = acc
}
