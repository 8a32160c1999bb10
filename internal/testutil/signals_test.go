package testutil

import (
	"math"
	"testing"
)

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestQuadraticPhaseSecondDifference(t *testing.T) {
	p := QuadraticPhase(0.125, 16)
	for k := 1; k < len(p)-1; k++ {
		d2 := (p[k-1] - 2*p[k] + p[k+1]) / (2 * math.Pi)
		if math.Abs(d2-0.125) > 1e-12 {
			t.Fatalf("second difference at %d = %v, want 0.125", k, d2)
		}
	}
}

func TestOnes(t *testing.T) {
	o := Ones(3)
	if len(o) != 3 {
		t.Fatalf("len = %d, want 3", len(o))
	}
	for i, v := range o {
		if v != 1 {
			t.Fatalf("Ones[%d] = %v, want 1", i, v)
		}
	}
}
