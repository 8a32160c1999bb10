package fstat

import (
	"errors"
	"math"
	"testing"
)

func TestSkyConstantsLayout(t *testing.T) {
	sky := NewSkyConstants(2, 2)
	if len(sky.Data) != 12 || sky.Segments() != 2 {
		t.Fatalf("len=%d segments=%d, want 12 and 2", len(sky.Data), sky.Segments())
	}
	for i := range sky.Data {
		sky.Data[i] = float64(i)
	}

	// Segment 1 starts at 2*(order+1) = 6.
	tests := []struct {
		term  int
		wantY float64
		wantX float64
	}{
		{-1, 6, 7},
		{0, 8, 9},
		{1, 10, 11},
	}
	for _, tt := range tests {
		if got := sky.Y(1, tt.term); got != tt.wantY {
			t.Errorf("Y(1, %d) = %v, want %v", tt.term, got, tt.wantY)
		}
		if got := sky.X(1, tt.term); got != tt.wantX {
			t.Errorf("X(1, %d) = %v, want %v", tt.term, got, tt.wantX)
		}
	}

	sky.SetX(0, 1, -3)
	sky.SetY(0, -1, -4)
	if sky.Data[5] != -3 || sky.Data[0] != -4 {
		t.Fatalf("setters wrote %v", sky.Data[:6])
	}
}

func TestSkyConstantsValidate(t *testing.T) {
	sky := NewSkyConstants(3, 1)
	if err := sky.Validate(3); err != nil {
		t.Fatalf("Validate(3) error = %v", err)
	}
	if err := sky.Validate(2); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("Validate(2) error = %v, want ErrLengthMismatch", err)
	}
	if err := (SkyConstants{Order: -1}).Validate(0); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("negative order error = %v", err)
	}
}

func TestNoDopplerSkyConstants(t *testing.T) {
	const tsft = 2.0
	starts := []float64{0, 3}
	sky, err := NoDopplerSkyConstants(starts, tsft, 2)
	if err != nil {
		t.Fatalf("NoDopplerSkyConstants() error = %v", err)
	}

	const tol = 1e-12
	check := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > tol {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	check("X(1,-1)", sky.X(1, -1), tsft)
	check("Y(1,-1)", sky.Y(1, -1), 3)
	check("X(1,0)", sky.X(1, 0), tsft*3)
	check("Y(1,0)", sky.Y(1, 0), 9.0/2)
	check("X(1,1)", sky.X(1, 1), tsft*9.0/2)
	check("Y(1,1)", sky.Y(1, 1), 27.0/6)
	check("X(0,1)", sky.X(0, 1), 0)
}

func TestNoDopplerSkyConstantsErrors(t *testing.T) {
	if _, err := NoDopplerSkyConstants([]float64{0}, 0, 0); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("zero tsft error = %v", err)
	}
	if _, err := NoDopplerSkyConstants([]float64{0}, 1, -1); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("negative order error = %v", err)
	}
	if _, err := NoDopplerSkyConstants([]float64{math.NaN()}, 1, 0); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("nan start error = %v", err)
	}
}
