package lut

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-gw/dsp/core"
)

// Resolution is the number of table knots per period.
//
// The truncation error of the second-order expansion is bounded by
// (pi/Resolution)^3/6, which is about 3.1e-7 for 256 knots.
const Resolution = 256

const (
	quarter   = Resolution / 4
	tableSize = Resolution + quarter + 1
)

type tables struct {
	sin      [tableSize]float64 // sin(2pi k/R)
	sin2Pi   [tableSize]float64 // 2pi * sin(2pi k/R)
	sin2PiPi [tableSize]float64 // 2pi^2 * sin(2pi k/R)
	knots    [Resolution + 1]float64
}

var (
	tbl     tables
	tblOnce sync.Once
)

func initTables() {
	for k := range tableSize {
		s := math.Sin(2 * math.Pi * float64(k) / Resolution)
		tbl.sin[k] = s
		tbl.sin2Pi[k] = s * 2 * math.Pi
		tbl.sin2PiPi[k] = s * 2 * math.Pi * math.Pi
	}
	for k := range Resolution + 1 {
		tbl.knots[k] = float64(k) / Resolution
	}
}

// Init builds the tables if that has not happened yet. Calling it is
// optional; every lookup initializes on demand. Parallel callers may use it
// to move the one-time cost out of their hot loops.
func Init() {
	tblOnce.Do(initTables)
}

// SinCos returns approximations of sin(2*pi*frac) and cos(2*pi*frac).
//
// frac must lie in [0, 1); use [Wrap] first for arbitrary phases.
func SinCos(frac float64) (sin, cos float64) {
	tblOnce.Do(initTables)

	idx := int(frac*Resolution + 0.5)
	d := frac - tbl.knots[idx]
	d2 := d * d

	sin = tbl.sin[idx] + d*tbl.sin2Pi[idx+quarter] - d2*tbl.sin2PiPi[idx]
	cos = tbl.sin[idx+quarter] - d*tbl.sin2Pi[idx] - d2*tbl.sin2PiPi[idx+quarter]
	return sin, cos
}

// Sin returns an approximation of sin(2*pi*frac) for frac in [0, 1).
func Sin(frac float64) float64 {
	s, _ := SinCos(frac)
	return s
}

// Cos returns an approximation of cos(2*pi*frac) for frac in [0, 1).
func Cos(frac float64) float64 {
	_, c := SinCos(frac)
	return c
}

// Wrap reduces a phase in cycles to [0, 1). Negative phases wrap modulo 1.
func Wrap(cycles float64) float64 {
	return core.Frac(cycles)
}

// MaxError returns the analytic bound on the expansion error of [SinCos].
func MaxError() float64 {
	h := math.Pi / Resolution
	return h * h * h / 6
}
