package iir

import "math"

// Stencil selects a finite-difference formula for phase derivatives near the
// ends of the envelope, where a centered stencil would read out of bounds.
type Stencil int

const (
	StencilCentered Stencil = iota
	StencilBackward
	StencilForward
)

func (s Stencil) String() string {
	switch s {
	case StencilCentered:
		return "centered"
	case StencilBackward:
		return "backward"
	case StencilForward:
		return "forward"
	default:
		return "unknown"
	}
}

// curvatureStencil picks the stencil for the second and third phase
// derivative at cursor j of an n-sample envelope. The cursor never goes
// below 4, so only the upper edge needs a one-sided formula.
func curvatureStencil(j, n int) Stencil {
	if j > n-3 {
		return StencilBackward
	}
	return StencilCentered
}

// slopeStencil picks the stencil for the first phase derivative at anchor k.
func slopeStencil(k, n int) Stencil {
	switch {
	case k > n-3:
		return StencilBackward
	case k >= 2:
		return StencilCentered
	default:
		return StencilForward
	}
}

// phaseCurvature returns |d2phi| and |d3phi| at j in cycles per sample^2
// and per sample^3.
func phaseCurvature(p []float64, j int, st Stencil) (ddot, tdot float64) {
	if st == StencilBackward {
		ddot = p[j-2] - 2*p[j-1] + p[j]
		tdot = p[j-3] - 3*p[j-2] + 3*p[j-1] - p[j]
	} else {
		ddot = p[j-1] - 2*p[j] + p[j+1]
		tdot = -0.5*p[j-2] + p[j-1] - p[j+1] + 0.5*p[j+2]
	}
	return math.Abs(ddot) / (2 * math.Pi), math.Abs(tdot) / (2 * math.Pi)
}

// phaseSlope returns dphi/dn at k in radians per sample.
func phaseSlope(p []float64, k int, st Stencil) float64 {
	switch st {
	case StencilBackward:
		return 11.0/6.0*p[k] - 3*p[k-1] + 1.5*p[k-2] - 1.0/3.0*p[k-3]
	case StencilCentered:
		return (-p[k+2] + 8*(p[k+1]-p[k-1]) + p[k-2]) / 12
	default:
		return -11.0/6.0*p[k] + 3*p[k+1] - 1.5*p[k+2] + 1.0/3.0*p[k+3]
	}
}
