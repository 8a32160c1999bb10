package signal

import (
	"fmt"
	"math"
	"math/rand"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-gw/dsp/core"
)

// SolarMassSeconds is G*Msun/c^3, the solar mass expressed in seconds.
const SolarMassSeconds = 4.925490947641267e-6

// maxChirpSamples bounds the envelope length so a tiny fLow cannot exhaust
// memory.
const maxChirpSamples = 1 << 26

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the current noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// NewtonianChirp returns the amplitude and unwrapped phase (radians) of a
// leading-order inspiral with the given chirp mass (solar masses), sampled
// from the moment the gravitational-wave frequency passes fLow until it
// reaches fHigh.
//
// The phase is relative to the first sample and increases monotonically.
// The amplitude grows as (f/fLow)^(2/3), starting at 1.
func (g *Generator) NewtonianChirp(chirpMass, fLow, fHigh float64) (amp, phase []float64, err error) {
	switch {
	case !(chirpMass > 0) || math.IsInf(chirpMass, 0):
		return nil, nil, fmt.Errorf("chirp mass must be > 0 and finite: %f", chirpMass)
	case !(fLow > 0) || math.IsInf(fLow, 0):
		return nil, nil, fmt.Errorf("chirp low frequency must be > 0 and finite: %f", fLow)
	case !(fHigh > fLow) || math.IsInf(fHigh, 0):
		return nil, nil, fmt.Errorf("chirp high frequency must exceed low frequency: %f <= %f", fHigh, fLow)
	}

	mc := chirpMass * SolarMassSeconds
	fs := g.cfg.SampleRate
	tauLow := timeToCoalescence(mc, fLow)
	tauHigh := timeToCoalescence(mc, fHigh)

	span := math.Floor((tauLow-tauHigh)*fs) + 1
	if span > maxChirpSamples {
		return nil, nil, fmt.Errorf("chirp would need %.0f samples (limit %d)", span, maxChirpSamples)
	}
	n := int(span)

	amp = make([]float64, n)
	phase = make([]float64, n)
	phi0 := orbitalPhase(mc, tauLow)
	for i := range n {
		tau := tauLow - float64(i)/fs
		f := math.Pow(5/(256*tau), 3.0/8.0) * math.Pow(mc, -5.0/8.0) / math.Pi
		amp[i] = math.Pow(f/fLow, 2.0/3.0)
		phase[i] = orbitalPhase(mc, tau) - phi0
	}
	return amp, phase, nil
}

// timeToCoalescence returns the Newtonian time (s) from frequency f to merger.
func timeToCoalescence(mc, f float64) float64 {
	return 5.0 / 256.0 * math.Pow(mc, -5.0/3.0) * math.Pow(math.Pi*f, -8.0/3.0)
}

// orbitalPhase returns the gravitational-wave phase tau seconds before merger.
func orbitalPhase(mc, tau float64) float64 {
	return -2 * math.Pow(tau/(5*mc), 5.0/8.0)
}

// ComplexTone generates amplitude*exp(i*2*pi*freqHz*(startSec + n/fs)).
func (g *Generator) ComplexTone(freqHz, startSec, amplitude float64, samples int) ([]complex128, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("tone samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("tone sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]complex128, samples)
	for i := range out {
		t := startSec + float64(i)/g.cfg.SampleRate
		// Reduce the cycle count first so long start times keep precision.
		cycles := freqHz * t
		cycles -= math.Floor(cycles)
		s, c := math.Sincos(2 * math.Pi * cycles)
		out[i] = complex(amplitude*c, amplitude*s)
	}
	return out, nil
}

// ComplexNoise generates deterministic circular Gaussian noise whose real
// and imaginary parts each have standard deviation sigma.
func (g *Generator) ComplexNoise(sigma float64, samples int) ([]complex128, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if sigma < 0 {
		return nil, fmt.Errorf("noise sigma must be >= 0: %f", sigma)
	}
	out := make([]complex128, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = complex(sigma*rng.NormFloat64(), sigma*rng.NormFloat64())
	}
	return out, nil
}

// SFTs returns the forward DFT of each segment. All segments must share one
// power-of-two length.
func SFTs(series [][]complex128) ([][]complex128, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("sft input must not be empty")
	}
	n := len(series[0])
	if n <= 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("sft segment length must be a power of two: %d", n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("sft plan: %w", err)
	}

	out := make([][]complex128, len(series))
	for i, seg := range series {
		if len(seg) != n {
			return nil, fmt.Errorf("sft segment %d has %d samples, want %d", i, len(seg), n)
		}
		out[i] = make([]complex128, n)
		if err := plan.Forward(out[i], seg); err != nil {
			return nil, fmt.Errorf("sft segment %d: %w", i, err)
		}
	}
	return out, nil
}
