package main

import (
	"fmt"
	"math/cmplx"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-gw/dsp/core"
	"github.com/cwbudde/algo-gw/dsp/filter/iir"
	"github.com/cwbudde/algo-gw/dsp/signal"
	"github.com/cwbudde/algo-gw/dsp/spectrum"
	"github.com/cwbudde/algo-gw/internal/config"
)

type iirReport struct {
	Samples       int     `json:"samples" yaml:"samples"`
	Duration      float64 `json:"duration_s" yaml:"duration_s"`
	Filters       int     `json:"filters" yaml:"filters"`
	MinDelay      int     `json:"min_delay" yaml:"min_delay"`
	MaxDelay      int     `json:"max_delay" yaml:"max_delay"`
	MaxPole       float64 `json:"max_pole" yaml:"max_pole"`
	PeakResponse  float64 `json:"peak_response" yaml:"peak_response"`
	PeakFrequency float64 `json:"peak_frequency_hz" yaml:"peak_frequency_hz"`
	Normalization float64 `json:"normalization" yaml:"normalization"`
	Elapsed       string  `json:"elapsed" yaml:"elapsed"`
}

func (r *iirReport) writeTable(tw *tabwriter.Writer) {
	_, _ = fmt.Fprintln(tw, "Quantity\tValue")
	_, _ = fmt.Fprintln(tw, "--------\t-----")
	_, _ = fmt.Fprintf(tw, "samples\t%d\n", r.Samples)
	_, _ = fmt.Fprintf(tw, "duration\t%.3f s\n", r.Duration)
	_, _ = fmt.Fprintf(tw, "filters\t%d\n", r.Filters)
	_, _ = fmt.Fprintf(tw, "delays\t%d..%d\n", r.MinDelay, r.MaxDelay)
	_, _ = fmt.Fprintf(tw, "max |a1|\t%.6f\n", r.MaxPole)
	_, _ = fmt.Fprintf(tw, "peak |h|\t%.4g\n", r.PeakResponse)
	_, _ = fmt.Fprintf(tw, "peak frequency\t%.1f Hz\n", r.PeakFrequency)
	_, _ = fmt.Fprintf(tw, "normalization\t%.6g\n", r.Normalization)
	_, _ = fmt.Fprintf(tw, "elapsed\t%s\n", r.Elapsed)
}

func newIIRCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iir",
		Short: "Synthesize an IIR filter set for a Newtonian chirp",
		Long: `Generate the amplitude and phase of a Newtonian inspiral chirp, split it
into first-order IIR filters, and report the filter set together with its
impulse-response spectrum and its normalization against a flat PSD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := runIIR(a.cfg.IIR, a.log)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.OutputFormat, report)
		},
	}

	f := cmd.Flags()
	f.Float64("sample-rate", 2048, "sample rate in Hz")
	f.Float64("chirp-mass", 1.2, "chirp mass in solar masses")
	f.Float64("f-low", 40, "low frequency cutoff in Hz")
	f.Float64("f-high", 500, "high frequency cutoff in Hz")
	f.Float64("epsilon", 0.02, "phase error tolerance per filter")
	f.Float64("alpha", 0.99, "anchor position inside each step (0..1)")
	f.Float64("beta", 0.25, "decay factor per step")
	f.Float64("padding", 1.1, "envelope padding (negative values are ignored)")
	f.Int("psd-bins", 4096, "number of flat PSD bins for the normalization")
	f.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	return cmd
}

func runIIR(c config.IIRConfig, log *zap.Logger) (*iirReport, error) {
	start := time.Now()

	gen := signal.NewGenerator(core.WithSampleRate(c.SampleRate))
	amp, phase, err := gen.NewtonianChirp(c.ChirpMass, c.FLow, c.FHigh)
	if err != nil {
		return nil, fmt.Errorf("chirp: %w", err)
	}
	log.Info("chirp generated",
		zap.Int("samples", len(amp)),
		zap.Float64("chirp_mass", c.ChirpMass),
		zap.Float64("f_low", c.FLow),
		zap.Float64("f_high", c.FHigh))

	params := iir.Params{
		Epsilon: c.Epsilon,
		Alpha:   c.Alpha,
		Beta:    c.Beta,
		Padding: c.Padding,
	}
	set, err := iir.Synthesize(amp, phase, params, iir.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	report := &iirReport{
		Samples:  len(amp),
		Duration: float64(len(amp)) / c.SampleRate,
		Filters:  set.Len(),
	}
	if set.Len() == 0 {
		report.Elapsed = time.Since(start).String()
		return report, nil
	}
	report.MinDelay = set.Delay[0]
	report.MaxDelay = set.MaxDelay()
	for _, a1 := range set.A1 {
		report.MaxPole = max(report.MaxPole, cmplx.Abs(a1))
	}

	n := nextPow2(len(amp))
	spec, err := set.Spectrum(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}
	peak, value := spectrum.Peak(spectrum.Magnitude(spec))
	report.PeakResponse = value
	report.PeakFrequency = spectrum.BinFrequency(peak, n, c.SampleRate)

	psd := make([]float64, c.PSDBins)
	for i := range psd {
		psd[i] = 1
	}
	report.Normalization, err = iir.InnerProduct(set, psd, iir.WithWorkers(c.Workers))
	if err != nil {
		return nil, fmt.Errorf("inner product: %w", err)
	}

	report.Elapsed = time.Since(start).String()
	log.Info("filter set ready",
		zap.Int("filters", report.Filters),
		zap.Float64("normalization", report.Normalization),
		zap.String("elapsed", report.Elapsed))
	return report, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
