package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gw/dsp/lut"
)

type lutReport struct {
	Resolution  int     `json:"resolution" yaml:"resolution"`
	Steps       int     `json:"steps" yaml:"steps"`
	MaxSinErr   float64 `json:"max_sin_error" yaml:"max_sin_error"`
	MaxCosErr   float64 `json:"max_cos_error" yaml:"max_cos_error"`
	WorstFrac   float64 `json:"worst_frac" yaml:"worst_frac"`
	Bound       float64 `json:"bound" yaml:"bound"`
	WithinBound bool    `json:"within_bound" yaml:"within_bound"`
}

func (r *lutReport) writeTable(tw *tabwriter.Writer) {
	_, _ = fmt.Fprintln(tw, "Quantity\tValue")
	_, _ = fmt.Fprintln(tw, "--------\t-----")
	_, _ = fmt.Fprintf(tw, "resolution\t%d\n", r.Resolution)
	_, _ = fmt.Fprintf(tw, "steps\t%d\n", r.Steps)
	_, _ = fmt.Fprintf(tw, "max sin error\t%.3e\n", r.MaxSinErr)
	_, _ = fmt.Fprintf(tw, "max cos error\t%.3e\n", r.MaxCosErr)
	_, _ = fmt.Fprintf(tw, "worst at\t%.6f\n", r.WorstFrac)
	_, _ = fmt.Fprintf(tw, "bound\t%.3e\n", r.Bound)
	_, _ = fmt.Fprintf(tw, "within bound\t%t\n", r.WithinBound)
}

func newLUTCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lut",
		Short: "Sweep the sin/cos lookup table against math.Sincos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return render(cmd.OutOrStdout(), a.cfg.OutputFormat, sweepLUT(a.cfg.LUT.Steps))
		},
	}
	cmd.Flags().Int("steps", 100000, "number of evenly spaced phases in [0, 1)")
	return cmd
}

func sweepLUT(steps int) *lutReport {
	r := &lutReport{
		Resolution: lut.Resolution,
		Steps:      steps,
		Bound:      lut.MaxError(),
	}
	worst := -1.0
	for i := range steps {
		frac := float64(i) / float64(steps)
		s, c := lut.SinCos(frac)
		ws, wc := math.Sincos(2 * math.Pi * frac)
		es, ec := math.Abs(s-ws), math.Abs(c-wc)
		r.MaxSinErr = max(r.MaxSinErr, es)
		r.MaxCosErr = max(r.MaxCosErr, ec)
		if e := max(es, ec); e > worst {
			worst = e
			r.WorstFrac = frac
		}
	}
	r.WithinBound = max(r.MaxSinErr, r.MaxCosErr) <= r.Bound
	return r
}
