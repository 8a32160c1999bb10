// Command gwcore runs the inspiral filter-bank and F-statistic kernels on
// synthetic data and reports what they produce.
//
// Usage:
//
//	gwcore [--config file] [--log-level level] [--output table|json|yaml] <command> [flags]
//
// Commands:
//
//	iir    synthesize an IIR filter set for a Newtonian chirp
//	fstat  search a noisy tone with the demodulated F-statistic
//	lut    sweep the sin/cos lookup table against math.Sincos
//
// Every flag can also be set in a YAML config file or through GWCORE_*
// environment variables, e.g. GWCORE_IIR_CHIRP_MASS=1.4.
//
// Examples:
//
//	gwcore iir --chirp-mass 1.4 --f-low 30
//	gwcore fstat --segments 32 --top 3 -o json
//	gwcore lut --steps 1000000
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
