// Package config holds the gwcore command-line configuration, loaded
// through viper from defaults, an optional YAML file, GWCORE_* environment
// variables and flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-gw/dsp/core"
)

// EnvPrefix is the prefix of environment variables read by [Load].
const EnvPrefix = "GWCORE"

// OutputFormats lists the accepted values of output_format.
var OutputFormats = []string{"table", "json", "yaml"}

// LogLevels lists the accepted values of log_level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config represents the application configuration
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	IIR   IIRConfig   `mapstructure:"iir"`
	Fstat FstatConfig `mapstructure:"fstat"`
	LUT   LUTConfig   `mapstructure:"lut"`
}

// IIRConfig drives the inspiral filter-bank run.
type IIRConfig struct {
	SampleRate float64 `mapstructure:"sample_rate"`
	ChirpMass  float64 `mapstructure:"chirp_mass"`
	FLow       float64 `mapstructure:"f_low"`
	FHigh      float64 `mapstructure:"f_high"`
	Epsilon    float64 `mapstructure:"epsilon"`
	Alpha      float64 `mapstructure:"alpha"`
	Beta       float64 `mapstructure:"beta"`
	Padding    float64 `mapstructure:"padding"`
	PSDBins    int     `mapstructure:"psd_bins"`
	Workers    int     `mapstructure:"workers"`
}

// FstatConfig drives the synthetic F-statistic run.
type FstatConfig struct {
	Segments   int     `mapstructure:"segments"`
	Tsft       float64 `mapstructure:"tsft"`
	SampleRate float64 `mapstructure:"sample_rate"`
	SignalFreq float64 `mapstructure:"signal_freq"`
	F0         float64 `mapstructure:"f0"`
	DF         float64 `mapstructure:"df"`
	Bins       int     `mapstructure:"bins"`
	Dterms     int     `mapstructure:"dterms"`
	Workers    int     `mapstructure:"workers"`
	Seed       int64   `mapstructure:"seed"`
	NoiseSigma float64 `mapstructure:"noise_sigma"`
	Top        int     `mapstructure:"top"`
}

// LUTConfig drives the lookup-table accuracy sweep.
type LUTConfig struct {
	Steps int `mapstructure:"steps"`
}

// SetDefaults registers default values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "table")

	v.SetDefault("iir.sample_rate", 2048.0)
	v.SetDefault("iir.chirp_mass", 1.2)
	v.SetDefault("iir.f_low", 40.0)
	v.SetDefault("iir.f_high", 500.0)
	v.SetDefault("iir.epsilon", 0.02)
	v.SetDefault("iir.alpha", 0.99)
	v.SetDefault("iir.beta", 0.25)
	v.SetDefault("iir.padding", 1.1)
	v.SetDefault("iir.psd_bins", 4096)
	v.SetDefault("iir.workers", 0)

	v.SetDefault("fstat.segments", 16)
	v.SetDefault("fstat.tsft", 1.0)
	v.SetDefault("fstat.sample_rate", 512.0)
	v.SetDefault("fstat.signal_freq", 100.3)
	v.SetDefault("fstat.f0", 95.0)
	v.SetDefault("fstat.df", 0.05)
	v.SetDefault("fstat.bins", 200)
	v.SetDefault("fstat.dterms", 16)
	v.SetDefault("fstat.workers", 0)
	v.SetDefault("fstat.seed", 1)
	v.SetDefault("fstat.noise_sigma", 1.0)
	v.SetDefault("fstat.top", 5)

	v.SetDefault("lut.steps", 100000)
}

// Load decodes the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the whole configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(LogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of %v: %q", LogLevels, c.LogLevel))
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		errs = append(errs, fmt.Errorf("output_format must be one of %v: %q", OutputFormats, c.OutputFormat))
	}
	errs = append(errs, c.IIR.validate()...)
	errs = append(errs, c.Fstat.validate()...)
	if c.LUT.Steps <= 0 {
		errs = append(errs, fmt.Errorf("lut.steps must be positive"))
	}
	return errors.Join(errs...)
}

func (c IIRConfig) validate() []error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("iir.sample_rate must be positive"))
	}
	if c.ChirpMass <= 0 {
		errs = append(errs, fmt.Errorf("iir.chirp_mass must be positive"))
	}
	if c.FLow <= 0 || c.FHigh <= c.FLow {
		errs = append(errs, fmt.Errorf("iir.f_low must be positive and below iir.f_high"))
	}
	if c.FHigh > c.SampleRate/2 {
		errs = append(errs, fmt.Errorf("iir.f_high must not exceed the Nyquist frequency"))
	}
	if c.Epsilon <= 0 {
		errs = append(errs, fmt.Errorf("iir.epsilon must be positive"))
	}
	if c.PSDBins <= 0 {
		errs = append(errs, fmt.Errorf("iir.psd_bins must be positive"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("iir.workers cannot be negative"))
	}
	return errs
}

func (c FstatConfig) validate() []error {
	var errs []error
	if c.Segments <= 0 {
		errs = append(errs, fmt.Errorf("fstat.segments must be positive"))
	}
	if c.Tsft <= 0 || c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("fstat.tsft and fstat.sample_rate must be positive"))
	}
	if !sftLengthOK(c.Tsft * c.SampleRate) {
		errs = append(errs, fmt.Errorf("fstat.tsft*fstat.sample_rate must be a power of two: %g", c.Tsft*c.SampleRate))
	}
	if c.Bins <= 0 || c.DF <= 0 {
		errs = append(errs, fmt.Errorf("fstat.bins and fstat.df must be positive"))
	}
	if c.Dterms <= 0 {
		errs = append(errs, fmt.Errorf("fstat.dterms must be positive"))
	}
	if c.NoiseSigma < 0 {
		errs = append(errs, fmt.Errorf("fstat.noise_sigma cannot be negative"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("fstat.workers cannot be negative"))
	}
	if c.Top <= 0 {
		errs = append(errs, fmt.Errorf("fstat.top must be positive"))
	}
	return errs
}

// sftLengthOK reports whether n is, up to rounding, a power of two of at
// least 2.
func sftLengthOK(n float64) bool {
	r := math.Round(n)
	if r < 2 || r > math.MaxInt32 || !core.NearlyEqual(n, r, 1e-9) {
		return false
	}
	m := int(r)
	return m&(m-1) == 0
}
