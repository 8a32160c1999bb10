package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestDefaultsValidate(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.InDelta(t, 1.2, cfg.IIR.ChirpMass, 1e-12)
	assert.Equal(t, 4096, cfg.IIR.PSDBins)
	assert.Equal(t, 16, cfg.Fstat.Dterms)
	assert.Equal(t, int64(1), cfg.Fstat.Seed)
	assert.Equal(t, 100000, cfg.LUT.Steps)
}

func TestLoadFromYAML(t *testing.T) {
	v := newViper(t)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
output_format: json
iir:
  epsilon: 0.05
  workers: 4
fstat:
  bins: 50
`)))

	cfg, err := Load(v)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.InDelta(t, 0.05, cfg.IIR.Epsilon, 1e-12)
	assert.Equal(t, 4, cfg.IIR.Workers)
	assert.Equal(t, 50, cfg.Fstat.Bins)
	// Untouched keys keep their defaults.
	assert.InDelta(t, 0.99, cfg.IIR.Alpha, 1e-12)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GWCORE_IIR_CHIRP_MASS", "2.5")

	v := newViper(t)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, cfg.IIR.ChirpMass, 1e-12)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	cfg.OutputFormat = "csv"
	cfg.IIR.Epsilon = 0
	cfg.Fstat.Tsft = 0.75

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_format")
	assert.Contains(t, err.Error(), "iir.epsilon")
	assert.Contains(t, err.Error(), "power of two")
}

func TestValidateRejectsBadBand(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"inverted band", func(c *Config) { c.IIR.FHigh = c.IIR.FLow / 2 }, "iir.f_low"},
		{"above nyquist", func(c *Config) { c.IIR.FHigh = c.IIR.SampleRate }, "Nyquist"},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"negative workers", func(c *Config) { c.Fstat.Workers = -1 }, "fstat.workers"},
		{"lut steps", func(c *Config) { c.LUT.Steps = 0 }, "lut.steps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newViper(t))
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSFTLengthTolerance(t *testing.T) {
	tests := []struct {
		name       string
		tsft, rate float64
		ok         bool
	}{
		{"exact", 1, 512, true},
		{"fractional tsft", 0.7, 256 / 0.7, true},
		{"third of a second", 1.0 / 3, 768, true},
		{"not a power of two", 1, 500, false},
		{"near but not equal", 1, 512.5, false},
		{"too short", 0.5, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newViper(t))
			require.NoError(t, err)
			cfg.Fstat.Tsft, cfg.Fstat.SampleRate = tt.tsft, tt.rate
			err = cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "power of two")
			}
		})
	}
}
