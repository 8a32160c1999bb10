package iir

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-gw/dsp/core"
	"go.uber.org/zap"
)

// Option mutates synthesis and evaluation settings.
type Option func(*config) error

type config struct {
	logger  *zap.Logger
	workers int
}

func defaultConfig() config {
	return config{
		logger:  zap.NewNop(),
		workers: core.DefaultProcessorConfig().Workers,
	}
}

// WithLogger routes diagnostics (currently the unsupported-padding warning)
// to logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return errors.New("iir: logger must not be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithWorkers sets how many goroutines [InnerProduct] spreads frequency bins
// over. Zero selects GOMAXPROCS. [Synthesize] walks the envelope serially
// and ignores it.
func WithWorkers(workers int) Option {
	return func(cfg *config) error {
		if workers < 0 {
			return fmt.Errorf("iir: workers must be >= 0: %d", workers)
		}
		cfg.workers = core.ApplyProcessorOptions(core.WithWorkers(workers)).Workers
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}
