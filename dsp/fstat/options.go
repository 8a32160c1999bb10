package fstat

import (
	"fmt"

	"github.com/cwbudde/algo-gw/dsp/core"
)

// Option mutates demodulation settings.
type Option func(*config) error

type config struct {
	workers int
}

// WithWorkers sets how many goroutines share the trial frequencies. Zero
// selects GOMAXPROCS.
func WithWorkers(workers int) Option {
	return func(cfg *config) error {
		if workers < 0 {
			return fmt.Errorf("fstat: workers must be >= 0: %d", workers)
		}
		cfg.workers = core.ApplyProcessorOptions(core.WithWorkers(workers)).Workers
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := config{workers: core.DefaultProcessorConfig().Workers}
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
