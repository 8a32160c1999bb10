package core

import "runtime"

// ProcessorConfig defines common processing settings shared by generators
// and the bin-parallel loops.
type ProcessorConfig struct {
	SampleRate float64
	Workers    int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults suited to offline batch use:
// a 2048 Hz sample rate and single-threaded loops.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 2048,
		Workers:    1,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithWorkers sets the number of goroutines used by bin-parallel loops.
// Zero selects runtime.GOMAXPROCS(0); negative values are ignored.
func WithWorkers(workers int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		switch {
		case workers == 0:
			cfg.Workers = runtime.GOMAXPROCS(0)
		case workers > 0:
			cfg.Workers = workers
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
