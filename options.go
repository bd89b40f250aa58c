package lloyd

import (
	"runtime"
)

const (
	// DefaultMaxIterations caps the refinement loop when no cap is configured.
	DefaultMaxIterations = 100

	// DefaultSeed is the seed used when none is configured. Runs are
	// deterministic for a given seed regardless of worker count.
	DefaultSeed = 1
)

type options struct {
	seed          int64
	maxIterations int
	numWorkers    int
	chunkSize     int
	initializer   Initializer
	logger        *Logger
	metrics       MetricsCollector
}

func defaultOptions() options {
	return options{
		seed:          DefaultSeed,
		maxIterations: DefaultMaxIterations,
		numWorkers:    runtime.GOMAXPROCS(0),
		initializer:   RandomInitializer{},
		logger:        NoopLogger(),
		metrics:       NoopMetricsCollector{},
	}
}

// Option configures engine behavior.
type Option func(*options)

// WithSeed sets the seed of the pseudo-random source consumed by the
// initializer. The seed is drawn before any parallel phase starts, so the
// initial centroids depend solely on it.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithMaxIterations sets the iteration cap. Values < 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxIterations = n
		}
	}
}

// WithWorkers sets the number of workers for the data-parallel assignment and
// aggregation steps. 1 selects the sequential reference realization.
// Values < 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.numWorkers = n
	}
}

// WithChunkSize sets the number of points per parallel work chunk.
// If unset, points are split evenly across workers.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithInitializer sets the centroid seeding strategy.
// If nil is passed, RandomInitializer is used.
func WithInitializer(init Initializer) Option {
	return func(o *options) {
		if init == nil {
			init = RandomInitializer{}
		}
		o.initializer = init
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed, metrics
// collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}
