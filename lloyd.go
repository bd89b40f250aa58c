package lloyd

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/lloyd/dataset"
)

// KMeans clusters a dataset into k groups by Lloyd's algorithm.
//
// A KMeans is not safe for concurrent use: a run mutates the dataset's labels
// and the engine's accumulation buffers.
type KMeans struct {
	ds   *dataset.Dataset
	k    int
	dim  int
	opts options

	// Aggregation accumulators, reused across iterations.
	sums          []float64
	counts        []int
	partialSums   [][]float64
	partialCounts [][]int

	// Throttles per-iteration progress logging on long runs.
	progress rate.Sometimes
}

// New validates the clustering preconditions and creates an engine.
//
// It returns ErrEmptyDataset, ErrInvalidK, or *ErrTooFewPoints when the
// inputs cannot be clustered; no partial results are ever produced.
func New(ds *dataset.Dataset, k int, optFns ...Option) (*KMeans, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if k > ds.Len() {
		return nil, &ErrTooFewPoints{K: k, N: ds.Len()}
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &KMeans{
		ds:       ds,
		k:        k,
		dim:      ds.Dim(),
		opts:     opts,
		sums:     make([]float64, k*ds.Dim()),
		counts:   make([]int, k),
		progress: rate.Sometimes{First: 3, Interval: time.Second},
	}, nil
}

// Run executes the refinement loop until no point changes cluster or the
// iteration cap is reached, and returns the terminal clustering.
//
// Cancelling ctx aborts the run between parallel phases; convergence and the
// iteration cap remain the only algorithmic stop conditions.
func (km *KMeans) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	logger := km.opts.logger.WithK(km.k).WithDimension(km.dim).WithPoints(km.ds.Len())

	// The seed is consumed here, single-threaded, before any parallel
	// phase: initialization depends on the seed alone, not on worker count.
	rng := rand.New(rand.NewSource(km.opts.seed))

	km.ds.ResetLabels()
	centroids := NewCentroids(km.k, km.dim)
	if err := km.opts.initializer.Init(rng, km.ds, centroids); err != nil {
		km.opts.metrics.RecordRun(0, false, time.Since(start), err)
		logger.LogRun(ctx, 0, false, time.Since(start), err)
		return nil, err
	}

	var (
		iterations int
		converged  bool
		sizes      []int
	)
	for iterations < km.opts.maxIterations {
		if err := ctx.Err(); err != nil {
			km.opts.metrics.RecordRun(iterations, false, time.Since(start), err)
			logger.LogRun(ctx, iterations, false, time.Since(start), err)
			return nil, err
		}
		iterations++
		iterStart := time.Now()

		changed, err := km.assign(ctx, centroids)
		if err != nil {
			km.opts.metrics.RecordRun(iterations, false, time.Since(start), err)
			logger.LogRun(ctx, iterations, false, time.Since(start), err)
			return nil, err
		}

		var empty int
		sizes, empty, err = km.aggregate(ctx, centroids)
		if err != nil {
			km.opts.metrics.RecordRun(iterations, false, time.Since(start), err)
			logger.LogRun(ctx, iterations, false, time.Since(start), err)
			return nil, err
		}

		km.opts.metrics.RecordIteration(iterations, changed, time.Since(iterStart))
		km.progress.Do(func() {
			logger.LogIteration(ctx, iterations, changed, empty)
		})

		if !changed {
			converged = true
			break
		}
	}

	result := newResult(km.ds, centroids, sizes, iterations, converged)
	km.opts.metrics.RecordRun(iterations, converged, time.Since(start), nil)
	logger.LogRun(ctx, iterations, converged, time.Since(start), nil)
	return result, nil
}
