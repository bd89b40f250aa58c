package lloyd

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// aggregate recomputes every centroid as the mean of the points currently
// labeled with it, and returns the new cluster sizes plus the number of
// clusters that emptied this pass.
//
// A centroid whose cluster is empty keeps its previous value unchanged, so
// the loop never divides by zero and never invents a centroid.
func (km *KMeans) aggregate(ctx context.Context, centroids *Centroids) ([]int, int, error) {
	if km.opts.numWorkers <= 1 {
		km.accumulateSerial()
	} else if err := km.accumulateParallel(ctx); err != nil {
		return nil, 0, err
	}
	empty := km.divide(ctx, centroids)
	return km.counts, empty, nil
}

// accumulateSerial sums all points into km.sums / km.counts in one pass.
func (km *KMeans) accumulateSerial() {
	km.resetAccumulators()
	dim := km.dim
	for i := 0; i < km.ds.Len(); i++ {
		label := km.ds.Label(i)
		floats.Add(km.sums[label*dim:(label+1)*dim], km.ds.Point(i))
		km.counts[label]++
	}
}

// accumulateParallel gives each worker a private [k*dim] sum slice and [k]
// count slice over its span, then folds the partials into km.sums/km.counts
// after all workers have finished. Workers never touch shared state, and the
// fold runs only after the errgroup barrier, so no locks are needed.
func (km *KMeans) accumulateParallel(ctx context.Context) error {
	spans := chunkSpans(km.ds.Len(), km.opts.chunkSize, km.opts.numWorkers)
	km.ensurePartials(len(spans))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(km.opts.numWorkers)
	for w, s := range spans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sums := km.partialSums[w]
			counts := km.partialCounts[w]
			clear(sums)
			clear(counts)

			dim := km.dim
			for i := s.start; i < s.end; i++ {
				label := km.ds.Label(i)
				floats.Add(sums[label*dim:(label+1)*dim], km.ds.Point(i))
				counts[label]++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	km.resetAccumulators()
	for w := range spans {
		floats.Add(km.sums, km.partialSums[w])
		for j, c := range km.partialCounts[w] {
			km.counts[j] += c
		}
	}
	return nil
}

// divide overwrites each non-empty centroid with its cluster mean and returns
// the number of empty clusters. It is the only step that writes the shared
// centroid store, and it runs single-threaded after the accumulation barrier.
func (km *KMeans) divide(ctx context.Context, centroids *Centroids) int {
	empty := 0
	dim := km.dim
	for j := 0; j < km.k; j++ {
		if km.counts[j] == 0 {
			empty++
			km.opts.metrics.RecordEmptyCluster(j)
			km.opts.logger.LogEmptyCluster(ctx, j)
			continue
		}
		row := centroids.At(j)
		copy(row, km.sums[j*dim:(j+1)*dim])
		floats.Scale(1/float64(km.counts[j]), row)
	}
	return empty
}

func (km *KMeans) resetAccumulators() {
	clear(km.sums)
	clear(km.counts)
}

func (km *KMeans) ensurePartials(n int) {
	for len(km.partialSums) < n {
		km.partialSums = append(km.partialSums, make([]float64, km.k*km.dim))
		km.partialCounts = append(km.partialCounts, make([]int, km.k))
	}
}
