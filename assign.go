package lloyd

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// assign runs one assignment pass: every point's label becomes the index of
// its nearest centroid. It returns whether any label changed.
//
// The centroid store is read-only during this step, and each point's label is
// written by exactly one worker, so the parallel variant needs no locks.
func (km *KMeans) assign(ctx context.Context, centroids *Centroids) (bool, error) {
	if km.opts.numWorkers <= 1 {
		return km.assignSpan(span{start: 0, end: km.ds.Len()}, centroids), nil
	}
	return km.assignParallel(ctx, centroids)
}

// assignSpan assigns the points in s and reports whether any label changed.
func (km *KMeans) assignSpan(s span, centroids *Centroids) bool {
	changed := false
	for i := s.start; i < s.end; i++ {
		best := nearestCentroid(km.ds.Point(i), centroids)
		if km.ds.Label(i) != best {
			km.ds.SetLabel(i, best)
			changed = true
		}
	}
	return changed
}

func (km *KMeans) assignParallel(ctx context.Context, centroids *Centroids) (bool, error) {
	spans := chunkSpans(km.ds.Len(), km.opts.chunkSize, km.opts.numWorkers)

	// One private changed flag per span; merged only after Wait, which is
	// the barrier between the assignment and aggregation phases.
	changedFlags := make([]bool, len(spans))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(km.opts.numWorkers)
	for w, s := range spans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			changedFlags[w] = km.assignSpan(s, centroids)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	for _, changed := range changedFlags {
		if changed {
			return true, nil
		}
	}
	return false, nil
}
