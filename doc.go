// Package lloyd partitions fixed-dimension points into k clusters by
// iterative refinement (Lloyd's algorithm / k-means), minimizing the
// within-cluster sum of squared distances.
//
// The engine alternates a nearest-centroid assignment step and a mean
// re-aggregation step until no point changes cluster or an iteration cap is
// reached. Both steps have a sequential realization and a data-parallel one
// that partitions points into contiguous chunks, accumulates per-worker
// partial sums, and folds them after all workers finish. Given the same seed,
// both realizations converge to the same clustering.
//
// Basic usage:
//
//	ds, _ := dataset.New(2)
//	_ = ds.Append([]float64{1, 2}, "")
//	// ... more points ...
//
//	km, err := lloyd.New(ds, 2, lloyd.WithSeed(10), lloyd.WithMaxIterations(100))
//	if err != nil {
//		// k > number of points, invalid k, ...
//	}
//	result, err := km.Run(ctx)
package lloyd
