package lloyd

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/dataset"
)

// Result is the terminal state of a clustering run. It owns copies of the
// labels and centroids, so it stays valid after the dataset is reused.
type Result struct {
	k          int
	dim        int
	labels     []int
	centroids  *Centroids
	sizes      []int
	members    []*roaring.Bitmap
	wcss       float64
	iterations int
	converged  bool
}

func newResult(ds *dataset.Dataset, centroids *Centroids, sizes []int, iterations int, converged bool) *Result {
	k := centroids.K()
	labels := ds.Labels()

	members := make([]*roaring.Bitmap, k)
	for j := range members {
		members[j] = roaring.New()
	}
	var wcss float64
	for i, label := range labels {
		members[label].Add(uint32(i))
		wcss += squaredL2(ds.Point(i), centroids.At(label))
	}

	return &Result{
		k:          k,
		dim:        centroids.Dim(),
		labels:     labels,
		centroids:  centroids.Clone(),
		sizes:      slices.Clone(sizes),
		members:    members,
		wcss:       wcss,
		iterations: iterations,
		converged:  converged,
	}
}

// K returns the number of clusters.
func (r *Result) K() int { return r.k }

// Dim returns the centroid dimensionality.
func (r *Result) Dim() int { return r.dim }

// Iterations returns the number of full assignment+aggregation passes
// actually performed.
func (r *Result) Iterations() int { return r.iterations }

// Converged reports whether the run stopped because no point changed cluster.
// False means the iteration cap forced termination.
func (r *Result) Converged() bool { return r.converged }

// Label returns the terminal cluster of point i.
func (r *Result) Label(i int) int { return r.labels[i] }

// Labels returns a copy of all terminal labels.
func (r *Result) Labels() []int { return slices.Clone(r.labels) }

// Centroid returns a copy of the mean vector of cluster j.
func (r *Result) Centroid(j int) []float64 {
	return slices.Clone(r.centroids.At(j))
}

// FlatCentroids returns a copy of all centroids as one flat k*dim slice.
func (r *Result) FlatCentroids() []float64 { return r.centroids.Values() }

// ClusterSize returns the number of points in cluster j.
func (r *Result) ClusterSize(j int) int { return r.sizes[j] }

// ClusterSizes returns a copy of all cluster sizes.
func (r *Result) ClusterSizes() []int { return slices.Clone(r.sizes) }

// Members returns the set of point identifiers in cluster j.
// The returned bitmap is shared; clone it before mutating.
func (r *Result) Members(j int) *roaring.Bitmap { return r.members[j] }

// WCSS returns the within-cluster sum of squared distances of the terminal
// state, the objective Lloyd's algorithm minimizes.
func (r *Result) WCSS() float64 { return r.wcss }

// Predict returns the cluster whose centroid is nearest to vec, with the same
// lowest-index tie-break as the assignment step.
func (r *Result) Predict(vec []float64) (int, error) {
	if len(vec) != r.dim {
		return -1, &dataset.ErrDimensionMismatch{Expected: r.dim, Actual: len(vec)}
	}
	return nearestCentroid(vec, r.centroids), nil
}
