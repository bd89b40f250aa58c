package lloyd

import "slices"

// Centroids holds k mean vectors, one per cluster, in a single flat
// dimension-strided slice. The store is fully overwritten by each aggregation
// step; during the parallel phase workers only read it, and exactly one
// logical step per iteration writes it.
type Centroids struct {
	k      int
	dim    int
	values []float64
}

// NewCentroids creates a zeroed centroid store for k clusters of the given
// dimension.
func NewCentroids(k, dim int) *Centroids {
	return &Centroids{
		k:      k,
		dim:    dim,
		values: make([]float64, k*dim),
	}
}

// K returns the number of centroids.
func (c *Centroids) K() int { return c.k }

// Dim returns the centroid dimensionality.
func (c *Centroids) Dim() int { return c.dim }

// At returns the mean vector of centroid j.
// The returned slice aliases the store.
func (c *Centroids) At(j int) []float64 {
	return c.values[j*c.dim : (j+1)*c.dim]
}

// SetFrom copies vec into centroid slot j.
func (c *Centroids) SetFrom(j int, vec []float64) {
	copy(c.At(j), vec)
}

// Values returns a copy of the flat k*dim value slice.
func (c *Centroids) Values() []float64 {
	return slices.Clone(c.values)
}

// Clone returns an independent copy of the store.
func (c *Centroids) Clone() *Centroids {
	return &Centroids{
		k:      c.k,
		dim:    c.dim,
		values: slices.Clone(c.values),
	}
}
