package lloyd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func naiveSquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, 0.0, squaredL2(nil, nil))
	assert.Equal(t, 8.0, squaredL2([]float64{1, 2}, []float64{3, 4}))

	// Exercise both the unrolled body and the remainder loop.
	rng := rand.New(rand.NewSource(6))
	for dim := 1; dim <= 9; dim++ {
		a := make([]float64, dim)
		b := make([]float64, dim)
		for i := range a {
			a[i] = rng.Float64() * 10
			b[i] = rng.Float64() * 10
		}
		assert.InDelta(t, naiveSquaredL2(a, b), squaredL2(a, b), 1e-12, "dim %d", dim)
	}
}

func TestNearestCentroid_TieBreaksToLowestIndex(t *testing.T) {
	centroids := NewCentroids(3, 1)
	centroids.SetFrom(0, []float64{0})
	centroids.SetFrom(1, []float64{4}) // same distance from 2 as centroid 0
	centroids.SetFrom(2, []float64{2}) // exact match

	assert.Equal(t, 2, nearestCentroid([]float64{2}, centroids))

	centroids.SetFrom(2, []float64{100})
	assert.Equal(t, 0, nearestCentroid([]float64{2}, centroids))
}
