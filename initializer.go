package lloyd

import (
	"fmt"
	"math/rand"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/lloyd/dataset"
)

// Initializer seeds the centroid store from the dataset before the
// refinement loop starts.
//
// Init must label each chosen seed point with its centroid index and copy the
// point's feature vector into the matching centroid slot. It always runs
// single-threaded, before any parallel phase, and must draw randomness only
// from rng so that initialization is reproducible for a given seed.
type Initializer interface {
	Init(rng *rand.Rand, ds *dataset.Dataset, centroids *Centroids) error
}

// RandomInitializer selects k distinct points uniformly at random
// (sampling without replacement).
type RandomInitializer struct{}

// Init seeds the centroids by rejection sampling over point indices.
func (RandomInitializer) Init(rng *rand.Rand, ds *dataset.Dataset, centroids *Centroids) error {
	n := ds.Len()
	k := centroids.K()
	if k > n {
		return &ErrTooFewPoints{K: k, N: n}
	}

	chosen := bitset.New(uint(n))
	next := 0
	for next < k {
		idx := rng.Intn(n)
		if chosen.Test(uint(idx)) {
			continue
		}
		chosen.Set(uint(idx))
		ds.SetLabel(idx, next)
		centroids.SetFrom(next, ds.Point(idx))
		next++
	}
	return nil
}

// PlusPlusInitializer seeds centroids with k-means++: the first seed is
// uniform, each further seed is drawn with probability proportional to its
// squared distance to the nearest seed chosen so far. More stable than
// uniform seeding on unevenly spread data.
type PlusPlusInitializer struct{}

// Init seeds the centroids with the k-means++ scheme.
func (PlusPlusInitializer) Init(rng *rand.Rand, ds *dataset.Dataset, centroids *Centroids) error {
	n := ds.Len()
	k := centroids.K()
	if k > n {
		return &ErrTooFewPoints{K: k, N: n}
	}

	chosen := bitset.New(uint(n))
	pick := func(idx, slot int) {
		chosen.Set(uint(idx))
		ds.SetLabel(idx, slot)
		centroids.SetFrom(slot, ds.Point(idx))
	}

	first := rng.Intn(n)
	pick(first, 0)

	// Squared distance of each point to its nearest chosen seed.
	d2 := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		d2[i] = squaredL2(ds.Point(i), ds.Point(first))
		total += d2[i]
	}

	for slot := 1; slot < k; slot++ {
		idx := -1
		if total > 0 {
			target := rng.Float64() * total
			var cum float64
			for i := 0; i < n; i++ {
				cum += d2[i]
				if cum >= target && !chosen.Test(uint(i)) {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			// All remaining mass sits on chosen points (duplicates);
			// fall back to the first unchosen index.
			for i := 0; i < n; i++ {
				if !chosen.Test(uint(i)) {
					idx = i
					break
				}
			}
		}
		pick(idx, slot)

		var newTotal float64
		seed := ds.Point(idx)
		for i := 0; i < n; i++ {
			if d := squaredL2(ds.Point(i), seed); d < d2[i] {
				d2[i] = d
			}
			newTotal += d2[i]
		}
		total = newTotal
	}
	return nil
}

// IndexInitializer seeds centroids from explicit point indices. Useful for
// reproducing a run exactly or for callers that precompute their own seeds.
type IndexInitializer struct {
	Indices []int
}

// NewIndexInitializer creates an IndexInitializer from the given indices.
func NewIndexInitializer(indices ...int) *IndexInitializer {
	return &IndexInitializer{Indices: indices}
}

// Init seeds centroid j from point Indices[j].
func (ii *IndexInitializer) Init(_ *rand.Rand, ds *dataset.Dataset, centroids *Centroids) error {
	n := ds.Len()
	k := centroids.K()
	if len(ii.Indices) != k {
		return fmt.Errorf("index initializer: got %d indices, want %d", len(ii.Indices), k)
	}

	seen := bitset.New(uint(n))
	for slot, idx := range ii.Indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("index initializer: index %d out of range [0,%d)", idx, n)
		}
		if seen.Test(uint(idx)) {
			return fmt.Errorf("index initializer: duplicate index %d", idx)
		}
		seen.Set(uint(idx))
		ds.SetLabel(idx, slot)
		centroids.SetFrom(slot, ds.Point(idx))
	}
	return nil
}
