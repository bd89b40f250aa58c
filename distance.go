package lloyd

// squaredL2 returns the squared Euclidean distance between a and b.
// No sqrt: squaring is monotonic for non-negative distances, so ordering is
// preserved and the nearest-centroid comparison stays exact.
// Assumes len(a) == len(b) (caller's responsibility).
func squaredL2(a, b []float64) float64 {
	var sum float64
	i := 0
	for ; i+3 < len(a); i += 4 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		sum += d0*d0 + d1*d1 + d2*d2 + d3*d3
	}
	for ; i < len(a); i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// nearestCentroid returns the index of the centroid closest to vec.
// Ties resolve to the lowest centroid index: the scan is strictly
// left-to-right and only a strictly smaller distance replaces the best.
func nearestCentroid(vec []float64, centroids *Centroids) int {
	best := 0
	minDist := squaredL2(vec, centroids.At(0))
	for j := 1; j < centroids.K(); j++ {
		if d := squaredL2(vec, centroids.At(j)); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}
