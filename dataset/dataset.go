package dataset

import (
	"fmt"
)

// Unassigned is the label of a point that has not been assigned to a cluster.
const Unassigned = -1

// ErrDimensionMismatch indicates a vector dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// Dataset is a fixed-dimension point store.
//
// Values are stored row-major in a single flat slice so that point i occupies
// values[i*dim : (i+1)*dim]. The point index doubles as its stable identifier.
//
// A Dataset is not safe for concurrent Append calls. During clustering the
// engine partitions label writes across disjoint point ranges, so labels need
// no locking either.
type Dataset struct {
	dim    int
	values []float64
	labels []int
	names  []string
}

// New creates an empty Dataset for points of the given dimension.
func New(dim int) (*Dataset, error) {
	if dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}
	return &Dataset{dim: dim}, nil
}

// Append adds a point. The vector is copied; name may be empty.
func (d *Dataset) Append(vec []float64, name string) error {
	if len(vec) != d.dim {
		return &ErrDimensionMismatch{Expected: d.dim, Actual: len(vec)}
	}
	d.values = append(d.values, vec...)
	d.labels = append(d.labels, Unassigned)
	d.names = append(d.names, name)
	return nil
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.labels) }

// Dim returns the dimensionality shared by all points.
func (d *Dataset) Dim() int { return d.dim }

// Point returns the feature vector of point i.
// The returned slice aliases the store and must not be modified.
func (d *Dataset) Point(i int) []float64 {
	return d.values[i*d.dim : (i+1)*d.dim]
}

// Name returns the optional display name of point i ("" when unnamed).
func (d *Dataset) Name(i int) string { return d.names[i] }

// Label returns the cluster label of point i, or Unassigned.
func (d *Dataset) Label(i int) int { return d.labels[i] }

// SetLabel assigns point i to a cluster.
func (d *Dataset) SetLabel(i, label int) { d.labels[i] = label }

// Labels returns a copy of all current labels.
func (d *Dataset) Labels() []int {
	out := make([]int, len(d.labels))
	copy(out, d.labels)
	return out
}

// ResetLabels marks every point as Unassigned.
func (d *Dataset) ResetLabels() {
	for i := range d.labels {
		d.labels[i] = Unassigned
	}
}
