package lloyd

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyDataset is returned when there are no points to cluster.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// ErrTooFewPoints indicates that more clusters were requested than points
// exist. The engine refuses to run rather than returning partial clusters.
type ErrTooFewPoints struct {
	K int
	N int
}

func (e *ErrTooFewPoints) Error() string {
	return fmt.Sprintf("not clusterable: k (%d) exceeds point count (%d)", e.K, e.N)
}
