package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/lloyd/blobstore"
)

// Header carries the run parameters read from an input stream.
type Header struct {
	Points        int
	Dim           int
	K             int
	MaxIterations int
	HasNames      bool
}

// ReadFrom parses the whitespace-separated input stream
//
//	<points> <dim> <k> <max_iterations> <has_name: 0|1>
//	<feature_1> ... <feature_dim> [<name>]   (repeated <points> times)
//
// and returns the populated Dataset together with the header values.
func ReadFrom(r io.Reader) (*Dataset, Header, error) {
	br := bufio.NewReader(r)

	var h Header
	var hasName int
	if _, err := fmt.Fscan(br, &h.Points, &h.Dim, &h.K, &h.MaxIterations, &hasName); err != nil {
		return nil, Header{}, fmt.Errorf("read header: %w", err)
	}
	if h.Points < 0 {
		return nil, Header{}, fmt.Errorf("invalid point count: %d", h.Points)
	}
	h.HasNames = hasName != 0

	ds, err := New(h.Dim)
	if err != nil {
		return nil, Header{}, err
	}

	vec := make([]float64, h.Dim)
	for i := 0; i < h.Points; i++ {
		for j := range vec {
			if _, err := fmt.Fscan(br, &vec[j]); err != nil {
				return nil, Header{}, fmt.Errorf("read point %d, feature %d: %w", i, j, err)
			}
		}
		name := ""
		if h.HasNames {
			if _, err := fmt.Fscan(br, &name); err != nil {
				return nil, Header{}, fmt.Errorf("read point %d, name: %w", i, err)
			}
		}
		if err := ds.Append(vec, name); err != nil {
			return nil, Header{}, err
		}
	}

	return ds, h, nil
}

// Load reads a dataset stream stored under name in a blob store.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Dataset, Header, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, Header{}, err
	}
	defer func() { _ = rc.Close() }()

	return ReadFrom(rc)
}
