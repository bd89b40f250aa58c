package snapshot

import (
	"context"
	"io"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
)

type options struct {
	codec       codec.Codec
	compression Compression
}

// Option configures how snapshots are written.
type Option func(*options)

// WithCodec sets the payload codec. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the payload compression scheme.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// FromResult converts a clustering result into its persisted form.
func FromResult(r *lloyd.Result) *Model {
	return &Model{
		K:          r.K(),
		Dim:        r.Dim(),
		Centroids:  r.FlatCentroids(),
		Labels:     r.Labels(),
		Iterations: r.Iterations(),
		Converged:  r.Converged(),
	}
}

// Save writes a model under name in the given blob store.
func Save(ctx context.Context, store blobstore.BlobStore, name string, m *Model, optFns ...Option) error {
	opts := options{
		codec:       codec.Default,
		compression: CompressionZstd,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	data, err := encode(m, opts.codec, opts.compression)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// Load reads a model previously written by Save.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Model, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return decode(data)
}
