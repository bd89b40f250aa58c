// Package snapshot persists clustering models to a blob store.
//
// Files are self-describing: a small header records the codec and compression
// used to write the payload, so Load never guesses at the format.
package snapshot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/lloyd/codec"
)

// Model is the persisted form of a clustering result.
type Model struct {
	K          int       `json:"k"`
	Dim        int       `json:"dim"`
	Centroids  []float64 `json:"centroids"` // flattened, k*dim
	Labels     []int     `json:"labels"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
}

// Compression names a payload compression scheme.
type Compression string

const (
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
	CompressionNone Compression = "none"
)

var magic = [4]byte{'L', 'L', 'Y', 'D'}

const formatVersion = 1

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer func() { _ = enc.Close() }()
		return enc.EncodeAll(data, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionNone:
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %q", c)
	}
}

func decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	case CompressionNone:
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %q", c)
	}
}

// encode assembles header + compressed payload.
func encode(m *Model, c codec.Codec, comp Compression) ([]byte, error) {
	payload, err := c.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	payload, err = compress(payload, comp)
	if err != nil {
		return nil, err
	}

	codecName := c.Name()
	compName := string(comp)
	if len(codecName) > 255 || len(compName) > 255 {
		return nil, fmt.Errorf("header name too long")
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(formatVersion)
	buf.WriteByte(byte(len(codecName)))
	buf.WriteString(codecName)
	buf.WriteByte(byte(len(compName)))
	buf.WriteString(compName)
	buf.Write(payload)
	return buf.Bytes(), nil
}

// decode parses header + payload written by encode.
func decode(data []byte) (*Model, error) {
	if len(data) < len(magic)+1 || !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("not a model snapshot: bad magic")
	}
	if v := data[4]; v != formatVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", v)
	}
	rest := data[5:]

	readName := func() (string, error) {
		if len(rest) < 1 {
			return "", io.ErrUnexpectedEOF
		}
		n := int(rest[0])
		if len(rest) < 1+n {
			return "", io.ErrUnexpectedEOF
		}
		name := string(rest[1 : 1+n])
		rest = rest[1+n:]
		return name, nil
	}

	codecName, err := readName()
	if err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	compName, err := readName()
	if err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("unknown snapshot codec: %q", codecName)
	}

	payload, err := decompress(rest, Compression(compName))
	if err != nil {
		return nil, err
	}

	var m Model
	if err := c.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if m.Dim > 0 && len(m.Centroids) != m.K*m.Dim {
		return nil, fmt.Errorf("corrupt model: %d centroid values for k=%d dim=%d", len(m.Centroids), m.K, m.Dim)
	}
	return &m, nil
}
