package lloyd

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_RunLogging(t *testing.T) {
	ctx := context.Background()
	ds := mustDataset(t, fivePoints)

	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	km, err := New(ds, 2,
		WithInitializer(NewIndexInitializer(0, 4)),
		WithWorkers(1),
		WithLogger(logger),
	)
	require.NoError(t, err)

	_, err = km.Run(ctx)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "clustering completed")
	assert.Contains(t, out, "iteration completed")
	assert.Contains(t, out, "k=2")
	assert.Contains(t, out, "points=5")
}

func TestNewLogger_NilHandler(t *testing.T) {
	logger := NewLogger(nil)
	require.NotNil(t, logger)
	require.NotNil(t, logger.Logger)
}
