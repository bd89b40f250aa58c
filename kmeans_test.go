package lloyd

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/dataset"
)

func mustDataset(t *testing.T, vecs [][]float64) *dataset.Dataset {
	t.Helper()

	require.NotEmpty(t, vecs)
	ds, err := dataset.New(len(vecs[0]))
	require.NoError(t, err)
	for _, v := range vecs {
		require.NoError(t, ds.Append(v, ""))
	}
	return ds
}

// blobs generates three well-separated groups of points, shuffled, so that
// serial and parallel runs agree on the final clustering.
func blobs(t *testing.T, perBlob int, seed int64) *dataset.Dataset {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	centers := [][]float64{{0, 0}, {10, 10}, {0, 10}}

	var vecs [][]float64
	for _, c := range centers {
		for i := 0; i < perBlob; i++ {
			vecs = append(vecs, []float64{
				c[0] + rng.Float64() - 0.5,
				c[1] + rng.Float64() - 0.5,
			})
		}
	}
	rng.Shuffle(len(vecs), func(i, j int) {
		vecs[i], vecs[j] = vecs[j], vecs[i]
	})
	return mustDataset(t, vecs)
}

var fivePoints = [][]float64{
	{1, 2}, {3, 4}, {5, 6}, {7, 8}, {9, 10},
}

func TestRun_FivePointsTwoClusters(t *testing.T) {
	ctx := context.Background()
	ds := mustDataset(t, fivePoints)

	km, err := New(ds, 2,
		WithInitializer(NewIndexInitializer(0, 4)),
		WithMaxIterations(100),
		WithWorkers(1),
	)
	require.NoError(t, err)

	result, err := km.Run(ctx)
	require.NoError(t, err)

	assert.True(t, result.Converged())
	assert.LessOrEqual(t, result.Iterations(), 3)

	sizes := result.ClusterSizes()
	assert.ElementsMatch(t, []int{2, 3}, sizes)

	// Seeded from points 0 and 4: the midpoint (5,6) ties and goes to the
	// lower index, so cluster 0 holds points 0..2 and cluster 1 points 3..4.
	assert.Equal(t, []int{0, 0, 0, 1, 1}, result.Labels())
	assert.InDeltaSlice(t, []float64{3, 4}, result.Centroid(0), 1e-12)
	assert.InDeltaSlice(t, []float64{8, 9}, result.Centroid(1), 1e-12)
}

func TestRun_KEqualsN(t *testing.T) {
	ctx := context.Background()
	ds := mustDataset(t, fivePoints)

	km, err := New(ds, 5, WithSeed(42), WithWorkers(1))
	require.NoError(t, err)

	result, err := km.Run(ctx)
	require.NoError(t, err)

	assert.True(t, result.Converged())
	assert.Equal(t, 1, result.Iterations())

	for i := 0; i < ds.Len(); i++ {
		assert.Equal(t, 1, result.ClusterSize(result.Label(i)))
		assert.Equal(t, ds.Point(i), result.Centroid(result.Label(i)))
	}
}

func TestNew_KGreaterThanN(t *testing.T) {
	ds := mustDataset(t, fivePoints)

	_, err := New(ds, 6)
	var tooFew *ErrTooFewPoints
	require.ErrorAs(t, err, &tooFew)
	assert.Equal(t, 6, tooFew.K)
	assert.Equal(t, 5, tooFew.N)
}

func TestNew_InvalidK(t *testing.T) {
	ds := mustDataset(t, fivePoints)

	_, err := New(ds, 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = New(ds, -3)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestNew_EmptyDataset(t *testing.T) {
	_, err := New(nil, 2)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	ds, err := dataset.New(2)
	require.NoError(t, err)
	_, err = New(ds, 2)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestRun_SerialParallelDeterminism(t *testing.T) {
	ctx := context.Background()
	const seed = 7

	serialDS := blobs(t, 60, 99)
	serialKM, err := New(serialDS, 3, WithSeed(seed), WithWorkers(1))
	require.NoError(t, err)
	serial, err := serialKM.Run(ctx)
	require.NoError(t, err)

	parallelDS := blobs(t, 60, 99)
	parallelKM, err := New(parallelDS, 3, WithSeed(seed), WithWorkers(4), WithChunkSize(17))
	require.NoError(t, err)
	parallel, err := parallelKM.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, serial.Labels(), parallel.Labels())
	assert.InDeltaSlice(t, serial.FlatCentroids(), parallel.FlatCentroids(), 1e-9)
	assert.Equal(t, serial.ClusterSizes(), parallel.ClusterSizes())
}

func TestRun_Invariants(t *testing.T) {
	ctx := context.Background()
	ds := blobs(t, 40, 3)

	km, err := New(ds, 4, WithSeed(5), WithWorkers(3))
	require.NoError(t, err)
	result, err := km.Run(ctx)
	require.NoError(t, err)

	total := 0
	for _, size := range result.ClusterSizes() {
		total += size
	}
	assert.Equal(t, ds.Len(), total)

	for i := 0; i < ds.Len(); i++ {
		label := result.Label(i)
		assert.GreaterOrEqual(t, label, 0)
		assert.Less(t, label, 4)
	}
}

func TestRun_LocalOptimalityAtConvergence(t *testing.T) {
	ctx := context.Background()
	ds := blobs(t, 50, 11)

	km, err := New(ds, 3, WithSeed(2), WithWorkers(1), WithMaxIterations(1000))
	require.NoError(t, err)
	result, err := km.Run(ctx)
	require.NoError(t, err)
	require.True(t, result.Converged())

	for i := 0; i < ds.Len(); i++ {
		assigned := squaredL2(ds.Point(i), result.Centroid(result.Label(i)))
		for j := 0; j < result.K(); j++ {
			assert.LessOrEqual(t, assigned, squaredL2(ds.Point(i), result.Centroid(j))+1e-12,
				"point %d prefers centroid %d over its own %d", i, j, result.Label(i))
		}
	}
}

func TestRun_WCSSMonotonic(t *testing.T) {
	ctx := context.Background()

	prev := -1.0
	for maxIter := 1; maxIter <= 6; maxIter++ {
		ds := blobs(t, 40, 21)
		km, err := New(ds, 3, WithSeed(9), WithWorkers(1), WithMaxIterations(maxIter))
		require.NoError(t, err)
		result, err := km.Run(ctx)
		require.NoError(t, err)

		if prev >= 0 {
			assert.LessOrEqual(t, result.WCSS(), prev+1e-9, "WCSS increased at cap %d", maxIter)
		}
		prev = result.WCSS()
	}
}

func TestSteps_IdempotentOnConvergedState(t *testing.T) {
	ctx := context.Background()
	ds := blobs(t, 30, 13)

	km, err := New(ds, 3, WithSeed(4), WithWorkers(1))
	require.NoError(t, err)
	result, err := km.Run(ctx)
	require.NoError(t, err)
	require.True(t, result.Converged())

	// Replay one assignment+aggregation pair on the terminal state.
	centroids := NewCentroids(3, ds.Dim())
	for j := 0; j < 3; j++ {
		centroids.SetFrom(j, result.Centroid(j))
	}

	changed, err := km.assign(ctx, centroids)
	require.NoError(t, err)
	assert.False(t, changed)

	sizes, empty, err := km.aggregate(ctx, centroids)
	require.NoError(t, err)
	assert.Zero(t, empty)
	assert.Equal(t, result.ClusterSizes(), append([]int(nil), sizes...))
	assert.InDeltaSlice(t, result.FlatCentroids(), centroids.Values(), 1e-12)
	assert.Equal(t, result.Labels(), ds.Labels())
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds := blobs(t, 30, 1)
	km, err := New(ds, 3, WithWorkers(2))
	require.NoError(t, err)

	_, err = km.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_Predict(t *testing.T) {
	ctx := context.Background()
	ds := mustDataset(t, fivePoints)

	km, err := New(ds, 2, WithInitializer(NewIndexInitializer(0, 4)), WithWorkers(1))
	require.NoError(t, err)
	result, err := km.Run(ctx)
	require.NoError(t, err)

	label, err := result.Predict([]float64{1.5, 2.5})
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	label, err = result.Predict([]float64{9, 9})
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	_, err = result.Predict([]float64{1, 2, 3})
	var dm *dataset.ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
}

func TestResult_Members(t *testing.T) {
	ctx := context.Background()
	ds := mustDataset(t, fivePoints)

	km, err := New(ds, 2, WithInitializer(NewIndexInitializer(0, 4)), WithWorkers(1))
	require.NoError(t, err)
	result, err := km.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2}, result.Members(0).ToArray())
	assert.Equal(t, []uint32{3, 4}, result.Members(1).ToArray())
	assert.EqualValues(t, result.ClusterSize(0), result.Members(0).GetCardinality())
	assert.EqualValues(t, result.ClusterSize(1), result.Members(1).GetCardinality())
}

func TestChunkSpans(t *testing.T) {
	spans := chunkSpans(10, 3, 4)
	assert.Equal(t, []span{{0, 3}, {3, 6}, {6, 9}, {9, 10}}, spans)

	spans = chunkSpans(10, 0, 4)
	assert.Equal(t, []span{{0, 3}, {3, 6}, {6, 9}, {9, 10}}, spans)

	spans = chunkSpans(4, 0, 8)
	assert.Equal(t, []span{{0, 1}, {1, 2}, {2, 3}, {3, 4}}, spans)

	assert.Nil(t, chunkSpans(0, 3, 4))
}
