package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardize(t *testing.T) {
	out := Standardize([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	var mean, variance float64
	for _, v := range out {
		mean += v
	}
	mean /= float64(len(out))
	for _, v := range out {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(out) - 1)

	assert.InDelta(t, 0, mean, 1e-12)
	assert.InDelta(t, 1, variance, 1e-12)
}

func TestStandardizeConstantSeries(t *testing.T) {
	out := Standardize([]float64{3, 3, 3})
	assert.Equal(t, []float64{0, 0, 0}, out)
}

func TestPartitionSeparatedClusters(t *testing.T) {
	points := []Point{
		{0, 0}, {0.1, 0.2}, {-0.1, 0.1},
		{10, 10}, {10.2, 9.9}, {9.8, 10.1},
		{-10, 10}, {-9.9, 10.2}, {-10.1, 9.8},
	}

	labels, err := Partition(points, 3, 42)
	require.NoError(t, err)
	require.Len(t, labels, len(points))

	// Each group of three must land in one cluster, and the groups in
	// different clusters.
	for g := 0; g < 3; g++ {
		assert.Equal(t, labels[3*g], labels[3*g+1])
		assert.Equal(t, labels[3*g], labels[3*g+2])
	}
	assert.NotEqual(t, labels[0], labels[3])
	assert.NotEqual(t, labels[0], labels[6])
	assert.NotEqual(t, labels[3], labels[6])
}

func TestPartitionDeterministicForSeed(t *testing.T) {
	points := []Point{
		{1, 2}, {2, 1}, {8, 8}, {9, 7}, {-5, 4}, {-4, 5}, {0, 0},
	}

	first, err := Partition(points, 3, 42)
	require.NoError(t, err)
	second, err := Partition(points, 3, 42)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPartitionTooFewDistinctPoints(t *testing.T) {
	points := []Point{{1, 1}, {1, 1}, {2, 2}}

	_, err := Partition(points, 3, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distinct")
}

func TestPartitionRejectsBadK(t *testing.T) {
	_, err := Partition([]Point{{1, 1}}, 0, 42)
	require.Error(t, err)
}
