package vector

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHamming(t *testing.T) {
	vecs := []Binary{
		FromBits([]uint8{0, 0, 0}),
		FromBits([]uint8{0, 0, 1}),
		FromBits([]uint8{1, 1, 1}),
	}

	t.Run("SkipsByTriangleBound", func(t *testing.T) {
		res, err := MinHamming(vecs, 4)
		require.NoError(t, err)
		// pivot distances are 1 and 3, so |1-3| = 2 > 1 prunes the last pair
		assert.Equal(t, ScanResult{Min: 1, TotalPairs: 3, SkippedPairs: 1}, res)
	})

	t.Run("EqualBoundIsComputed", func(t *testing.T) {
		// pivot distances 1 and 2 give bound 1, equal to the running minimum
		tie := []Binary{
			FromBits([]uint8{0, 0, 0}),
			FromBits([]uint8{0, 0, 1}),
			FromBits([]uint8{0, 1, 1}),
		}
		res, err := MinHamming(tie, 4)
		require.NoError(t, err)
		assert.Equal(t, ScanResult{Min: 1, TotalPairs: 3, SkippedPairs: 0}, res)
	})

	t.Run("SeedBelowTrueMinimum", func(t *testing.T) {
		res, err := MinHamming(vecs, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Min)
		assert.Equal(t, int64(3), res.TotalPairs)
		assert.Equal(t, int64(1), res.SkippedPairs)
	})

	t.Run("TooFewVectors", func(t *testing.T) {
		res, err := MinHamming(vecs[:1], 4)
		require.NoError(t, err)
		assert.Equal(t, ScanResult{Min: NoDistance}, res)
		res, err = MinHamming(nil, 4)
		require.NoError(t, err)
		assert.Equal(t, ScanResult{Min: NoDistance}, res)
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := MinHamming([]Binary{vecs[0], FromBits([]uint8{1})}, 4)
		assert.True(t, errors.Is(err, ErrLengthMismatch))
		_, err = MinHamming(append(vecs[:2:2], FromBits([]uint8{1, 1, 1, 1}), vecs[2]), 4)
		assert.True(t, errors.Is(err, ErrLengthMismatch))
	})
}

func TestBruteForceMin(t *testing.T) {
	vecs := []Binary{
		FromBits([]uint8{0, 0, 0}),
		FromBits([]uint8{0, 0, 1}),
		FromBits([]uint8{1, 1, 1}),
	}
	d, err := BruteForceMin(vecs)
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = BruteForceMin(vecs[:1])
	require.NoError(t, err)
	assert.Equal(t, NoDistance, d)
}

func TestPairsCount(t *testing.T) {
	assert.Equal(t, int64(0), PairsCount(0))
	assert.Equal(t, int64(0), PairsCount(1))
	assert.Equal(t, int64(1), PairsCount(2))
	assert.Equal(t, int64(4950), PairsCount(100))
}

func TestMinHammingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	properties := gopter.NewProperties(parameters)

	properties.Property("matches brute force", prop.ForAll(
		func(seed uint64, n, length, currMin int) bool {
			vecs := newTestGenerator(seed).Sample(n, length)
			res, err := MinHamming(vecs, currMin)
			if err != nil {
				return false
			}
			expected, err := BruteForceMin(vecs)
			if err != nil {
				return false
			}
			if n < 2 {
				return res.Min == NoDistance
			}
			return res.Min == min(expected, currMin)
		},
		gen.UInt64(),
		gen.IntRange(0, 30),
		gen.IntRange(1, 40),
		gen.IntRange(0, 45),
	))

	properties.Property("counts every pair once", prop.ForAll(
		func(seed uint64, n, length int) bool {
			vecs := newTestGenerator(seed).Sample(n, length)
			res, err := MinHamming(vecs, length+1)
			if err != nil {
				return false
			}
			if res.TotalPairs != PairsCount(n) {
				return false
			}
			// pivot comparisons are never skipped
			pivotPairs := int64(max(n-1, 0))
			return res.SkippedPairs >= 0 && res.SkippedPairs <= res.TotalPairs-pivotPairs
		},
		gen.UInt64(),
		gen.IntRange(0, 30),
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t)
}
