// Package lsh groups binary vectors by bit-sampling locality-sensitive
// hashing: vectors agreeing on a random subset of coordinates share a
// bucket, so close pairs tend to be compared while far ones are dropped.
package lsh

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/gasparian/hamming-tri-go/store"
	"github.com/gasparian/hamming-tri-go/store/kv"
	"github.com/gasparian/hamming-tri-go/vector"
)

// NumBits returns round(log2(m / log2(m))) for m vectors, rounding half
// to even, clamped to [0, min(dims, MaxBits)]. Less than two vectors need no bits.
func NumBits(m, dims int) int {
	if m < 2 {
		return 0
	}
	fm := float64(m)
	bits := int(math.RoundToEven(math.Log2(fm / math.Log2(fm))))
	limit := min(dims, MaxBits)
	if bits > limit {
		bits = limit
	}
	if bits < 0 {
		bits = 0
	}
	return bits
}

// Classify puts index of every vector into the bucket of its hash
func Classify(hasher *Hasher, vecs []vector.Binary, s store.Store) error {
	for i, vec := range vecs {
		hash, err := hasher.GetHash(vec)
		if err != nil {
			return err
		}
		err = s.SetHash(hash, uint32(i))
		if err != nil {
			return err
		}
	}
	return nil
}

// Groups partitions the sample into buckets of vector indices, ordered by
// first appearance; an empty sample gives no groups
func Groups(hasher *Hasher, vecs []vector.Binary) ([]*roaring.Bitmap, error) {
	if len(vecs) == 0 {
		return nil, nil
	}
	s := kv.NewKVStore()
	err := Classify(hasher, vecs, s)
	if err != nil {
		return nil, err
	}
	return s.Buckets(), nil
}
