package store

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Iterator consists from only one method which returns index of the next vector
type Iterator interface {
	Next() (uint32, bool)
}

// Store methods to be able to hold buckets of one bucketing round.
// Buckets keep only indices into the sample, not the vectors themselves,
// to not duplicate vectors
type Store interface {
	SetHash(hash uint64, vecIdx uint32) error
	GetHashIterator(hash uint64) (Iterator, error)
	Buckets() []*roaring.Bitmap
	Clear() error
}
