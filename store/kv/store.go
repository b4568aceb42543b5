package kv

import (
	"errors"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/gasparian/hamming-tri-go/store"
)

var (
	bucketNotFoundErr = errors.New("Bucket not found")
)

// KVStore keeps buckets in memory, remembering the order in which
// each bucket received its first vector
type KVStore struct {
	mx    sync.RWMutex
	order []uint64
	m     map[uint64]*roaring.Bitmap
}

func NewKVStore() *KVStore {
	return &KVStore{
		m: make(map[uint64]*roaring.Bitmap),
	}
}

type KeysIterator struct {
	it roaring.IntPeekable
}

func (it *KeysIterator) Next() (uint32, bool) {
	if !it.it.HasNext() {
		return 0, false
	}
	return it.it.Next(), true
}

func (s *KVStore) SetHash(hash uint64, vecIdx uint32) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	bucket, ok := s.m[hash]
	if !ok {
		bucket = roaring.New()
		s.m[hash] = bucket
		s.order = append(s.order, hash)
	}
	bucket.Add(vecIdx)
	return nil
}

func (s *KVStore) GetHashIterator(hash uint64) (store.Iterator, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	bucket, ok := s.m[hash]
	if !ok {
		return nil, bucketNotFoundErr
	}
	return &KeysIterator{it: bucket.Clone().Iterator()}, nil
}

// Buckets returns copies of all buckets in first-insertion order
func (s *KVStore) Buckets() []*roaring.Bitmap {
	s.mx.RLock()
	defer s.mx.RUnlock()
	buckets := make([]*roaring.Bitmap, len(s.order))
	for i, hash := range s.order {
		buckets[i] = s.m[hash].Clone()
	}
	return buckets
}

func (s *KVStore) Len() int {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return len(s.order)
}

func (s *KVStore) Clear() error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.m = make(map[uint64]*roaring.Bitmap)
	s.order = nil
	return nil
}
