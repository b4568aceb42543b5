package lsh

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/gasparian/hamming-tri-go/vector"
)

// MaxBits is the widest key which fits into the uint64 hash
const MaxBits = 64

var (
	dimensionsNumberErr = errors.New("dimensions number must be a positive integer")
	bitsNumberErr       = errors.New("bits number must be in [0, min(dims, 64)]")
	hasherNotBuiltErr   = errors.New("hasher must be built before hashing")
)

// HasherConfig holds the vector length and the number of sampled coordinates
type HasherConfig struct {
	NBits int
	Dims  int
}

// Hasher is a bit-sampling hash: the key of a vector is its values
// at NBits coordinates drawn without replacement
type Hasher struct {
	mutex   sync.RWMutex
	Config  HasherConfig
	indices []int
	built   bool
}

func NewHasher(config HasherConfig) (*Hasher, error) {
	if config.Dims <= 0 {
		return nil, dimensionsNumberErr
	}
	if config.NBits < 0 || config.NBits > config.Dims || config.NBits > MaxBits {
		return nil, fmt.Errorf("%w: got %d for %d dims", bitsNumberErr, config.NBits, config.Dims)
	}
	return &Hasher{Config: config}, nil
}

// sampleIndices draws k distinct values from [0, n) with a partial Fisher-Yates shuffle
func sampleIndices(rng *rand.Rand, n, k int) []int {
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

// Build draws a new set of coordinates; every bucketing round calls it again
func (hasher *Hasher) Build(rng *rand.Rand) {
	indices := sampleIndices(rng, hasher.Config.Dims, hasher.Config.NBits)

	hasher.mutex.Lock()
	defer hasher.mutex.Unlock()
	hasher.indices = indices
	hasher.built = true
}

// Indices returns copy of the currently sampled coordinates
func (hasher *Hasher) Indices() []int {
	hasher.mutex.RLock()
	defer hasher.mutex.RUnlock()
	return append([]int(nil), hasher.indices...)
}

func (hasher *Hasher) setIndices(indices []int) {
	hasher.mutex.Lock()
	defer hasher.mutex.Unlock()
	hasher.indices = indices
	hasher.built = true
}

// GetHash packs the sampled bits: bit k of the hash is the value at Indices()[k]
func (hasher *Hasher) GetHash(vec vector.Binary) (uint64, error) {
	hasher.mutex.RLock()
	defer hasher.mutex.RUnlock()

	if !hasher.built {
		return 0, hasherNotBuiltErr
	}
	if vec.Len() != hasher.Config.Dims {
		return 0, fmt.Errorf("%w: %d != %d", vector.ErrLengthMismatch, vec.Len(), hasher.Config.Dims)
	}
	var hash uint64
	for k, idx := range hasher.indices {
		if vec.Bit(idx) == 1 {
			hash |= (1 << k)
		}
	}
	return hash, nil
}
