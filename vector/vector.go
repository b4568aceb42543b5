// Package vector holds fixed-length binary vectors and the Hamming
// distance routines working on them.
package vector

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/bits-and-blooms/bitset"
)

// ErrLengthMismatch returned when two compared vectors have different lengths
var ErrLengthMismatch = errors.New("vectors must have the same length")

// Binary is an immutable sequence of bits
type Binary struct {
	bits *bitset.BitSet
	size int
}

// FromBits creates vector from 0/1 values; any non-zero value is a set bit
func FromBits(values []uint8) Binary {
	bits := bitset.New(uint(len(values)))
	for i, v := range values {
		if v != 0 {
			bits.Set(uint(i))
		}
	}
	return Binary{bits: bits, size: len(values)}
}

// Len returns number of bits
func (v Binary) Len() int {
	return v.size
}

// Bit returns value at position i as 0 or 1
func (v Binary) Bit(i int) uint8 {
	if v.bits.Test(uint(i)) {
		return 1
	}
	return 0
}

// Bits expands the vector back to 0/1 values
func (v Binary) Bits() []uint8 {
	values := make([]uint8, v.size)
	for i := range values {
		values[i] = v.Bit(i)
	}
	return values
}

func (v Binary) String() string {
	buf := make([]byte, v.size)
	for i := range buf {
		buf[i] = '0' + v.Bit(i)
	}
	return string(buf)
}

// Hamming counts positions where a and b differ
func Hamming(a, b Binary) (int, error) {
	if a.size != b.size {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a.size, b.size)
	}
	if a.size == 0 {
		return 0, nil
	}
	return int(a.bits.SymmetricDifferenceCardinality(b.bits)), nil
}

// Generator produces uniformly random vectors from the given source
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates generator; pass a seeded source to get reproducible samples
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Random returns vector with every bit drawn independently with p=0.5
func (g *Generator) Random(length int) Binary {
	bits := bitset.New(uint(length))
	var word uint64
	for i := 0; i < length; i++ {
		if i%64 == 0 {
			word = g.rng.Uint64()
		}
		if word&1 == 1 {
			bits.Set(uint(i))
		}
		word >>= 1
	}
	return Binary{bits: bits, size: length}
}

// Sample returns n fresh random vectors of the same length
func (g *Generator) Sample(n, length int) []Binary {
	vecs := make([]Binary, n)
	for i := range vecs {
		vecs[i] = g.Random(length)
	}
	return vecs
}
