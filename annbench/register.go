package annbench

import (
	"sync/atomic"
)

// MinRegister is a shared running minimum which can only go down
type MinRegister struct {
	v atomic.Int64
}

func NewMinRegister(init int) *MinRegister {
	r := &MinRegister{}
	r.v.Store(int64(init))
	return r
}

// Load returns the best minimum published so far
func (r *MinRegister) Load() int {
	return int(r.v.Load())
}

// Offer stores d if it is smaller than the current value and reports whether it did
func (r *MinRegister) Offer(d int) bool {
	for {
		curr := r.v.Load()
		if int64(d) >= curr {
			return false
		}
		if r.v.CompareAndSwap(curr, int64(d)) {
			return true
		}
	}
}
