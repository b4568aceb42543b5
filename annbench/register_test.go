package annbench

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinRegister(t *testing.T) {
	reg := NewMinRegister(10)
	assert.Equal(t, 10, reg.Load())
	assert.False(t, reg.Offer(10))
	assert.False(t, reg.Offer(12))
	assert.True(t, reg.Offer(4))
	assert.Equal(t, 4, reg.Load())
}

func TestMinRegisterConcurrent(t *testing.T) {
	reg := NewMinRegister(1 << 20)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for d := 1000 + w; d >= w; d -= 8 {
				reg.Offer(d)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 0, reg.Load())
}
