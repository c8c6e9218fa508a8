package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStringSlice(t *testing.T) {
	slice, cleanup := GetStringSlice(5)
	defer cleanup()

	assert.Len(t, slice, 5)
	for i := range slice {
		slice[i] = "x"
	}
}

func TestGetStringSliceGrowsWhenNeeded(t *testing.T) {
	slice, cleanup := GetStringSlice(3)
	assert.Len(t, slice, 3)
	cleanup()

	bigger, cleanup2 := GetStringSlice(10)
	defer cleanup2()
	assert.Len(t, bigger, 10)
}

func TestStringSlicePoolConcurrency(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slice, cleanup := GetStringSlice(4)
			defer cleanup()
			for j := range slice {
				slice[j] = "v"
			}
		}()
	}
	wg.Wait()
}
