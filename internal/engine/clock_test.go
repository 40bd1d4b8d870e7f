package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickClock_StartsAtZero(t *testing.T) {
	c := NewTickClock()
	assert.Equal(t, int64(0), c.Current())
}

func TestTickClock_StartsAt(t *testing.T) {
	c := NewTickClockAt(100)
	assert.Equal(t, int64(100), c.Current())
	assert.Equal(t, int64(101), c.Next())
}

func TestTickClock_Next(t *testing.T) {
	c := NewTickClock()

	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(3), c.Next())
	assert.Equal(t, int64(3), c.Current())
}

func TestTickClock_ConcurrentReads(t *testing.T) {
	c := NewTickClock()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			c.Next()
		}
	}()
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := int64(0)
			for j := 0; j < 1000; j++ {
				cur := c.Current()
				assert.GreaterOrEqual(t, cur, last)
				last = cur
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), c.Current())
}
