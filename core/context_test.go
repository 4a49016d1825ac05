package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuppressHeader(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	assert.True(t, shouldSuppressHeader(WithSuppressHeader(ctx)))

	// A value of the wrong type is ignored
	odd := context.WithValue(ctx, suppressHeaderKey, "yes")
	assert.False(t, shouldSuppressHeader(odd))
}

func TestRunID(t *testing.T) {
	ctx := context.Background()
	_, ok := getRunID(ctx)
	assert.False(t, ok)

	id, ok := getRunID(withRunID(ctx, 42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = getRunID(withRunID(ctx, 0))
	assert.False(t, ok, "zero is not a run id")
}

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := withRunID(WithSuppressHeader(context.Background()), 12345)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id, ok := getRunID(ctx)
			assert.True(t, shouldSuppressHeader(ctx), "goroutine %d", n)
			assert.True(t, ok, "goroutine %d", n)
			assert.Equal(t, int64(12345), id, "goroutine %d", n)
		}(i)
	}
	wg.Wait()
}
