package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"twii-miner/core/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingBuild(count *int32) BuildFunc {
	return func(ctx context.Context) (*graph.Graph, *Report, error) {
		atomic.AddInt32(count, 1)
		return graph.New(), &Report{}, nil
	}
}

// TestCache_Hit tests that the snapshot is reused on second call.
func TestCache_Hit(t *testing.T) {
	var count int32
	c := NewCache(5 * time.Minute)

	s1, err := c.Get(context.Background(), "skills", countingBuild(&count))
	require.NoError(t, err)
	s2, err := c.Get(context.Background(), "skills", countingBuild(&count))
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
}

// TestCache_Expiration tests that an expired snapshot is rebuilt.
func TestCache_Expiration(t *testing.T) {
	var count int32
	c := NewCache(10 * time.Millisecond)

	_, err := c.Get(context.Background(), "skills", countingBuild(&count))
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = c.Get(context.Background(), "skills", countingBuild(&count))
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&count))
}

func TestCache_Invalidate(t *testing.T) {
	var count int32
	c := NewCache(time.Hour)

	_, _ = c.Get(context.Background(), "skills", countingBuild(&count))
	c.Invalidate("skills")
	_, _ = c.Get(context.Background(), "skills", countingBuild(&count))
	assert.Equal(t, int32(2), atomic.LoadInt32(&count))
}

func TestCache_ErrorNotCached(t *testing.T) {
	c := NewCache(time.Hour)
	boom := errors.New("boom")

	_, err := c.Get(context.Background(), "skills", func(ctx context.Context) (*graph.Graph, *Report, error) {
		return nil, nil, boom
	})
	assert.ErrorIs(t, err, boom)

	var count int32
	_, err = c.Get(context.Background(), "skills", countingBuild(&count))
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
}

func TestCache_ConcurrentCallersShareBuild(t *testing.T) {
	var count int32
	c := NewCache(time.Hour)
	release := make(chan struct{})
	build := func(ctx context.Context) (*graph.Graph, *Report, error) {
		atomic.AddInt32(&count, 1)
		<-release
		return graph.New(), &Report{}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background(), "skills", build)
			assert.NoError(t, err)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
}
