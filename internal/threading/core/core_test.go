package core

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForEachVisitsEveryItem(t *testing.T) {
	items := make([]int, 103)
	for i := range items {
		items[i] = i + 1
	}
	var sum atomic.Int64
	ParallelForEach(items, func(v int) {
		sum.Add(int64(v))
	})
	assert.Equal(t, int64(103*104/2), sum.Load())
}

func TestParallelForEachCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	ParallelForEachWithContext(ctx, []int{1, 2, 3}, func(int) {
		calls.Add(1)
	})
	assert.Equal(t, int32(0), calls.Load())
}

func TestWorkerPoolRunAll(t *testing.T) {
	pool := NewWorkerPool(0)
	pool.Start()
	defer pool.Stop()

	var done atomic.Int64
	boom := errors.New("boom")
	jobs := []func(context.Context) error{
		func(context.Context) error {
			done.Add(1)
			return nil
		},
		func(context.Context) error {
			done.Add(1)
			return boom
		},
		func(context.Context) error {
			done.Add(1)
			return nil
		},
	}
	err := pool.RunAll(context.Background(), jobs...)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(3), done.Load())

	assert.NoError(t, pool.RunAll(context.Background()))
}

func TestWorkerPoolRunAllCancelled(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Int32
	err := pool.RunAll(ctx, func(context.Context) error {
		ran.Add(1)
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), ran.Load())
}
