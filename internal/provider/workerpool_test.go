package provider

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	tests := []struct {
		name       string
		numTasks   int
		numWorkers int
		failEvery  int
	}{
		{name: "simple tasks", numTasks: 5, numWorkers: 2},
		{name: "more workers than tasks", numTasks: 2, numWorkers: 4},
		{name: "failing tasks do not stop workers", numTasks: 6, numWorkers: 2, failEvery: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool(tt.numWorkers)

			var executed atomic.Int32
			for i := 0; i < tt.numTasks; i++ {
				err := wp.AddTask(context.Background(), func() error {
					executed.Add(1)
					if tt.failEvery > 0 && i%tt.failEvery == 0 {
						return errors.New("task failed")
					}
					return nil
				})
				require.NoError(t, err)
			}

			wp.Close()
			assert.Equal(t, int32(tt.numTasks), executed.Load())
		})
	}
}

func TestWorkerPool_AddTaskCanceled(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	block := make(chan struct{})
	require.NoError(t, wp.AddTask(context.Background(), func() error {
		<-block
		return nil
	}))
	// fills the buffer while the only worker is busy
	require.NoError(t, wp.AddTask(context.Background(), func() error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := wp.AddTask(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)

	close(block)
}

func TestWorkerPool_CloseTwice(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Close()
	assert.NotPanics(t, wp.Close)
}
