package usecase_catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_DeduplicatesInflightKeys(t *testing.T) {
	s := NewRefreshScheduler(2, time.Minute)
	release := make(chan struct{})
	var runs int32

	task := func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		<-release
		return nil
	}

	assert.True(t, s.Schedule(context.Background(), "band:67", task))
	assert.False(t, s.Schedule(context.Background(), "band:67", task))
	assert.True(t, s.Schedule(context.Background(), "band:68", task))
	assert.Equal(t, 2, s.pending())

	close(release)
	s.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&runs))
	assert.Zero(t, s.pending())
	assert.True(t, s.Schedule(context.Background(), "band:67", task))
	s.Wait()
}

func TestScheduler_DetachedFromCallerCancellation(t *testing.T) {
	s := NewRefreshScheduler(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var taskErr atomic.Value
	s.Schedule(ctx, "k", func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			taskErr.Store(err)
		}
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})
	s.Wait()

	assert.Nil(t, taskErr.Load())
}

func TestScheduler_SurvivesFailingTasks(t *testing.T) {
	s := NewRefreshScheduler(1, time.Minute)

	s.Schedule(context.Background(), "err", func(context.Context) error { return errors.New("boom") })
	s.Schedule(context.Background(), "panic", func(context.Context) error { panic("bad markup") })
	s.Wait()

	var ran bool
	s.Schedule(context.Background(), "ok", func(context.Context) error { ran = true; return nil })
	s.Wait()
	assert.True(t, ran)
}
