package usecase_catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RefreshScheduler 后台刷新任务池：调用方从不等待任务完成。
// 同一 key 同时只有一个任务在排队或执行。
type RefreshScheduler struct {
	workerPool chan struct{}
	timeout    time.Duration
	maxPending int

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

func NewRefreshScheduler(workers int, timeout time.Duration) *RefreshScheduler {
	if workers < 1 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &RefreshScheduler{
		workerPool: make(chan struct{}, workers),
		timeout:    timeout,
		maxPending: workers * 32,
		inflight:   make(map[string]struct{}),
	}
}

// Schedule 提交任务；重复 key 或队列已满时丢弃并返回 false。
// 任务上下文脱离调用方的取消，但保留其中的值，并受独立超时约束。
func (s *RefreshScheduler) Schedule(ctx context.Context, key string, task func(ctx context.Context) error) bool {
	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return false
	}
	if len(s.inflight) >= s.maxPending {
		s.mu.Unlock()
		slog.Warn("refresh queue full, task dropped", "key", key)
		return false
	}
	s.inflight[key] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	go func() {
		defer s.wg.Done()
		defer s.release(key)

		s.workerPool <- struct{}{}
		defer func() { <-s.workerPool }()

		taskCtx, cancel := context.WithTimeout(detached, s.timeout)
		defer cancel()

		if err := s.run(taskCtx, task); err != nil {
			slog.Warn("background refresh failed", "key", key, "err", err)
			return
		}
		slog.Debug("background refresh done", "key", key)
	}()
	return true
}

func (s *RefreshScheduler) run(ctx context.Context, task func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh panicked: %v", r)
		}
	}()
	return task(ctx)
}

func (s *RefreshScheduler) release(key string) {
	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
}

// pending 排队或执行中的任务数
func (s *RefreshScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}

// Wait 等待已提交的任务全部结束，用于关闭流程与测试
func (s *RefreshScheduler) Wait() {
	s.wg.Wait()
}
