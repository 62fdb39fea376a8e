package utils

import (
	"context"
	"sync"
	"time"
)

// scheduledTask is one pending delayed action.
type scheduledTask struct {
	cancel context.CancelFunc
}

// Scheduler runs one-shot delayed tasks in the background, keyed by ID.
// Stop cancels everything still waiting.
type Scheduler struct {
	ctx   context.Context
	stop  context.CancelFunc
	tasks map[string]*scheduledTask
	mutex sync.RWMutex
	wg    sync.WaitGroup
}

// NewScheduler creates a scheduler whose tasks end when parent does.
func NewScheduler(parent context.Context) *Scheduler {
	ctx, stop := context.WithCancel(parent)
	return &Scheduler{
		ctx:   ctx,
		stop:  stop,
		tasks: make(map[string]*scheduledTask),
	}
}

// Schedule runs fn after delay unless cancelled first. A task already
// scheduled under the same id is replaced.
func (s *Scheduler) Schedule(id string, delay time.Duration, fn func(ctx context.Context)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if existing, exists := s.tasks[id]; exists {
		existing.cancel()
	}
	if s.ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	task := &scheduledTask{cancel: cancel}
	s.tasks[id] = task

	s.wg.Add(1)
	go s.run(ctx, id, task, delay, fn)
}

func (s *Scheduler) run(ctx context.Context, id string, task *scheduledTask, delay time.Duration, fn func(ctx context.Context)) {
	defer s.wg.Done()
	defer func() {
		s.mutex.Lock()
		if s.tasks[id] == task {
			delete(s.tasks, id)
		}
		s.mutex.Unlock()
		task.cancel()
	}()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return
	}
	fn(ctx)
}

// Cancel drops the pending task with id, if any.
func (s *Scheduler) Cancel(id string) {
	s.mutex.RLock()
	task, exists := s.tasks[id]
	s.mutex.RUnlock()

	if exists {
		task.cancel()
	}
}

// IsScheduled reports whether a task with id is still pending or running.
func (s *Scheduler) IsScheduled(id string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, exists := s.tasks[id]
	return exists
}

// Stop cancels every pending task and waits for running ones to return.
func (s *Scheduler) Stop() {
	s.stop()
	s.wg.Wait()
}
