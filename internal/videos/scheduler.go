package videos

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs one-shot delayed tasks keyed by video id. Scheduling an id
// that already has a pending task replaces it; cancelled tasks never run.
type Scheduler struct {
	mu     sync.Mutex
	tasks  map[string]*time.Timer
	wg     sync.WaitGroup
	closed bool
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[string]*time.Timer)}
}

// Schedule arranges for fn to run after delay. It reports false once the
// scheduler has been shut down.
func (s *Scheduler) Schedule(id string, delay time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if existing, ok := s.tasks[id]; ok {
		existing.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.closed || s.tasks[id] != timer {
			s.mu.Unlock()
			return
		}
		delete(s.tasks, id)
		s.wg.Add(1)
		s.mu.Unlock()

		defer s.wg.Done()
		fn()
	})
	s.tasks[id] = timer
	return true
}

// Cancel drops the pending task for id, reporting whether one existed.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.tasks[id]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.tasks, id)
	return true
}

// CancelAll drops every pending task and returns how many were dropped.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelAllLocked()
}

// Pending reports whether id has a task waiting to run.
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[id]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Shutdown cancels pending tasks and waits for running ones to return.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.cancelAllLocked()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (s *Scheduler) cancelAllLocked() int {
	n := len(s.tasks)
	for id, timer := range s.tasks {
		timer.Stop()
		delete(s.tasks, id)
	}
	return n
}
