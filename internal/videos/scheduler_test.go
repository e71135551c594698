package videos

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRunsTask(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Int32

	if !s.Schedule("a", time.Millisecond, func() { ran.Add(1) }) {
		t.Fatal("expected task to be scheduled")
	}
	waitForCondition(t, func() bool { return ran.Load() == 1 }, time.Second)
	if s.Pending("a") {
		t.Fatal("expected task to leave the pending set once run")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Int32

	s.Schedule("a", 20*time.Millisecond, func() { ran.Add(1) })
	if !s.Cancel("a") {
		t.Fatal("expected pending task to be cancelled")
	}
	if s.Cancel("a") {
		t.Fatal("expected second cancel to report nothing pending")
	}

	time.Sleep(50 * time.Millisecond)
	if ran.Load() != 0 {
		t.Fatal("cancelled task ran")
	}
}

func TestSchedulerRescheduleReplacesTask(t *testing.T) {
	s := NewScheduler()
	var first, second atomic.Int32

	s.Schedule("a", 20*time.Millisecond, func() { first.Add(1) })
	s.Schedule("a", time.Millisecond, func() { second.Add(1) })

	waitForCondition(t, func() bool { return second.Load() == 1 }, time.Second)
	time.Sleep(40 * time.Millisecond)
	if first.Load() != 0 {
		t.Fatal("replaced task ran")
	}
}

func TestSchedulerShutdown(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Int32

	s.Schedule("a", 20*time.Millisecond, func() { ran.Add(1) })
	s.Schedule("b", 20*time.Millisecond, func() { ran.Add(1) })
	if s.Len() != 2 {
		t.Fatalf("expected 2 pending tasks got %d", s.Len())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if s.Schedule("c", time.Millisecond, func() { ran.Add(1) }) {
		t.Fatal("expected schedule after shutdown to be rejected")
	}

	time.Sleep(50 * time.Millisecond)
	if ran.Load() != 0 {
		t.Fatalf("expected no task to run after shutdown got %d", ran.Load())
	}
}

func waitForCondition(t *testing.T, predicate func() bool, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if predicate() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}
