package controller

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestInitialStateIsProcess(t *testing.T) {
	c := New()
	if c.Get() != Process {
		t.Fatalf("expected initial state Process, got %v", c.Get())
	}
}

func TestSetGet(t *testing.T) {
	c := New()
	c.Set(Auction)
	if c.Get() != Auction {
		t.Fatalf("expected Auction, got %v", c.Get())
	}
}

// TestSchedulerFiresRepeatedly is P7-adjacent: the scheduler must fire a
// registered task on its own period, more than once.
func TestSchedulerFiresRepeatedly(t *testing.T) {
	s := NewScheduler()
	var count atomic.Int64

	s.Register(RptTask(func() { count.Add(1) }, 10*time.Millisecond))
	time.Sleep(55 * time.Millisecond)
	s.Stop()

	if count.Load() < 2 {
		t.Fatalf("expected task to fire at least twice, fired %d times", count.Load())
	}
}

// TestSchedulerStopHaltsFurtherFirings checks that once Stop returns, the
// task body does not fire again.
func TestSchedulerStopHaltsFurtherFirings(t *testing.T) {
	s := NewScheduler()
	var count atomic.Int64

	s.Register(RptTask(func() { count.Add(1) }, 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)
	s.Stop()

	after := count.Load()
	time.Sleep(30 * time.Millisecond)
	if count.Load() != after {
		t.Fatalf("expected no further firings after Stop, went from %d to %d", after, count.Load())
	}
}
