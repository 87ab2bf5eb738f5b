package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInDeadlineOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Deadline{Key: "later", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Deadline{Key: "sooner", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitDeadline(t, engine.C(), time.Second)
	second := waitDeadline(t, engine.C(), time.Second)
	if first.Key != "sooner" || second.Key != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.Key, second.Key)
	}
}

func TestEnginePastDeadlineFiresImmediately(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	if err := engine.Schedule(Deadline{Key: "exam", Label: "Time is up!", At: time.Now().Add(-time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	got := waitDeadline(t, engine.C(), time.Second)
	if got.Key != "exam" || got.Label != "Time is up!" {
		t.Fatalf("unexpected deadline: %#v", got)
	}
}

func TestRescheduleReplacesPendingKey(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Deadline{Key: "exam", Label: "old", At: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Reschedule(Deadline{Key: "exam", Label: "new", At: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 pending, got %d", engine.Pending())
	}

	got := waitDeadline(t, engine.C(), time.Second)
	if got.Label != "new" {
		t.Fatalf("expected replacement deadline, got %#v", got)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("cancelled deadline fired: %#v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelUnknownKey(t *testing.T) {
	engine := NewEngine(1)
	if n := engine.Cancel("missing"); n != 0 {
		t.Fatalf("expected 0 cancelled, got %d", n)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Deadline{Key: "exam", At: at}); err != nil {
			t.Fatalf("schedule deadline: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped deadlines > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidation(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Deadline{Key: "bad"}); err != ErrInvalidDeadline {
		t.Fatalf("expected ErrInvalidDeadline, got %v", err)
	}
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(Deadline{Key: "late", At: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitDeadline(t *testing.T, ch <-chan Deadline, timeout time.Duration) Deadline {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for deadline")
		return Deadline{}
	}
}
