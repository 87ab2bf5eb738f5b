package model

import (
	"errors"
	"testing"
	"time"
)

func TestCountdownDisplay(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	c := Countdown{Target: now.Add(3661 * time.Second)}.Confirm()
	if got := c.Display(now); got != "0d, 01h, 01m, 01s left" {
		t.Fatalf("unexpected display: %q", got)
	}

	c.Target = now.Add(2*24*time.Hour + 5*time.Second)
	if got := c.Display(now); got != "2d, 00h, 00m, 05s left" {
		t.Fatalf("unexpected multi-day display: %q", got)
	}
}

func TestCountdownPastTargetIsTimeUp(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	c := ArmedCountdown(now.Add(-time.Hour))
	if c.Remaining(now) != 0 {
		t.Fatalf("expected 0 remaining, got %d", c.Remaining(now))
	}
	if got := c.Display(now); got != TimeUpText {
		t.Fatalf("unexpected display: %q", got)
	}
}

func TestCountdownRecomputesFromClock(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	c := ArmedCountdown(start.Add(100 * time.Second))
	if got := c.Remaining(start.Add(37 * time.Second)); got != 63 {
		t.Fatalf("remaining = %d, want 63", got)
	}
}

func TestSetDateAndTimePreserveOtherComponent(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 30, 0, 0, time.UTC)
	c := DefaultCountdown(now, 12)
	if c.Armed {
		t.Fatal("default countdown must be unarmed")
	}
	if c.Target.Hour() != 12 || c.Target.Day() != 9 {
		t.Fatalf("unexpected default target: %v", c.Target)
	}

	date, err := ParseDate("2026-06-15", time.UTC)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	c = c.SetDate(date)
	want := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	if !c.Target.Equal(want) {
		t.Fatalf("after SetDate got %v, want %v", c.Target, want)
	}

	clock, err := ParseClock("09:45:30", time.UTC)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	c = c.SetTime(clock)
	want = time.Date(2026, 6, 15, 9, 45, 30, 0, time.UTC)
	if !c.Target.Equal(want) {
		t.Fatalf("after SetTime got %v, want %v", c.Target, want)
	}
}

func TestParseInputsRejectGarbage(t *testing.T) {
	if _, err := ParseDate("15/06/2026", time.UTC); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := ParseClock("noon", time.UTC); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}
	if _, err := ParseClock("14:05", time.UTC); err != nil {
		t.Fatalf("short clock should parse: %v", err)
	}
}
