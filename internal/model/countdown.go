package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate  = errors.New("model: invalid date")
	ErrInvalidClock = errors.New("model: invalid time of day")
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"

	// TimeUpText is shown once the countdown target has passed.
	TimeUpText = "Time is up!"
)

// Countdown holds the exam target. Armed is false until the user confirms a
// target; an armed countdown stays armed and clamps at zero once expired.
type Countdown struct {
	Target time.Time
	Armed  bool
}

// DefaultCountdown proposes today at the given hour, unarmed.
func DefaultCountdown(now time.Time, hour int) Countdown {
	if hour < 0 || hour > 23 {
		hour = 12
	}
	y, mo, d := now.Date()
	return Countdown{Target: time.Date(y, mo, d, hour, 0, 0, 0, now.Location())}
}

// ArmedCountdown restores a previously confirmed target.
func ArmedCountdown(target time.Time) Countdown {
	return Countdown{Target: target, Armed: true}
}

// SetDate replaces the calendar date and keeps the time of day.
func (c Countdown) SetDate(date time.Time) Countdown {
	loc := c.Target.Location()
	y, mo, d := date.Date()
	c.Target = time.Date(y, mo, d, c.Target.Hour(), c.Target.Minute(), c.Target.Second(), 0, loc)
	return c
}

// SetTime replaces the time of day and keeps the calendar date.
func (c Countdown) SetTime(clock time.Time) Countdown {
	loc := c.Target.Location()
	y, mo, d := c.Target.Date()
	c.Target = time.Date(y, mo, d, clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
	return c
}

func (c Countdown) Confirm() Countdown {
	c.Armed = true
	return c
}

// Remaining is max(0, target-now) in whole seconds, always taken from the clock.
func (c Countdown) Remaining(now time.Time) int {
	diff := int(c.Target.Sub(now) / time.Second)
	if diff < 0 {
		return 0
	}
	return diff
}

func (c Countdown) Display(now time.Time) string {
	return FormatRemaining(c.Remaining(now))
}

// FormatRemaining renders "Dd, HHh, MMm, SSs left", or TimeUpText at zero.
func FormatRemaining(seconds int) string {
	if seconds <= 0 {
		return TimeUpText
	}
	days := seconds / 86400
	rest := seconds % 86400
	return fmt.Sprintf("%dd, %02dh, %02dm, %02ds left", days, rest/3600, (rest%3600)/60, rest%60)
}

func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	out, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, raw)
	}
	return out, nil
}

// ParseClock accepts HH:MM:SS or HH:MM.
func ParseClock(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{ClockLayout, "15:04"} {
		if out, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return out, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (want HH:MM:SS)", ErrInvalidClock, raw)
}
