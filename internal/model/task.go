package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidGoalTime = errors.New("model: invalid goal time")

// MaxGoalHours bounds the hours component of a goal so totals cannot overflow.
const MaxGoalHours = 99999

// Task is one study task. The JSON field names are the persisted format.
type Task struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Time      int    `json:"time"`
	IsRunning bool   `json:"isRunning"`
	Checked   bool   `json:"checked"`
	GoalTime  string `json:"goalTime,omitempty"`
}

// GoalSeconds returns the task goal in seconds, or 0 when no goal is set.
func (t Task) GoalSeconds() int {
	return GoalSeconds(t.GoalTime)
}

// GoalReached reports whether a goal is set and the elapsed time has met it.
func (t Task) GoalReached() bool {
	goal := t.GoalSeconds()
	return goal > 0 && t.Time >= goal
}

// Tasks is an ordered task collection with value semantics: every operation
// returns a fresh snapshot and leaves the receiver untouched.
type Tasks []Task

func (ts Tasks) clone() Tasks {
	out := make(Tasks, len(ts))
	copy(out, ts)
	return out
}

func (ts Tasks) index(id int) int {
	for i, t := range ts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// NextID never collides with a live id, even after deletions.
func (ts Tasks) NextID() int {
	next := len(ts)
	for _, t := range ts {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

func (ts Tasks) Find(id int) (Task, bool) {
	if i := ts.index(id); i >= 0 {
		return ts[i], true
	}
	return Task{}, false
}

func (ts Tasks) Add() Tasks {
	out := make(Tasks, 0, len(ts)+1)
	out = append(out, ts...)
	return append(out, Task{
		ID:   ts.NextID(),
		Text: fmt.Sprintf("Task %d", len(ts)+1),
	})
}

func (ts Tasks) Delete(id int) Tasks {
	out := make(Tasks, 0, len(ts))
	for _, t := range ts {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func (ts Tasks) update(id int, fn func(*Task)) Tasks {
	out := ts.clone()
	if i := out.index(id); i >= 0 {
		fn(&out[i])
	}
	return out
}

func (ts Tasks) ToggleChecked(id int) Tasks {
	return ts.update(id, func(t *Task) { t.Checked = !t.Checked })
}

func (ts Tasks) Rename(id int, text string) Tasks {
	return ts.update(id, func(t *Task) { t.Text = text })
}

// SetGoalTime accepts an empty goal (clears it) or a strict H:MM:SS value.
func (ts Tasks) SetGoalTime(id int, goal string) (Tasks, error) {
	goal = strings.TrimSpace(goal)
	if goal != "" {
		if _, err := ParseGoalTime(goal); err != nil {
			return ts, err
		}
	}
	return ts.update(id, func(t *Task) { t.GoalTime = goal }), nil
}

func (ts Tasks) StartOrStop(id int) Tasks {
	return ts.update(id, func(t *Task) { t.IsRunning = !t.IsRunning })
}

func (ts Tasks) Reset(id int) Tasks {
	return ts.update(id, func(t *Task) {
		t.Time = 0
		t.IsRunning = false
	})
}

// Tick adds one second to a running task. Stopped or unknown tasks are unchanged.
func (ts Tasks) Tick(id int) Tasks {
	return ts.update(id, func(t *Task) {
		if t.IsRunning {
			t.Time++
		}
	})
}

// Running returns the ids of running tasks in collection order.
func (ts Tasks) Running() []int {
	out := make([]int, 0)
	for _, t := range ts {
		if t.IsRunning {
			out = append(out, t.ID)
		}
	}
	return out
}

func (ts Tasks) TotalTimeSpent() int {
	total := 0
	for _, t := range ts {
		total += t.Time
	}
	return total
}

func (ts Tasks) TotalGoalTime() int {
	total := 0
	for _, t := range ts {
		if t.GoalTime != "" {
			total += GoalSeconds(t.GoalTime)
		}
	}
	return total
}

// ParseGoalTime parses H:MM:SS strictly. Hours may exceed 24 up to MaxGoalHours.
func ParseGoalTime(goal string) (int, error) {
	parts := strings.Split(strings.TrimSpace(goal), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q (want HH:MM:SS)", ErrInvalidGoalTime, goal)
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidGoalTime, goal)
		}
		vals[i] = v
	}
	if vals[1] > 59 || vals[2] > 59 {
		return 0, fmt.Errorf("%w: %q (minutes and seconds must be below 60)", ErrInvalidGoalTime, goal)
	}
	if vals[0] > MaxGoalHours {
		return 0, fmt.Errorf("%w: %q (at most %d hours)", ErrInvalidGoalTime, goal, MaxGoalHours)
	}
	return vals[0]*3600 + vals[1]*60 + vals[2], nil
}

// GoalSeconds parses a goal leniently: missing, non-numeric or out of range
// components count as zero. Used for values read back from the store.
func GoalSeconds(goal string) int {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return 0
	}
	parts := strings.Split(goal, ":")
	weights := []int{3600, 60, 1}
	total := 0
	for i := 0; i < len(parts) && i < len(weights); i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > MaxGoalHours*3600/weights[i] {
			continue
		}
		total += v * weights[i]
	}
	return total
}

// FormatTime renders seconds as zero-padded HH:MM:SS without wrapping hours.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
