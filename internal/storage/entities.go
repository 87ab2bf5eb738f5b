package storage

import "time"

// Session is one uninterrupted run of a task's stopwatch.
type Session struct {
	ID        int64
	TaskID    int
	TaskText  string
	StartedAt time.Time
	EndedAt   time.Time
	Seconds   int
}

type SessionListFilter struct {
	TaskID *int
	Limit  int
	Offset int
}
