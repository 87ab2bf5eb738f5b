package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the local persistent store: a string key-value table that
// holds the serialized study state, plus an append-only study session log.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	CreateSession(ctx context.Context, in Session) error
	ListSessions(ctx context.Context, filter SessionListFilter) ([]Session, error)
	DeleteSessions(ctx context.Context, taskID int) (int64, error)
}
