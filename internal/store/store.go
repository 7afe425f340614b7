package store

import (
	"context"
	"errors"
	"time"

	"github.com/mind-engage/pizzaquiz/internal/quiz"
)

var ErrNotFound = errors.New("user state not found")

// Store keeps one quiz.UserState per opaque user ID. Implementations
// read and write a single key per call.
type Store interface {
	Get(ctx context.Context, userID string) (quiz.UserState, error)
	Put(ctx context.Context, userID string, s quiz.UserState) error
	Delete(ctx context.Context, userID string) error
	// PruneIdle deletes records last written before the given time.
	PruneIdle(ctx context.Context, before time.Time) (int, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
