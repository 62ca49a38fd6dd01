// Package store defines the persistence boundary for event instances. The
// engine itself never talks to storage; callers expand or mutate series
// through package recur and hand the resulting instances to a Storage
// implementation.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/librecal/librecal/recur"
)

// ErrorType classifies storage failures.
type ErrorType string

const (
	ErrNotFound      ErrorType = "not_found"
	ErrAlreadyExists ErrorType = "already_exists"
	ErrInvalidInput  ErrorType = "invalid_input"
)

// Error represents a storage-related error.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a storage not-found error.
func IsNotFound(err error) bool {
	var serr *Error
	return errors.As(err, &serr) && serr.Type == ErrNotFound
}

// Storage is the interface an event backend must implement. All collection
// results are detached copies; mutating them never affects stored state.
type Storage interface {
	// ListEvents returns all stored event instances ordered by date, then id.
	ListEvents(ctx context.Context) ([]recur.Event, error)
	// GetEvent returns one instance by id.
	GetEvent(ctx context.Context, id string) (*recur.Event, error)
	// CreateEvents stores a batch of instances, typically one expanded
	// series. Fails if any id already exists.
	CreateEvents(ctx context.Context, events []recur.Event) error
	// UpdateEvent replaces the instance with the same id.
	UpdateEvent(ctx context.Context, event recur.Event) error
	// DeleteEvent removes one instance by id.
	DeleteEvent(ctx context.Context, id string) error
	// UpdateSeries applies a patch to every instance sharing seriesID and
	// returns the updated instances.
	UpdateSeries(ctx context.Context, seriesID string, patch recur.Patch) ([]recur.Event, error)
	// DeleteSeries removes every instance sharing seriesID and reports how
	// many were removed.
	DeleteSeries(ctx context.Context, seriesID string) (int, error)
}
