package state

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHistory is returned when stepping past either end of a history.
	ErrNoHistory = errors.New("no history in that direction")
	// ErrNotFound is returned for unknown pane or tab ids.
	ErrNotFound = errors.New("not found")
	// ErrNoActivePane and ErrNoActiveTab indicate a broken session invariant.
	ErrNoActivePane = errors.New("no active pane")
	ErrNoActiveTab  = errors.New("no active tab")
)

// NoticeError marks an error that should be shown to the user as a
// dismissible notification rather than treated as a fault.
type NoticeError struct {
	Err error
}

func (e *NoticeError) Error() string {
	return e.Err.Error()
}

func (e *NoticeError) Unwrap() error {
	return e.Err
}

func notice(err error) error {
	if err == nil {
		return nil
	}
	return &NoticeError{Err: err}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
