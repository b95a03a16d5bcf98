package fs

import (
	"errors"
	"fmt"
	"os"

	"github.com/kk-code-lab/rpane/internal/location"
)

var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
)

// PathError reports a failed read of a location. It matches one of
// ErrAccessDenied, ErrNotFound or ErrUnavailable via errors.Is.
type PathError struct {
	Op       string
	Location location.Location
	Kind     error
	Err      error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Location, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Location, e.Err)
}

func (e *PathError) Is(target error) bool {
	return target == e.Kind
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// OperationError is returned by Mutate. Mutations are never retried.
type OperationError struct {
	Op     OpKind
	Path   location.Location
	Reason string
	Err    error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Op, e.Path, e.Reason)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAccessDenied), errors.Is(err, os.ErrPermission):
		return ErrAccessDenied
	case errors.Is(err, ErrNotFound), errors.Is(err, os.ErrNotExist):
		return ErrNotFound
	default:
		return ErrUnavailable
	}
}

func pathError(op string, loc location.Location, err error) error {
	return &PathError{Op: op, Location: loc, Kind: classify(err), Err: err}
}

func operationError(op OpKind, path location.Location, err error) error {
	reason := err.Error()
	var pe *os.PathError
	if errors.As(err, &pe) {
		reason = pe.Err.Error()
	}
	return &OperationError{Op: op, Path: path, Reason: reason, Err: err}
}
