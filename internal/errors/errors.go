package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/tracker/internal/logger"
)

var (
	// ErrNotFound is returned when a tracker, category or record lookup misses.
	ErrNotFound = stderrors.New("not found")
	// ErrDuplicateName is returned when a category title collides with an existing one.
	ErrDuplicateName = stderrors.New("a category with this title already exists")
	// ErrCategoryNotEmpty is returned when deleting a category that still owns trackers.
	ErrCategoryNotEmpty = stderrors.New("category still has trackers")
)

// PersistenceError wraps a failure reported by the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError for op. Domain errors
// (ErrNotFound, ErrDuplicateName, ErrCategoryNotEmpty) are passed through
// unwrapped so callers can match them directly. A nil err yields nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// NotFound returns ErrNotFound annotated with what was being looked up.
func NotFound(kind, ref string) error {
	return fmt.Errorf("%s %q: %w", kind, ref, ErrNotFound)
}

// IsDomain reports whether err is one of the domain error kinds.
func IsDomain(err error) bool {
	return stderrors.Is(err, ErrNotFound) ||
		stderrors.Is(err, ErrDuplicateName) ||
		stderrors.Is(err, ErrCategoryNotEmpty)
}

// IsPersistence reports whether err wraps a store failure.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return stderrors.As(err, &pe)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
