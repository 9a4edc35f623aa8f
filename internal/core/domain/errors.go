package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	// It is an expected outcome of a lookup, not a failure of the store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidQuery indicates malformed search parameters, such as a negative limit.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrConfiguration indicates the corpus root is missing or unreadable.
	ErrConfiguration = errors.New("configuration error")

	// ErrIdentifierCollision indicates two corpus files map to the same identifier.
	// The rebuild that detected it is rejected; the served snapshot is kept.
	ErrIdentifierCollision = errors.New("identifier collision")

	// ErrServiceUnavailable indicates a driving port was used before it was wired.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ConfigurationError reports an unusable corpus root.
type ConfigurationError struct {
	// Root is the configured corpus root.
	Root string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("corpus root %q: %v", e.Root, e.Err)
}

// Unwrap exposes both ErrConfiguration and the underlying cause.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

// CollisionError reports corpus files that resolve to the same identifier.
type CollisionError struct {
	// ID is the contested identifier.
	ID string

	// Paths are the colliding relative paths, sorted.
	Paths []string
}

// Error implements error.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("identifier %q is produced by %s", e.ID, strings.Join(e.Paths, ", "))
}

// Unwrap returns ErrIdentifierCollision.
func (e *CollisionError) Unwrap() error {
	return ErrIdentifierCollision
}

// ScanWarning describes a file or directory left out of a rebuild.
type ScanWarning struct {
	// Path is relative to the corpus root.
	Path string `json:"path"`

	// Message describes why the path was skipped.
	Message string `json:"message"`
}

// String formats the warning for logs.
func (w ScanWarning) String() string {
	return w.Path + ": " + w.Message
}
