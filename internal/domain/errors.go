// Package domain defines domain-specific errors.
// These errors represent pipeline failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that components can return.
var (
	// ErrNotInitialized is returned when an operation is attempted on an uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrDisposed is returned (or panicked with) when a disposed component is used.
	ErrDisposed = errors.New("component disposed")

	// ErrInvalidFrame is returned when frame dimensions cannot be rendered.
	ErrInvalidFrame = errors.New("invalid frame")

	// ErrEmptySpectrum is returned when a spectrum has no usable bins.
	ErrEmptySpectrum = errors.New("empty spectrum")

	// ErrSpectrumUnavailable is returned when a source has no spectrum to offer yet.
	ErrSpectrumUnavailable = errors.New("spectrum data unavailable")

	// ErrSettingsNotFound is returned when no settings have been stored.
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrAlreadyRunning is returned when a service is started twice.
	ErrAlreadyRunning = errors.New("already running")
)

// RendererError represents a lifecycle failure of a renderer.
type RendererError struct {
	Renderer string // Renderer name (e.g., "particles")
	Op       string // Operation that failed (e.g., "initialize", "render")
	Message  string // Error message
	Err      error  // Underlying error
}

// Error implements the error interface.
func (e *RendererError) Error() string {
	return fmt.Sprintf("renderer %s.%s failed: %s", e.Renderer, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RendererError) Unwrap() error {
	return e.Err
}

// NewRendererError creates a new RendererError.
func NewRendererError(renderer, op, message string, err error) *RendererError {
	return &RendererError{
		Renderer: renderer,
		Op:       op,
		Message:  message,
		Err:      err,
	}
}

// RepositoryError represents an error from a repository.
// This wraps persistence layer errors with additional context.
type RepositoryError struct {
	Op      string // Operation that failed (e.g., "save", "load")
	Type    string // Repository type (e.g., "preferences", "toml")
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s.%s failed: %s", e.Type, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, repoType, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Type:    repoType,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   any    // Value that failed validation
	Message string // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
