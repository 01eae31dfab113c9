package errors

import (
	"errors"
	"fmt"
)

// WicliError is the structured error type for wicli.
// It carries enough context for logging, CLI presentation and MCP mapping.
type WicliError struct {
	// Code is the unique error code (e.g., "ERR_201_FILE_READ").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Network, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *WicliError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *WicliError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a WicliError with the same code,
// so errors.Is works against the package sentinels.
func (e *WicliError) Is(target error) bool {
	if t, ok := target.(*WicliError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *WicliError) WithDetail(key, value string) *WicliError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *WicliError) WithSuggestion(suggestion string) *WicliError {
	e.Suggestion = suggestion
	return e
}

// New creates a new WicliError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *WicliError {
	return &WicliError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a WicliError from an existing error.
// The error's message becomes the WicliError message.
func Wrap(code string, err error) *WicliError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *WicliError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *WicliError {
	return New(ErrCodeFileRead, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *WicliError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *WicliError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var we *WicliError
	if errors.As(err, &we) {
		return we.Retryable
	}
	return false
}

// GetCode extracts the error code from a WicliError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var we *WicliError
	if errors.As(err, &we) {
		return we.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// GetCategory extracts the category from a WicliError.
// Returns empty string if not a WicliError.
func GetCategory(err error) Category {
	var we *WicliError
	if errors.As(err, &we) {
		return we.Category
	}
	return ""
}
