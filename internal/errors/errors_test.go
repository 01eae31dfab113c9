package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWicliError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("permission denied")

	// When: wrapping with WicliError
	we := New(ErrCodeFileRead, "unable to read file", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, we)
	assert.Equal(t, originalErr, errors.Unwrap(we))
	assert.True(t, errors.Is(we, originalErr))
}

func TestWicliError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "no sources",
			code:     ErrCodeNoSources,
			message:  "no sources configured",
			expected: "[ERR_104_NO_SOURCES] no sources configured",
		},
		{
			name:     "file read",
			code:     ErrCodeFileRead,
			message:  "unable to read a.txt",
			expected: "[ERR_201_FILE_READ] unable to read a.txt",
		},
		{
			name:     "clone",
			code:     ErrCodeCloneFailed,
			message:  "git clone failed",
			expected: "[ERR_301_CLONE_FAILED] git clone failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestWicliError_Is_MatchesByCode(t *testing.T) {
	// Given: two errors with same code and a wrapped one
	err1 := New(ErrCodeFileRead, "file A", nil)
	err2 := New(ErrCodeFileRead, "file B", nil)
	wrapped := fmt.Errorf("loading: %w", err1)

	// Then: they match by code, through wrapping too
	assert.True(t, errors.Is(err1, err2))
	assert.True(t, errors.Is(wrapped, err2))
	assert.False(t, errors.Is(err1, New(ErrCodeNoSources, "x", nil)))
}

func TestWicliError_CategoryFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
	}{
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeNoSources, CategoryConfig},
		{ErrCodeFileRead, CategoryIO},
		{ErrCodeFileNotText, CategoryIO},
		{ErrCodeFilePermission, CategoryIO},
		{ErrCodeCloneFailed, CategoryNetwork},
		{ErrCodeSourceExists, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
		{"BAD", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
		})
	}
}

func TestWicliError_SeverityAndRetryable(t *testing.T) {
	tests := []struct {
		code          string
		wantSeverity  Severity
		wantRetryable bool
	}{
		{ErrCodeFileRead, SeverityWarning, false},
		{ErrCodeFileNotText, SeverityWarning, false},
		{ErrCodeFilePermission, SeverityWarning, false},
		{ErrCodeCloneFailed, SeverityWarning, true},
		{ErrCodeLockFailed, SeverityWarning, true},
		{ErrCodeNoSources, SeverityError, false},
		{ErrCodeConfigInvalid, SeverityError, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantSeverity, err.Severity)
			assert.Equal(t, tt.wantRetryable, err.Retryable)
			assert.Equal(t, tt.wantRetryable, IsRetryable(err))
		})
	}
}

func TestWicliError_WithDetailAndSuggestion(t *testing.T) {
	// Given: a base error
	err := New(ErrCodeFileRead, "unable to read file", nil)

	// When: adding context
	err = err.WithDetail("path", "/tmp/a.txt").WithSuggestion("check permissions")

	// Then: context is available
	assert.Equal(t, "/tmp/a.txt", err.Details["path"])
	assert.Equal(t, "check permissions", err.Suggestion)
}

func TestWrap_NilErrorReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestGetCode_FindsCodeInChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeSourceNotFound, "missing", nil))

	assert.Equal(t, ErrCodeSourceNotFound, GetCode(err))
	assert.True(t, HasCode(err, ErrCodeSourceNotFound))
	assert.Equal(t, CategoryValidation, GetCategory(err))
	assert.Empty(t, GetCode(errors.New("plain")))
}

func TestFormatForCLI(t *testing.T) {
	// Given: an error with a suggestion
	err := New(ErrCodeNoSources, "no sources configured", nil).
		WithSuggestion("run 'wicli sources add <path>'")

	// When: formatting for the terminal
	out := FormatForCLI(err)

	// Then: message, hint and code are shown
	assert.Contains(t, out, "Error: no sources configured")
	assert.Contains(t, out, "Hint: run 'wicli sources add <path>'")
	assert.Contains(t, out, "Code: ERR_104_NO_SOURCES")

	// And: plain errors are wrapped as internal
	assert.Contains(t, FormatForCLI(errors.New("boom")), ErrCodeInternal)
	assert.Empty(t, FormatForCLI(nil))
}

func TestFormatJSON(t *testing.T) {
	// Given: an error with details and a cause
	err := New(ErrCodeFileRead, "unable to read file", errors.New("EACCES")).
		WithDetail("path", "/tmp/a.txt")

	// When: formatting as JSON
	data, jsonErr := FormatJSON(err)
	require.NoError(t, jsonErr)

	// Then: fields round-trip
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, ErrCodeFileRead, parsed["code"])
	assert.Equal(t, "IO", parsed["category"])
	assert.Equal(t, "EACCES", parsed["cause"])
}

func TestFormatForLog(t *testing.T) {
	err := New(ErrCodeFileRead, "unable to read file", errors.New("EACCES")).
		WithDetail("root", "/r").
		WithDetail("path", "/r/a.txt")

	attrs := FormatForLog(err)

	keys := make([]string, 0, len(attrs))
	for _, a := range attrs {
		keys = append(keys, a.Key)
	}
	assert.Equal(t, []string{"error_code", "message", "category", "severity", "cause", "detail_path", "detail_root"}, keys)

	plain := FormatForLog(errors.New("boom"))
	require.Len(t, plain, 1)
	assert.Equal(t, "error", plain[0].Key)
	assert.Nil(t, FormatForLog(nil))
}

func TestRetry_RetriesRetryableErrors(t *testing.T) {
	// Given: a function that fails twice with a retryable error
	attempts := 0
	fn := func() error {
		attempts++
		if attempts < 3 {
			return New(ErrCodeCloneFailed, "network hiccup", nil)
		}
		return nil
	}
	cfg := RetryConfig{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}

	// When: retrying
	err := Retry(context.Background(), cfg, fn)

	// Then: succeeds on the third attempt
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_StopsOnNonRetryableError(t *testing.T) {
	attempts := 0
	fn := func() error {
		attempts++
		return New(ErrCodeInvalidURL, "bad url", nil)
	}
	cfg := RetryConfig{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2}

	err := Retry(context.Background(), cfg, fn)

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.True(t, HasCode(err, ErrCodeInvalidURL))
}

func TestRetry_FailsAfterMaxRetries(t *testing.T) {
	attempts := 0
	fn := func() error {
		attempts++
		return New(ErrCodeCloneFailed, "down", nil)
	}
	cfg := RetryConfig{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2}

	err := Retry(context.Background(), cfg, fn)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Equal(t, 3, attempts)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, DefaultRetryConfig(), func() error { return nil })

	assert.ErrorIs(t, err, context.Canceled)
}
