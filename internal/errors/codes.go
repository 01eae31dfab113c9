// Package errors provides structured error handling for wicli.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (file, disk)
//   - 3XX: Network errors
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryNetwork indicates network-related errors.
	CategoryNetwork Category = "NETWORK"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid = "ERR_102_CONFIG_INVALID"
	ErrCodeNoSources     = "ERR_104_NO_SOURCES"

	// IO errors (200-299)
	ErrCodeFileRead       = "ERR_201_FILE_READ"
	ErrCodeFilePermission = "ERR_202_FILE_PERMISSION"
	ErrCodeLockFailed     = "ERR_203_LOCK_FAILED"
	ErrCodeFileTooLarge   = "ERR_204_FILE_TOO_LARGE"
	ErrCodeFileNotText    = "ERR_206_FILE_NOT_TEXT"

	// Network errors (300-399)
	ErrCodeCloneFailed = "ERR_301_CLONE_FAILED"

	// Validation errors (400-499)
	ErrCodeInvalidInput   = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidURL     = "ERR_402_INVALID_URL"
	ErrCodeNotADirectory  = "ERR_403_NOT_A_DIRECTORY"
	ErrCodeInvalidPath    = "ERR_404_INVALID_PATH"
	ErrCodeSourceExists   = "ERR_405_SOURCE_EXISTS"
	ErrCodeSourceNotFound = "ERR_406_SOURCE_NOT_FOUND"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// "102" from "ERR_102_CONFIG_INVALID"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryNetwork
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeFileRead, ErrCodeFilePermission, ErrCodeFileNotText, ErrCodeFileTooLarge:
		// Per-file problems degrade a search, they never end it.
		return SeverityWarning
	}

	if isRetryableCode(code) {
		return SeverityWarning
	}

	return SeverityError
}

// isRetryableCode checks if an error code represents a retryable error.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeCloneFailed, ErrCodeLockFailed:
		return true
	default:
		return false
	}
}
