package timelock

import (
	"fmt"
)

// ErrorCategory represents the category of a timelock error
type ErrorCategory string

const (
	ErrorCategoryThreshold  ErrorCategory = "threshold"
	ErrorCategoryShares     ErrorCategory = "shares"
	ErrorCategoryEncoding   ErrorCategory = "encoding"
	ErrorCategoryPoint      ErrorCategory = "point"
	ErrorCategoryEncryption ErrorCategory = "encryption"
	ErrorCategoryRandomness ErrorCategory = "randomness"
	ErrorCategorySession    ErrorCategory = "session"
	ErrorCategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	ErrorSeverityLow      ErrorSeverity = "low"      // Non-critical, operation can continue
	ErrorSeverityMedium   ErrorSeverity = "medium"   // Important, may affect functionality
	ErrorSeverityHigh     ErrorSeverity = "high"     // Critical, operation should stop
	ErrorSeverityCritical ErrorSeverity = "critical" // System-level failure
)

// CoreError represents a structured error in the timelock library
type CoreError struct {
	Category    ErrorCategory          `json:"category"`
	Severity    ErrorSeverity          `json:"severity"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Cause       error                  `json:"-"` // Original error, not serialized
	Context     map[string]interface{} `json:"context,omitempty"`
	Recoverable bool                   `json:"recoverable"`
}

// Error implements the error interface
func (e *CoreError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CoreError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a CoreError with the same code.
// Derived errors produced by WithContext or WithCause keep matching their
// sentinel under errors.Is.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	return ok && t.Code == e.Code
}

// WithContext adds context information to the error
func (e *CoreError) WithContext(key string, value interface{}) *CoreError {
	// Create a copy to avoid race conditions
	newError := &CoreError{
		Category:    e.Category,
		Severity:    e.Severity,
		Code:        e.Code,
		Message:     e.Message,
		Details:     e.Details,
		Recoverable: e.Recoverable,
		Cause:       e.Cause,
		Context:     make(map[string]interface{}),
	}

	for k, v := range e.Context {
		newError.Context[k] = v
	}

	newError.Context[key] = value
	return newError
}

// WithDetails sets the details string on a copy of the error
func (e *CoreError) WithDetails(details string) *CoreError {
	newError := e.WithCause(e.Cause)
	newError.Details = details
	return newError
}

// WithCause sets the underlying cause of the error
func (e *CoreError) WithCause(cause error) *CoreError {
	newError := &CoreError{
		Category:    e.Category,
		Severity:    e.Severity,
		Code:        e.Code,
		Message:     e.Message,
		Details:     e.Details,
		Recoverable: e.Recoverable,
		Cause:       cause,
		Context:     make(map[string]interface{}),
	}

	for k, v := range e.Context {
		newError.Context[k] = v
	}

	return newError
}

// IsRecoverable returns whether the error is recoverable
func (e *CoreError) IsRecoverable() bool {
	return e.Recoverable
}

// NewCoreError creates a new timelock error
func NewCoreError(category ErrorCategory, severity ErrorSeverity, code, message string) *CoreError {
	return &CoreError{
		Category:    category,
		Severity:    severity,
		Code:        code,
		Message:     message,
		Context:     make(map[string]interface{}),
		Recoverable: severity != ErrorSeverityCritical,
	}
}

// Threshold and share errors
var (
	ErrInvalidThreshold = NewCoreError(
		ErrorCategoryThreshold, ErrorSeverityHigh, "INVALID_THRESHOLD",
		"threshold must be at least 1 and no greater than the number of shares")

	ErrTooManyShares = NewCoreError(
		ErrorCategoryThreshold, ErrorSeverityHigh, "TOO_MANY_SHARES",
		"number of shares cannot exceed 255 to prevent index overflow")

	ErrInsufficientShares = NewCoreError(
		ErrorCategoryShares, ErrorSeverityHigh, "INSUFFICIENT_SHARES",
		"not enough shares to reconstruct the secret")

	ErrDuplicateShareIndex = NewCoreError(
		ErrorCategoryShares, ErrorSeverityHigh, "DUPLICATE_SHARE_INDEX",
		"two shares carry the same index")

	ErrInvalidShareIndex = NewCoreError(
		ErrorCategoryShares, ErrorSeverityHigh, "INVALID_SHARE_INDEX",
		"share index must be a positive integer")

	ErrIndexOrder = NewCoreError(
		ErrorCategoryShares, ErrorSeverityHigh, "INDEX_ORDER",
		"index list must be sorted strictly ascending")

	ErrMissingAlpha = NewCoreError(
		ErrorCategoryShares, ErrorSeverityHigh, "MISSING_ALPHA",
		"no alpha value released for a late share index")
)

// Encoding and point errors
var (
	ErrInvalidScalarLength = NewCoreError(
		ErrorCategoryEncoding, ErrorSeverityMedium, "INVALID_SCALAR_LENGTH",
		"scalar encoding does not fit the fixed 32-byte width")

	ErrInvalidPointLength = NewCoreError(
		ErrorCategoryEncoding, ErrorSeverityMedium, "INVALID_POINT_LENGTH",
		"point encoding has the wrong length")

	ErrInvalidHex = NewCoreError(
		ErrorCategoryEncoding, ErrorSeverityMedium, "INVALID_HEX",
		"value is not a valid hex string")

	ErrMalformedPoint = NewCoreError(
		ErrorCategoryPoint, ErrorSeverityHigh, "MALFORMED_POINT",
		"point is not on the curve or not in the correct subgroup")

	ErrScalarZero = NewCoreError(
		ErrorCategoryEncoding, ErrorSeverityHigh, "SCALAR_ZERO",
		"scalar is zero and cannot be inverted")
)

// Encryption errors
var (
	ErrInvalidKeyOrCorruptData = NewCoreError(
		ErrorCategoryEncryption, ErrorSeverityHigh, "INVALID_KEY_OR_CORRUPT_DATA",
		"authentication failed: wrong key or tampered ciphertext")

	ErrInvalidKeyLength = NewCoreError(
		ErrorCategoryEncryption, ErrorSeverityHigh, "INVALID_KEY_LENGTH",
		"encryption key must be 32 bytes")

	ErrInvalidNonceLength = NewCoreError(
		ErrorCategoryEncryption, ErrorSeverityHigh, "INVALID_NONCE_LENGTH",
		"nonce has the wrong length for the cipher")

	ErrUnknownKDF = NewCoreError(
		ErrorCategoryEncryption, ErrorSeverityHigh, "UNKNOWN_KDF",
		"key derivation algorithm is not supported")
)

// Randomness and session errors
var (
	ErrRandomnessGeneration = NewCoreError(
		ErrorCategoryRandomness, ErrorSeverityCritical, "RANDOMNESS_GENERATION_FAILED",
		"failed to generate secure randomness")

	ErrInvalidSessionParams = NewCoreError(
		ErrorCategorySession, ErrorSeverityHigh, "INVALID_SESSION_PARAMS",
		"vote session parameters are inconsistent")
)

// WrapError wraps an existing error with timelock error context
func WrapError(err error, category ErrorCategory, severity ErrorSeverity, code, message string) *CoreError {
	return NewCoreError(category, severity, code, message).WithCause(err)
}

// IsErrorCategory checks if an error belongs to a specific category
func IsErrorCategory(err error, category ErrorCategory) bool {
	if coreErr, ok := err.(*CoreError); ok {
		return coreErr.Category == category
	}
	return false
}

// IsRecoverableError checks if an error is recoverable
func IsRecoverableError(err error) bool {
	if coreErr, ok := err.(*CoreError); ok {
		return coreErr.IsRecoverable()
	}
	return true // Non-timelock errors are assumed recoverable
}
