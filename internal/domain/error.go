package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These map to HTTP status codes and determine user-facing messages.
const (
	EINTERNAL     = "internal"      // 500 - Internal server error (hide details)
	EINVALID      = "invalid"       // 400 - Validation error (bad input)
	ENOTFOUND     = "not_found"     // 404 - Resource not found
	EUNAUTHORIZED = "unauthorized"  // 401 - Authentication required
	EFORBIDDEN    = "forbidden"     // 403 - Authenticated but not permitted

	// Tax engine specific codes.
	EINVALIDSTATE = "invalid_state"          // 400 - Unknown jurisdiction code
	EINVALIDZIP   = "invalid_postal_code"    // 400 - Malformed postal code
	EAMBIGUOUS    = "ambiguous_jurisdiction" // 422 - No determinable primary state
	ESTUB         = "stub_jurisdiction"      // 422 - Rule set exists but scheme not modeled
)

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EINVALID, EINVALIDSTATE).
	Code string

	// Message is a human-readable error message safe to show to callers.
	Message string

	// Op is the operation where the error occurred (e.g., "rates.lookup").
	// Used for debugging and logging, not shown to callers.
	Op string

	// Err is the underlying error, if any. Used for error wrapping.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for nil or non-domain errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return EINTERNAL
}

// ErrorMessage extracts a caller-facing message from an error.
// For internal errors, returns a generic message to avoid leaking details.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Code == EINTERNAL {
			return "An internal error occurred. Please try again later."
		}
		return e.Message
	}

	return "An internal error occurred. Please try again later."
}

// ErrorOp extracts the operation from an error (for logging).
func ErrorOp(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}

	return ""
}

// Errorf creates a new domain error with formatted message.
// Example: domain.Errorf(domain.EINVALIDSTATE, "rules.get", "unknown state code: %s", code)
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with a domain error code and operation.
// Preserves the underlying error for logging while providing structure.
// Returns nil if err is nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsCode returns true if err has the given error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// NotFound creates a not found error for a resource.
func NotFound(op, resource, identifier string) error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
	}
}

// Invalid creates a validation error for a single issue.
// Example: domain.Invalid("quote.validate", "vehicle price must be positive")
func Invalid(op, message string) error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: message,
	}
}

// InvalidState creates an unknown-jurisdiction error.
func InvalidState(op, code string) error {
	return &Error{
		Code:    EINVALIDSTATE,
		Op:      op,
		Message: fmt.Sprintf("unknown state code: %q", code),
	}
}

// InvalidPostalCode creates a malformed-postal-code error.
func InvalidPostalCode(op, zip string) error {
	return &Error{
		Code:    EINVALIDZIP,
		Op:      op,
		Message: fmt.Sprintf("invalid postal code: %q", zip),
	}
}

// AmbiguousJurisdiction creates an error for an unresolvable primary state.
func AmbiguousJurisdiction(op, message string) error {
	return &Error{
		Code:    EAMBIGUOUS,
		Op:      op,
		Message: message,
	}
}

// StubJurisdiction creates an error for a jurisdiction whose tax scheme is
// not fully modeled. Calculators refuse to apply a default scheme silently.
func StubJurisdiction(op, state, reason string) error {
	return &Error{
		Code:    ESTUB,
		Op:      op,
		Message: fmt.Sprintf("tax scheme for %s is not fully modeled: %s", state, reason),
	}
}

// Internal creates an internal error (wraps underlying error).
// The message shown to callers will be generic; the underlying error is for logging.
func Internal(err error, op, message string) error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(op, message string) error {
	return &Error{
		Code:    EUNAUTHORIZED,
		Op:      op,
		Message: message,
	}
}
