// Package errors provides enhanced error types with context and recovery
// metadata for bundlekit. These errors carry suggestions, a context map, and
// lightweight stack traces so failures can be shown to the user as a log
// line or a CLI diagnostic without losing the underlying cause.
package errors

import (
	stderrors "errors"
	"runtime"
	"strings"
)

// ErrorCode categorizes errors for handling
type ErrorCode string

const (
	// Validation errors
	ErrMissingConfig ErrorCode = "MISSING_CONFIG"
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Process errors
	ErrToolNotFound  ErrorCode = "TOOL_NOT_FOUND"
	ErrProcessStart  ErrorCode = "PROCESS_START"
	ErrProcessExit   ErrorCode = "PROCESS_EXIT"
	ErrTimeout       ErrorCode = "TIMEOUT"
	ErrCancelled     ErrorCode = "CANCELLED"
	ErrEmptyCommand  ErrorCode = "EMPTY_COMMAND"
	ErrDeviceMissing ErrorCode = "DEVICE_MISSING"

	// Storage errors
	ErrStoreCorrupted  ErrorCode = "STORE_CORRUPTED"
	ErrStorePermission ErrorCode = "STORE_PERMISSION"

	// Filesystem errors
	ErrFileNotFound     ErrorCode = "FILE_NOT_FOUND"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrArchiveCorrupt   ErrorCode = "ARCHIVE_CORRUPT"

	// Unknown errors
	ErrUnknown ErrorCode = "UNKNOWN"
)

// StackFrame represents a single stack frame
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// Error is the base error type with rich context
type Error struct {
	Code        ErrorCode         `json:"code"`
	Message     string            `json:"message"`
	Details     string            `json:"details,omitempty"`
	Suggestion  string            `json:"suggestion,omitempty"`
	Cause       error             `json:"-"`
	Context     map[string]string `json:"context,omitempty"`
	Recoverable bool              `json:"recoverable"`
	Stack       []StackFrame      `json:"stack,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}
	if e.Cause != nil {
		sb.WriteString("\nCaused by: ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithSuggestion adds a suggestion for fixing the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// WithContext adds contextual information
func (e *Error) WithContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps another error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetails adds detailed information
func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// New creates a new Error
func New(code ErrorCode, message string) *Error {
	err := &Error{
		Code:        code,
		Message:     message,
		Recoverable: isRecoverable(code),
		Context:     make(map[string]string),
	}
	err.captureStack()
	err.Suggestion = getDefaultSuggestion(code)
	return err
}

// Wrap wraps a standard error with Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	if kitErr, ok := err.(*Error); ok {
		if message != "" {
			kitErr.Message = message + ": " + kitErr.Message
		}
		return kitErr
	}
	return New(code, message).WithCause(err)
}

// CodeOf returns the code of the first *Error in err's chain, or ErrUnknown.
func CodeOf(err error) ErrorCode {
	var kitErr *Error
	if stderrors.As(err, &kitErr) {
		return kitErr.Code
	}
	return ErrUnknown
}

// HasCode reports whether err's chain contains an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	return stderrors.Is(err, &Error{Code: code})
}

// captureStack captures the current stack trace
func (e *Error) captureStack() {
	const maxFrames = 10
	pc := make([]uintptr, maxFrames)
	n := runtime.Callers(3, pc) // Skip runtime.Callers, captureStack, New/Wrap
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") || strings.Contains(frame.File, "testing/") {
			if !more {
				break
			}
			continue
		}
		e.Stack = append(e.Stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
}

// isRecoverable determines if an error can be automatically recovered
func isRecoverable(code ErrorCode) bool {
	switch code {
	case ErrStoreCorrupted:
		return true
	default:
		return false
	}
}

// getDefaultSuggestion provides default fix suggestions
func getDefaultSuggestion(code ErrorCode) string {
	suggestions := map[ErrorCode]string{
		ErrMissingConfig:    "Set the field with: bundlekit config set <key> <value>",
		ErrInvalidConfig:    "Inspect current values with: bundlekit config show",
		ErrToolNotFound:     "Check the tool path and that java is installed: bundlekit doctor",
		ErrProcessStart:     "Check that the tool path points to an executable: bundlekit doctor",
		ErrProcessExit:      "Read the tool output above; rerun with --verbose for the full command",
		ErrTimeout:          "Raise the limit with --timeout or bundlekit config set timeout 1h",
		ErrDeviceMissing:    "Connect a device and list it with: bundlekit devices",
		ErrStoreCorrupted:   "Remove the settings file shown by: bundlekit config path",
		ErrStorePermission:  "Check permissions on the settings directory",
		ErrFileNotFound:     "Check that the path exists",
		ErrPermissionDenied: "Check file permissions",
		ErrArchiveCorrupt:   "Rebuild the .apks with --overwrite",
	}
	if s, ok := suggestions[code]; ok {
		return s
	}
	return "Run 'bundlekit doctor' for diagnostics"
}
