package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// SizeNotFound indicates an unknown standard size designator
	SizeNotFound ErrorCode = "SIZE_NOT_FOUND"
	// TypeNotFound indicates an unknown standard/type identifier
	TypeNotFound ErrorCode = "TYPE_NOT_FOUND"
	// InvalidArgument indicates a non-positive dimension or count where disallowed
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// MalformedTable indicates a table section whose length is not divisible by
	// its detected repeat period
	MalformedTable ErrorCode = "MALFORMED_TABLE"
	// CatalogUnavailable indicates the standards catalog database cannot be opened
	CatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	// SpecInvalid indicates a part specification file failed validation
	SpecInvalid ErrorCode = "SPEC_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// WarehouseError represents a PWH error with code, message, and suggestions
type WarehouseError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new WarehouseError
func New(code ErrorCode, message string) *WarehouseError {
	return &WarehouseError{
		Code:           code,
		Message:        message,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Newf creates a new WarehouseError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WarehouseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new WarehouseError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *WarehouseError {
	e := New(code, message)
	e.cause = cause
	return e
}

// Error implements the error interface
func (e *WarehouseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *WarehouseError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *WarehouseError) WithDetails(details interface{}) *WarehouseError {
	e.Details = details
	return e
}

// CodeOf returns the ErrorCode carried by err, or InternalError when err is
// not a WarehouseError.
func CodeOf(err error) ErrorCode {
	if we, ok := err.(*WarehouseError); ok {
		return we.Code
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	SizeNotFound: {
		{
			Type:        RunCommand,
			Command:     "pwh catalog list",
			Safe:        true,
			Description: "List the standard sizes known to the catalog",
		},
	},
	TypeNotFound: {
		{
			Type:        RunCommand,
			Command:     "pwh catalog list",
			Safe:        true,
			Description: "List the part families known to the catalog",
		},
	},
	CatalogUnavailable: {
		{
			Type:        RunCommand,
			Command:     "pwh catalog import",
			Safe:        true,
			Description: "Rebuild the standards catalog from the embedded tables",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
