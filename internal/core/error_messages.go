package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid date: An order date does not match dd-mm-yyyy
//	         Patterns: "date parse error"
//	VAL002 - Invalid number: A numeric column holds text
//	         Patterns: "conversion error"
//	VAL003 - Invalid filter date: The cutoff is not YYYY-MM-DD
//	         Patterns: "invalid cutoff"
//	VAL004 - Missing column: Required column is missing from the dataset
//	         Patterns: "missing required column"
//	VAL005 - Unknown traffic density in a filter
//	         Patterns: "unknown traffic"
//
// # Data Errors (DATA001-DATA099)
//
//	DATA001 - Empty selection: A statistic was requested over zero rows
//	          Patterns: "no matching rows"
//	DATA002 - Not loaded: No dataset has been loaded yet
//	          Patterns: "no dataset loaded"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Not found: The dataset file does not exist
//	FILE002 - Unsupported format: Only .csv and .xlsx are read
//	FILE003 - Encoding error: The file is not valid UTF-8 text
//	FILE004 - Empty file: The file has no header row
//	FILE005 - Missing sheet: The configured worksheet does not exist
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Connection refused: The dataset database is unreachable
//	SRC002 - Missing table: The dataset table does not exist
//	SRC003 - Timeout: Loading the dataset took too long
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - Unknown table
//	TBL002 - Unknown view
//	TBL003 - Unsupported export format
//
// # Other
//
//	RATE001 - Too many requests
//	ERR000  - Unexpected error (fallback)

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Patterns are matched using strings.Contains. The first matching pattern
// wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Validation Errors (VAL001-VAL005)
	// =========================================================================
	{
		pattern: "date parse error",
		msg: UserMessage{
			Message: "An order date is not in day-month-year format",
			Action:  "Use dd-mm-yyyy dates such as 19-03-2022",
			Code:    "VAL001",
		},
	},
	{
		pattern: "conversion error",
		msg: UserMessage{
			Message: "A numeric column contains a value that is not a number",
			Action:  "Fix the reported line or mark the value as NaN",
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid cutoff",
		msg: UserMessage{
			Message: "The cutoff date is not valid",
			Action:  "Use YYYY-MM-DD, for example 2022-04-06",
			Code:    "VAL003",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from the dataset",
			Action:  "Check that all required columns are present in your file",
			Code:    "VAL004",
		},
	},
	{
		pattern: "unknown traffic",
		msg: UserMessage{
			Message: "Unknown traffic density",
			Action:  "Choose from Low, Medium, High and Jam",
			Code:    "VAL005",
		},
	},

	// =========================================================================
	// Data Errors (DATA001-DATA002)
	// =========================================================================
	{
		pattern: "no matching rows",
		msg: UserMessage{
			Message: "No orders match the current filters",
			Action:  "Move the cutoff date later or select more traffic levels",
			Code:    "DATA001",
		},
	},
	{
		pattern: "no dataset loaded",
		msg: UserMessage{
			Message: "The dataset has not been loaded yet",
			Action:  "Please wait for the load to finish or trigger a reload",
			Code:    "DATA002",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE005)
	// =========================================================================
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The dataset file was not found",
			Action:  "Check DATASET_PATH or the --data flag",
			Code:    "FILE001",
		},
	},
	{
		pattern: "unsupported dataset format",
		msg: UserMessage{
			Message: "The dataset file type is not supported",
			Action:  "Provide a .csv or .xlsx file",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The dataset file is empty",
			Action:  "Provide a file with a header row and data rows",
			Code:    "FILE004",
		},
	},
	{
		pattern: "worksheet not found",
		msg: UserMessage{
			Message: "The worksheet was not found in the workbook",
			Action:  "Check DATASET_SHEET or the --sheet flag",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Source Errors (SRC001-SRC003)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the dataset database",
			Action:  "Please try again in a few moments",
			Code:    "SRC001",
		},
	},
	{
		pattern: "sqlstate 42p01",
		msg: UserMessage{
			Message: "The dataset table does not exist",
			Action:  "Check DATASET_TABLE",
			Code:    "SRC002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Loading the dataset timed out",
			Action:  "Increase DATASET_LOAD_TIMEOUT or try again later",
			Code:    "SRC003",
		},
	},

	// =========================================================================
	// Table Errors (TBL001-TBL003)
	// =========================================================================
	{
		pattern: "unknown table",
		msg: UserMessage{
			Message: "Table not found",
			Action:  "Choose a table from the list",
			Code:    "TBL001",
		},
	},
	{
		pattern: "unknown view",
		msg: UserMessage{
			Message: "Page not found",
			Action:  "Choose orders, drivers or restaurants",
			Code:    "TBL002",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "Export format not supported",
			Action:  "Download as csv or xlsx",
			Code:    "TBL003",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	msg := MapError(&EmptyInputError{Op: "average distance"})
//	// msg.Code == "DATA001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError by mapping a technical error to a user-friendly message.
// Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
