// Package core provides CSV ingestion and validation for dashboard datasets.
//
// # Error Codes Reference
//
// This file maps technical errors to user-friendly messages with codes for
// support reference. Codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL004 - Missing column: Required column is missing from the file
//	         Patterns: "missing required column"
//
//	VAL007 - Column count: A row has a different number of cells than the header
//	         Patterns: "column count mismatch"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum size limit
//	          Sentinel: ErrFileTooLarge. Patterns: "file too large", "request body too large"
//
//	FILE002 - Invalid spreadsheet: The workbook could not be opened
//	          Patterns: "open workbook", "read sheet"
//
//	FILE003 - Encoding: The requested text encoding is not supported
//	          Sentinel: ErrUnsupportedEncoding
//
//	FILE004 - No file: No file was selected
//	          Sentinel: ErrNoFile. Patterns: "no file provided"
//
//	FILE005 - Empty file: The file has no data rows
//	          Patterns: "file is empty"
//
//	FILE006 - Read failure: The file could not be read
//	          Patterns: "failed to read file"
//
// # Ingest Errors (ING001-ING099)
//
//	ING001 - System busy: Too many files are being processed
//	         Sentinel: ErrTooManyIngests
//
//	ING002 - Unknown dataset: The dataset key is not registered
//	         Sentinel: ErrUnknownDataset
//
//	ING003 - Request cancelled. Patterns: "context canceled"
//
//	ING004 - Request timeout. Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests. Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the application logs for the original error.
//
// # Matching
//
// Sentinels are checked first with errors.Is. Otherwise every message in the
// error chain is matched case-insensitively with strings.Contains. Patterns
// are tried in order, so specific patterns come before general ones.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

var (
	msgMissingColumns = UserMessage{
		Message: "Required column is missing from the file",
		Action:  "Download the template and check the header row",
		Code:    "VAL004",
	}
	msgColumnCount = UserMessage{
		Message: "A row has a different number of cells than the header",
		Action:  "Check for unquoted commas inside values",
		Code:    "VAL007",
	}
	msgFileTooLarge = UserMessage{
		Message: "File exceeds maximum size limit",
		Action:  "Split the file into smaller files",
		Code:    "FILE001",
	}
	msgBadWorkbook = UserMessage{
		Message: "The spreadsheet could not be opened",
		Action:  "Save the file as .xlsx or export it as CSV",
		Code:    "FILE002",
	}
	msgEncoding = UserMessage{
		Message: "The requested text encoding is not supported",
		Action:  "Use utf-8, windows-1252 or iso-8859-1",
		Code:    "FILE003",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV file to upload",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "The uploaded file has no data rows",
		Action:  "Please upload a file with a header and at least one data row",
		Code:    "FILE005",
	}
	msgReadFailed = UserMessage{
		Message: "The file could not be read",
		Action:  "Try selecting the file again",
		Code:    "FILE006",
	}
	msgBusy = UserMessage{
		Message: "Too many files are being processed",
		Action:  "Please wait a moment and try again",
		Code:    "ING001",
	}
	msgUnknownDataset = UserMessage{
		Message: "Unknown dataset",
		Action:  "Choose one of the listed datasets",
		Code:    "ING002",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "ING003",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "ING004",
	}
	msgRateLimited = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
)

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// errorSentinel maps a sentinel error to its message.
type errorSentinel struct {
	err error
	msg UserMessage
}

var errorSentinels = []errorSentinel{
	{ErrFileTooLarge, msgFileTooLarge},
	{ErrUnsupportedEncoding, msgEncoding},
	{ErrNoFile, msgNoFile},
	{ErrTooManyIngests, msgBusy},
	{ErrUnknownDataset, msgUnknownDataset},
	{context.Canceled, msgCancelled},
	{context.DeadlineExceeded, msgTimeout},
}

// errorPattern defines a substring to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched in order against lowercased error messages.
var errorPatterns = []errorPattern{
	{"missing required column", msgMissingColumns},
	{"column count mismatch", msgColumnCount},
	{"file too large", msgFileTooLarge},
	{"request body too large", msgFileTooLarge},
	{"open workbook", msgBadWorkbook},
	{"read sheet", msgBadWorkbook},
	{"no file provided", msgNoFile},
	{"file is empty", msgEmptyFile},
	{"context canceled", msgCancelled},
	{"context deadline exceeded", msgTimeout},
	{"rate limit", msgRateLimited},
	{"failed to read file", msgReadFailed},
}

// MapError converts a technical error to a user-friendly message.
// A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range errorSentinels {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	// The outermost message may hide its cause (ReadError does), so each
	// pattern is tried against the whole chain.
	chain := chainMessages(err)
	for _, ep := range errorPatterns {
		for _, text := range chain {
			if strings.Contains(text, ep.pattern) {
				return ep.msg
			}
		}
	}

	return defaultMessage
}

// MapMessage maps a plain message, such as a ParseResult error, to a UserMessage.
func MapMessage(msg string) UserMessage {
	if msg == "" {
		return UserMessage{}
	}
	return MapError(errors.New(msg))
}

// chainMessages returns the lowercased messages of err and every error it
// wraps, innermost last.
func chainMessages(err error) []string {
	var out []string
	for err != nil {
		out = append(out, strings.ToLower(err.Error()))
		err = errors.Unwrap(err)
	}
	return out
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

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with its user-facing message.
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

// NewUserError maps err to a UserError. Returns nil if err is nil.
//
// Example:
//
//	ue := NewUserError(err)
//	log.Error("ingest failed", "error", ue.Technical)
//	fmt.Println(ue.User.Code) // "FILE001"
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
