// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"time"
)

// ErrorType classifies processing errors.
type ErrorType int

const (
	// ErrorTypeDocumentRead indicates the input document could not be read
	ErrorTypeDocumentRead ErrorType = iota

	// ErrorTypeDocumentWrite indicates the output document could not be written
	ErrorTypeDocumentWrite

	// ErrorTypeParagraph indicates a single paragraph failed to process
	ErrorTypeParagraph

	// ErrorTypeConfiguration indicates invalid settings
	ErrorTypeConfiguration

	// ErrorTypeArchive indicates the run archive could not be updated
	ErrorTypeArchive
)

// String returns the string representation of the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeDocumentRead:
		return "document_read"
	case ErrorTypeDocumentWrite:
		return "document_write"
	case ErrorTypeParagraph:
		return "paragraph"
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// ProcessingError represents an error that occurred while anonymising a document
type ProcessingError struct {
	// Type is the type of error
	Type ErrorType

	// Message is the error message
	Message string

	// FilePath is the document being processed when the error occurred
	FilePath string

	// Component is the component that generated the error
	Component string

	// Paragraph is the index of the failed paragraph, -1 when not applicable
	Paragraph int

	// Recoverable indicates whether processing went on after the error
	Recoverable bool

	// Timestamp is when the error occurred
	Timestamp time.Time

	// Cause is the underlying error that caused this error
	Cause error
}

// Error implements the error interface
func (e *ProcessingError) Error() string {
	location := fmt.Sprintf("component: %s", e.Component)
	if e.FilePath != "" {
		location = fmt.Sprintf("file: %s, %s", e.FilePath, location)
	}
	if e.Paragraph >= 0 {
		location = fmt.Sprintf("%s, paragraph: %d", location, e.Paragraph)
	}
	msg := fmt.Sprintf("[%s] %s (%s)", e.Type, e.Message, location)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping
func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(errorType ErrorType, message, filePath, component string, cause error) *ProcessingError {
	return &ProcessingError{
		Type:        errorType,
		Message:     message,
		FilePath:    filePath,
		Component:   component,
		Paragraph:   -1,
		Recoverable: isRecoverable(errorType),
		Timestamp:   time.Now(),
		Cause:       cause,
	}
}

func isRecoverable(t ErrorType) bool {
	switch t {
	case ErrorTypeParagraph:
		return true // the paragraph keeps its original text
	case ErrorTypeArchive:
		return true // outputs are already written
	default:
		return false
	}
}
