// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// ErrorType represents different types of errors for handling strategies
type ErrorType int

const (
	ErrorTypeUnknown     ErrorType = iota
	ErrorTypeTransient             // file held by another process, database busy
	ErrorTypePermanent             // permissions, unsupported input
	ErrorTypeTimeout               // deadline exceeded
	ErrorTypeNotFound              // missing files
	ErrorTypeInvalidData           // documents that cannot be parsed
)

// ClassifiedError wraps an error with type information
type ClassifiedError struct {
	Original  error
	Type      ErrorType
	Message   string
	Retryable bool
}

func (e *ClassifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Original.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// IsRetryable returns whether this error should be retried
func (e *ClassifiedError) IsRetryable() bool {
	return e.Retryable
}

// lock messages of SQLite and of Windows file sharing
var lockMessages = []string{
	"database is locked",
	"sqlite_busy",
	"being used by another process",
	"sharing violation",
	"resource temporarily unavailable",
}

// ClassifyError categorizes an error for appropriate handling
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	switch {
	case isLockError(err):
		return &ClassifiedError{
			Original:  err,
			Type:      ErrorTypeTransient,
			Message:   fmt.Sprintf("resource busy: %v", err),
			Retryable: true,
		}

	case isTimeoutError(err):
		return &ClassifiedError{
			Original:  err,
			Type:      ErrorTypeTimeout,
			Message:   fmt.Sprintf("timeout: %v", err),
			Retryable: false,
		}

	case errors.Is(err, fs.ErrNotExist):
		return &ClassifiedError{
			Original: err,
			Type:     ErrorTypeNotFound,
			Message:  fmt.Sprintf("not found: %v", err),
		}

	case errors.Is(err, fs.ErrPermission):
		return &ClassifiedError{
			Original: err,
			Type:     ErrorTypePermanent,
			Message:  fmt.Sprintf("permission denied: %v", err),
		}
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "invalid") || strings.Contains(errStr, "malformed") ||
		strings.Contains(errStr, "unsupported") {
		return &ClassifiedError{
			Original: err,
			Type:     ErrorTypeInvalidData,
			Message:  fmt.Sprintf("invalid input: %v", err),
		}
	}

	// Default to unknown, non-retryable
	return &ClassifiedError{
		Original: err,
		Type:     ErrorTypeUnknown,
		Message:  fmt.Sprintf("unknown error: %v", err),
	}
}

func isLockError(err error) bool {
	if errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.EAGAIN) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	for _, msg := range lockMessages {
		if strings.Contains(errStr, msg) {
			return true
		}
	}
	return false
}

func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// NewTransientError creates a new transient error
func NewTransientError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypeTransient,
		Message:   message,
		Retryable: true,
	}
}

// NewPermanentError creates a new permanent error
func NewPermanentError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypePermanent,
		Message:   message,
		Retryable: false,
	}
}
