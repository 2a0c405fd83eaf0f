// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

func TestRetryWithBackoff_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), RetryConfig{MaxRetries: 3}, func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryWithBackoff_RetriesOnTransientError(t *testing.T) {
	calls := 0
	transient := NewTransientError("temporary failure", nil)

	err := RetryWithBackoff(context.Background(), RetryConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     10 * time.Millisecond,
		Multiplier:      2.0,
	}, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return transient
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryWithBackoff_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := NewPermanentError("permanent failure", nil)

	err := RetryWithBackoff(context.Background(), RetryConfig{
		MaxRetries:      5,
		InitialInterval: time.Millisecond,
		Multiplier:      2.0,
	}, func(ctx context.Context) error {
		calls++
		return permanent
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if calls != 1 {
		t.Errorf("expected 1 call (no retries on permanent error), got %d", calls)
	}
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	transient := NewTransientError("always fails", nil)

	err := RetryWithBackoff(context.Background(), RetryConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     10 * time.Millisecond,
		Multiplier:      2.0,
	}, func(ctx context.Context) error {
		calls++
		return transient
	})

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 4 { // initial + 3 retries
		t.Errorf("expected 4 calls, got %d", calls)
	}
}

func TestRetryWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	// Cancel immediately before the first retry delay
	err := RetryWithBackoff(ctx, RetryConfig{
		MaxRetries:      10,
		InitialInterval: 100 * time.Millisecond,
		Multiplier:      1.0,
		OnRetry: func(attempt int, err error) {
			// Cancel during the first retry callback (before the delay wait)
			cancel()
		},
	}, func(ctx context.Context) error {
		calls++
		return NewTransientError("fail", nil)
	})

	if err == nil {
		t.Fatal("expected an error")
	}
	// Should have stopped due to context cancellation
	if calls > 3 {
		t.Errorf("expected few calls before cancellation, got %d", calls)
	}
}

func TestRetryWithBackoff_OnRetryCallback(t *testing.T) {
	retryCalls := 0
	transient := NewTransientError("fail", nil)

	RetryWithBackoff(context.Background(), RetryConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		Multiplier:      2.0,
		OnRetry: func(attempt int, err error) {
			retryCalls++
		},
	}, func(ctx context.Context) error {
		return transient
	})

	if retryCalls != 2 {
		t.Errorf("expected OnRetry called 2 times, got %d", retryCalls)
	}
}

func TestRetryWithBackoff_RespectsMaxInterval(t *testing.T) {
	transient := NewTransientError("fail", nil)
	start := time.Now()

	RetryWithBackoff(context.Background(), RetryConfig{
		MaxRetries:      3,
		InitialInterval: 5 * time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      100.0,
	}, func(ctx context.Context) error {
		return transient
	})

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("delays were not capped, retries took %v", elapsed)
	}
}

func TestRetryWithResult(t *testing.T) {
	calls := 0
	got, err := RetryWithResult(context.Background(), RetryConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		Multiplier:      2.0,
	}, func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("database is locked (5) (SQLITE_BUSY)")
		}
		return "ok", nil
	})

	if err != nil || got != "ok" {
		t.Fatalf("expected ok after a retry, got %q, %v", got, err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxRetries <= 0 {
		t.Error("MaxRetries should be positive")
	}
	if cfg.Multiplier <= 1.0 {
		t.Error("Multiplier should be > 1.0 for exponential backoff")
	}
	if cfg.InitialInterval <= 0 {
		t.Error("InitialInterval should be positive")
	}
	if cfg.MaxInterval < cfg.InitialInterval {
		t.Error("MaxInterval should be >= InitialInterval")
	}
}

func TestRetryManager_UsesServiceConfig(t *testing.T) {
	rm := NewRetryManager()
	custom := RetryConfig{MaxRetries: 7, InitialInterval: time.Millisecond, Multiplier: 2.0}
	rm.SetConfig("archive", custom)

	got := rm.GetConfig("archive")
	if got.MaxRetries != 7 {
		t.Errorf("expected MaxRetries=7, got %d", got.MaxRetries)
	}
}

func TestRetryManager_FallsBackToDefault(t *testing.T) {
	rm := NewRetryManager()
	got := rm.GetConfig("unknown")
	def := DefaultRetryConfig()
	if got.MaxRetries != def.MaxRetries {
		t.Errorf("expected default MaxRetries=%d, got %d", def.MaxRetries, got.MaxRetries)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil error should not be retryable")
	}
	if !IsRetryable(NewTransientError("temp", nil)) {
		t.Error("transient error should be retryable")
	}
	if IsRetryable(NewPermanentError("perm", nil)) {
		t.Error("permanent error should not be retryable")
	}
}

func TestClassifyError(t *testing.T) {
	_, statErr := os.Stat(filepath.Join(t.TempDir(), "missing.docx"))

	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), ErrorTypeTransient, true},
		{"windows sharing", errors.New("open a.docx: The process cannot access the file because it is being used by another process."), ErrorTypeTransient, true},
		{"ebusy", fmt.Errorf("rename: %w", syscall.EBUSY), ErrorTypeTransient, true},
		{"missing file", statErr, ErrorTypeNotFound, false},
		{"permission", fmt.Errorf("write: %w", fs.ErrPermission), ErrorTypePermanent, false},
		{"broken document", errors.New("invalid PDF: xref table corrupt"), ErrorTypeInvalidData, false},
		{"other", errors.New("boom"), ErrorTypeUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("expected %v, got %v", tt.wantType, got.Type)
			}
			if got.IsRetryable() != tt.retryable {
				t.Errorf("expected retryable=%v", tt.retryable)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should unwrap to the original")
			}
		})
	}
}

func TestClassifyError_KeepsClassification(t *testing.T) {
	transient := NewTransientError("busy", nil)
	wrapped := fmt.Errorf("saving: %w", transient)
	if ClassifyError(wrapped) != transient {
		t.Error("expected the wrapped classification to be returned")
	}
	if ClassifyError(nil) != nil {
		t.Error("nil error should classify to nil")
	}
}
