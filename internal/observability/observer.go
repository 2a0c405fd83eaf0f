// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability times pipeline operations and reports them as structured
// log events.
package observability

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// StandardObserver implements observability for all components
type StandardObserver struct {
	level         ObservabilityLevel
	logger        zerolog.Logger
	requestID     string
	DebugObserver *DebugObserver // set when the observer runs in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// ParseLevel maps "off", "metrics" and "debug" to a level. Anything else is Off.
func ParseLevel(s string) ObservabilityLevel {
	switch s {
	case "metrics":
		return ObservabilityMetrics
	case "debug":
		return ObservabilityDebug
	default:
		return ObservabilityOff
	}
}

// NewStandardObserver creates an observer writing to logger. All operations it
// reports share one request id.
func NewStandardObserver(level ObservabilityLevel, logger zerolog.Logger) *StandardObserver {
	return &StandardObserver{
		level:     level,
		logger:    logger,
		requestID: ulid.Make().String(),
	}
}

// Nop is an observer that reports nothing.
func Nop() *StandardObserver {
	return NewStandardObserver(ObservabilityOff, zerolog.Nop())
}

// RequestID identifies the run the observer reports for.
func (o *StandardObserver) RequestID() string {
	if o == nil {
		return ""
	}
	return o.requestID
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		o.LogOperation(StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation emits data as one event. Metrics level logs at debug severity,
// debug level at info so the events show with the default log level.
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o == nil || o.level == ObservabilityOff {
		return
	}
	data.RequestID = o.requestID

	ev := o.logger.Debug()
	if o.level == ObservabilityDebug {
		ev = o.logger.Info()
	}
	if !data.Success {
		ev = o.logger.Warn()
	}
	ev = ev.Str("component", data.Component).
		Str("operation", data.Operation).
		Str("request_id", data.RequestID).
		Int64("duration_ms", data.DurationMs).
		Bool("success", data.Success)
	if data.FilePath != "" {
		ev = ev.Str("file_path", data.FilePath)
	}
	if data.Error != "" {
		ev = ev.Str("error", data.Error)
	}
	if data.ContentLength > 0 {
		ev = ev.Int("content_length", data.ContentLength)
	}
	if data.MatchCount > 0 {
		ev = ev.Int("match_count", data.MatchCount)
	}
	if len(data.Metadata) > 0 {
		ev = ev.Fields(data.Metadata)
	}
	ev.Msg("operation finished")
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component     string                 `json:"component"`
	Operation     string                 `json:"operation"`
	RequestID     string                 `json:"request_id"`
	FilePath      string                 `json:"file_path,omitempty"`
	DurationMs    int64                  `json:"duration_ms,omitempty"`
	Success       bool                   `json:"success"`
	Error         string                 `json:"error,omitempty"`
	ContentLength int                    `json:"content_length,omitempty"`
	MatchCount    int                    `json:"match_count,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}
