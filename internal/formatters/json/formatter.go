// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"czanon/internal/formatters"
)

// Formatter writes the tag map as a JSON object with sorted keys
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Tag map as JSON, keys sorted, for restoring documents"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	tagMap := report.TagMap
	if tagMap == nil {
		tagMap = map[string][]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// values may hold & < > verbatim
	enc.SetEscapeHTML(false)
	if !options.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(tagMap); err != nil {
		return "", fmt.Errorf("failed to encode tag map: %w", err)
	}
	return buf.String(), nil
}

// Parse reads a tag map written by this formatter.
func Parse(data []byte) (map[string][]string, error) {
	tagMap := map[string][]string{}
	if err := json.Unmarshal(data, &tagMap); err != nil {
		return nil, fmt.Errorf("failed to parse tag map: %w", err)
	}
	return tagMap, nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
