// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"czanon/internal/formatters"
)

func TestYAMLMatchesMapStructure(t *testing.T) {
	report := formatters.Report{TagMap: map[string][]string{
		"[[PERSON_1]]": {"Petr Novák", "Petrovi"},
		"[[DATE_1]]":   {"13.08.2025"},
	}}

	out, err := NewFormatter().Format(report, formatters.FormatterOptions{})
	require.NoError(t, err)

	var parsed map[string][]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, report.TagMap, parsed)
	assert.Less(t, strings.Index(out, "[[DATE_1]]"), strings.Index(out, "[[PERSON_1]]"))
}

func TestYAMLEmpty(t *testing.T) {
	out, err := NewFormatter().Format(formatters.Report{}, formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}
