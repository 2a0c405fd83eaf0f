// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czanon/internal/formatters"
)

func TestKeysSortedAndUnescaped(t *testing.T) {
	report := formatters.Report{TagMap: map[string][]string{
		"[[PHONE_1]]":  {"777 111 222"},
		"[[PERSON_1]]": {"Petr Novák", "Petra Nováka"},
		"[[AMOUNT_1]]": {"1 500 000"},
	}}

	out, err := NewFormatter().Format(report, formatters.FormatterOptions{})
	require.NoError(t, err)

	want := `{
  "[[AMOUNT_1]]": [
    "1 500 000"
  ],
  "[[PERSON_1]]": [
    "Petr Novák",
    "Petra Nováka"
  ],
  "[[PHONE_1]]": [
    "777 111 222"
  ]
}
`
	assert.Equal(t, want, out)

	parsed, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, report.TagMap, parsed)
}

func TestCompactAndEmpty(t *testing.T) {
	out, err := NewFormatter().Format(formatters.Report{TagMap: map[string][]string{
		"[[ADDRESS_1]]": {"Dlouhá 5 & Krátká 6"},
	}}, formatters.FormatterOptions{Compact: true})
	require.NoError(t, err)
	assert.Equal(t, "{\"[[ADDRESS_1]]\":[\"Dlouhá 5 & Krátká 6\"]}\n", out)

	out, err = NewFormatter().Format(formatters.Report{}, formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("[1, 2]"))
	assert.Error(t, err)
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := formatters.Export("xml", formatters.Report{}, formatters.FormatterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json")

	out, err := formatters.Export("json", formatters.Report{}, formatters.FormatterOptions{Compact: true})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}
