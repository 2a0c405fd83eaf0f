// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czanon/internal/formatters"
	"czanon/internal/registry"
)

func TestGroupedReport(t *testing.T) {
	report := formatters.Report{TagMap: map[string][]string{
		"[[PERSON_2]]":  {"Jana Dvořáková"},
		"[[PERSON_1]]":  {"Petr Novák", "Petra Nováka", "Petrovi"},
		"[[PERSON_10]]": {"Eva Malá"},
		"[[PHONE_1]]":   {"777 111 222"},
		"[[DATE_1]]":    {"13.08.2025"},
	}}

	out, err := NewFormatter().Format(report, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)

	want := "OSOBY\n" +
		"-----\n" +
		"[[PERSON_1]]: Petr Novák\n" +
		"  - Petra Nováka\n" +
		"  - Petrovi\n" +
		"[[PERSON_2]]: Jana Dvořáková\n" +
		"[[PERSON_10]]: Eva Malá\n" +
		"\n" +
		"TELEFONY\n" +
		"--------\n" +
		"[[PHONE_1]]: 777 111 222\n" +
		"\n" +
		"DATA\n" +
		"----\n" +
		"[[DATE_1]]: 13.08.2025\n" +
		"\n"
	assert.Equal(t, want, out)
}

func TestUnderlineCountsRunes(t *testing.T) {
	out, err := NewFormatter().Format(formatters.Report{TagMap: map[string][]string{
		"[[BIRTH_ID_1]]": {"925315/6847"},
	}}, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.Equal(t, "RODNÁ ČÍSLA\n-----------\n[[BIRTH_ID_1]]: 925315/6847\n\n", out)
}

func TestEmptyReport(t *testing.T) {
	out, err := NewFormatter().Format(formatters.Report{}, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestColoredHeadings(t *testing.T) {
	out, err := NewFormatter().Format(formatters.Report{TagMap: map[string][]string{
		"[[EMAIL_1]]": {"a@b.cz"},
	}}, formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "a@b.cz")
}

func TestEveryCategoryHasTitle(t *testing.T) {
	for _, c := range registry.Categories {
		title, ok := sectionTitles[c]
		assert.True(t, ok, c)
		assert.Equal(t, title, Title(c))
	}
	assert.Equal(t, "IBAN", Title(registry.IBAN))
	assert.Equal(t, "UNKNOWN", Title(registry.Category("UNKNOWN")))
}

func TestRegistered(t *testing.T) {
	f, ok := formatters.Get("text")
	require.True(t, ok)
	assert.Equal(t, ".txt", f.FileExtension())
}
