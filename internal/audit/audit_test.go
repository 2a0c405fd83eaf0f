// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czanon/internal/registry"
)

func TestScanFindsClearTextValues(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    registry.Category
		message string
	}{
		{"iban", "Účet CZ65 0800 0000 0028 4756 3921 zůstal", registry.IBAN, "IBAN leak: CZ65 0800 0000 0028 4756 3921 at position 5"},
		{"card", "karta 4111 1111 1111 1111", registry.Card, "CARD leak: 4111 11... at position 6"},
		{"ip", "server 10.0.0.1", registry.IP, "IP leak: 10.0.0.1 at position 7"},
		{"password", "Heslo: Tajne123!", registry.Password, "PASSWORD leak at position 0"},
		{"api key", "API Key: AKIAIOSFODNN7EXAMPLE1234", registry.APIKey, "API_KEY leak at position 0"},
		{"username", "Login: jnovak", registry.Username, "USERNAME leak: jnovak at position 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaks := Scan(tt.input)
			require.Len(t, leaks, 1)
			assert.Equal(t, tt.want, leaks[0].Category)
			assert.Equal(t, tt.message, leaks[0].String())
		})
	}
}

func TestScanIgnoresTaggedValues(t *testing.T) {
	text := "IBAN: [[IBAN_1]], karta [[CARD_1]], IP [[IP_1]], Heslo: [[PASSWORD_1]], " +
		"API Key: [[API_KEY_1]], Login: [[USERNAME_1]], Username: [[USERNAME_2]]"
	assert.Empty(t, Scan(text))
}

func TestScanSkipsValuesRightAfterTheirTag(t *testing.T) {
	assert.Empty(t, Scan("[[IP_1]] a 10.0.0.2"))
}

func TestPositionsCountRunes(t *testing.T) {
	leaks := Scan("Žluťoučký 10.0.0.1")
	require.Len(t, leaks, 1)
	assert.Equal(t, 10, leaks[0].Position)
}

func TestLeakClear(t *testing.T) {
	leaks := Scan("Heslo: Tajne123!")
	require.Len(t, leaks, 1)
	assert.Equal(t, "Tajne123!", leaks[0].Value.String())
	leaks[0].Clear()
	assert.Equal(t, "", leaks[0].Value.String())
	assert.Equal(t, []string{"PASSWORD leak at position 0"}, Messages(leaks))
}

func TestIBANIsNotAlsoACard(t *testing.T) {
	leaks := Scan("CZ65 0800 0000 0028 4756 3921")
	require.Len(t, leaks, 1)
	assert.Equal(t, registry.IBAN, leaks[0].Category)
}
