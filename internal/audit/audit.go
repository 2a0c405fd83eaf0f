// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package audit re-checks anonymised text for the highest-risk shapes that are still
// present in clear text. It never changes the text; findings are diagnostics.
package audit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"czanon/internal/registry"
	"czanon/internal/security"
	"czanon/internal/textscan"
)

const (
	// markerWindow is how many runes before a finding are searched for the
	// category's own tag, which marks the finding as already handled.
	markerWindow = 20

	// labelEnd separates a label from its value: a colon or at least one space.
	labelEnd = `(?:\s*:\s*|\s+)`
)

// Leak is one suspicious value in anonymised text.
type Leak struct {
	Category registry.Category
	// Position is the rune offset of the match in the scanned text.
	Position int
	Value    *security.SecureString
}

func (l Leak) String() string {
	switch l.Category {
	case registry.Card:
		return fmt.Sprintf("CARD leak: %s... at position %d", l.Value.Prefix(7), l.Position)
	case registry.Password, registry.APIKey:
		return fmt.Sprintf("%s leak at position %d", l.Category, l.Position)
	default:
		return fmt.Sprintf("%s leak: %s at position %d", l.Category, l.Value, l.Position)
	}
}

// Clear scrubs the matched value.
func (l *Leak) Clear() {
	l.Value.Clear()
}

type detector struct {
	category registry.Category
	pattern  *textscan.Pattern
}

var detectors = []detector{
	{registry.IBAN, textscan.New(`(?i)[A-Z]{2}\s?\d{2}(?:\s?\d{4}){3,7}`).LeftBounded()},
	{registry.Card, textscan.New(`\d{4}[\s\-]\d{4}[\s\-]\d{4}[\s\-]\d{4,7}`).LeftBounded()},
	{registry.IP, textscan.New(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`).LeftBounded()},
	{registry.Password, textscan.New(`(?i)(?:Initial\s+password|Password|Heslo)`+labelEnd+`([^\[\s]\S+)`).LeftBounded()},
	{registry.APIKey, textscan.New(`(?i)(?:AWS\s+Access\s+Key|AWS\s+Secret|API\s+Key|Stripe|SendGrid)`+labelEnd+`([^\[\s][A-Za-z0-9+/=]{20,})`).LeftBounded()},
	{registry.Username, textscan.New(`(?i)(?:Login|Username|User)`+labelEnd+`([^\[\s][A-Za-z0-9._\-@]+)`).LeftBounded()},
}

// Scan reports every detector match that is not preceded by a tag of its category
// within a few runes. A span is reported once, under the first detector that finds
// it, so the digits of an IBAN do not come back as a card number.
func Scan(text string) []Leak {
	var leaks []Leak
	var claimed [][2]int
	for _, d := range detectors {
		marker := "[[" + string(d.category) + "_"
		for _, m := range d.pattern.FindAll(text) {
			if strings.Contains(m.Before(markerWindow), marker) || overlaps(claimed, m.Start(), m.End()) {
				continue
			}
			claimed = append(claimed, [2]int{m.Start(), m.End()})
			value := m.Value()
			if m.HasGroup(1) {
				value = m.Group(1)
			}
			leaks = append(leaks, Leak{
				Category: d.category,
				Position: utf8.RuneCountInString(text[:m.Start()]),
				Value:    security.NewSecureString(value),
			})
		}
	}
	return leaks
}

// Messages renders leaks in report form.
func Messages(leaks []Leak) []string {
	out := make([]string, len(leaks))
	for i, l := range leaks {
		out[i] = l.String()
	}
	return out
}

func overlaps(spans [][2]int, start, end int) bool {
	for _, sp := range spans {
		if start < sp[1] && sp[0] < end {
			return true
		}
	}
	return false
}
