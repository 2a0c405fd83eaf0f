// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textscan

// Match is one accepted match. Loc holds absolute byte offsets into Text in the
// layout of regexp.FindStringSubmatchIndex.
type Match struct {
	Text string
	Loc  []int
	Alt  int
}

func (m Match) Start() int { return m.Loc[0] }

func (m Match) End() int { return m.Loc[1] }

// Value is the whole matched text.
func (m Match) Value() string { return m.Text[m.Loc[0]:m.Loc[1]] }

// HasGroup reports whether submatch i participated in the match.
func (m Match) HasGroup(i int) bool {
	return 2*i+1 < len(m.Loc) && m.Loc[2*i] >= 0
}

// Group returns submatch i, or "" when it did not participate.
func (m Match) Group(i int) string {
	if !m.HasGroup(i) {
		return ""
	}
	return m.Text[m.Loc[2*i]:m.Loc[2*i+1]]
}

// GroupSpan returns the absolute offsets of submatch i, or -1, -1.
func (m Match) GroupSpan(i int) (int, int) {
	if !m.HasGroup(i) {
		return -1, -1
	}
	return m.Loc[2*i], m.Loc[2*i+1]
}

// Before returns up to n runes of context preceding the match.
func (m Match) Before(n int) string { return Before(m.Text, m.Start(), n) }

// After returns up to n runes of context following the match.
func (m Match) After(n int) string { return After(m.Text, m.End(), n) }

// ReplaceGroup returns the matched text with submatch i swapped for repl. Literal
// labels around the value are kept.
func (m Match) ReplaceGroup(i int, repl string) string {
	s, e := m.GroupSpan(i)
	if s < 0 {
		return m.Value()
	}
	return m.Text[m.Start():s] + repl + m.Text[e:m.End()]
}
