// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textscan

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Edit replaces Text[Start:End] of some input string.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Apply applies non-overlapping edits to text. Edits are sorted by start offset;
// an edit overlapping an earlier one is dropped.
func Apply(text string, edits []Edit) string {
	if len(edits) == 0 {
		return text
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, e := range sorted {
		if e.Start < pos || e.End < e.Start || e.End > len(text) {
			continue
		}
		b.WriteString(text[pos:e.Start])
		b.WriteString(e.Text)
		pos = e.End
	}
	b.WriteString(text[pos:])
	return b.String()
}

// IsWordRune matches the runes of a regular expression \w class in Unicode mode.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// RuneBefore returns the rune ending at byte offset pos.
func RuneBefore(text string, pos int) (rune, bool) {
	if pos <= 0 || pos > len(text) {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return r, true
}

// RuneAfter returns the rune starting at byte offset pos.
func RuneAfter(text string, pos int) (rune, bool) {
	if pos < 0 || pos >= len(text) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return r, true
}

// WordBounded reports whether text[start:end] is neither preceded nor followed by a
// word rune.
func WordBounded(text string, start, end int) bool {
	if r, ok := RuneBefore(text, start); ok && IsWordRune(r) {
		return false
	}
	if r, ok := RuneAfter(text, end); ok && IsWordRune(r) {
		return false
	}
	return true
}

// Before returns at most n runes of text ending at pos.
func Before(text string, pos, n int) string {
	if pos > len(text) {
		pos = len(text)
	}
	start := pos
	for i := 0; i < n && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	return text[start:pos]
}

// After returns at most n runes of text starting at pos.
func After(text string, pos, n int) string {
	if pos < 0 {
		pos = 0
	}
	end := pos
	for i := 0; i < n && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return text[pos:end]
}

// Words splits s into maximal runs of word runes.
func Words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return !IsWordRune(r) })
}

// FindWord returns the spans of non-overlapping occurrences of word in text that are
// not glued to other word runes. With fold set the comparison is case-insensitive.
func FindWord(text, word string, fold bool) [][2]int {
	if word == "" || len(word) > len(text) {
		return nil
	}
	var spans [][2]int
	for i := 0; i+len(word) <= len(text); {
		candidate := text[i : i+len(word)]
		same := candidate == word || (fold && strings.EqualFold(candidate, word))
		if same && WordBounded(text, i, i+len(word)) {
			spans = append(spans, [2]int{i, i + len(word)})
			i += len(word)
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return spans
}

// ContainsWord reports whether word occurs in text as a whole word, case-sensitively.
func ContainsWord(text, word string) bool {
	return len(FindWord(text, word, false)) > 0
}
