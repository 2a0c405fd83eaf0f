// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalize provides the text normalisation used for matching Czech names and
// values: invisible-character cleanup, diacritic stripping and the identity key form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// invisibles are removed outright; NBSP is turned into a plain space first.
const invisibles = "\u00ad\u200b\u200c\u200d\u2060\ufeff"

var invisibleReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u00ad", "",
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\u2060", "",
	"\ufeff", "",
)

// CleanInvisibles replaces non-breaking spaces with spaces and drops soft hyphens,
// zero-width characters and byte order marks.
func CleanInvisibles(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, invisibles+"\u00a0") {
		return s
	}
	return invisibleReplacer.Replace(s)
}

func stripper() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// StripDiacritics removes combining marks: "Novák" -> "Novak". Letters without a
// decomposition (e.g. "ł") are kept as they are.
func StripDiacritics(s string) string {
	result, _, err := transform.String(stripper(), s)
	if err != nil {
		return s
	}
	return result
}

// ASCIIFold strips diacritics and drops every rune that is still outside ASCII.
// It is the form used for the diacritic-free duplicates of generated variants.
func ASCIIFold(s string) string {
	stripped := StripDiacritics(s)
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ForMatching returns the identity form of s: diacritics stripped, only ASCII
// letters kept, lower-cased. "Nováková-Malá" -> "novakovamala".
func ForMatching(s string) string {
	if s == "" {
		return ""
	}
	stripped := StripDiacritics(s)
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// Capitalize title-cases every word of s using Czech casing rules.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	return cases.Title(language.Czech).String(s)
}

// CollapseSpaces trims s and reduces every whitespace run to a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsUpperInitial reports whether the first rune of s is an upper-case letter.
func IsUpperInitial(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
