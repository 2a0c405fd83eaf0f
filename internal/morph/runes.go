// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package morph

import (
	"strings"
	"unicode/utf8"
)

const czechVowels = "aáeéěiíoóuúůyý"

// runeLen counts characters, not bytes.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// cut drops the last n characters of s.
func cut(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return ""
	}
	return string(r[:len(r)-n])
}

// tail returns the last n characters of s.
func tail(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return s
	}
	return string(r[len(r)-n:])
}

// charFromEnd returns the character i positions from the end (1 = last).
func charFromEnd(s string, i int) (rune, bool) {
	r := []rune(s)
	if i < 1 || i > len(r) {
		return 0, false
	}
	return r[len(r)-i], true
}

func isVowel(r rune) bool {
	return strings.ContainsRune(czechVowels, r)
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// epentheticClusters are stem-final consonant pairs that take a movable "e" in the
// nominative: Havl-ovi -> Havel.
var epentheticClusters = map[string]bool{
	"vl": true, "dl": true, "kl": true, "pl": true, "sl": true, "zl": true,
	"čl": true, "šl": true, "tl": true, "hl": true, "bl": true, "gl": true,
}

// insertEpenthetic turns "Havl" into "Havel" when the stem ends in one of the
// clusters and the character before the cluster is a vowel.
func insertEpenthetic(stem string) (string, bool) {
	if runeLen(stem) < 3 {
		return stem, false
	}
	if !epentheticClusters[strings.ToLower(tail(stem, 2))] {
		return stem, false
	}
	before, _ := charFromEnd(strings.ToLower(stem), 3)
	if !isVowel(before) {
		return stem, false
	}
	return cut(stem, 1) + "e" + tail(stem, 1), true
}

// softenedStem returns the oblique stem of names ending in "-ěk"/"-ek": Zdeněk ->
// Zdeňk, Vaněk -> Vaňk, Hájek -> Hájk.
func softenedStem(s string) string {
	low := strings.ToLower(s)
	if !strings.HasSuffix(low, "ek") && !strings.HasSuffix(low, "ěk") {
		return s
	}
	base := cut(s, 2)
	if strings.HasSuffix(low, "ěk") {
		switch last, _ := charFromEnd(base, 1); last {
		case 'n':
			base = cut(base, 1) + "ň"
		case 'N':
			base = cut(base, 1) + "Ň"
		case 'd':
			base = cut(base, 1) + "ď"
		case 't':
			base = cut(base, 1) + "ť"
		}
	}
	return base + "k"
}
