// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package restore puts the original values back into an anonymised document.
package restore

import (
	"regexp"
	"sort"

	"czanon/internal/document"
)

var tagPattern = regexp.MustCompile(`\[\[[A-Z_]+_\d+\]\]`)

// Stats counts the tags seen during a restore.
type Stats struct {
	Replaced int
	// Unknown lists tags that were not in the map, sorted and without duplicates.
	Unknown []string
}

// Apply replaces every tag in text with the first value recorded for it. For person
// tags that is the canonical name; secret tags only ever hold the placeholder.
// Tags missing from tagMap are left in place.
func Apply(text string, tagMap map[string][]string) (string, Stats) {
	var st Stats
	unknown := map[string]struct{}{}
	out := tagPattern.ReplaceAllStringFunc(text, func(tag string) string {
		values := tagMap[tag]
		if len(values) == 0 {
			unknown[tag] = struct{}{}
			return tag
		}
		st.Replaced++
		return values[0]
	})
	st.Unknown = sortedKeys(unknown)
	return out, st
}

// Document restores every paragraph of doc in place.
func Document(doc document.Document, tagMap map[string][]string) Stats {
	var total Stats
	unknown := map[string]struct{}{}
	for _, p := range doc.Paragraphs() {
		text := p.Text()
		out, st := Apply(text, tagMap)
		if out != text {
			p.SetText(out)
		}
		total.Replaced += st.Replaced
		for _, tag := range st.Unknown {
			unknown[tag] = struct{}{}
		}
	}
	total.Unknown = sortedKeys(unknown)
	return total
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
