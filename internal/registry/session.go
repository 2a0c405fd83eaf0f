// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package registry holds the per-document anonymisation state: tag counters, the tag
// map, the value lookup, the person index and the source text snapshot.
package registry

import (
	"sort"
	"strings"

	"czanon/internal/morph"
	"czanon/internal/normalize"
	"czanon/internal/textscan"
)

// Session is the state of one document run. It is not safe for concurrent use;
// separate documents use separate sessions.
type Session struct {
	counters   map[Category]int
	tags       []string
	values     map[string][]string
	valueToTag map[string]string

	persons     []*PersonRecord
	personIndex map[PersonKey]*PersonRecord
	personByTag map[string]*PersonRecord

	source   string
	variants *morph.VariantCache
}

// NewSession creates an empty session. variants may be shared between sessions; nil
// disables memoisation.
func NewSession(variants *morph.VariantCache) *Session {
	return &Session{
		counters:    make(map[Category]int),
		values:      make(map[string][]string),
		valueToTag:  make(map[string]string),
		personIndex: make(map[PersonKey]*PersonRecord),
		personByTag: make(map[string]*PersonRecord),
		variants:    variants,
	}
}

// SetSource stores the snapshot of the unmodified document text that recorded values
// are verified against.
func (s *Session) SetSource(text string) {
	s.source = text
}

func (s *Session) Source() string {
	return s.source
}

func lookupKey(c Category, value string) string {
	return string(c) + ":" + normalize.CollapseSpaces(value)
}

// Lookup returns the tag previously assigned to the value.
func (s *Session) Lookup(c Category, value string) (string, bool) {
	tag, ok := s.valueToTag[lookupKey(c, value)]
	return tag, ok
}

// Tag returns the tag of value, creating the next tag of the category on first use.
// The value is recorded on every call, so later surface forms are kept too.
func (s *Session) Tag(c Category, value string) string {
	return s.TagAs(c, value, value)
}

// TagAs is Tag for a value that was normalized before tagging. The lookup key and
// the stored value are the normalized form; the source check uses surface, the
// text as it appeared in the document.
func (s *Session) TagAs(c Category, value, surface string) string {
	key := lookupKey(c, value)
	tag, ok := s.valueToTag[key]
	if !ok {
		tag = s.newTag(c)
		s.valueToTag[key] = tag
	}
	s.RecordAs(tag, value, surface)
	return tag
}

func (s *Session) newTag(c Category) string {
	s.counters[c]++
	tag := Tag(c, s.counters[c])
	s.tags = append(s.tags, tag)
	if _, ok := s.values[tag]; !ok {
		s.values[tag] = nil
	}
	return tag
}

// SecretTag creates a fresh tag whose only stored value is SecretPlaceholder.
// Secrets are never looked up, so equal secrets get distinct tags.
func (s *Session) SecretTag(c Category) string {
	tag := s.newTag(c)
	s.values[tag] = []string{SecretPlaceholder}
	return tag
}

// Alias makes value resolve to an existing tag without recording it.
func (s *Session) Alias(c Category, value, tag string) {
	s.valueToTag[lookupKey(c, value)] = tag
}

// Record appends value to the tag's list when it is new and occurs as a whole word
// in the source snapshot. Date values are stored normalised and skip the check.
// It reports whether the value was stored.
func (s *Session) Record(tag, value string) bool {
	return s.RecordAs(tag, value, value)
}

// RecordAs stores value for tag when surface occurs in the source text.
func (s *Session) RecordAs(tag, value, surface string) bool {
	value = normalize.CollapseSpaces(value)
	surface = normalize.CollapseSpaces(surface)
	if value == "" {
		return false
	}
	if c, _, ok := ParseTag(tag); ok && c.IsSecret() {
		return false
	}
	if !HasCategory(tag, Date) && !textscan.ContainsWord(s.source, surface) {
		return false
	}
	for _, v := range s.values[tag] {
		if v == value {
			return false
		}
	}
	if _, ok := s.values[tag]; !ok {
		s.tags = append(s.tags, tag)
	}
	s.values[tag] = append(s.values[tag], value)
	return true
}

func (s *Session) prepend(tag, value string) {
	for _, v := range s.values[tag] {
		if v == value {
			return
		}
	}
	s.values[tag] = append([]string{value}, s.values[tag]...)
}

// Values returns the recorded values of tag in insertion order.
func (s *Session) Values(tag string) []string {
	return s.values[tag]
}

// Tags returns every tag in creation order.
func (s *Session) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// Map returns a copy of the tag map.
func (s *Session) Map() map[string][]string {
	out := make(map[string][]string, len(s.values))
	for tag, vals := range s.values {
		out[tag] = append([]string(nil), vals...)
	}
	return out
}

// Counts returns the number of tags per category.
func (s *Session) Counts() map[Category]int {
	out := make(map[Category]int)
	for _, tag := range s.tags {
		if c, _, ok := ParseTag(tag); ok {
			out[c]++
		}
	}
	return out
}

// Redirect folds the tag from into the tag to: values are unioned, lookups and person
// records are re-pointed and from disappears from the map.
func (s *Session) Redirect(from, to string) {
	if from == to {
		return
	}
	if _, ok := s.values[to]; !ok {
		s.tags = append(s.tags, to)
	}
	for _, v := range s.values[from] {
		if !containsString(s.values[to], v) {
			s.values[to] = append(s.values[to], v)
		}
	}
	delete(s.values, from)
	for i, tag := range s.tags {
		if tag == from {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			break
		}
	}
	for k, tag := range s.valueToTag {
		if tag == from {
			s.valueToTag[k] = to
		}
	}

	survivor := s.personByTag[to]
	if p := s.personByTag[from]; p != nil {
		if survivor == nil {
			p.Tag = to
			s.personByTag[to] = p
			survivor = p
		}
		for k, idx := range s.personIndex {
			if idx == p {
				s.personIndex[k] = survivor
			}
		}
		delete(s.personByTag, from)
		s.removePerson(p, survivor)
	}
}

func (s *Session) removePerson(p, survivor *PersonRecord) {
	if p == survivor {
		return
	}
	for i, q := range s.persons {
		if q == p {
			s.persons = append(s.persons[:i], s.persons[i+1:]...)
			return
		}
	}
}

// SortedTags returns the tags in report order of their category, then by number.
// Unknown categories follow the known ones lexically.
func SortedTags(tags []string) []string {
	out := append([]string(nil), tags...)
	sort.SliceStable(out, func(i, j int) bool {
		ci, ni, _ := ParseTag(out[i])
		cj, nj, _ := ParseTag(out[j])
		if ci != cj {
			ri, rj := categoryRank(ci), categoryRank(cj)
			if ri != rj {
				return ri < rj
			}
			return ci < cj
		}
		return ni < nj
	})
	return out
}

func categoryRank(c Category) int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return len(Categories)
}

func sortByLengthDesc(list []string) {
	sort.Slice(list, func(i, j int) bool {
		if len(list[i]) != len(list[j]) {
			return len(list[i]) > len(list[j])
		}
		return list[i] < list[j]
	})
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// InsideTag reports whether byte offset pos falls inside a rendered tag.
func InsideTag(text string, pos int) bool {
	if pos <= 0 || pos > len(text) {
		return false
	}
	open := strings.LastIndex(text[:pos], "[[")
	if open < 0 {
		return false
	}
	closing := strings.Index(text[open:], "]]")
	return closing >= 0 && open+closing+2 > pos
}
