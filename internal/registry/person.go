// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"czanon/internal/morph"
	"czanon/internal/normalize"
)

// PersonKey is the identity of a person: matching forms of the nominative first name
// and surname.
type PersonKey struct {
	First string
	Last  string
}

// KeyOf builds the identity key of a nominative name pair.
func KeyOf(first, last string) PersonKey {
	return PersonKey{First: normalize.ForMatching(first), Last: normalize.ForMatching(last)}
}

// PersonRecord is a canonical person record.
type PersonRecord struct {
	First string
	Last  string
	Tag   string

	FirstForms *morph.Variants
	LastForms  *morph.Variants

	fullForms []string
}

// Key returns the identity key.
func (p *PersonRecord) Key() PersonKey {
	return KeyOf(p.First, p.Last)
}

// Canonical is "First Last" in the nominative.
func (p *PersonRecord) Canonical() string {
	return p.First + " " + p.Last
}

// FullForms returns every "first-form last-form" combination, longest first.
func (p *PersonRecord) FullForms() []string {
	if p.fullForms == nil {
		set := make(map[string]struct{})
		for _, f := range p.FirstForms.Forms() {
			for _, l := range p.LastForms.Forms() {
				set[f+" "+l] = struct{}{}
			}
		}
		p.fullForms = sortLongestFirst(set)
	}
	return p.fullForms
}

// Persons returns the canonical persons in creation order.
func (s *Session) Persons() []*PersonRecord {
	out := make([]*PersonRecord, len(s.persons))
	copy(out, s.persons)
	return out
}

// FindPerson returns the person with the identity of first and last.
func (s *Session) FindPerson(first, last string) (*PersonRecord, bool) {
	p, ok := s.personIndex[KeyOf(first, last)]
	return p, ok
}

// PersonByTag returns the person record behind a PERSON tag.
func (s *Session) PersonByTag(tag string) (*PersonRecord, bool) {
	p, ok := s.personByTag[tag]
	return p, ok
}

// EnsurePerson returns the person with the given nominatives, creating the record and
// its tag on first sight. The canonical "First Last" always heads the tag's values,
// even when that exact string never occurs in the document.
func (s *Session) EnsurePerson(first, last string) *PersonRecord {
	key := KeyOf(first, last)
	if p, ok := s.personIndex[key]; ok {
		return p
	}
	canonical := first + " " + last
	tag := s.Tag(Person, canonical)
	if p, ok := s.personByTag[tag]; ok {
		s.personIndex[key] = p
		return p
	}
	s.prepend(tag, canonical)
	p := &PersonRecord{
		First:      first,
		Last:       last,
		Tag:        tag,
		FirstForms: s.variants.FirstName(first),
		LastForms:  s.variants.Surname(last),
	}
	s.persons = append(s.persons, p)
	s.personIndex[key] = p
	s.personByTag[tag] = p
	return p
}

// AdoptPerson binds an existing PERSON tag to a person record so later passes can find
// it by identity.
func (s *Session) AdoptPerson(tag, first, last string) *PersonRecord {
	key := KeyOf(first, last)
	if p, ok := s.personIndex[key]; ok {
		return p
	}
	if p, ok := s.personByTag[tag]; ok {
		s.personIndex[key] = p
		return p
	}
	p := &PersonRecord{
		First:      first,
		Last:       last,
		Tag:        tag,
		FirstForms: s.variants.FirstName(first),
		LastForms:  s.variants.Surname(last),
	}
	s.persons = append(s.persons, p)
	s.personIndex[key] = p
	s.personByTag[tag] = p
	return p
}

func sortLongestFirst(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sortByLengthDesc(out)
	return out
}
