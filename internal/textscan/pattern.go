// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textscan adds the pieces Go's RE2 engine does not have to regular
// expression matching over Czech text: Unicode-aware word boundaries, lookbehind and
// lookahead conditions, ordered alternatives and edit-list based replacement.
package textscan

import (
	"regexp"
	"unicode/utf8"
)

// Pattern is an ordered list of alternative expressions plus the conditions that are
// checked around every candidate match. A candidate rejected by a condition does not
// consume input: the search resumes one rune after the candidate's start.
type Pattern struct {
	alts []*regexp.Regexp

	// leftWord and rightWord require a non-word rune (or text edge) next to the match.
	leftWord  bool
	rightWord bool

	// notAfter rejects a match whose preceding rune satisfies it.
	notAfter func(r rune) bool

	// accept is the final check, run on the whole text and absolute submatch indexes.
	accept func(text string, loc []int) bool

	// extend moves the end of an accepted match forward, emulating a lazy tail
	// followed by a lookahead.
	extend func(text string, loc []int) (int, bool)
}

// New compiles the alternatives. It panics on an invalid expression, like
// regexp.MustCompile, and is meant for package-level pattern tables.
func New(exprs ...string) *Pattern {
	p := &Pattern{}
	for _, expr := range exprs {
		p.alts = append(p.alts, regexp.MustCompile(expr))
	}
	return p
}

func (p *Pattern) clone() *Pattern {
	c := *p
	return &c
}

// Bounded returns a copy that requires Unicode word boundaries on both sides.
func (p *Pattern) Bounded() *Pattern {
	c := p.clone()
	c.leftWord, c.rightWord = true, true
	return c
}

// LeftBounded returns a copy that requires a word boundary before the match only.
func (p *Pattern) LeftBounded() *Pattern {
	c := p.clone()
	c.leftWord = true
	return c
}

// RightBounded returns a copy that requires a word boundary after the match only.
func (p *Pattern) RightBounded() *Pattern {
	c := p.clone()
	c.rightWord = true
	return c
}

// NotAfter returns a copy rejecting matches preceded by a rune that satisfies fn.
func (p *Pattern) NotAfter(fn func(r rune) bool) *Pattern {
	c := p.clone()
	c.notAfter = fn
	return c
}

// NotAfterRune is NotAfter for a single literal rune.
func (p *Pattern) NotAfterRune(r rune) *Pattern {
	return p.NotAfter(func(prev rune) bool { return prev == r })
}

// Where returns a copy with an additional acceptance check.
func (p *Pattern) Where(fn func(text string, loc []int) bool) *Pattern {
	c := p.clone()
	prev := p.accept
	if prev == nil {
		c.accept = fn
	} else {
		c.accept = func(text string, loc []int) bool { return prev(text, loc) && fn(text, loc) }
	}
	return c
}

// Extend returns a copy whose matches are continued by fn. fn receives the regexp
// match and returns the new end offset, or false to reject the candidate.
func (p *Pattern) Extend(fn func(text string, loc []int) (int, bool)) *Pattern {
	c := p.clone()
	c.extend = fn
	return c
}

func (p *Pattern) acceptable(text string, loc []int) bool {
	start := loc[0]
	if p.leftWord || p.notAfter != nil {
		if r, ok := RuneBefore(text, start); ok {
			if p.leftWord && IsWordRune(r) {
				return false
			}
			if p.notAfter != nil && p.notAfter(r) {
				return false
			}
		}
	}
	if p.extend != nil {
		end, ok := p.extend(text, loc)
		if !ok || end < loc[1] {
			return false
		}
		loc[1] = end
	}
	end := loc[1]
	if p.rightWord {
		if r, ok := RuneAfter(text, end); ok && IsWordRune(r) {
			return false
		}
	}
	if p.accept != nil && !p.accept(text, loc) {
		return false
	}
	return true
}

// candidate returns the leftmost acceptable match starting at or after pos.
func (p *Pattern) candidate(text string, pos int) (Match, bool) {
	for pos <= len(text) {
		best := -1
		var found [][]int
		for _, re := range p.alts {
			loc := re.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				found = append(found, nil)
				continue
			}
			abs := make([]int, len(loc))
			for i, v := range loc {
				if v >= 0 {
					abs[i] = v + pos
				} else {
					abs[i] = -1
				}
			}
			found = append(found, abs)
			if best < 0 || abs[0] < best {
				best = abs[0]
			}
		}
		if best < 0 {
			return Match{}, false
		}
		for i, loc := range found {
			if loc != nil && loc[0] == best && p.acceptable(text, loc) {
				return Match{Text: text, Loc: loc, Alt: i}, true
			}
		}
		// rejected at best; retry one rune further
		if best >= len(text) {
			return Match{}, false
		}
		_, size := utf8.DecodeRuneInString(text[best:])
		pos = best + size
	}
	return Match{}, false
}

// FindAll returns the non-overlapping acceptable matches from left to right.
func (p *Pattern) FindAll(text string) []Match {
	var out []Match
	pos := 0
	for pos <= len(text) {
		m, ok := p.candidate(text, pos)
		if !ok {
			break
		}
		out = append(out, m)
		if m.End() > m.Start() {
			pos = m.End()
		} else {
			if m.End() >= len(text) {
				break
			}
			_, size := utf8.DecodeRuneInString(text[m.End():])
			pos = m.End() + size
		}
	}
	return out
}

// Find returns the first acceptable match.
func (p *Pattern) Find(text string) (Match, bool) {
	return p.candidate(text, 0)
}

// MatchString reports whether text contains an acceptable match.
func (p *Pattern) MatchString(text string) bool {
	_, ok := p.candidate(text, 0)
	return ok
}

// Replace substitutes every acceptable match with fn's result. All matches are found
// on the input first, so fn always observes the unmodified text through Match.Text.
func (p *Pattern) Replace(text string, fn func(m Match) string) string {
	matches := p.FindAll(text)
	if len(matches) == 0 {
		return text
	}
	edits := make([]Edit, 0, len(matches))
	for _, m := range matches {
		repl := fn(m)
		if repl == m.Value() {
			continue
		}
		edits = append(edits, Edit{Start: m.Start(), End: m.End(), Text: repl})
	}
	return Apply(text, edits)
}

// Anchored compiles expr so that it only matches at the start of the input. It is the
// building block for lookahead checks: Anchored(`\s*/\d{4}`).MatchString(text[end:]).
func Anchored(expr string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + expr + `)`)
}

// FollowedBy reports whether the anchored expression matches text at pos.
func FollowedBy(re *regexp.Regexp, text string, pos int) bool {
	if pos > len(text) {
		return false
	}
	return re.MatchString(text[pos:])
}
