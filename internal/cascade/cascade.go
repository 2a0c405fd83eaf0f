// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cascade runs the ordered list of entity recognisers over paragraph text.
// Every stage sees the output of the previous one, finds its matches on that input
// and rewrites them in a single edit-list pass. The order of the stages is part of
// the behaviour: earlier stages claim spans that later, looser shapes would
// misclassify.
package cascade

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"czanon/internal/gazetteer"
	"czanon/internal/morph"
	"czanon/internal/registry"
	"czanon/internal/textscan"
)

// Stage is one recogniser of the cascade.
type Stage interface {
	// Name identifies the stage in logs and statistics.
	Name() string
	// Apply returns text with the stage's matches replaced by tags.
	Apply(text string, sess *registry.Session) string
}

type stage struct {
	name string
	fn   func(text string, sess *registry.Session) string
}

func (s stage) Name() string { return s.name }

func (s stage) Apply(text string, sess *registry.Session) string { return s.fn(text, sess) }

// Cascade is the fixed stage list. It holds no per-document state and can be
// shared by concurrent runs with separate sessions.
type Cascade struct {
	engine *morph.Engine
	stop   *gazetteer.Stoplists
	stages []Stage
}

// New builds the cascade. engine resolves the names of the "Name, bytem Address"
// stage; a nil stoplist bundle means the built-in lists.
func New(engine *morph.Engine, stop *gazetteer.Stoplists) *Cascade {
	if engine == nil {
		engine = morph.NewEngine(gazetteer.Empty())
	}
	if stop == nil {
		stop = gazetteer.DefaultStoplists()
	}
	c := &Cascade{engine: engine, stop: stop}
	c.stages = []Stage{
		wholeStage("email", registry.Email, emailPattern),
		stage{"person-address", c.personAddress},
		stage{"address-zip", addressWithZip},
		stage{"address", prefixedAddress},
		stage{"address-reverse", reversedAddress},
		wholeStage("license-plate", registry.LicensePlate, platePattern),
		wholeStage("vin", registry.VIN, vinPattern),
		stage{"date", numericDates},
		stage{"date-words", wordDates},
		stage{"birthplace", birthplaces},
		stage{"phone", phones},
		stage{"amount", amounts},
		stage{"account", accounts},
		valueStage("ico", registry.ICO, icoPattern, 1),
		valueStage("dic", registry.DIC, dicPattern, 1),
		valueStage("card", registry.Card, cardPattern, 1),
		stage{"iban", ibans},
		stage{"bic", c.bics},
		stage{"birth-id", birthIDs},
		stage{"id-card", idCards},
		valueStage("ip", registry.IP, ipPattern, 1),
		secretStage("password", registry.Password, passwordPattern, 1),
		secretStage("api-key", registry.APIKey, apiKeyPattern, 1),
		stage{"username", usernames},
		valueStage("insurance-id", registry.InsuranceID, insurancePattern, 1),
		valueStage("rfid", registry.RFID, rfidPattern, 1),
		stage{"driver-license", driverLicenses},
		valueStage("employee-id", registry.EmpID, empIDPattern, 1),
	}
	return c
}

// Stages returns the stages in execution order.
func (c *Cascade) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Run applies every stage in order.
func (c *Cascade) Run(text string, sess *registry.Session) string {
	for _, s := range c.stages {
		text = s.Apply(text, sess)
	}
	return text
}

// untagged rejects matches that start inside an already rendered tag.
func untagged(p *textscan.Pattern) *textscan.Pattern {
	return p.Where(func(text string, loc []int) bool {
		return !registry.InsideTag(text, loc[0])
	})
}

func containsTag(s string) bool {
	return strings.Contains(s, "[[") || strings.Contains(s, "]]")
}

// wholeStage tags the entire match.
func wholeStage(name string, c registry.Category, p *textscan.Pattern) Stage {
	p = untagged(p)
	return stage{name, func(text string, sess *registry.Session) string {
		return p.Replace(text, func(m textscan.Match) string {
			return sess.Tag(c, m.Value())
		})
	}}
}

// valueStage tags submatch group and keeps the label around it.
func valueStage(name string, c registry.Category, p *textscan.Pattern, group int) Stage {
	p = untagged(p)
	return stage{name, func(text string, sess *registry.Session) string {
		return p.Replace(text, func(m textscan.Match) string {
			v := m.Group(group)
			if v == "" || containsTag(v) {
				return m.Value()
			}
			return m.ReplaceGroup(group, sess.Tag(c, v))
		})
	}}
}

// secretStage issues a fresh tag per occurrence and never stores the value.
func secretStage(name string, c registry.Category, p *textscan.Pattern, group int) Stage {
	p = untagged(p)
	return stage{name, func(text string, sess *registry.Session) string {
		return p.Replace(text, func(m textscan.Match) string {
			v := m.Group(group)
			if v == "" || containsTag(v) {
				return m.Value()
			}
			return m.ReplaceGroup(group, sess.SecretTag(c))
		})
	}}
}

// replaceSpan swaps text[start:end] inside the match for repl.
func replaceSpan(m textscan.Match, start, end int, repl string) string {
	return m.Text[m.Start():start] + repl + m.Text[end:m.End()]
}

// terminator decides where a lazily scanned value stops. punct matches separators
// right at the position; words are label keywords that end the value when they
// begin a new word after optional whitespace.
type terminator struct {
	punct *regexp.Regexp
	words *regexp.Regexp
}

func (t terminator) at(text string, pos int) bool {
	if textscan.FollowedBy(t.punct, text, pos) {
		return true
	}
	if t.words == nil {
		return false
	}
	i := pos
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	if r, ok := textscan.RuneBefore(text, i); ok && textscan.IsWordRune(r) {
		return false
	}
	return textscan.FollowedBy(t.words, text, i)
}

// scanLazy consumes runes accepted by allowed from pos and returns the first
// offset, after at least minRunes runes, where stop fires. maxRunes < 0 means no limit.
func scanLazy(text string, pos, minRunes, maxRunes int, allowed func(rune) bool, stop terminator) (int, bool) {
	n := 0
	for pos < len(text) && (maxRunes < 0 || n < maxRunes) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !allowed(r) {
			return 0, false
		}
		pos += size
		n++
		if n >= minRunes && stop.at(text, pos) {
			return pos, true
		}
	}
	return 0, false
}
