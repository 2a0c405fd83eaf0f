// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package persons finds people in document text and keeps one tag per person across
// every inflected mention. Work is split in four phases that the pipeline drives in
// order: Index over the whole source, Apply and Residual per paragraph, and Merge once
// at the end.
package persons

import (
	"regexp"
	"strings"
	"unicode"

	"czanon/internal/gazetteer"
	"czanon/internal/morph"
	"czanon/internal/patterns"
	"czanon/internal/registry"
	"czanon/internal/textscan"
)

// contextWindow is the number of runes inspected on each side of a name pair for
// corroborating cues.
const contextWindow = 160

// Resolver holds the name knowledge shared by all documents. Per-document state lives
// in the registry.Session passed to each call.
type Resolver struct {
	engine *morph.Engine
	stop   *gazetteer.Stoplists
}

// New returns a resolver. A nil engine knows no first names; nil stoplists mean the
// built-in lists.
func New(engine *morph.Engine, stop *gazetteer.Stoplists) *Resolver {
	if engine == nil {
		engine = morph.NewEngine(gazetteer.Empty())
	}
	if stop == nil {
		stop = gazetteer.DefaultStoplists()
	}
	return &Resolver{engine: engine, stop: stop}
}

var (
	wordRun = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	capWord = regexp.MustCompile(`^\p{Lu}\p{Ll}+$`)

	companySuffix  = textscan.Anchored(`\s*,?\s*(?:a\.\s?s\.|s\.\s?r\.\s?o\.|spol\.|v\.\s?o\.\s?s\.|o\.\s?p\.\s?s\.|o\.\s?s\.|z\.\s?s\.)`)
	orgLabel       = textscan.New(`(?i)(?:oddělení|instituce|společnost|korporace|organizace|firma)\s*:\s*$`).LeftBounded()
	productContext = patterns.Cue{textscan.New(`(?i)výrobce|model|značk|inventář|výrob(?:ek|ku)|položk`).LeftBounded()}
)

// titles are salutations and degrees that may sit between a first name and the
// words around it.
var titles = map[string]bool{
	"pan": true, "paní": true, "pani": true, "pana": true, "panu": true, "panem": true,
	"mudr": true, "ing": true, "mgr": true, "judr": true, "bc": true, "doc": true, "prof": true,
}

type token struct {
	text       string
	start, end int
}

func tokenize(text string) []token {
	spans := wordRun.FindAllStringIndex(text, -1)
	out := make([]token, len(spans))
	for i, sp := range spans {
		out[i] = token{text: text[sp[0]:sp[1]], start: sp[0], end: sp[1]}
	}
	return out
}

// spaced reports whether the text between two tokens is horizontal whitespace only.
func spaced(text string, a, b token) bool {
	gap := text[a.end:b.start]
	if gap == "" {
		return false
	}
	for _, r := range gap {
		if r == '\n' || !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// near reports whether two tokens are separated only by whitespace and dots, the way
// "Ing. Petr" or "pan Novák" are.
func near(text string, a, b token) bool {
	gap := text[a.end:b.start]
	if gap == "" || strings.Contains(gap, "\n") {
		return false
	}
	for _, r := range gap {
		if r != '.' && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isTitle(w string) bool {
	return titles[strings.ToLower(w)]
}

// isStopWord rejects role nouns, titles and blacklisted name-shaped words.
func (r *Resolver) isStopWord(w string) bool {
	return r.stop.Roles.IsStop(w) || r.stop.Surnames.IsStop(w)
}

// isLabelledStop is isStopWord with the adjectival surnames allowed, for names that
// follow an explicit role label.
func (r *Resolver) isLabelledStop(w string) bool {
	if r.stop.Roles.IsStop(w) {
		return true
	}
	return r.stop.Surnames.IsStop(w) && !gazetteer.IsAdjectivalSurname(w)
}

// nominatives infers the nominative first name and surname of an observed pair.
func (r *Resolver) nominatives(first, last string) (string, string) {
	return r.engine.InferFirstName(first, last).Or(first), r.engine.InferSurname(last).Or(last)
}

// pair is two adjacent capitalised words.
type pair struct {
	first, last token
}

func (p pair) start() int { return p.first.start }

func (p pair) end() int { return p.last.end }

// pairs walks the capitalised word pairs of text. visit returns true when it consumed
// the pair; the walk then continues after its second word, otherwise after its first.
func pairs(text string, visit func(p pair) bool) {
	toks := tokenize(text)
	for i := 0; i+1 < len(toks); {
		a, b := toks[i], toks[i+1]
		if capWord.MatchString(a.text) && capWord.MatchString(b.text) && spaced(text, a, b) &&
			!registry.InsideTag(text, a.start) && visit(pair{a, b}) {
			i += 2
			continue
		}
		i++
	}
}

// acceptPair applies the confidence gates to a name pair found in text and returns the
// nominatives when the pair denotes a person.
func (r *Resolver) acceptPair(text string, p pair) (string, string, bool) {
	if r.isStopWord(p.first.text) || r.isStopWord(p.last.text) {
		return "", "", false
	}
	if textscan.FollowedBy(companySuffix, text, p.end()) {
		return "", "", false
	}
	pre := textscan.Before(text, p.start(), 80)
	post := textscan.After(text, p.end(), 80)
	if orgLabel.MatchString(pre) {
		return "", "", false
	}

	first, last := r.nominatives(p.first.text, p.last.text)
	if r.stop.Roles.IsStop(first) || r.stop.Roles.IsStop(last) {
		return "", "", false
	}
	if r.engine.Known(first) {
		return first, last, true
	}
	if productContext.In(pre) || productContext.In(post) {
		return "", "", false
	}
	window := textscan.Before(text, p.start(), contextWindow) + " " + textscan.After(text, p.end(), contextWindow)
	if !patterns.PersonContext.In(window) && !patterns.RoleContext.In(window) && !patterns.LabelContext.In(window) {
		return "", "", false
	}
	if !r.engine.LooksLikeFirstName(p.first.text) {
		return "", "", false
	}
	return first, last, true
}
