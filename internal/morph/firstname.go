// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package morph recovers nominative forms of inflected Czech names and generates the
// closed set of inflected surface forms of a nominative.
package morph

import (
	"strings"

	"czanon/internal/normalize"
)

// NameSet is the gazetteer view the engine needs.
type NameSet interface {
	Contains(name string) bool
	// Display returns the canonical spelling of a known name, or "".
	Display(name string) string
}

// Engine infers nominatives. First names are validated against names; surnames are
// open-class and recovered by suffix heuristics only.
type Engine struct {
	names NameSet
}

// NewEngine returns an engine validating first names against names.
func NewEngine(names NameSet) *Engine {
	return &Engine{names: names}
}

// firstNameRule proposes candidate nominatives for an observed form. Candidates are
// tried in order; the first one present in the gazetteer wins.
type firstNameRule struct {
	name       string
	candidates func(obs, low string) []string
}

// stripSuffix removes suf when at least two characters of stem remain.
func stripSuffix(obs, low, suf string) (string, bool) {
	if !strings.HasSuffix(low, suf) || runeLen(obs) <= runeLen(suf)+1 {
		return "", false
	}
	return cut(obs, runeLen(suf)), true
}

var nominativeRule = firstNameRule{
	name:       "nominative",
	candidates: func(obs, _ string) []string { return []string{obs} },
}

// masculineRules turn oblique masculine forms into the nominative: Petrovi, Petrem,
// Petra, Marka, Pavla, Pavle, Tomáše, Petře.
var masculineRules = []firstNameRule{
	{name: "masculine-u", candidates: func(obs, low string) []string {
		if strings.HasSuffix(low, "u") && runeLen(obs) > 1 {
			return []string{cut(obs, 1)}
		}
		return nil
	}},
	{name: "masculine-ovi", candidates: func(obs, low string) []string {
		if s, ok := stripSuffix(obs, low, "ovi"); ok {
			return []string{s}
		}
		return nil
	}},
	{name: "masculine-em", candidates: func(obs, low string) []string {
		if s, ok := stripSuffix(obs, low, "em"); ok {
			return []string{s}
		}
		return nil
	}},
	{name: "masculine-movable-e", candidates: func(obs, low string) []string {
		var out []string
		for _, pair := range [][2]string{{"ka", "ek"}, {"la", "el"}, {"ca", "ec"}} {
			if strings.HasSuffix(low, pair[0]) && runeLen(obs) > 2 {
				out = append(out, cut(obs, 2)+pair[1])
			}
		}
		return out
	}},
	{name: "masculine-a", candidates: func(obs, low string) []string {
		if strings.HasSuffix(low, "a") && runeLen(obs) > 1 {
			return []string{cut(obs, 1)}
		}
		return nil
	}},
	{name: "masculine-e", candidates: func(obs, low string) []string {
		if !strings.HasSuffix(low, "e") || runeLen(obs) <= 1 {
			return nil
		}
		stem := cut(obs, 1)
		out := []string{stem}
		// Pavle -> Pavel, Marce -> Marek is not recoverable here
		if last, ok := charFromEnd(strings.ToLower(stem), 1); ok && (last == 'l' || last == 'c') && runeLen(stem) > 2 {
			out = append(out, cut(stem, 1)+"e"+tail(stem, 1))
		}
		if strings.HasSuffix(low, "ře") && runeLen(obs) > 2 {
			out = append(out, cut(obs, 2)+"r")
		}
		return out
	}},
	{name: "masculine-soft-i", candidates: func(obs, low string) []string {
		if s, ok := stripSuffix(obs, low, "i"); ok {
			if last, _ := charFromEnd(strings.ToLower(s), 1); strings.ContainsRune("šžčřjťďňc", last) {
				return []string{s}
			}
		}
		return nil
	}},
}

var feminineRules = []firstNameRule{
	{name: "feminine-ice", candidates: func(obs, low string) []string {
		if strings.HasSuffix(low, "ice") && runeLen(obs) > 3 {
			stem := cut(obs, 3)
			return []string{stem + "ika", stem + "a"}
		}
		return nil
	}},
	{name: "feminine-re", candidates: func(obs, low string) []string {
		if strings.HasSuffix(low, "ře") && runeLen(obs) > 2 {
			return []string{cut(obs, 2) + "ra"}
		}
		return nil
	}},
	{name: "feminine-possessive", candidates: func(obs, low string) []string {
		var out []string
		for _, suf := range []string{"inou", "iným", "iných", "iné", "inu", "iny", "ina", "in"} {
			if s, ok := stripSuffix(obs, low, suf); ok {
				out = append(out, s+"a")
				if strings.HasSuffix(s, "ř") {
					out = append(out, cut(s, 1)+"ra")
				}
			}
		}
		return out
	}},
	{name: "feminine-case", candidates: func(obs, low string) []string {
		var out []string
		for _, suf := range []string{"ou", "u", "y", "e", "ě", "o"} {
			if s, ok := stripSuffix(obs, low, suf); ok {
				out = append(out, s+"a")
			}
		}
		// Marii, Marií -> Marie
		for _, suf := range []string{"ii", "ií"} {
			if s, ok := stripSuffix(obs, low, suf); ok {
				out = append(out, s+"ie")
			}
		}
		return out
	}},
}

var masculineFallbackRules = []firstNameRule{
	{name: "masculine-possessive", candidates: func(obs, low string) []string {
		var out []string
		for _, suf := range []string{"ových", "ovou", "ově", "ovu", "ova", "ovo", "ův"} {
			if s, ok := stripSuffix(obs, low, suf); ok {
				out = append(out, s)
			}
		}
		return out
	}},
	{name: "masculine-case", candidates: func(obs, low string) []string {
		var out []string
		for _, suf := range []string{"ovi", "em", "e", "u", "a"} {
			if s, ok := stripSuffix(obs, low, suf); ok {
				out = append(out, s)
			}
		}
		return out
	}},
	{name: "soft-adjectival", candidates: func(obs, low string) []string {
		// Jiřího, Jiřímu, Jiřím -> Jiří
		for _, suf := range []string{"ího", "ímu", "ím"} {
			if strings.HasSuffix(low, suf) && runeLen(obs) > runeLen(suf) {
				return []string{cut(obs, runeLen(suf)) + "í"}
			}
		}
		return nil
	}},
}

// InferFirstName recovers the nominative of an observed first name. surname is the
// co-occurring surname as observed (may be empty) and steers the gender decision: a
// feminine surname skips the masculine rules, a masculine oblique surname ("Nováka")
// tries them before accepting the observed form as a nominative.
func (e *Engine) InferFirstName(observed, surname string) Result {
	obs := strings.TrimSpace(observed)
	if obs == "" || e.names == nil {
		return Unchanged()
	}
	low := strings.ToLower(obs)
	for _, rule := range e.firstNamePlan(surname) {
		for _, cand := range rule.candidates(obs, low) {
			if cand == "" || !e.names.Contains(cand) {
				continue
			}
			if display := e.names.Display(cand); display != "" {
				return Recovered(display)
			}
			return Recovered(cand)
		}
	}
	return Unchanged()
}

func (e *Engine) firstNamePlan(surname string) []firstNameRule {
	plan := make([]firstNameRule, 0, 1+len(masculineRules)+len(feminineRules)+len(masculineFallbackRules))
	switch {
	case isFeminineSurname(surname):
		plan = append(plan, nominativeRule)
	case e.isMasculineOblique(surname):
		plan = append(plan, masculineRules...)
		plan = append(plan, nominativeRule)
	default:
		plan = append(plan, nominativeRule)
		plan = append(plan, masculineRules...)
	}
	plan = append(plan, feminineRules...)
	return append(plan, masculineFallbackRules...)
}

func isFeminineSurname(surname string) bool {
	return hasAnySuffix(strings.ToLower(strings.TrimSpace(surname)), "ová", "á", "ou", "é")
}

// isMasculineOblique reports whether surname looks like a masculine surname in a case
// other than the nominative: the surname rules recover a different form that is not
// feminine.
func (e *Engine) isMasculineOblique(surname string) bool {
	s := strings.TrimSpace(surname)
	if s == "" {
		return false
	}
	nom, ok := e.InferSurname(s).Value()
	if !ok || strings.EqualFold(nom, s) {
		return false
	}
	return !strings.HasSuffix(strings.ToLower(nom), "á")
}

// Known reports whether name is in the gazetteer.
func (e *Engine) Known(name string) bool {
	return e.names != nil && e.names.Contains(name)
}

// LooksLikeFirstName accepts a capitalised token that is either a known first name or
// has a typical first-name ending.
func (e *Engine) LooksLikeFirstName(token string) bool {
	if token == "" || !normalize.IsUpperInitial(token) {
		return false
	}
	if e.names != nil && e.names.Contains(token) {
		return true
	}
	key := normalize.ForMatching(token)
	if hasAnySuffix(key, "ek", "el", "os", "as", "an", "en") {
		return true
	}
	return strings.HasSuffix(key, "a") && len(key) > 3
}
