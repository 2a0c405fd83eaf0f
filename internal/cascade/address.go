// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cascade

import (
	"regexp"
	"strings"
	"unicode"

	"czanon/internal/gazetteer"
	"czanon/internal/normalize"
	"czanon/internal/patterns"
	"czanon/internal/registry"
	"czanon/internal/textscan"
)

const (
	upper   = `[` + patterns.Upper + `]`
	letters = patterns.Upper + patterns.Lower

	addressPrefix = `(?:(?:trvale\s+)?bytem\s*:?\s*|(?:trvalé\s+)?bydlišt[eě]\s*:\s*|` +
		`(?:sídlo(?:\s+podnikání)?|se\s+sídlem)\s*:\s*|místo\s+(?:podnikání|výkonu\s+práce)\s*:?\s*|` +
		`(?:adresa|trvalý\s+pobyt)\s*:\s*|(?:v\s+ulic[ií]|na\s+adrese|v\s+dom[eě])\s+)`

	houseNumber = `\d{1,4}(?:/\d{1,4})?`
)

// keywords builds a label matcher. whole words must not run on into further
// letters; prefixes may.
func keywords(whole, prefixes string) *regexp.Regexp {
	return textscan.Anchored(`(?i)(?:(?:` + whole + `)(?:[^\p{L}]|$)|` + prefixes + `)`)
}

var (
	separators = textscan.Anchored(`\s*(?:$|[,.\n()\[\]])`)

	cityStop = terminator{
		punct: separators,
		words: keywords(`Nar\.?|RČ|OP|Tel\.?`,
			`Rodn[éě]|IČO|DIČ|Občansk|Telefon|E-mail|Kontakt|Číslo|Datum|Zastoupen|Jednatel|vyd[aá]n|dále`),
	}
	zipCityStop = terminator{
		punct: separators,
		words: keywords(`Nar\.?|RČ|OP|Tel\.?`, `Rodn[éě]|Telefon|E-mail|Kontakt|Číslo|Datum`),
	}

	// Name Surname, bytem Street 12
	personAddressPattern = untagged(textscan.New(
		`(` + upper + `[` + patterns.Lower + `]+(?:\s+` + upper + `[` + patterns.Lower + `]+){1,3}),\s+((?i:bytem)\s+)` +
			`(` + upper + `[` + letters + `\s]*?\s+\d{1,4}[a-zA-Z]?(?:/\d{1,4}[a-zA-Z]?)?)`,
	).LeftBounded().RightBounded().NotAfterRune('[').Extend(extendWithCity))

	cityTail = textscan.Anchored(`,\s*(?:\d{3}\s?\d{2}\s+)?` + upper)

	zipAddressPattern = untagged(textscan.New(
		`(?i)((?:v\s+)?(?:\d+\.)?\s*NP\s+(?:domu\s+)?(?:na\s+adrese|v\s+dom[eě]|v\s+ulic[ií])\s+)?` +
			`((?-i:` + upper + `)[` + letters + `\s]{2,50}?\s+` + houseNumber + `,\s*\d{3}\s?\d{2}\s+(?-i:` + upper + `))`,
	).NotAfterRune('[').Extend(func(text string, loc []int) (int, bool) {
		return scanLazy(text, loc[1], 1, -1, zipCityRune, zipCityStop)
	}).Where(func(text string, loc []int) bool {
		if loc[2] >= 0 && loc[3] > loc[2] {
			if r, ok := textscan.RuneBefore(text, loc[2]); ok && textscan.IsWordRune(r) {
				return false
			}
		}
		return !textscan.FollowedBy(floorPrefix, text, loc[4])
	}))

	floorPrefix = textscan.Anchored(`(?i)NP\s`)

	streetStart = `(?:(?:nám|ul|tř|n|u|t)\.\s+|(?:(?:Na|U|K|Pod|V|Nad|Za)\s+)?(?-i:` + upper + `))`

	prefixedAddressPattern = untagged(textscan.New(
		`(?i)(` + addressPrefix + `)?(` + streetStart + `)[` + letters + `\s]{1,50}?\s+` + houseNumber +
			`,\s*(?:\d{3}\s?\d{2}\s+)?(?-i:` + upper + `)`,
	).NotAfterRune('[').Extend(func(text string, loc []int) (int, bool) {
		return scanLazy(text, loc[1], 1, -1, cityRune, cityStop)
	}).Where(func(text string, loc []int) bool {
		return !textscan.FollowedBy(nameThenBytem, text, loc[4]) && !textscan.FollowedBy(cardCode, text, loc[4])
	}))

	nameThenBytem = textscan.Anchored(`(?i)` + upper + `[` + patterns.Lower + `]+\s+` + upper + `[` + patterns.Lower + `]+,\s+bytem`)
	cardCode      = textscan.Anchored(`(?i)[A-Z]{2,3}\s+\d{6,9}`)

	reversedAddressPattern = untagged(textscan.New(
		`(?i)(` + addressPrefix + `)((?-i:` + upper + `)[` + letters + `\s\d]{2,50},\s+(?-i:` + upper + `)[` + letters + `\s]{2,60}\s+` + houseNumber + `)`,
	).NotAfterRune('[').Where(func(text string, loc []int) bool {
		return textscan.FollowedBy(addressEnd, text, loc[1])
	}))

	addressEnd = textscan.Anchored(`[\s,.]|$`)

	opLabelBefore = textscan.New(`(?i)OP\s*:\s*$`).LeftBounded()
	bytemInside   = regexp.MustCompile(`(?i),\s+bytem\s+`)

	addressLabel = regexp.MustCompile(`(?i)^(?:Trvalé\s+bydliště|Bydliště|(?:Trvale\s+)?bytem|Adresa|` +
		`Místo\s+(?:podnikání|výkonu\s+práce)|Sídlo\s+podnikání|Se\s+sídlem|Sídlo|Trvalý\s+pobyt)\s*:?\s*`)
	narrativePrefix = regexp.MustCompile(`(?i)^(?:(?:v\s+)?(?:\d+\.)?\s*NP\s+)?(?:domu\s+)?(?:na\s+adrese|v\s+dom[eě]|v\s+ulic[ií])\s+`)
	parenthetical   = regexp.MustCompile(`\s*\(.*?\)\s*`)
	hereinafter     = regexp.MustCompile(`(?i)\s*\(dále\s+jen.*$`)
)

func cityRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsSpace(r) || unicode.IsDigit(r) || r == '-'
}

func zipCityRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsSpace(r) || unicode.IsDigit(r)
}

// extendWithCity continues a "Street 12" match over an optional ", [ZIP] City" tail.
func extendWithCity(text string, loc []int) (int, bool) {
	end := loc[1]
	tail := cityTail.FindStringIndex(text[end:])
	if tail == nil {
		return end, true
	}
	if cityEnd, ok := scanLazy(text, end+tail[1], 1, -1, cityRune, cityStop); ok {
		return cityEnd, true
	}
	return end, true
}

// cleanAddress strips labels, narrative phrases and parentheticals from a matched
// address and collapses whitespace.
func cleanAddress(v string) string {
	v = addressLabel.ReplaceAllString(strings.TrimSpace(v), "")
	v = narrativePrefix.ReplaceAllString(v, "")
	v = parenthetical.ReplaceAllString(v, " ")
	v = hereinafter.ReplaceAllString(v, "")
	return normalize.CollapseSpaces(v)
}

// retainedPrefix keeps a label in the text. Bare labels gain a colon.
func retainedPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	if addressLabel.MatchString(prefix) && !strings.HasSuffix(strings.TrimRight(prefix, " \t"), ":") {
		return strings.TrimRight(prefix, " \t") + ": "
	}
	return prefix
}

func (c *Cascade) isLabelWord(w string) bool {
	if c.stop.Roles.IsStop(w) {
		return true
	}
	return c.stop.Surnames.IsStop(w) && !gazetteer.IsAdjectivalSurname(w)
}

var wordSpans = regexp.MustCompile(`\S+`)

// personAddress resolves "Name Surname, bytem Street 12[, ZIP City]" into one
// person tag and one address tag. Leading role words stay in the text.
func (c *Cascade) personAddress(text string, sess *registry.Session) string {
	return personAddressPattern.Replace(text, func(m textscan.Match) string {
		nameStart, nameEnd := m.GroupSpan(1)
		spans := wordSpans.FindAllStringIndex(text[nameStart:nameEnd], -1)
		for len(spans) > 0 && c.isLabelWord(text[nameStart+spans[0][0]:nameStart+spans[0][1]]) {
			spans = spans[1:]
		}
		if len(spans) < 2 {
			return m.Value()
		}
		words := make([]string, len(spans))
		for i, sp := range spans {
			words[i] = text[nameStart+sp[0] : nameStart+sp[1]]
		}
		last := words[len(words)-1]
		if c.isLabelWord(last) {
			return m.Value()
		}

		first := c.engine.InferFirstName(words[0], last).Or(words[0])
		if len(words) > 2 {
			first += " " + strings.Join(words[1:len(words)-1], " ")
		}
		surname := c.engine.InferSurname(last).Or(last)
		person := sess.EnsurePerson(first, surname)
		sess.Record(person.Tag, strings.Join(words, " "))

		addrStart, _ := m.GroupSpan(3)
		address := normalize.CollapseSpaces(text[addrStart:m.End()])
		addrTag := sess.Tag(registry.Address, address)

		keptStart := nameStart + spans[0][0]
		return text[m.Start():keptStart] + person.Tag + ", " + m.Group(2) + addrTag
	})
}

func addressWithZip(text string, sess *registry.Session) string {
	return zipAddressPattern.Replace(text, func(m textscan.Match) string {
		valueStart, _ := m.GroupSpan(2)
		v := cleanAddress(text[valueStart:m.End()])
		if v == "" {
			return m.Value()
		}
		return m.Group(1) + sess.Tag(registry.Address, v)
	})
}

func prefixedAddress(text string, sess *registry.Session) string {
	return prefixedAddressPattern.Replace(text, func(m textscan.Match) string {
		return labelledAddress(m, sess)
	})
}

func reversedAddress(text string, sess *registry.Session) string {
	return reversedAddressPattern.Replace(text, func(m textscan.Match) string {
		return labelledAddress(m, sess)
	})
}

// labelledAddress replaces an address whose optional label is submatch 1.
func labelledAddress(m textscan.Match, sess *registry.Session) string {
	if opLabelBefore.MatchString(m.Before(20)) {
		return m.Value()
	}
	if bytemInside.MatchString(m.Value()) {
		return m.Value()
	}
	prefix := m.Group(1)
	_, restStart := m.GroupSpan(1)
	if restStart < 0 {
		restStart = m.Start()
	}
	rest := m.Text[restStart:m.End()]
	if prefix == "" {
		if label := addressLabel.FindString(rest); label != "" {
			prefix, rest = label, rest[len(label):]
		}
	}
	v := cleanAddress(rest)
	if v == "" {
		return m.Value()
	}
	return retainedPrefix(prefix) + sess.Tag(registry.Address, v)
}
