// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package persons

import (
	"regexp"
	"strings"

	"czanon/internal/patterns"
	"czanon/internal/registry"
	"czanon/internal/textscan"
)

const (
	nameWord  = `\p{Lu}\p{Ll}+`
	roleLabel = `(?i:jednatel(?:ka)?|zaměstnan(?:ec|kyně)|dlužník|věřitel|prodávající|kupující)\s*:\s*`

	emailMask = "__EMAIL__"
)

var (
	// Jednatel: Jan Pavel Novák / Jednatel: Jan Novák
	rolePattern = textscan.New(
		roleLabel+`(`+nameWord+`)[ \t]+(`+nameWord+`)[ \t]+(`+nameWord+`)`,
		roleLabel+`(`+nameWord+`)[ \t]+(`+nameWord+`)`,
	).LeftBounded().Where(func(text string, loc []int) bool {
		lastStart, lastEnd := loc[len(loc)-2], loc[len(loc)-1]
		if roleTrailer.MatchString(text[lastStart:lastEnd]) {
			return false
		}
		return textscan.FollowedBy(roleEnd, text, lastEnd)
	})

	roleEnd     = textscan.Anchored(`\s*(?:$|[,.;:\n(]|(?i:bytem|bydlišt[eě]|sídlo|e-mail|tel(?:efon)?|kontakt|nar(?:ozen[aá]?)?|rč|datum)(?:[^\p{L}]|$))`)
	roleTrailer = regexp.MustCompile(`(?i)^(?:bytem|bydliště|sídlo|tel|telefon|kontakt|email|nar|narozen|narozena|datum)$`)

	// Jan "Honza" Novák
	nicknamePattern = textscan.New(
		`(` + nameWord + `)\s+["„“]([^"„“”\n]{1,20})["“”]\s+(` + nameWord + `)`,
	).Bounded()
)

// Index scans the whole source text and registers every person it is confident
// about. Nothing is replaced; the replacement passes find the mentions later.
func (r *Resolver) Index(text string, sess *registry.Session) {
	text = patterns.Email.Replace(text, func(textscan.Match) string { return emailMask })
	r.indexRoles(text, sess)
	r.indexNicknames(text, sess)
	pairs(text, func(p pair) bool {
		first, last, ok := r.acceptPair(text, p)
		if !ok {
			return false
		}
		sess.EnsurePerson(first, last)
		return true
	})
}

func (r *Resolver) indexRoles(text string, sess *registry.Session) {
	for _, m := range rolePattern.FindAll(text) {
		first, last := m.Group(1), m.Group(2)
		middle := ""
		if m.Alt == 0 {
			middle, last = m.Group(2), m.Group(3)
		}
		if r.isLabelledStop(first) || r.isLabelledStop(last) || (middle != "" && r.isLabelledStop(middle)) {
			continue
		}
		nomFirst, nomLast := r.nominatives(first, last)
		if middle != "" {
			nomFirst += " " + middle
		}
		sess.EnsurePerson(nomFirst, nomLast)
	}
}

func (r *Resolver) indexNicknames(text string, sess *registry.Session) {
	for _, m := range nicknamePattern.FindAll(text) {
		first, last := m.Group(1), m.Group(3)
		if r.isStopWord(first) || r.isStopWord(last) {
			continue
		}
		nomFirst, nomLast := r.nominatives(first, last)
		sess.EnsurePerson(nomFirst, nomLast)
	}
}

// nickname returns the quoted part of a `Jan "Honza" Novák` value.
func nickname(value string) (string, bool) {
	m, ok := nicknamePattern.Find(value)
	if !ok || strings.TrimSpace(m.Group(2)) == "" {
		return "", false
	}
	return strings.TrimSpace(m.Group(2)), true
}
