// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package persons

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"czanon/internal/morph"
	"czanon/internal/normalize"
	"czanon/internal/registry"
	"czanon/internal/textscan"
)

// lookback is how far, in runes, a bare first name or a maiden name looks for the
// person tag it belongs to.
const lookback = 200

var (
	personTag    = regexp.MustCompile(`\[\[PERSON_\d+\]\]`)
	maidenBefore = regexp.MustCompile(`(?i)\((?:rozená|roz\.?|dříve)\s+(?:\p{Lu}\p{L}*\s+)?$`)

	// (rozená Svobodová)
	maidenPattern = textscan.New(`\((?i:rozená|roz\.?|dříve)\s+(?:(\p{Lu}\p{Ll}+)\s+)?(\p{Lu}\p{Ll}+)\)`)
)

// Apply replaces the mentions of the indexed persons in one paragraph. The passes run
// in a fixed order and each sees the output of the previous one: nicknames, full
// names, possessives, surnames, first names after a title, maiden names, bare first
// names and finally "(dále jen ...)" nickname references.
func (r *Resolver) Apply(text string, sess *registry.Session) string {
	people := sess.Persons()
	if len(people) == 0 {
		return text
	}
	text = r.nicknames(text, sess)
	for _, p := range people {
		text = fullNames(text, p, sess)
	}
	for _, p := range people {
		text = possessives(text, p, sess)
	}
	for _, p := range people {
		text = surnames(text, p, sess)
	}
	for _, p := range people {
		text = titledFirstNames(text, p, sess)
	}
	text = maidenNames(text, sess)
	for _, p := range people {
		text = r.firstNames(text, p, sess)
	}
	return nicknameReferences(text, sess)
}

// Residual tags the name pairs that survived Apply and pass the confidence gates,
// creating persons as needed.
func (r *Resolver) Residual(text string, sess *registry.Session) string {
	var edits []textscan.Edit
	pairs(text, func(p pair) bool {
		first, last, ok := r.acceptPair(text, p)
		if !ok {
			return false
		}
		person := sess.EnsurePerson(first, last)
		sess.Record(person.Tag, text[p.start():p.end()])
		edits = append(edits, textscan.Edit{Start: p.start(), End: p.end(), Text: person.Tag})
		return true
	})
	return textscan.Apply(text, edits)
}

func (r *Resolver) nicknames(text string, sess *registry.Session) string {
	return nicknamePattern.Replace(text, func(m textscan.Match) string {
		if registry.InsideTag(text, m.Start()) {
			return m.Value()
		}
		first, last := r.nominatives(m.Group(1), m.Group(3))
		p, ok := sess.FindPerson(first, last)
		if !ok {
			return m.Value()
		}
		sess.Record(p.Tag, m.Value())
		return p.Tag
	})
}

// fullNames replaces "first last" in any inflected form. A multi-word first name
// spans several tokens.
func fullNames(text string, p *registry.PersonRecord, sess *registry.Session) string {
	k := len(strings.Fields(p.First))
	if k == 0 {
		return text
	}
	toks := tokenize(text)
	var edits []textscan.Edit
	for i := 0; i+k < len(toks); i++ {
		span := toks[i : i+k+1]
		if registry.InsideTag(text, span[0].start) || !allSpaced(text, span) {
			continue
		}
		if !p.LastForms.HasFold(span[k].text) || !p.FirstForms.HasFold(joinTokens(span[:k])) {
			continue
		}
		start, end := span[0].start, span[k].end
		sess.Record(p.Tag, text[start:end])
		edits = append(edits, textscan.Edit{Start: start, End: end, Text: p.Tag})
		i += k
	}
	return textscan.Apply(text, edits)
}

func allSpaced(text string, toks []token) bool {
	for i := 1; i < len(toks); i++ {
		if !spaced(text, toks[i-1], toks[i]) {
			return false
		}
	}
	return true
}

func joinTokens(toks []token) string {
	words := make([]string, len(toks))
	for i, t := range toks {
		words[i] = t.text
	}
	return strings.Join(words, " ")
}

// possessives replaces possessive adjectives: Petrův, Janin, Novákova.
func possessives(text string, p *registry.PersonRecord, sess *registry.Session) string {
	forms := make(map[string]bool)
	for _, f := range morph.PossessiveForms(p.First, p.Last) {
		forms[strings.ToLower(f)] = true
	}
	return replaceTokens(text, p.Tag, sess, func(toks []token, i int) bool {
		return forms[strings.ToLower(toks[i].text)]
	})
}

// surnames replaces a bare surname unless it is a maiden name in parentheses or
// sits next to one of the person's first names.
func surnames(text string, p *registry.PersonRecord, sess *registry.Session) string {
	return replaceTokens(text, p.Tag, sess, func(toks []token, i int) bool {
		t := toks[i]
		if !p.LastForms.HasFold(t.text) {
			return false
		}
		if maidenBefore.MatchString(textscan.Before(text, t.start, 30)) {
			return false
		}
		if prev, ok := previousName(text, toks, i); ok && p.FirstForms.HasFold(prev.text) {
			return false
		}
		if i+1 < len(toks) && near(text, t, toks[i+1]) && p.FirstForms.HasFold(toks[i+1].text) {
			return false
		}
		return true
	})
}

// titledFirstNames replaces a first name right after a salutation or degree, which
// also catches the leading word of a multi-word given name ("paní Nguyễn").
func titledFirstNames(text string, p *registry.PersonRecord, sess *registry.Session) string {
	given := strings.Fields(p.First)
	if len(given) == 0 {
		return text
	}
	return replaceTokens(text, p.Tag, sess, func(toks []token, i int) bool {
		t := toks[i]
		if i == 0 || utf8.RuneCountInString(t.text) < 3 {
			return false
		}
		if !strings.EqualFold(t.text, given[0]) && !p.FirstForms.HasFold(t.text) {
			return false
		}
		return isTitle(toks[i-1].text) && near(text, toks[i-1], t)
	})
}

// maidenNames links "(rozená Surname)" to the nearest preceding person tag. The name
// becomes one more value of that tag.
func maidenNames(text string, sess *registry.Session) string {
	return maidenPattern.Replace(text, func(m textscan.Match) string {
		tag := nearestPersonTag(text, m.Start())
		if tag == "" {
			return m.Value()
		}
		nameStart, _ := m.GroupSpan(2)
		if m.HasGroup(1) {
			nameStart, _ = m.GroupSpan(1)
		}
		name := text[nameStart : m.End()-1]
		sess.Record(tag, name)
		sess.Alias(registry.Person, name, tag)
		return text[m.Start():nameStart] + tag + ")"
	})
}

// firstNames replaces bare first names. A name that shares its first name with a
// person mentioned shortly before is attributed to that person.
func (r *Resolver) firstNames(text string, p *registry.PersonRecord, sess *registry.Session) string {
	var edits []textscan.Edit
	toks := tokenize(text)
	for i, t := range toks {
		if registry.InsideTag(text, t.start) || !normalize.IsUpperInitial(t.text) || !p.FirstForms.HasFold(t.text) {
			continue
		}
		if i > 0 && near(text, toks[i-1], t) && p.LastForms.HasFold(toks[i-1].text) {
			continue
		}
		if i+1 < len(toks) && near(text, t, toks[i+1]) {
			next := toks[i+1].text
			if p.LastForms.HasFold(next) || (capWord.MatchString(next) && !r.isStopWord(next)) {
				continue
			}
		}
		tag := p.Tag
		if prior := nearestPersonTag(text, t.start); prior != "" && prior != p.Tag && sharesFirstName(sess, prior, t.text) {
			tag = prior
		}
		sess.Record(tag, t.text)
		edits = append(edits, textscan.Edit{Start: t.start, End: t.end, Text: tag})
	}
	return textscan.Apply(text, edits)
}

// nicknameReferences rewrites `(dále jen "Honza")` for nicknames recorded on a person.
func nicknameReferences(text string, sess *registry.Session) string {
	if !strings.Contains(strings.ToLower(text), "dále") {
		return text
	}
	for _, tag := range sess.Tags() {
		if !registry.HasCategory(tag, registry.Person) {
			continue
		}
		for _, v := range sess.Values(tag) {
			nick, ok := nickname(v)
			if !ok {
				continue
			}
			ref := regexp.MustCompile(`(?i)\(dále\s+jen\s+["„“]` + regexp.QuoteMeta(nick) + `["“”]\)`)
			if !ref.MatchString(text) {
				continue
			}
			sess.Record(tag, nick)
			text = ref.ReplaceAllLiteralString(text, `(dále jen "`+tag+`")`)
		}
	}
	return text
}

// replaceTokens tags every capitalised token outside tags that match accepts.
func replaceTokens(text, tag string, sess *registry.Session, match func(toks []token, i int) bool) string {
	toks := tokenize(text)
	var edits []textscan.Edit
	for i, t := range toks {
		if registry.InsideTag(text, t.start) || !normalize.IsUpperInitial(t.text) || !match(toks, i) {
			continue
		}
		sess.Record(tag, t.text)
		edits = append(edits, textscan.Edit{Start: t.start, End: t.end, Text: tag})
	}
	return textscan.Apply(text, edits)
}

// previousName returns the word before toks[i], skipping titles.
func previousName(text string, toks []token, i int) (token, bool) {
	j := i - 1
	for j >= 0 && near(text, toks[j], toks[j+1]) && isTitle(toks[j].text) {
		j--
	}
	if j < 0 || !near(text, toks[j], toks[j+1]) {
		return token{}, false
	}
	return toks[j], true
}

// nearestPersonTag returns the last person tag within lookback runes before pos.
func nearestPersonTag(text string, pos int) string {
	window := textscan.Before(text, pos, lookback)
	all := personTag.FindAllString(window, -1)
	if len(all) == 0 {
		return ""
	}
	return all[len(all)-1]
}

func sharesFirstName(sess *registry.Session, tag, surface string) bool {
	if p, ok := sess.PersonByTag(tag); ok && p.FirstForms.HasFold(surface) {
		return true
	}
	for _, v := range sess.Values(tag) {
		if words := strings.Fields(v); len(words) > 0 && strings.EqualFold(words[0], surface) {
			return true
		}
	}
	return false
}
