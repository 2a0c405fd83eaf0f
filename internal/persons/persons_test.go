// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package persons

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czanon/internal/gazetteer"
	"czanon/internal/morph"
	"czanon/internal/registry"
)

func newTestResolver() *Resolver {
	names := gazetteer.New("Petr", "Petra", "Jan", "Jana", "Pavel", "Marie", "Eva")
	return New(morph.NewEngine(names), nil)
}

// process runs the person phases over paragraphs the way the pipeline does and
// returns the rewritten paragraphs.
func process(t *testing.T, r *Resolver, sess *registry.Session, paragraphs ...string) []string {
	t.Helper()
	source := strings.Join(paragraphs, "\n")
	sess.SetSource(source)
	r.Index(source, sess)
	out := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		out[i] = r.Residual(r.Apply(p, sess), sess)
	}
	redirects := r.Merge(sess)
	for i := range out {
		out[i] = Rewrite(out[i], redirects)
	}
	return out
}

func TestInflectedMentionsShareOneTag(t *testing.T) {
	r := newTestResolver()
	sess := registry.NewSession(nil)

	out := process(t, r, sess,
		"Dopis pro Petra Nováka přišel včera.",
		"Petrovi jsme to řekli.",
	)

	assert.Equal(t, []string{
		"Dopis pro [[PERSON_1]] přišel včera.",
		"[[PERSON_1]] jsme to řekli.",
	}, out)
	values := sess.Values("[[PERSON_1]]")
	require.NotEmpty(t, values)
	assert.Equal(t, "Petr Novák", values[0])
	assert.Contains(t, values, "Petra Nováka")
	assert.Contains(t, values, "Petrovi")
	assert.Len(t, sess.Persons(), 1)
}

func TestMaidenNameJoinsPreviousPerson(t *testing.T) {
	r := newTestResolver()
	sess := registry.NewSession(nil)

	out := process(t, r, sess, "Jana Nováková (rozená Svobodová) podepsala smlouvu.")

	assert.Equal(t, []string{"[[PERSON_1]] (rozená [[PERSON_1]]) podepsala smlouvu."}, out)
	assert.Equal(t, []string{"Jana Nováková", "Svobodová"}, sess.Values("[[PERSON_1]]"))
	assert.Len(t, sess.Persons(), 1)
}

func TestRoleLabelIndexesUnknownFirstName(t *testing.T) {
	r := newTestResolver()
	sess := registry.NewSession(nil)

	out := process(t, r, sess, "Jednatel: Otakar Dušek, tel. 777")

	assert.Equal(t, []string{"Jednatel: [[PERSON_1]], tel. 777"}, out)
	p, ok := sess.PersonByTag("[[PERSON_1]]")
	require.True(t, ok)
	assert.Equal(t, "Otakar", p.First)
	assert.Equal(t, "Dušek", p.Last)
}

func TestNicknameAndBackReference(t *testing.T) {
	r := newTestResolver()
	sess := registry.NewSession(nil)

	out := process(t, r, sess, `Jan "Honza" Novák (dále jen "Honza") podepsal.`)

	assert.Equal(t, []string{`[[PERSON_1]] (dále jen "[[PERSON_1]]") podepsal.`}, out)
	assert.Contains(t, sess.Values("[[PERSON_1]]"), `Jan "Honza" Novák`)
}

func TestBareFirstNamePrefersRecentPerson(t *testing.T) {
	r := newTestResolver()
	sess := registry.NewSession(nil)

	out := process(t, r, sess,
		"Petr Novák a Petr Dvořák.",
		"Petr Dvořák přišel, pak Petr odešel.",
	)

	assert.Equal(t, "[[PERSON_1]] a [[PERSON_2]].", out[0])
	assert.Equal(t, "[[PERSON_2]] přišel, pak [[PERSON_2]] odešel.", out[1])
}

func TestPossessiveAndSurname(t *testing.T) {
	r := newTestResolver()
	sess := registry.NewSession(nil)

	out := process(t, r, sess,
		"Kupující Petr Novák koupil dům.",
		"Novákova zahrada je velká, pan Novák ji udržuje.",
	)

	assert.Equal(t, "Kupující [[PERSON_1]] koupil dům.", out[0])
	assert.Equal(t, "[[PERSON_1]] zahrada je velká, pan [[PERSON_1]] ji udržuje.", out[1])
}

func TestResidualGates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"known first name", "Svědek Jan Dvořák podepsal.", "Svědek [[PERSON_1]] podepsal."},
		{"company suffix", "Zboží dodal Jan Novák s.r.o. včas.", "Zboží dodal Jan Novák s.r.o. včas."},
		{"organisation label", "Společnost: Karel Novák", "Společnost: Karel Novák"},
		{"no cue for unknown name", "Dnes Otakar Dušek odešel.", "Dnes Otakar Dušek odešel."},
		{"role cue for unknown name", "Nájemce Karel Dušek zaplatil.", "Nájemce [[PERSON_1]] zaplatil."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := registry.NewSession(nil)
			sess.SetSource(tt.input)
			assert.Equal(t, tt.want, newTestResolver().Residual(tt.input, sess))
		})
	}
}

func TestMergeFoldsSameIdentity(t *testing.T) {
	r := newTestResolver()
	sess := registry.NewSession(nil)
	sess.SetSource("Petr Nováka, Petr Novák")

	first := sess.EnsurePerson("Petr", "Nováka")
	second := sess.EnsurePerson("Petr", "Novák")
	require.NotEqual(t, first.Tag, second.Tag)

	redirects := r.Merge(sess)

	assert.Equal(t, map[string]string{"[[PERSON_2]]": "[[PERSON_1]]"}, redirects)
	assert.Len(t, sess.Persons(), 1)
	assert.ElementsMatch(t, []string{"Petr Nováka", "Petr Novák"}, sess.Values("[[PERSON_1]]"))
	assert.Empty(t, sess.Values("[[PERSON_2]]"))
	assert.Equal(t, "[[PERSON_1]] a [[PERSON_1]]", Rewrite("[[PERSON_1]] a [[PERSON_2]]", redirects))
}

func TestMergeKeepsDistinctPeople(t *testing.T) {
	r := newTestResolver()
	sess := registry.NewSession(nil)
	sess.SetSource("Petr Novák, Jan Novák")
	sess.EnsurePerson("Petr", "Novák")
	sess.EnsurePerson("Jan", "Novák")

	assert.Empty(t, r.Merge(sess))
	assert.Len(t, sess.Persons(), 2)
}

func TestIndexIgnoresEmails(t *testing.T) {
	r := newTestResolver()
	sess := registry.NewSession(nil)
	text := "Kontakt: Petr.Novak@example.cz"
	sess.SetSource(text)

	r.Index(text, sess)
	assert.Empty(t, sess.Persons())
}
