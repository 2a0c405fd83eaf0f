// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czanon/internal/gazetteer"
	"czanon/internal/morph"
	"czanon/internal/registry"
)

func newTestPipeline() *Pipeline {
	names := gazetteer.New("Petr", "Petra", "Jan", "Jana", "Pavel", "Marie", "Eva")
	return New(Options{Engine: morph.NewEngine(names), Variants: morph.NewVariantCache(0)})
}

func countTags(text string, c registry.Category) int {
	return strings.Count(text, "[["+string(c)+"_")
}

func TestPersonWithAddressParagraph(t *testing.T) {
	out, res := newTestPipeline().ProcessTexts([]string{
		"Pronajímatel: Petr Novák, bytem Hlavní 12, 110 00 Praha 1",
	})

	require.Len(t, out, 1)
	assert.Equal(t, 1, countTags(out[0], registry.Person))
	assert.Equal(t, 1, countTags(out[0], registry.Address))
	values := res.TagMap()["[[PERSON_1]]"]
	require.NotEmpty(t, values)
	assert.Equal(t, "Petr Novák", values[0])
	assert.Equal(t, 1, res.Stats.Persons)
	assert.Equal(t, 1, res.Stats.Categories[registry.Address])
	assert.Empty(t, res.Leaks)
}

func TestInflectedFormsAcrossParagraphs(t *testing.T) {
	out, res := newTestPipeline().ProcessTexts([]string{
		"Dopis pro Petra Nováka přišel včera.",
		"",
		"Petrovi jsme to řekli.",
	})

	assert.Equal(t, []string{
		"Dopis pro [[PERSON_1]] přišel včera.",
		"",
		"[[PERSON_1]] jsme to řekli.",
	}, out)
	values := res.TagMap()["[[PERSON_1]]"]
	assert.Contains(t, values, "Petra Nováka")
	assert.Contains(t, values, "Petrovi")
	assert.Equal(t, 2, res.Stats.Paragraphs)
}

func TestDatesShareTagAcrossParagraphs(t *testing.T) {
	out, res := newTestPipeline().ProcessTexts([]string{
		"Smlouva podepsána 13. srpna 2025.",
		"Platnost od 13.08.2025.",
	})

	assert.Equal(t, "Smlouva podepsána [[DATE_1]].", out[0])
	assert.Equal(t, "Platnost od [[DATE_1]].", out[1])
	assert.Equal(t, []string{"13.08.2025"}, res.TagMap()["[[DATE_1]]"])
}

func TestMaidenNameScenario(t *testing.T) {
	out, res := newTestPipeline().ProcessTexts([]string{
		"Jana Nováková (rozená Svobodová) podepsala smlouvu.",
	})

	assert.Equal(t, "[[PERSON_1]] (rozená [[PERSON_1]]) podepsala smlouvu.", out[0])
	assert.Contains(t, res.TagMap()["[[PERSON_1]]"], "Svobodová")
}

func TestSecretsNeverStored(t *testing.T) {
	out, res := newTestPipeline().ProcessTexts([]string{"Heslo: Tajne123!"})

	assert.Equal(t, "Heslo: [[PASSWORD_1]]", out[0])
	assert.Equal(t, []string{registry.SecretPlaceholder}, res.TagMap()["[[PASSWORD_1]]"])
}

func TestLeakIsReported(t *testing.T) {
	out, res := newTestPipeline().ProcessTexts([]string{"Server odpovídá na 10.0.0.7 každý den."})

	assert.Equal(t, "Server odpovídá na 10.0.0.7 každý den.", out[0])
	require.Len(t, res.Leaks, 1)
	assert.Equal(t, registry.IP, res.Leaks[0].Category)
	assert.Equal(t, 1, res.Stats.Leaks)
	assert.Len(t, res.Warnings(), 1)
}

func TestInvisibleCharactersAreRemoved(t *testing.T) {
	out, _ := newTestPipeline().ProcessTexts([]string{"Tel.: 777\u200b 111\u00a0222"})
	assert.Equal(t, "Tel.: [[PHONE_1]]", out[0])
}

func TestGuardRecoversPanics(t *testing.T) {
	p := newTestPipeline()
	res := &Result{}

	ok := p.guard(res, "a.txt", 3, "paragraph", func() { panic("boom") })

	assert.False(t, ok)
	require.Len(t, res.ParagraphErrors, 1)
	err := res.ParagraphErrors[0]
	assert.Equal(t, ErrorTypeParagraph, err.Type)
	assert.Equal(t, 3, err.Paragraph)
	assert.True(t, err.Recoverable)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "paragraph: 3")

	assert.True(t, p.guard(res, "a.txt", 4, "paragraph", func() {}))
	assert.Len(t, res.ParagraphErrors, 1)
}

func TestTidySpacing(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Tel.:[[PHONE_1]]", "Tel.: [[PHONE_1]]"},
		{"č.[[ID_CARD_1]],[[PHONE_1]]", "č. [[ID_CARD_1]], [[PHONE_1]]"},
		{"Jméno:   [[PERSON_1]]", "Jméno: [[PERSON_1]]"},
		{"Bez   značek.", "Bez   značek."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tidySpacing(tt.in))
		})
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "smlouva.txt")
	require.NoError(t, os.WriteFile(in, []byte("Kupující: Petr Novák\nTel.: 777 111 222\n"), 0o644))
	out := filepath.Join(dir, "out", "smlouva_anon.txt")

	res, err := newTestPipeline().ProcessFile(in, out)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Persons)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Kupující: [[PERSON_1]]\nTel.: [[PHONE_1]]\n", string(data))
}

func TestProcessFileReadFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	_, err := newTestPipeline().ProcessFile(filepath.Join(dir, "missing.txt"), out)

	var perr *ProcessingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrorTypeDocumentRead, perr.Type)
	assert.False(t, perr.Recoverable)
	assert.NoFileExists(t, out)
}
