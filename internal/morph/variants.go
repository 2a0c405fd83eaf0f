// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package morph

import (
	"sort"
	"strings"

	"czanon/internal/normalize"
)

// Variants is the closed set of surface forms of one name.
type Variants struct {
	set    map[string]struct{}
	folded map[string]struct{}
	forms  []string
}

func newVariants(forms map[string]struct{}) *Variants {
	v := &Variants{
		set:    make(map[string]struct{}, len(forms)*2),
		folded: make(map[string]struct{}, len(forms)*2),
	}
	for f := range forms {
		if f == "" {
			continue
		}
		for _, form := range []string{f, normalize.ASCIIFold(f)} {
			if form == "" {
				continue
			}
			if _, dup := v.set[form]; dup {
				continue
			}
			v.set[form] = struct{}{}
			v.folded[strings.ToLower(form)] = struct{}{}
			v.forms = append(v.forms, form)
		}
	}
	sort.Slice(v.forms, func(i, j int) bool {
		li, lj := len(v.forms[i]), len(v.forms[j])
		if li != lj {
			return li > lj
		}
		return v.forms[i] < v.forms[j]
	})
	return v
}

// Has reports whether s is one of the forms.
func (v *Variants) Has(s string) bool {
	_, ok := v.set[s]
	return ok
}

// HasFold is Has ignoring case.
func (v *Variants) HasFold(s string) bool {
	_, ok := v.folded[strings.ToLower(s)]
	return ok
}

// Forms returns the forms longest first, so that a search over them never lets a
// short form shadow a longer one.
func (v *Variants) Forms() []string {
	return v.forms
}

func (v *Variants) Len() int {
	return len(v.forms)
}

type formSet map[string]struct{}

func (f formSet) add(forms ...string) {
	for _, s := range forms {
		f[s] = struct{}{}
	}
}

// addStem adds stem+suffix for every suffix.
func (f formSet) addStem(stem string, suffixes ...string) {
	for _, suf := range suffixes {
		f[stem+suf] = struct{}{}
	}
}

var (
	possessiveSuffixes       = []string{"ův", "ova", "ovo", "ovu", "ovou", "ově"}
	possessiveAdjSuffixes    = []string{"ova", "ovo", "ovy", "ově", "ovým", "ových", "ovou", "ovu", "ove"}
	femininePossessives      = []string{"in", "ina", "iny", "iné", "inu", "inou", "iným", "iných", "ino"}
	feminineCaseSuffixes     = []string{"y", "e", "ě", "u", "ou", "o"}
	masculineCaseSuffixes    = []string{"a", "ovi", "e", "em", "u"}
	consonantPluralSuffixes  = []string{"ů", "ům", "y"}
	adjectiveParadigmSuffix  = []string{"ý", "ého", "ému", "ým", "ém", "á", "é", "ou", "ých", "ými"}
	softConsonantCaseSuffix  = []string{"e", "i", "em", "ovi"}
	obliqueStemCaseSuffixes  = []string{"a", "ovi", "em", "u", "e"}
	ecStemSuffixes           = []string{"e", "i", "em", "u", "y"}
	ecStemPluralSuffixes     = []string{"ů", "ům", "ích", "ech", "emi"}
	feminineASurnameSuffixes = []string{"y", "ovi", "ou", "u", "e", "ě", "o"}
)

// FirstNameVariants returns every case form, possessive form and palatalised form of
// a nominative first name, with diacritic-free duplicates. The nominative is always a
// member.
func FirstNameVariants(first string) *Variants {
	f := strings.TrimSpace(first)
	out := formSet{}
	if f == "" {
		return newVariants(out)
	}
	out.add(f, strings.ToLower(f), normalize.Capitalize(f))
	low := strings.ToLower(f)

	switch {
	case strings.HasSuffix(low, "a"):
		stem := cut(f, 1)
		lowStem := strings.ToLower(stem)
		out.addStem(stem, feminineCaseSuffixes...)
		out.addStem(stem, femininePossessives...)
		switch {
		case strings.HasSuffix(lowStem, "ch"):
			out.addStem(cut(stem, 2)+"š", "e", "i")
		case hasAnySuffix(lowStem, "h", "g"):
			out.addStem(cut(stem, 1)+"z", "e", "i")
		case strings.HasSuffix(lowStem, "k"):
			out.addStem(cut(stem, 1)+"c", "e", "i")
		case strings.HasSuffix(lowStem, "r"):
			soft := cut(stem, 1) + "ř"
			out.addStem(soft, "e", "i")
			out.addStem(soft, femininePossessives...)
		}
	case strings.HasSuffix(low, "e") && runeLen(f) > 2:
		// Marie, Alice
		stem := cut(f, 1)
		out.addStem(stem, "i", "í")
	default:
		out.addStem(f, masculineCaseSuffixes...)
		out.addStem(f, possessiveSuffixes...)
		out.addStem(f, possessiveAdjSuffixes...)
		switch {
		case hasAnySuffix(low, "ek", "ěk"):
			stem := softenedStem(f)
			out.addStem(stem, obliqueStemCaseSuffixes...)
			out.addStem(stem, possessiveSuffixes...)
		case strings.HasSuffix(low, "el") && runeLen(f) > 3:
			stem := cut(f, 2) + tail(f, 1)
			out.addStem(stem, obliqueStemCaseSuffixes...)
			out.addStem(stem, possessiveSuffixes...)
		case strings.HasSuffix(low, "ec"):
			out.addStem(cut(f, 2)+"c", "e", "i", "em", "u")
		case strings.HasSuffix(low, "í"):
			stem := cut(f, 1)
			out.addStem(stem, "ího", "ímu", "ím")
		case strings.HasSuffix(low, "r"):
			out.add(cut(f, 1) + "ře")
		}
		if last, _ := charFromEnd(low, 1); strings.ContainsRune(softConsonants, last) {
			// Tomáš, Lukáš, Ondřej
			out.addStem(f, softConsonantCaseSuffix...)
		}
	}
	return newVariants(out)
}

// SurnameVariants returns the forms of a nominative surname for its declension class
// (-ová, adjectival, -á, -ek, -ec, -a, consonant stem), with diacritic-free
// duplicates. The nominative is always a member.
func SurnameVariants(surname string) *Variants {
	s := strings.TrimSpace(surname)
	out := formSet{}
	if s == "" {
		return newVariants(out)
	}
	out.add(s, strings.ToLower(s), normalize.Capitalize(s))
	low := strings.ToLower(s)

	switch {
	case strings.HasSuffix(low, "ová"):
		base := cut(s, 1)
		out.addStem(base, "é", "ou", "á")
		out.addStem(cut(s, 3), "ových", "ovým", "ové")
	case hasAnySuffix(low, "ský", "cký", "ý"):
		out.addStem(cut(s, 1), adjectiveParadigmSuffix...)
	case strings.HasSuffix(low, "á"):
		out.addStem(cut(s, 1), "é", "ou", "á")
	case hasAnySuffix(low, "ek", "ěk") && runeLen(s) >= 3:
		stem := softenedStem(s)
		out.addStem(stem, "a", "ovi", "em", "u", "e", "y", "ou")
		out.addStem(stem, possessiveSuffixes...)
		out.addStem(stem, consonantPluralSuffixes...)
	case strings.HasSuffix(low, "ec") && runeLen(s) >= 3:
		stem := cut(s, 2) + "c"
		out.addStem(stem, ecStemSuffixes...)
		out.addStem(stem, ecStemPluralSuffixes...)
		out.addStem(stem, possessiveSuffixes...)
	case strings.HasSuffix(low, "a") && runeLen(s) >= 2:
		stem := cut(s, 1)
		out.addStem(stem, feminineASurnameSuffixes...)
		out.addStem(stem, possessiveSuffixes...)
		out.addStem(stem, consonantPluralSuffixes...)
		out.add(palatalLocative(stem)...)
	default:
		out.addStem(s, masculineCaseSuffixes...)
		out.addStem(s, possessiveSuffixes...)
		out.addStem(s, possessiveAdjSuffixes...)
		out.addStem(s, "ovi", "ové")
		out.addStem(s, consonantPluralSuffixes...)
		out.addStem(s, "ích", "ech")
		if last, _ := charFromEnd(low, 1); strings.ContainsRune(softConsonants, last) {
			out.add(s + "i")
		}
		if stem, ok := movableEStem(s); ok {
			// Havel -> Havla, Havlovi, Havlův
			out.addStem(stem, obliqueStemCaseSuffixes...)
			out.addStem(stem, possessiveSuffixes...)
			out.addStem(stem, consonantPluralSuffixes...)
		}
	}
	return newVariants(out)
}

// palatalLocative returns the dative/locative forms of an -a stem: Svobodě, Lišce,
// Kučeře, Praze, Vlaše.
func palatalLocative(stem string) []string {
	low := strings.ToLower(stem)
	switch {
	case strings.HasSuffix(low, "ch"):
		return []string{cut(stem, 2) + "še"}
	case strings.HasSuffix(low, "k"):
		return []string{cut(stem, 1) + "ce"}
	case hasAnySuffix(low, "h", "g"):
		return []string{cut(stem, 1) + "ze"}
	case strings.HasSuffix(low, "r"):
		return []string{cut(stem, 1) + "ře"}
	}
	return []string{stem + "ě"}
}

// movableEStem returns the oblique stem of a surname with a movable e: Havel -> Havl.
func movableEStem(s string) (string, bool) {
	if runeLen(s) < 4 || !strings.HasSuffix(strings.ToLower(s), "el") {
		return "", false
	}
	stem := cut(s, 2) + tail(s, 1)
	if _, ok := insertEpenthetic(stem); !ok {
		return "", false
	}
	return stem, true
}

// possessiveStem is the stem possessive suffixes attach to.
func possessiveStem(name string) string {
	low := strings.ToLower(name)
	switch {
	case hasAnySuffix(low, "ek", "ěk"):
		return softenedStem(name)
	case strings.HasSuffix(low, "ec"):
		return cut(name, 2) + "c"
	case strings.HasSuffix(low, "a"):
		return cut(name, 1)
	}
	if stem, ok := movableEStem(name); ok {
		return stem
	}
	return name
}

// PossessiveForms returns the possessive adjectives of a person: Janin, Petřin,
// Petrův, Novákova. Feminine -ová surnames have none.
func PossessiveForms(first, last string) []string {
	out := formSet{}
	f := strings.TrimSpace(first)
	if f != "" {
		low := strings.ToLower(f)
		if strings.HasSuffix(low, "a") {
			stem := cut(f, 1)
			out.addStem(stem, femininePossessives[:8]...)
			if strings.HasSuffix(strings.ToLower(stem), "tr") {
				out.addStem(cut(stem, 1)+"ř", femininePossessives[:8]...)
			}
		} else {
			stem := possessiveStem(f)
			out.add(stem + "ův")
			out.addStem(stem+"ov", "a", "o", "y", "ě", "ým", "ých")
		}
	}
	l := strings.TrimSpace(last)
	if l != "" && !hasAnySuffix(strings.ToLower(l), "á", "ý") {
		stem := possessiveStem(l)
		out.add(stem + "ův")
		out.addStem(stem+"ov", "a", "o", "y", "ě", "ým", "ých")
	}
	return newVariants(out).Forms()
}
