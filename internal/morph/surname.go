// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package morph

import (
	"regexp"
	"strings"
)

// surnameRule recovers a nominative when the observed form has its suffix shape.
type surnameRule struct {
	name  string
	apply func(obs, low string) (string, bool)
}

// nominativeAEndings identify surnames whose nominative already ends in -a, mostly
// animal and nature nouns (Liška, Vrána, Vrba) and the frequent -oda/-era/-ázka
// families (Svoboda, Kučera, Procházka).
var nominativeAEndings = []string{
	"rba", "íška", "iška", "eška", "ůbka", "ubka", "ybka", "rána", "vána",
	"oda", "čera", "ázka", "ička", "íčka", "íha", "uha", "ůha", "ucha",
}

// genitiveAEndings are -a forms that are far more often the genitive of a masculine
// surname than a nominative: Nováka, Dvořáka, Kubíka.
var genitiveAEndings = []string{"áka", "íka"}

// nominativeShapes are -a endings that, outside genitiveAEndings, mark a nominative.
var nominativeShapes = buildNominativeShapes()

func buildNominativeShapes() []string {
	var out []string
	for _, c := range []string{"h", "l", "r", "d", "t", "n", "k", "m", "b", "p", "v", "z", "s"} {
		for _, v := range []string{"i", "í", "u", "ů", "e", "ě", "o", "a", "á", "y"} {
			out = append(out, v+c+"a")
		}
	}
	return append(out, "íška", "iška", "ůbka", "ubka", "ybka", "rba")
}

// isNominativeA reports whether base+"a" is a nominative -a surname.
func isNominativeA(base string) bool {
	return hasAnySuffix(strings.ToLower(base)+"a", nominativeAEndings...)
}

// withEpenthesis re-inserts the movable "e" of Havel-type stems.
func withEpenthesis(base string) string {
	if s, ok := insertEpenthetic(base); ok {
		return s
	}
	return base
}

var (
	cekPattern = regexp.MustCompile(`(?i)^(.+?)(čk|ček)(a|ovi|em|u|e|y|ou|ům|ách|ů)?$`)
	nekPattern = regexp.MustCompile(`(?i)^(.+?)(n[eě]k|ňk)(a|ovi|em|u|e|y|ou|ům|ů)?$`)
	ecPattern  = regexp.MustCompile(`(?i)^(.+?[^aáeéěiíoóuúůyý])c(e|i|em|ů|ích|ům|ech|emi|u|y|ovi|ova|ův)$`)
)

const softConsonants = "šžčřjťďňc"

var surnameRules = []surnameRule{
	{name: "feminine-ova", apply: func(obs, low string) (string, bool) {
		switch {
		case strings.HasSuffix(low, "ová"):
			return obs, true
		case strings.HasSuffix(low, "ovou") && runeLen(obs) > 4:
			return cut(obs, 4) + "ová", true
		case strings.HasSuffix(low, "ové") && runeLen(obs) > 3:
			return cut(obs, 3) + "ová", true
		}
		return "", false
	}},
	{name: "adjectival", apply: func(obs, low string) (string, bool) {
		switch {
		case hasAnySuffix(low, "ý", "á"):
			return obs, true
		case hasAnySuffix(low, "ských", "ckých", "ským", "ckým"):
			return cut(obs, 3) + "ý", true
		case hasAnySuffix(low, "ého", "ému") && runeLen(obs) > 4:
			return cut(obs, 3) + "ý", true
		case hasAnySuffix(low, "ých", "ými") && runeLen(obs) > 4:
			return cut(obs, 3) + "ý", true
		case hasAnySuffix(low, "ým", "ém") && runeLen(obs) > 3:
			return cut(obs, 2) + "ý", true
		case hasAnySuffix(low, "skou", "ckou"):
			return cut(obs, 2) + "á", true
		}
		return "", false
	}},
	{name: "instrumental-ou", apply: func(obs, low string) (string, bool) {
		if !strings.HasSuffix(low, "ou") || runeLen(obs) <= 3 {
			return "", false
		}
		base := cut(obs, 2)
		if isNominativeA(base) {
			return base + "a", true
		}
		// Novotnou, Suchou, Malou, Bílou
		if hasAnySuffix(low, "nou", "chou", "alou", "ílou") {
			return base + "á", true
		}
		return base + "a", true
	}},
	{name: "feminine-e", apply: func(obs, low string) (string, bool) {
		if strings.HasSuffix(low, "é") && runeLen(obs) > 2 {
			return cut(obs, 1) + "á", true
		}
		return "", false
	}},
	{name: "diminutive-cek", apply: func(obs, low string) (string, bool) {
		m := cekPattern.FindStringSubmatch(obs)
		if m == nil {
			return "", false
		}
		if strings.EqualFold(m[2], "čk") {
			if m[3] == "" {
				return "", false
			}
			// Růžičky -> Růžička, Dvořáčka -> Dvořáček
			if hasAnySuffix(strings.ToLower(m[1]), "i", "í") {
				return m[1] + "čka", true
			}
			return m[1] + "ček", true
		}
		if m[3] != "" {
			return "", false
		}
		return obs, true
	}},
	{name: "palatal-ce", apply: func(obs, low string) (string, bool) {
		// Procházce, Lišce, Růžičce
		if hasAnySuffix(low, "zce", "šce", "čce", "žce") && runeLen(obs) > 4 {
			return cut(obs, 2) + "ka", true
		}
		return "", false
	}},
	{name: "diminutive-nek", apply: func(obs, low string) (string, bool) {
		m := nekPattern.FindStringSubmatch(obs)
		if m == nil {
			return "", false
		}
		if strings.EqualFold(m[2], "ňk") {
			if m[3] == "" {
				return "", false
			}
			return m[1] + "něk", true
		}
		if m[3] != "" {
			return "", false
		}
		return obs, true
	}},
	{name: "diminutive-ek", apply: func(obs, low string) (string, bool) {
		if runeLen(obs) <= 3 {
			return "", false
		}
		for _, suf := range []string{"kovi", "kem", "kům", "ka", "ku", "ke", "ků"} {
			if !strings.HasSuffix(low, suf) {
				continue
			}
			stem := cut(obs, runeLen(suf))
			if hasAnySuffix(strings.ToLower(stem+"k"), "išk", "íšk", "ešk", "ůbk", "ubk", "ázk") {
				return "", false
			}
			before, ok := charFromEnd(strings.ToLower(stem), 1)
			if !ok || isVowel(before) {
				return "", false
			}
			return stem + "ek", true
		}
		return "", false
	}},
	{name: "consonant-ec", apply: func(obs, low string) (string, bool) {
		if strings.HasSuffix(low, "ec") {
			return obs, true
		}
		if m := ecPattern.FindStringSubmatch(obs); m != nil {
			return m[1] + "ec", true
		}
		return "", false
	}},
	{name: "dative-ovi", apply: func(obs, low string) (string, bool) {
		base, ok := stripSuffix(obs, low, "ovi")
		if !ok {
			return "", false
		}
		if isNominativeA(base) {
			return base + "a", true
		}
		return withEpenthesis(base), true
	}},
	{name: "instrumental-em", apply: func(obs, low string) (string, bool) {
		base, ok := stripSuffix(obs, low, "em")
		if !ok {
			return "", false
		}
		return withEpenthesis(base), true
	}},
	{name: "a-declension", apply: func(obs, low string) (string, bool) {
		switch {
		case strings.HasSuffix(low, "ře") && runeLen(obs) > 3:
			// Kučeře -> Kučera, Kováře -> Kovář
			if isNominativeA(cut(obs, 2) + "r") {
				return cut(obs, 2) + "ra", true
			}
			return cut(obs, 1), true
		case strings.HasSuffix(low, "ě") && runeLen(obs) > 2:
			return cut(obs, 1) + "a", true
		case strings.HasSuffix(low, "y") && runeLen(obs) > 2:
			return cut(obs, 1) + "a", true
		case strings.HasSuffix(low, "e") && runeLen(obs) > 2:
			base := cut(obs, 1)
			if last, _ := charFromEnd(strings.ToLower(base), 1); strings.ContainsRune(softConsonants, last) {
				// Beneše, Kováře
				return base, true
			}
			return base + "a", true
		case strings.HasSuffix(low, "u") && runeLen(obs) > 2:
			base := cut(obs, 1)
			if !isNominativeA(base) && strings.HasSuffix(strings.ToLower(base), "k") {
				return base, true
			}
			return base + "a", true
		}
		return "", false
	}},
	{name: "genitive-a", apply: func(obs, low string) (string, bool) {
		if !strings.HasSuffix(low, "a") || runeLen(obs) <= 2 {
			return "", false
		}
		if hasAnySuffix(low, genitiveAEndings...) {
			return cut(obs, 1), true
		}
		if hasAnySuffix(low, nominativeShapes...) {
			return obs, true
		}
		return withEpenthesis(cut(obs, 1)), true
	}},
	{name: "epenthesis", apply: func(obs, low string) (string, bool) {
		if s, ok := insertEpenthetic(obs); ok {
			return s, true
		}
		return "", false
	}},
}

// InferSurname recovers the nominative of an observed surname by suffix heuristics.
// It never fails: callers wanting the observed form as fallback use Result.Or.
func (e *Engine) InferSurname(observed string) Result {
	obs := strings.TrimSpace(observed)
	if obs == "" {
		return Unchanged()
	}
	low := strings.ToLower(obs)
	for _, rule := range surnameRules {
		if nom, ok := rule.apply(obs, low); ok {
			return Recovered(nom)
		}
	}
	return Unchanged()
}
