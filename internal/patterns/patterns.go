// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package patterns holds the expressions shared by the recognisers: Czech letter
// classes, context cues and the e-mail and title shapes.
package patterns

import (
	"czanon/internal/textscan"
)

// Letter classes, for use inside [...].
const (
	Upper    = `A-ZÁČĎÉĚÍŇÓŘŠŤÚŮÝŽ`
	Lower    = `a-záčďéěíňóřšťúůýž`
	Extended = `\x{00C0}-\x{024F}\x{1E00}-\x{1EFF}`
)

// Cue is a set of alternatives searched for in a context window.
type Cue []*textscan.Pattern

// In reports whether any alternative occurs in s.
func (c Cue) In(s string) bool {
	for _, p := range c {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

var (
	// Email matches e-mail addresses, including Latin-1 letters in the local part.
	Email = textscan.New(`[A-Za-z0-9._%+\-\x{00C0}-\x{017F}]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// Title matches an academic title or salutation with its trailing whitespace.
	Title = textscan.New(`(?i)(?:Mgr|Ing|Dr|Ph\.?D|RNDr|MUDr|JUDr|PhDr|PaedDr|ThDr|RCDr|MVDr|DiS|Bc|BcA|MBA|LL\.?M|prof|doc|pan|paní|pán|slečna)\.?\s+`).LeftBounded()

	// Statute marks legal citations; digit pairs next to it are section numbers.
	Statute = Cue{textscan.New(`(?i)Sb|zákon[au]?|zákon\s*č`).Bounded()}

	// OPContext marks identity-card numbers.
	OPContext = Cue{
		textscan.New(`(?i)OP|[čČ]íslo\s+OP|občansk(?:ý|ého|ému|ém|ým)|průkaz|č\.\s*OP`).Bounded(),
	}

	// BirthContext marks birth numbers.
	BirthContext = Cue{
		textscan.New(`(?i)rodn[ée]\s*č[íi]slo|r\.?\s*č|RČ|rodn[ée]`).Bounded(),
	}

	// BankContext marks bank accounts.
	BankContext = Cue{
		textscan.New(`(?i)účet|účtu|účtem|bankovní\s+účet|banka|banky|IBAN|číslo\s+účtu`).Bounded(),
		textscan.New(`(?i)veden[eya][^\n]*?u(?:[^\p{L}\p{N}_]|$)`).LeftBounded(),
	}

	// BICContext marks BIC/SWIFT codes.
	BICContext = Cue{textscan.New(`(?i)BIC|SWIFT|kód\s+banky|bankovní\s+kód`).Bounded()}

	// PersonContext marks text around a person: birth data, address, contact, titles.
	PersonContext = Cue{textscan.New(`(?i)nar\.|narozen|rodn[ée]\s*č[íi]slo|RČ|bytem|trval[é]\s*bydlišt[ěi]|e-?mail|tel\.?|telefon|č\.\s*účtu|IBAN|SPZ|Mgr\.|Ing\.|Bc\.|PhDr\.|JUDr\.`)}

	// RoleContext marks contractual roles.
	RoleContext = Cue{textscan.New(`(?i)pronaj[ií]matel|n[aá]jemce|dlu[zž]n[ií]k|v[eě]řitel|objednatel|zhotovitel|zam[eě]stnanec|zam[eě]stnavatel|ručitel|spoludlu[zž]n[ií]k|jednatel|statut[aá]rn[ií]\s+z[aá]stupce|sv[eě]dek`).Bounded()}

	// LabelContext marks a "jméno a příjmení" form label.
	LabelContext = Cue{textscan.New(`(?i)j[mn][eě]no\s*(?:,|a)?\s*př[ií]jmen[ií]`)}
)
