// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cascade

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"czanon/internal/patterns"
	"czanon/internal/registry"
	"czanon/internal/textscan"
)

var (
	emailPattern = patterns.Email
	platePattern = textscan.New(`\d[A-Z]{1,2}\d?\s\d{4}`).Bounded()
	vinPattern   = textscan.New(`[A-HJ-NPR-Z0-9]{17}`).Bounded().Where(func(text string, loc []int) bool {
		v := text[loc[0]:loc[1]]
		return strings.IndexFunc(v, unicode.IsLetter) >= 0 && strings.IndexFunc(v, unicode.IsDigit) >= 0
	})

	numericDatePattern = untagged(textscan.New(`(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{4})`).Bounded())
	wordDatePattern    = untagged(textscan.New(
		`(?i)(\d{1,2})\.\s+(ledna|února|března|dubna|května|června|července|srpna|září|října|listopadu|prosince)\s+(\d{4})`,
	).Bounded())

	birthplacePattern = untagged(textscan.New(
		`(?i)(?:Místo\s+narození\s*:\s*|Narozen[aáý]?\s+(?:v|ve)\s+(?::\s*)?|Rodiště\s*:\s*)((?-i:` + upper + `))`,
	).LeftBounded().Extend(func(text string, loc []int) (int, bool) {
		return scanLazy(text, loc[1], 2, 50, zipCityRune, birthplaceStop)
	}))

	birthplaceStop = terminator{
		punct: textscan.Anchored(`\s*(?:$|[,.\n])`),
		words: keywords(`RČ|OP|Tel\.?`,
			`Rodn[éě]|Občansk|Telefon|E-mail|Kontakt|Číslo|Datum|IČO|DIČ|Bydlišt|Bytem|Adresa`),
	}

	// the trailing class stands in for a word boundary that the value may not cross
	phonePattern = untagged(textscan.New(
		`((?:\+420|00420|420)?\s?\d{3}\s?\d{3}\s?\d{3})(?:[^\p{L}\p{N}_]|$)`,
	).NotAfter(unicode.IsDigit).Where(func(text string, loc []int) bool {
		return !textscan.FollowedBy(bankCodeAfter, text, loc[3]) && !textscan.FollowedBy(currencyAfter, text, loc[3])
	}))
	bankCodeAfter = textscan.Anchored(`\s*/\d{4}`)
	currencyAfter = textscan.Anchored(`\s*(?:Kč|EUR|USD|CZK|,-)`)
	opBefore      = textscan.New(`(?i)OP|občansk\p{L}*|č\.\s*OP`).Bounded()

	amountPattern = untagged(textscan.New(`(\d{1,3}(?:\s\d{3}){2,})(?:[^\p{L}\p{N}_]|$)`).LeftBounded())

	accountPattern = untagged(textscan.New(`(?:\d{1,6}-)?\d{2,10}/\d{4}`).Bounded())
	birthShape     = regexp.MustCompile(`^\d{6}/\d{3,4}$`)

	icoPattern  = textscan.New(`(?i)IČO\s*:?\s*(\d{8})`).Bounded()
	dicPattern  = textscan.New(`(?i)DIČ\s*:?\s*(CZ\d{8,10})`).Bounded()
	cardPattern = textscan.New(
		`(?i)(?:Platební\s+karta|Číslo\s+karty|Karta)\s*:?\s*(\d{4}[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{4,7})`,
	).Bounded()

	ibanPattern = untagged(textscan.New(
		`(?i:IBAN\s*:?\s*)?([A-Z]{2}\d{2}(?:\s?[A-Z0-9]{4}){2,7}(?:\s?\d{1,4})?)(?:[^\p{L}\p{N}_]|$)`,
	).LeftBounded())

	bicPattern = untagged(textscan.New(`[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}(?:[A-Z0-9]{3})?`).Bounded())

	birthIDPattern = untagged(textscan.New(`\d{6}\s*/\s*\d{3,4}`).Bounded())
	slashSpaces    = regexp.MustCompile(`\s*/\s*`)

	idCardPattern = untagged(textscan.New(
		`(\d{6,9}/\d{3,4})|(\d{9})|([A-Z]{2,3}[ \t]?\d{6,9})`,
	).RightBounded().Where(func(text string, loc []int) bool {
		if loc[6] >= 0 {
			return true
		}
		r, ok := textscan.RuneBefore(text, loc[0])
		return !ok || !textscan.IsWordRune(r)
	}))

	ipPattern = textscan.New(`(?i)(?:IP\s+adresa|IP)\s*:?\s*(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`).Bounded()

	passwordPattern = textscan.New(`(?i)(?:Initial\s+password|Password|Heslo)\s*:?\s*(\S+)`).LeftBounded()
	apiKeyPattern   = textscan.New(
		`(?i)(?:AWS\s+Access\s+Key|AWS\s+Secret|API\s+Key|Stripe\s+API|SendGrid\s+API|Secret\s+Key)\s*:?\s*([A-Za-z0-9+/=]{20,})`,
	).LeftBounded()

	usernamePattern = untagged(textscan.New(
		`(?i)(?:Login|Username|Uživatel|User|Account\s+ID)(\s*:?\s*)([A-Za-z0-9._\-@]+)`,
	).Bounded())

	insurancePattern = textscan.New(
		`(?i)(?:Číslo\s+pojištěnce|Pojištěnec|Zdravotní\s+pojištění)\s*:?\s*(\d{9,10})`,
	).Bounded()
	rfidPattern = textscan.New(`(?i)(?:RFID\s+karta|RFID|Badge|ID\s+karta)\s*:?\s*([A-Za-z0-9\-_/]+)`).LeftBounded()

	driverLicensePattern = untagged(textscan.New(
		`(?i)(?:Řidičský\s+průkaz|Řidičák)[^\n]{0,40}?(?:č\.|číslo)\s*((?-i:(?:[A-Z]{1,3}[ \-]?)?\d(?:[\d\-]| \d)*))`,
	).LeftBounded())

	driverLabelBefore = textscan.New(`(?i)(?:Řidičský\s+průkaz|Řidičák)[^\n]{0,40}?(?:č\.|číslo)\s*$`).LeftBounded()

	empIDPattern = textscan.New(
		`(?i)(?:osobn[íi]\s+č[íi]slo(?:\s+zaměstnance)?|zaměstnaneck[éeě]\s+č[íi]slo)\s*:?\s*(\d+)`,
	).Bounded()
)

var months = map[string]string{
	"ledna": "01", "února": "02", "března": "03", "dubna": "04", "května": "05", "června": "06",
	"července": "07", "srpna": "08", "září": "09", "října": "10", "listopadu": "11", "prosince": "12",
}

// NormalizeDate renders day, month and year as DD.MM.YYYY.
func NormalizeDate(day, month, year string) string {
	return fmt.Sprintf("%s.%s.%s", twoDigits(day), twoDigits(month), year)
}

func twoDigits(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func numericDates(text string, sess *registry.Session) string {
	return numericDatePattern.Replace(text, func(m textscan.Match) string {
		return sess.Tag(registry.Date, NormalizeDate(m.Group(1), m.Group(2), m.Group(3)))
	})
}

func wordDates(text string, sess *registry.Session) string {
	return wordDatePattern.Replace(text, func(m textscan.Match) string {
		month, ok := months[strings.ToLower(m.Group(2))]
		if !ok {
			return m.Value()
		}
		return sess.Tag(registry.Date, NormalizeDate(m.Group(1), month, m.Group(3)))
	})
}

// birthplaces keeps the label and tags the place name that follows it.
func birthplaces(text string, sess *registry.Session) string {
	return birthplacePattern.Replace(text, func(m textscan.Match) string {
		valueStart, _ := m.GroupSpan(1)
		place := strings.TrimSpace(text[valueStart:m.End()])
		return text[m.Start():valueStart] + sess.Tag(registry.Place, place)
	})
}

// phones tags nine-digit numbers with an optional +420 prefix. After an identity
// card label the same shape is an ID card number.
func phones(text string, sess *registry.Session) string {
	return phonePattern.Replace(text, func(m textscan.Match) string {
		start, end := m.GroupSpan(1)
		raw := m.Text[start:end]
		trimmed := strings.TrimLeft(raw, " \t\n")
		start += len(raw) - len(trimmed)
		if opBefore.MatchString(textscan.Before(text, start, 15)) {
			return replaceSpan(m, start, end, sess.Tag(registry.IDCard, trimmed))
		}
		return replaceSpan(m, start, end, sess.Tag(registry.Phone, trimmed))
	})
}

func amounts(text string, sess *registry.Session) string {
	return amountPattern.Replace(text, func(m textscan.Match) string {
		return m.ReplaceGroup(1, sess.Tag(registry.Amount, m.Group(1)))
	})
}

// nearStatute reports a legal citation around text[start:end].
func nearStatute(text string, start, end int) bool {
	return patterns.Statute.In(textscan.Before(text, start, 20)) || patterns.Statute.In(textscan.After(text, end, 10))
}

// accounts resolves slash-delimited numeric pairs. A 6/4 shape is left for the
// birth-number stage; otherwise a long main part or a bank cue makes a bank account
// and an identity card cue makes an ID card number.
func accounts(text string, sess *registry.Session) string {
	return accountPattern.Replace(text, func(m textscan.Match) string {
		raw := m.Value()
		if nearStatute(text, m.Start(), m.End()) || birthShape.MatchString(raw) {
			return raw
		}
		pre, post := m.Before(30), m.After(30)
		if patterns.BirthContext.In(pre) || patterns.BirthContext.In(post) {
			return raw
		}
		main, code, _ := strings.Cut(raw, "/")
		if len(strings.ReplaceAll(main, "-", "")) >= 7 && len(code) == 4 {
			return sess.Tag(registry.Bank, raw)
		}
		if patterns.BankContext.In(pre) || patterns.BankContext.In(post) {
			return sess.Tag(registry.Bank, raw)
		}
		if patterns.OPContext.In(pre) || patterns.OPContext.In(post) {
			return sess.Tag(registry.IDCard, raw)
		}
		return raw
	})
}

// ibans stores the IBAN without spaces; the spaced form is what the source holds.
func ibans(text string, sess *registry.Session) string {
	return ibanPattern.Replace(text, func(m textscan.Match) string {
		raw := m.Group(1)
		compact := strings.Join(strings.Fields(raw), "")
		return m.ReplaceGroup(1, sess.TagAs(registry.IBAN, compact, raw))
	})
}

// bics tags bank identifier codes only near a BIC/SWIFT cue.
func (c *Cascade) bics(text string, sess *registry.Session) string {
	return bicPattern.Replace(text, func(m textscan.Match) string {
		v := m.Value()
		if c.stop.BIC.IsStop(v) {
			return v
		}
		if !patterns.BICContext.In(m.Before(50)) && !patterns.BICContext.In(m.After(50)) {
			return v
		}
		return sess.Tag(registry.BIC, v)
	})
}

// birthIDs tags every 6/3-4 shape as a birth number, whatever label precedes it.
func birthIDs(text string, sess *registry.Session) string {
	return birthIDPattern.Replace(text, func(m textscan.Match) string {
		raw := m.Value()
		return sess.TagAs(registry.BirthID, slashSpaces.ReplaceAllString(raw, "/"), raw)
	})
}

// idCards tags the remaining identity card shapes. Numbers announced by a driving
// licence label are left for the driver-license stage.
func idCards(text string, sess *registry.Session) string {
	return idCardPattern.Replace(text, func(m textscan.Match) string {
		v := m.Value()
		if driverLabelBefore.MatchString(m.Before(60)) {
			return v
		}
		if birthShape.MatchString(v) {
			return sess.Tag(registry.BirthID, v)
		}
		return sess.Tag(registry.IDCard, v)
	})
}

// usernames requires either a colon after the label or a value that is more than a
// plain word, so that "uživatel Novák" stays prose.
func usernames(text string, sess *registry.Session) string {
	return usernamePattern.Replace(text, func(m textscan.Match) string {
		sep, v := m.Group(1), m.Group(2)
		if !strings.Contains(sep, ":") && strings.IndexFunc(v, func(r rune) bool { return !unicode.IsLetter(r) }) < 0 {
			return m.Value()
		}
		return m.ReplaceGroup(2, sess.Tag(registry.Username, v))
	})
}

func driverLicenses(text string, sess *registry.Session) string {
	return driverLicensePattern.Replace(text, func(m textscan.Match) string {
		start, end := m.GroupSpan(1)
		raw := m.Text[start:end]
		v := strings.TrimRight(raw, " -")
		end -= len(raw) - len(v)
		if v == "" {
			return m.Value()
		}
		return replaceSpan(m, start, end, sess.Tag(registry.DriverLicense, v))
	})
}
