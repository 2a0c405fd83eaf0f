// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package gazetteer

import (
	"sort"
	"strings"

	"czanon/internal/normalize"
)

// Stoplist is a set of words that must never be taken for a name. Words are stored
// under a key function so that lookups tolerate case or diacritic differences.
type Stoplist struct {
	key   func(string) string
	words map[string]struct{}
}

// NewStoplist creates a stoplist keyed by key (nil means exact match).
func NewStoplist(key func(string) string, words ...string) *Stoplist {
	if key == nil {
		key = func(s string) string { return s }
	}
	s := &Stoplist{key: key, words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// IsStop reports whether word is on the list.
func (s *Stoplist) IsStop(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[s.key(word)]
	return ok
}

// Add puts word on the list.
func (s *Stoplist) Add(word string) {
	if k := s.key(word); k != "" {
		s.words[k] = struct{}{}
	}
}

// Remove takes word off the list.
func (s *Stoplist) Remove(word string) {
	delete(s.words, s.key(word))
}

// All returns the stored keys, sorted.
func (s *Stoplist) All() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Stoplists bundles the lists used by person detection and the BIC stage.
type Stoplists struct {
	// Surnames rejects name-shaped tokens; keyed by normalize.ForMatching.
	Surnames *Stoplist
	// Roles rejects role nouns and titles; keyed by lower case.
	Roles *Stoplist
	// BIC rejects words that happen to have the shape of a bank identifier code.
	BIC *Stoplist
}

// DefaultStoplists returns fresh copies of the built-in lists.
func DefaultStoplists() *Stoplists {
	return &Stoplists{
		Surnames: NewStoplist(normalize.ForMatching, surnameBlacklist...),
		Roles:    NewStoplist(strings.ToLower, roleStop...),
		BIC:      NewStoplist(strings.ToLower, bicBlacklist...),
	}
}

// AdjectivalSurnames are ordinary adjectives that are also common surnames. They are
// accepted when a role label introduces the name ("Jednatel: Adam Nový").
var AdjectivalSurnames = []string{"novy", "nova", "nove"}

// IsAdjectivalSurname reports whether word normalises to one of AdjectivalSurnames.
func IsAdjectivalSurname(word string) bool {
	key := normalize.ForMatching(word)
	for _, w := range AdjectivalSurnames {
		if key == w {
			return true
		}
	}
	return false
}

var surnameBlacklist = []string{
	// legal terms
	"smlouva", "smlouvě", "smlouvy", "smlouvou", "článek", "článku", "články",
	"datum", "číslo", "adresa", "bydliště", "průkaz", "občanský", "rodné", "zákon", "sb", "kč", "čr",
	"ustanovení", "příloha", "titul", "oddíl", "bod", "pověřený", "zástupce", "nájem", "pronájem",
	"byt", "nájemci", "nájemce", "pronajímatel", "pronajímateli",
	"užívat", "hlásit", "nepřenechávat", "elektřina", "plyn", "sconto", "bolton", "předat", "předání",
	"cena", "kauce", "záloha", "platba", "sankce", "odpovědnost", "poškození", "opravy", "závady",
	"přepis", "přepisem", "vyúčtování", "paušálně", "roční", "měsíční",

	// table and bookkeeping words
	"stav", "stavu", "stavem", "stavy", "stavů", "stavech",
	"položka", "položky", "položku", "položek", "položkám", "položkou", "položkami",
	"počet", "počtu", "počtem", "počty", "popis", "popisu", "popisem",
	"celkem", "součet", "výše", "hodnota", "hodnoty", "množství",
	"období", "měsíc", "měsíce", "měsíců", "měsíci",
	"splatnost", "splatnosti", "doklad", "dokladu", "faktura", "faktury",

	// brands and products
	"jena", "dominik", "ikea", "gorenje", "bosch", "möbelix",

	// car makes and models
	"škoda", "octavia", "fabia", "rapid", "superb", "kodiaq", "kamiq", "scala", "enyaq",
	"volkswagen", "audi", "seat", "bmw", "mercedes", "toyota", "honda", "ford", "opel", "renault",
	"peugeot", "citroen", "fiat", "volvo", "mazda", "nissan", "hyundai", "kia",

	// places
	"praha", "brno", "ostrava", "plzeň", "liberec", "olomouc", "budějovice",
	"hradec", "ústí", "pardubice", "zlín", "havířov", "kladno", "most",
	"opava", "frýdek", "karviná", "jihlava", "teplice", "karlovy", "vary",
	"děčín", "chomutov", "prostějov", "přerov", "jablonec",
	"ves", "město", "obec", "vesnice", "města", "obce", "české", "moravské",
	"labem", "králové", "london", "paris", "berlin", "vienna",

	// words often mistaken for surnames
	"bytem", "nový", "nová", "nové", "starý", "stará", "staré",
	"místo", "účtu", "částku", "petru",

	// organisations
	"banka", "banky", "banku", "bankám", "bankou", "bankách", "finanční", "pojišťovna", "pojišťovny",
	"energy", "energa", "energii", "energie", "energetický", "energetická",
	"moravia", "moravská", "českomoravská",
	"elektromobilita", "elektromobility", "elektromobilitě", "elektromobilitu",
	"společnost", "firma", "firmy", "firmu", "firmou", "organizace", "organizaci",
	"institut", "instituce", "instituci", "korporace", "korporaci", "koncern", "koncernu",
	"holding", "holdingu", "group", "skupiny", "skupina", "družstvo", "družstva",
	"invest", "investment", "capital", "kapitál", "kapitálu", "partners", "consulting",
	"poliklinika", "polikliniky", "klinika", "kliniky", "clinic", "hospital", "nemocnice",
	"notářská", "notářské", "notářský", "notář",
	"data", "dat", "processing", "protection", "gdpr", "compliance", "met", "mayo",
	"svoboda", "svobody", "svobodu", "svobodou",

	// kinship and school roles
	"rodič", "rodiče", "rodiča", "rodičů", "rodičům", "rodičích", "rodičem",
	"učitel", "učitelka", "učitele", "učitelů", "učitelům", "učitelce", "učitelkou",
	"žák", "žáci", "žáka", "žáků", "žákům", "žákem", "student", "studenta", "studentka", "studentkou",
	"matka", "matky", "matce", "matkou", "otec", "otce", "otci", "otcem",
	"syn", "syna", "synovi", "synové", "dcera", "dcery", "dceři", "dcerou",
}

var roleStop = []string{
	"pronajímatel", "nájemce", "dlužník", "věřitel", "objednatel", "zhotovitel",
	"zaměstnanec", "zaměstnavatel", "ručitel", "spoludlužník", "jednatel", "svědek",
	"statutární", "zástupce", "pojistník", "pojištěný", "odesílatel", "příjemce",
	"elektřina", "vodné", "stočné", "topení", "internet", "služba", "služby",

	// titles and forms of address
	"pan", "paní", "pán", "slečna", "pane", "panem",
	"ing", "mgr", "bc", "mudr", "judr", "phdr", "rndr", "doc", "prof", "csc", "ph", "dr",
}

var bicBlacklist = []string{"synergie", "project", "projekt", "alliance", "aliance"}
