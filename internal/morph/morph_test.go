// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package morph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czanon/internal/gazetteer"
)

func testEngine() *Engine {
	return NewEngine(gazetteer.New(
		"Petr", "Petra", "Jan", "Jana", "Pavel", "Pavla", "Jiří", "Tomáš", "Zdeněk",
		"Marek", "Martin", "Martina", "Marie", "Veronika", "Lukáš", "Ondřej", "Eva",
	))
}

func TestInferFirstName(t *testing.T) {
	e := testEngine()
	tests := []struct {
		observed string
		surname  string
		want     string
	}{
		{"Petr", "Novák", "Petr"},
		{"Petrovi", "", "Petr"},
		{"Petrem", "Novákem", "Petr"},
		{"Petra", "Nováka", "Petr"},
		{"Petra", "Nováková", "Petra"},
		{"Petře", "Novákové", "Petra"},
		{"Janě", "Svobodové", "Jana"},
		{"Jana", "Svobody", "Jan"},
		{"Jiřího", "", "Jiří"},
		{"Pavla", "Havla", "Pavel"},
		{"Pavle", "", "Pavel"},
		{"Marka", "Hájka", "Marek"},
		{"Zdeňka", "Nováka", "Zdeněk"},
		{"Tomáše", "", "Tomáš"},
		{"Veronice", "Malé", "Veronika"},
		{"Janin", "", "Jana"},
		{"Petřina", "", "Petra"},
		{"Marii", "Novákové", "Marie"},
		{"PETRA", "NOVÁKA", "Petr"},
	}
	for _, tt := range tests {
		t.Run(tt.observed+"_"+tt.surname, func(t *testing.T) {
			got, ok := e.InferFirstName(tt.observed, tt.surname).Value()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferFirstNameUnknown(t *testing.T) {
	e := testEngine()
	r := e.InferFirstName("Smlouva", "")
	assert.False(t, r.IsRecovered())
	assert.Equal(t, "Smlouva", r.Or("Smlouva"))
	assert.False(t, e.InferFirstName("", "Novák").IsRecovered())
	assert.False(t, NewEngine(nil).InferFirstName("Petr", "").IsRecovered())
}

func TestInferSurname(t *testing.T) {
	e := testEngine()
	tests := []struct {
		observed string
		want     string
	}{
		{"Novák", "Novák"},
		{"Nováka", "Novák"},
		{"Novákovi", "Novák"},
		{"Novákem", "Novák"},
		{"Nováku", "Novák"},
		{"Nováková", "Nováková"},
		{"Novákovou", "Nováková"},
		{"Novákové", "Nováková"},
		{"Novotného", "Novotný"},
		{"Novotnému", "Novotný"},
		{"Novotným", "Novotný"},
		{"Novotnou", "Novotná"},
		{"Palackého", "Palacký"},
		{"Palackou", "Palacká"},
		{"Malé", "Malá"},
		{"Svoboda", "Svoboda"},
		{"Svobody", "Svoboda"},
		{"Svobodovi", "Svoboda"},
		{"Svobodou", "Svoboda"},
		{"Svobodu", "Svoboda"},
		{"Svobodě", "Svoboda"},
		{"Kučeře", "Kučera"},
		{"Kováře", "Kovář"},
		{"Beneše", "Beneš"},
		{"Liška", "Liška"},
		{"Liškovi", "Liška"},
		{"Lišce", "Liška"},
		{"Vránou", "Vrána"},
		{"Vrbou", "Vrba"},
		{"Havlovi", "Havel"},
		{"Havla", "Havel"},
		{"Havlem", "Havel"},
		{"Havl", "Havel"},
		{"Hájka", "Hájek"},
		{"Hájkovi", "Hájek"},
		{"Dvořáček", "Dvořáček"},
		{"Dvořáčka", "Dvořáček"},
		{"Růžička", "Růžička"},
		{"Růžičky", "Růžička"},
		{"Vaňka", "Vaněk"},
		{"Vaněk", "Vaněk"},
		{"Němec", "Němec"},
		{"Němce", "Němec"},
		{"Němcovi", "Němec"},
		{"Procházce", "Procházka"},
	}
	for _, tt := range tests {
		t.Run(tt.observed, func(t *testing.T) {
			assert.Equal(t, tt.want, e.InferSurname(tt.observed).Or(tt.observed))
		})
	}
}

func TestInferSurnameUnchanged(t *testing.T) {
	e := testEngine()
	r := e.InferSurname("Novák")
	assert.False(t, r.IsRecovered())
	assert.Equal(t, "Unchanged", r.String())
	assert.Equal(t, "Recovered(Novák)", e.InferSurname("Nováka").String())
	assert.False(t, e.InferSurname("  ").IsRecovered())
}

func TestLooksLikeFirstName(t *testing.T) {
	e := testEngine()
	assert.True(t, e.LooksLikeFirstName("Petr"))
	assert.True(t, e.LooksLikeFirstName("Radek"))
	assert.True(t, e.LooksLikeFirstName("Dominika"))
	assert.False(t, e.LooksLikeFirstName("petr"))
	assert.False(t, e.LooksLikeFirstName("Dům"))
}

func TestVariantsContainNominative(t *testing.T) {
	names := []string{"Petr", "Petra", "Jiří", "Zdeněk", "Pavel", "Tomáš", "Marie", "Olga", "Michaela"}
	for _, n := range names {
		assert.True(t, FirstNameVariants(n).Has(n), n)
	}
	surnames := []string{"Novák", "Nováková", "Novotný", "Malá", "Hájek", "Vaněk", "Němec",
		"Svoboda", "Liška", "Havel", "Beneš", "Kučera"}
	for _, s := range surnames {
		assert.True(t, SurnameVariants(s).Has(s), s)
	}
}

func TestFirstNameVariants(t *testing.T) {
	petr := FirstNameVariants("Petr")
	for _, f := range []string{"Petra", "Petrovi", "Petrem", "Petře", "Petrův", "Petrova"} {
		assert.True(t, petr.Has(f), f)
	}

	petra := FirstNameVariants("Petra")
	for _, f := range []string{"Petry", "Petře", "Petrou", "Petřin", "Petřina", "Petrin"} {
		assert.True(t, petra.Has(f), f)
	}

	zdenek := FirstNameVariants("Zdeněk")
	for _, f := range []string{"Zdeňka", "Zdeňkovi", "Zdeňkem", "Zdenka", "Zdenek"} {
		assert.True(t, zdenek.Has(f), f)
	}

	pavel := FirstNameVariants("Pavel")
	assert.True(t, pavel.Has("Pavla"))
	assert.True(t, pavel.Has("Pavlovi"))

	tomas := FirstNameVariants("Tomáš")
	for _, f := range []string{"Tomáše", "Tomáši", "Tomášem", "Tomase"} {
		assert.True(t, tomas.Has(f), f)
	}
	assert.False(t, tomas.Has("Tomáe"))

	assert.True(t, FirstNameVariants("Jiří").Has("Jiřího"))
	assert.True(t, FirstNameVariants("Veronika").Has("Veronice"))
	assert.True(t, FirstNameVariants("Olga").Has("Olze"))
	assert.True(t, FirstNameVariants("Marie").Has("Marii"))
}

func TestSurnameVariants(t *testing.T) {
	cases := map[string][]string{
		"Novák":     {"Nováka", "Novákovi", "Novákem", "Novákův", "Novákova", "Nováků", "Novaka"},
		"Nováková":  {"Novákové", "Novákovou", "Novákových", "Novakova"},
		"Palacký":   {"Palackého", "Palackému", "Palackým", "Palacká", "Palackou"},
		"Hájek":     {"Hájka", "Hájkovi", "Hájkem", "Hájkův", "Hajka"},
		"Vaněk":     {"Vaňka", "Vaňkovi", "Vanka"},
		"Němec":     {"Němce", "Němci", "Němcem", "Němcův"},
		"Svoboda":   {"Svobody", "Svobodovi", "Svobodou", "Svobodu", "Svobodě", "Svobodův"},
		"Liška":     {"Lišky", "Lišce", "Liškou"},
		"Kučera":    {"Kučeře", "Kučerovi"},
		"Havel":     {"Havla", "Havlovi", "Havlem", "Havlův"},
		"Beneš":     {"Beneše", "Benešovi", "Beneši"},
		"Svobodová": {"Svobodové", "Svobodovou"},
	}
	for name, forms := range cases {
		t.Run(name, func(t *testing.T) {
			v := SurnameVariants(name)
			for _, f := range forms {
				assert.True(t, v.Has(f), f)
			}
		})
	}
}

func TestVariantsOrderAndFold(t *testing.T) {
	v := SurnameVariants("Novák")
	forms := v.Forms()
	require.NotEmpty(t, forms)
	for i := 1; i < len(forms); i++ {
		assert.GreaterOrEqual(t, len(forms[i-1]), len(forms[i]))
	}
	assert.True(t, v.HasFold("NOVÁKOVI"))
	assert.False(t, v.Has("NOVÁKOVI"))
	assert.Equal(t, 0, FirstNameVariants(" ").Len())
}

func TestPossessiveForms(t *testing.T) {
	forms := PossessiveForms("Petra", "Nováková")
	assert.Contains(t, forms, "Petřin")
	assert.Contains(t, forms, "Petrina")
	assert.NotContains(t, forms, "Novákovův")

	forms = PossessiveForms("Zdeněk", "Havel")
	assert.Contains(t, forms, "Zdeňkův")
	assert.Contains(t, forms, "Havlův")
	assert.Contains(t, forms, "Havlova")

	forms = PossessiveForms("Jan", "Svoboda")
	assert.Contains(t, forms, "Janův")
	assert.Contains(t, forms, "Svobodův")
}

func TestVariantCache(t *testing.T) {
	c := NewVariantCache(time.Minute)
	first := c.Surname("Novák")
	assert.Same(t, first, c.Surname("Novák"))
	assert.NotSame(t, first, c.FirstName("Novák"))
	assert.Equal(t, 2, c.Len())

	var nilCache *VariantCache
	assert.True(t, nilCache.FirstName("Petr").Has("Petrovi"))
	assert.Equal(t, 0, NewVariantCache(0).Len())
}
