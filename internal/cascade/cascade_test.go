// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"czanon/internal/gazetteer"
	"czanon/internal/morph"
	"czanon/internal/registry"
)

func newTestCascade() *Cascade {
	names := gazetteer.New("Petr", "Petra", "Jan", "Jana", "Pavel", "Marie", "Eva")
	return New(morph.NewEngine(names), nil)
}

// run processes one paragraph the way the pipeline does: the paragraph is also the
// source snapshot.
func run(t *testing.T, text string) (string, *registry.Session) {
	t.Helper()
	sess := registry.NewSession(nil)
	sess.SetSource(text)
	return newTestCascade().Run(text, sess), sess
}

func TestStageOrder(t *testing.T) {
	var names []string
	for _, s := range newTestCascade().Stages() {
		names = append(names, s.Name())
	}
	require.NotEmpty(t, names)
	assert.Equal(t, "email", names[0])
	assert.Equal(t, "person-address", names[1])

	index := func(name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		t.Fatalf("stage %q missing", name)
		return -1
	}
	assert.Less(t, index("address"), index("license-plate"))
	assert.Less(t, index("date"), index("birthplace"))
	assert.Less(t, index("phone"), index("amount"))
	assert.Less(t, index("amount"), index("account"))
	assert.Less(t, index("ico"), index("id-card"))
	assert.Less(t, index("card"), index("iban"))
	assert.Less(t, index("iban"), index("bic"))
	assert.Less(t, index("birth-id"), index("id-card"))
	assert.Equal(t, "employee-id", names[len(names)-1])
}

func TestPersonWithAddress(t *testing.T) {
	out, sess := run(t, "Pronajímatel: Petr Novák, bytem Hlavní 12, 110 00 Praha 1")

	assert.Equal(t, "Pronajímatel: [[PERSON_1]], bytem [[ADDRESS_1]]", out)
	require.NotEmpty(t, sess.Values("[[PERSON_1]]"))
	assert.Equal(t, "Petr Novák", sess.Values("[[PERSON_1]]")[0])
	assert.Equal(t, []string{"Hlavní 12, 110 00 Praha 1"}, sess.Values("[[ADDRESS_1]]"))
}

func TestPersonWithAddressDropsRoleWords(t *testing.T) {
	out, sess := run(t, "Svědek Jan Dvořák, bytem Krátká 5, Brno")

	assert.Equal(t, "Svědek [[PERSON_1]], bytem [[ADDRESS_1]]", out)
	p, ok := sess.PersonByTag("[[PERSON_1]]")
	require.True(t, ok)
	assert.Equal(t, "Jan", p.First)
	assert.Equal(t, "Dvořák", p.Last)
}

func TestAddresses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		value string
	}{
		{
			name:  "labelled street and city",
			input: "Sídlo: Na Příkopě 33, Praha 1",
			want:  "Sídlo: [[ADDRESS_1]]",
			value: "Na Příkopě 33, Praha 1",
		},
		{
			name:  "city before street",
			input: "Trvalé bydliště: Praha 1, Washingtonova 1621/11",
			want:  "Trvalé bydliště: [[ADDRESS_1]]",
			value: "Praha 1, Washingtonova 1621/11",
		},
		{
			name:  "zip code with floor phrase",
			input: "v 2. NP domu na adrese Čechova 14, 750 02 Přerov",
			want:  "v 2. NP domu na adrese [[ADDRESS_1]]",
			value: "Čechova 14, 750 02 Přerov",
		},
		{
			name:  "city stops at a label",
			input: "Adresa: Dlouhá 5, Kostelec Tel. 777",
			want:  "Adresa: [[ADDRESS_1]] Tel. 777",
			value: "Dlouhá 5, Kostelec",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, sess := run(t, tt.input)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, []string{tt.value}, sess.Values("[[ADDRESS_1]]"))
		})
	}
}

func TestDatesCollapseToOneTag(t *testing.T) {
	out, sess := run(t, "Podepsáno 13. srpna 2025, účinnost od 13.08.2025 a 1.9.2025.")

	assert.Equal(t, "Podepsáno [[DATE_1]], účinnost od [[DATE_1]] a [[DATE_2]].", out)
	assert.Equal(t, []string{"13.08.2025"}, sess.Values("[[DATE_1]]"))
	assert.Equal(t, []string{"01.09.2025"}, sess.Values("[[DATE_2]]"))
}

func TestBirthNumberShapeBeatsLabel(t *testing.T) {
	for _, input := range []string{
		"Číslo OP: 925315/6847",
		"Rodné číslo: 925315/6847",
		"č. účtu: 925315/6847",
		"925315 / 6847",
	} {
		t.Run(input, func(t *testing.T) {
			out, _ := run(t, input)
			assert.Contains(t, out, "[[BIRTH_ID_1]]")
			assert.NotContains(t, out, "ID_CARD")
			assert.NotContains(t, out, "BANK")
		})
	}
}

func TestSlashPairs(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"č. účtu: 19-2000145399/0800", "č. účtu: [[BANK_1]]"},
		{"platba na 2000145399/0800", "platba na [[BANK_1]]"},
		{"Účet: 123/0100", "Účet: [[BANK_1]]"},
		{"průkaz 123/4567", "průkaz [[ID_CARD_1]]"},
		{"podle zákona č. 89/2012 Sb.", "podle zákona č. 89/2012 Sb."},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, _ := run(t, tt.input)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPhonesAndAmounts(t *testing.T) {
	out, sess := run(t, "Tel.: +420 777 111 222, mobil 603 123 456, cena 1 500 000 Kč")

	assert.Equal(t, "Tel.: [[PHONE_1]], mobil [[PHONE_2]], cena [[AMOUNT_1]] Kč", out)
	assert.Equal(t, []string{"+420 777 111 222"}, sess.Values("[[PHONE_1]]"))
	assert.Equal(t, []string{"1 500 000"}, sess.Values("[[AMOUNT_1]]"))
}

func TestNineDigitsAfterIdentityCardLabel(t *testing.T) {
	out, _ := run(t, "Číslo OP: 123456789")
	assert.Equal(t, "Číslo OP: [[ID_CARD_1]]", out)
}

func TestLabelledIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"IČO: 12345678, DIČ: CZ12345678", "IČO: [[ICO_1]], DIČ: [[DIC_1]]"},
		{"Platební karta: 4111 1111 1111 1111", "Platební karta: [[CARD_1]]"},
		{"IP adresa: 192.168.1.10", "IP adresa: [[IP_1]]"},
		{"Login: jnovak", "Login: [[USERNAME_1]]"},
		{"uživatel Novák", "uživatel Novák"},
		{"Číslo pojištěnce: 8001011234", "Číslo pojištěnce: [[INSURANCE_ID_1]]"},
		{"RFID karta: A1-22/7", "RFID karta: [[RFID_1]]"},
		{"Řidičský průkaz č. EA 123456 platný", "Řidičský průkaz č. [[DRIVER_LICENSE_1]] platný"},
		{"Osobní číslo zaměstnance: 4711", "Osobní číslo zaměstnance: [[EMP_ID_1]]"},
		{"SPZ 7AB 4567", "SPZ [[LICENSE_PLATE_1]]"},
		{"VIN TMBJK61Z3G0123456", "VIN [[VIN_1]]"},
		{"E-mail: jan.novak@example.cz", "E-mail: [[EMAIL_1]]"},
		{"Místo narození: Brno", "Místo narození: [[PLACE_1]]"},
		{"Narozena v Kostelci nad Orlicí, RČ", "Narozena v [[PLACE_1]], RČ"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, _ := run(t, tt.input)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestIBANStoredWithoutSpaces(t *testing.T) {
	out, sess := run(t, "IBAN: CZ65 0800 0000 0028 4756 3921")

	assert.Equal(t, "IBAN: [[IBAN_1]]", out)
	assert.Equal(t, []string{"CZ6508000000002847563921"}, sess.Values("[[IBAN_1]]"))
}

func TestBICNeedsContext(t *testing.T) {
	out, _ := run(t, "BIC: GIBACZPX")
	assert.Equal(t, "BIC: [[BIC_1]]", out)

	out, _ = run(t, "SWIFT projekt SYNERGIE")
	assert.Equal(t, "SWIFT projekt SYNERGIE", out)

	out, _ = run(t, "Program KOMBINACE")
	assert.Equal(t, "Program KOMBINACE", out)
}

func TestSecretsKeepOnlyPlaceholder(t *testing.T) {
	out, sess := run(t, "Heslo: Tajne123! API Key: AKIAIOSFODNN7EXAMPLE1234")

	assert.Equal(t, "Heslo: [[PASSWORD_1]] API Key: [[API_KEY_1]]", out)
	assert.Equal(t, []string{registry.SecretPlaceholder}, sess.Values("[[PASSWORD_1]]"))
	assert.Equal(t, []string{registry.SecretPlaceholder}, sess.Values("[[API_KEY_1]]"))
}

func TestRepeatedValueReusesTag(t *testing.T) {
	out, _ := run(t, "Tel. 777 111 222 a znovu tel. 777 111 222")
	assert.Equal(t, "Tel. [[PHONE_1]] a znovu tel. [[PHONE_1]]", out)
}

func TestTaggedTextIsStable(t *testing.T) {
	c := newTestCascade()
	sess := registry.NewSession(nil)
	text := "Kontakt: jan.novak@example.cz, Tel.: 777 111 222"
	sess.SetSource(text)

	once := c.Run(text, sess)
	assert.Equal(t, once, c.Run(once, sess))
}
