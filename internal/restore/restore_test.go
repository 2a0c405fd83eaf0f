// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package restore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"czanon/internal/document"
	"czanon/internal/registry"
)

var tagMap = map[string][]string{
	"[[PERSON_1]]":   {"Petr Novák", "Petra Nováka"},
	"[[PHONE_1]]":    {"777 111 222"},
	"[[PASSWORD_1]]": {registry.SecretPlaceholder},
}

func TestApply(t *testing.T) {
	out, st := Apply("Dopis pro [[PERSON_1]], tel. [[PHONE_1]], heslo [[PASSWORD_1]], [[EMAIL_3]].", tagMap)

	assert.Equal(t, "Dopis pro Petr Novák, tel. 777 111 222, heslo ********, [[EMAIL_3]].", out)
	assert.Equal(t, 3, st.Replaced)
	assert.Equal(t, []string{"[[EMAIL_3]]"}, st.Unknown)
}

func TestApplyWithoutTags(t *testing.T) {
	out, st := Apply("Nic k obnovení.", tagMap)
	assert.Equal(t, "Nic k obnovení.", out)
	assert.Zero(t, st.Replaced)
	assert.Nil(t, st.Unknown)
}

func TestDocument(t *testing.T) {
	doc := document.ParseText("[[PERSON_1]]\n[[PERSON_1]] a [[IP_1]]\n[[IP_1]]")

	st := Document(doc, tagMap)

	assert.Equal(t, "Petr Novák\nPetr Novák a [[IP_1]]\n[[IP_1]]", doc.String())
	assert.Equal(t, 2, st.Replaced)
	assert.Equal(t, []string{"[[IP_1]]"}, st.Unknown)
}
