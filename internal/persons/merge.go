// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package persons

import (
	"strings"

	"czanon/internal/registry"
)

// Merge folds person tags whose recomputed identity keys coincide into the tag with
// the lowest number. Values are unioned in the session. The returned map sends every
// folded tag to its survivor; Rewrite applies it to text already produced.
func (r *Resolver) Merge(sess *registry.Session) map[string]string {
	survivors := make(map[registry.PersonKey]string)
	redirects := make(map[string]string)
	for _, tag := range registry.SortedTags(sess.Tags()) {
		if !registry.HasCategory(tag, registry.Person) {
			continue
		}
		key, ok := r.identity(sess, tag)
		if !ok {
			continue
		}
		if to, seen := survivors[key]; seen {
			sess.Redirect(tag, to)
			redirects[tag] = to
			continue
		}
		survivors[key] = tag
	}
	return redirects
}

// identity re-infers the nominatives behind a person tag. Persons created from
// different inflected spellings end up with the same key.
func (r *Resolver) identity(sess *registry.Session, tag string) (registry.PersonKey, bool) {
	var words []string
	if p, ok := sess.PersonByTag(tag); ok {
		words = append(strings.Fields(p.First), p.Last)
	} else if vals := sess.Values(tag); len(vals) > 0 {
		words = strings.Fields(vals[0])
	}
	if len(words) < 2 {
		return registry.PersonKey{}, false
	}
	observedLast := words[len(words)-1]
	first, last := r.nominatives(words[0], observedLast)
	if len(words) > 2 {
		first += " " + strings.Join(words[1:len(words)-1], " ")
	}
	return registry.KeyOf(first, last), true
}

// Rewrite replaces folded tags in text with their survivors.
func Rewrite(text string, redirects map[string]string) string {
	if len(redirects) == 0 || !strings.Contains(text, "[[") {
		return text
	}
	oldnew := make([]string, 0, 2*len(redirects))
	for from, to := range redirects {
		oldnew = append(oldnew, from, to)
	}
	return strings.NewReplacer(oldnew...).Replace(text)
}
