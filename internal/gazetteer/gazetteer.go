// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package gazetteer holds the set of known first names used to validate morphological
// recoveries, and the stoplists of words that look like names but are not.
package gazetteer

import (
	"sort"
	"strings"

	"czanon/internal/normalize"
)

// Gazetteer is a set of first names in their matching form (see normalize.ForMatching).
// Names added in display form also remember that spelling. A gazetteer is read-only
// once handed to a session and then safe for concurrent readers.
type Gazetteer struct {
	// names maps the matching form to the first display form seen, or "".
	names map[string]string
}

// New builds a gazetteer from display-form names.
func New(names ...string) *Gazetteer {
	g := &Gazetteer{names: make(map[string]string, len(names))}
	for _, n := range names {
		g.Add(n)
	}
	return g
}

// Empty returns a gazetteer that knows no names.
func Empty() *Gazetteer {
	return New()
}

// Add inserts a display-form name.
func (g *Gazetteer) Add(name string) {
	name = strings.TrimSpace(name)
	key := normalize.ForMatching(name)
	if key == "" {
		return
	}
	if display, ok := g.names[key]; !ok || display == "" {
		g.names[key] = name
	}
}

// addNormalized inserts a name that is already in matching form.
func (g *Gazetteer) addNormalized(key string) {
	if _, ok := g.names[key]; !ok && key != "" {
		g.names[key] = ""
	}
}

// Merge adds every name of other.
func (g *Gazetteer) Merge(other *Gazetteer) {
	if other == nil {
		return
	}
	for k, display := range other.names {
		if cur, ok := g.names[k]; !ok || cur == "" {
			g.names[k] = display
		}
	}
}

// Contains reports whether name, normalised, is a known first name.
func (g *Gazetteer) Contains(name string) bool {
	if g == nil {
		return false
	}
	_, ok := g.names[normalize.ForMatching(name)]
	return ok
}

// Display returns the recorded spelling of name ("Zdenek" -> "Zdeněk"), or "" when
// the name is unknown or was only loaded in matching form.
func (g *Gazetteer) Display(name string) string {
	if g == nil {
		return ""
	}
	return g.names[normalize.ForMatching(name)]
}

// Len returns the number of distinct names.
func (g *Gazetteer) Len() int {
	if g == nil {
		return 0
	}
	return len(g.names)
}

// Names returns the normalised names in sorted order.
func (g *Gazetteer) Names() []string {
	out := make([]string, 0, len(g.names))
	for k := range g.names {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
