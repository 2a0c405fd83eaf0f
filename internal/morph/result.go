// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package morph

// Result is the outcome of a nominative recovery. A recovered result may equal the
// observed form (the rule confirmed it is already nominative); an unchanged result
// means no rule applied.
type Result struct {
	value     string
	recovered bool
}

// Recovered wraps a nominative produced by a rule.
func Recovered(value string) Result {
	return Result{value: value, recovered: true}
}

// Unchanged reports that no rule applied.
func Unchanged() Result {
	return Result{}
}

// Value returns the nominative and whether a rule produced it.
func (r Result) Value() (string, bool) {
	return r.value, r.recovered
}

// IsRecovered reports whether a rule produced the result.
func (r Result) IsRecovered() bool {
	return r.recovered
}

// Or returns the recovered nominative, or fallback when no rule applied.
func (r Result) Or(fallback string) string {
	if r.recovered {
		return r.value
	}
	return fallback
}

func (r Result) String() string {
	if !r.recovered {
		return "Unchanged"
	}
	return "Recovered(" + r.value + ")"
}
