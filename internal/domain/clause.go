// Package domain contains pure, dependency-free domain models and types
// for the scoring and deliberation-ranking engine.
package domain

import "slices"

// ClauseKind identifies the shape of a single scorable input on a mission.
type ClauseKind string

// Supported clause kinds for mission inputs.
const (
	// ClauseBoolean is a yes/no observation, e.g. "the model is upright".
	ClauseBoolean ClauseKind = "boolean"

	// ClauseEnum is a selection from an ordered set of option strings.
	// Enum clauses may be declared multi-select, in which case the value
	// holds a set of options rather than one.
	ClauseEnum ClauseKind = "enum"

	// ClauseNumber is a bounded integer count, e.g. "specimens in basket".
	ClauseNumber ClauseKind = "number"
)

// ClauseValue is one referee-recorded observation for a single clause.
// It is a tagged value: exactly the field matching Kind is meaningful.
// ClauseValue is a plain value type and safe to copy.
type ClauseValue struct {
	// Kind selects which of the payload fields below is meaningful.
	Kind ClauseKind `json:"kind" yaml:"kind"`

	// Bool carries the payload for ClauseBoolean clauses.
	Bool bool `json:"bool,omitempty" yaml:"bool,omitempty"`

	// Number carries the payload for ClauseNumber clauses.
	Number int `json:"number,omitempty" yaml:"number,omitempty"`

	// Selection carries the payload for ClauseEnum clauses.
	// Single-select clauses hold at most one element; multi-select
	// clauses hold a set of distinct option strings. An empty slice
	// means nothing was selected.
	Selection []string `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// BooleanValue builds a boolean clause value.
func BooleanValue(v bool) ClauseValue {
	return ClauseValue{Kind: ClauseBoolean, Bool: v}
}

// NumberValue builds a numeric clause value.
func NumberValue(n int) ClauseValue {
	return ClauseValue{Kind: ClauseNumber, Number: n}
}

// SelectionValue builds an enum clause value from the selected options.
// Passing no options produces the null selection.
func SelectionValue(options ...string) ClauseValue {
	return ClauseValue{Kind: ClauseEnum, Selection: options}
}

// IsEmptySelection reports whether an enum clause holds no selection.
func (v ClauseValue) IsEmptySelection() bool { return len(v.Selection) == 0 }

// Selected reports whether the given option is part of the selection.
func (v ClauseValue) Selected(option string) bool {
	return slices.Contains(v.Selection, option)
}

// ClauseValues holds the recorded values for one mission, ordered exactly
// as the mission's clause definitions.
type ClauseValues []ClauseValue

// MissionValues maps mission IDs to their recorded clause values for one
// match attempt. It is the raw input to scoresheet evaluation and the
// full view that season-level validators inspect.
type MissionValues map[string]ClauseValues
