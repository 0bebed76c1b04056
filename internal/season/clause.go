// Package season defines the declarative mission model for one
// competition season: clause definitions, pure mission calculators, and
// season-level cross-mission validators.
package season

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	"github.com/scorehub/podium/internal/domain"
)

// Errors raised during clause admission, beyond the shared domain
// sentinels.
var (
	// ErrSingleSelect is returned when multiple options are selected on a
	// clause that is not declared multi-select.
	ErrSingleSelect = errors.New("multiple options selected on single-select clause")
)

// Package-level validator instance for definition validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// folder performs Unicode-aware case folding for option comparison, so
// referee clients may submit options in any casing.
var folder = cases.Fold()

// ClauseDef declares one scorable input on a mission. Definitions are
// immutable season data: defined once per season and shared by every
// scoresheet evaluated under it.
type ClauseDef struct {
	// Kind selects the clause shape.
	Kind domain.ClauseKind `yaml:"kind" validate:"required,oneof=boolean enum number"`

	// Options is the ordered set of option strings for enum clauses.
	Options []string `yaml:"options,omitempty" validate:"dive,min=1"`

	// MultiSelect declares that an enum clause holds a set of options
	// rather than a single value.
	MultiSelect bool `yaml:"multi_select,omitempty"`

	// EmptyOption names the designated empty-marker option of an enum
	// clause, when one exists. Selecting only the empty marker is the
	// same null state as selecting nothing; combining it with any other
	// option is a season-validator rule violation, not a parse error.
	EmptyOption string `yaml:"empty_option,omitempty"`

	// Min and Max bound number clauses, inclusive.
	Min int `yaml:"min,omitempty"`
	Max int `yaml:"max,omitempty"`

	// Default is the value a freshly loaded scoresheet starts with.
	// The zero ClauseValue means "derive": false, Min, or no selection.
	Default domain.ClauseValue `yaml:"default,omitempty"`
}

// DefaultValue returns the clause's starting value, deriving the kind's
// natural zero when no explicit default was declared.
func (c ClauseDef) DefaultValue() domain.ClauseValue {
	if c.Default.Kind != "" {
		return c.Default
	}
	switch c.Kind {
	case domain.ClauseNumber:
		return domain.NumberValue(c.Min)
	case domain.ClauseEnum:
		return domain.SelectionValue()
	default:
		return domain.BooleanValue(false)
	}
}

// Check validates a recorded value against the clause definition.
// Violations are caller-side contract errors (wrapped domain sentinels),
// never ScoresheetErrors: out-of-range or malformed input must be
// rejected at the boundary before any calculation runs.
func (c ClauseDef) Check(v domain.ClauseValue) error {
	if v.Kind != c.Kind {
		return fmt.Errorf("%w: want %s, got %s", domain.ErrClauseKindMismatch, c.Kind, v.Kind)
	}

	switch c.Kind {
	case domain.ClauseNumber:
		if v.Number < c.Min || v.Number > c.Max {
			return fmt.Errorf("%w: %d not in %d..%d", domain.ErrNumberOutOfRange, v.Number, c.Min, c.Max)
		}

	case domain.ClauseEnum:
		if !c.MultiSelect && len(v.Selection) > 1 {
			return fmt.Errorf("%w: got %d options", ErrSingleSelect, len(v.Selection))
		}
		seen := make(map[string]bool, len(v.Selection))
		for _, opt := range v.Selection {
			canonical, ok := c.matchOption(opt)
			if !ok {
				return fmt.Errorf("%w: %q (closest: %q)", domain.ErrUnknownOption, opt, c.closestOption(opt))
			}
			if seen[canonical] {
				return fmt.Errorf("%w: %q", domain.ErrDuplicateOption, canonical)
			}
			seen[canonical] = true
		}
	}

	return nil
}

// Normalize returns the canonical form of a checked value: selections
// are rewritten to the declared option spellings, and a selection of
// only the empty marker collapses to the null selection so calculators
// see a single representation of "nothing selected".
//
// Normalize assumes Check has passed; unknown options are dropped.
func (c ClauseDef) Normalize(v domain.ClauseValue) domain.ClauseValue {
	if c.Kind != domain.ClauseEnum || len(v.Selection) == 0 {
		return v
	}

	canonical := make([]string, 0, len(v.Selection))
	for _, opt := range v.Selection {
		if match, ok := c.matchOption(opt); ok {
			canonical = append(canonical, match)
		}
	}

	if len(canonical) == 1 && c.EmptyOption != "" && canonical[0] == c.EmptyOption {
		return domain.SelectionValue()
	}
	return domain.SelectionValue(canonical...)
}

// EmptyMarkerConflict reports whether a checked selection combines the
// designated empty marker with other options. The conflict is a
// validator-level scoring rule, so it is detected here but raised by
// the season's generated validators rather than at admission time.
func (c ClauseDef) EmptyMarkerConflict(v domain.ClauseValue) bool {
	if c.Kind != domain.ClauseEnum || c.EmptyOption == "" || len(v.Selection) < 2 {
		return false
	}
	for _, opt := range v.Selection {
		if match, ok := c.matchOption(opt); ok && match == c.EmptyOption {
			return true
		}
	}
	return false
}

// matchOption resolves an option string to its declared spelling using
// Unicode case folding.
func (c ClauseDef) matchOption(opt string) (string, bool) {
	folded := folder.String(opt)
	for _, candidate := range c.Options {
		if folder.String(candidate) == folded {
			return candidate, true
		}
	}
	return "", false
}

// closestOption returns the declared option nearest to the unknown
// input by edit distance, to make admission errors actionable.
func (c ClauseDef) closestOption(opt string) string {
	best, bestDist := "", -1
	for _, candidate := range c.Options {
		d := levenshtein.ComputeDistance(folder.String(opt), folder.String(candidate))
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// validateDef checks structural sanity of a clause definition: enum
// clauses need options, special options must be declared, defaults must
// be admissible, and number bounds must be ordered.
func (c ClauseDef) validateDef() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("clause definition invalid: %w", err)
	}

	switch c.Kind {
	case domain.ClauseEnum:
		if len(c.Options) == 0 {
			return errors.New("enum clause declares no options")
		}
		if c.EmptyOption != "" {
			if _, ok := c.matchOption(c.EmptyOption); !ok {
				return fmt.Errorf("empty option %q not among declared options", c.EmptyOption)
			}
		}
	case domain.ClauseNumber:
		if c.Min > c.Max {
			return fmt.Errorf("number bounds inverted: %d..%d", c.Min, c.Max)
		}
	}

	if c.Default.Kind != "" {
		if err := c.Check(c.Default); err != nil {
			return fmt.Errorf("default value inadmissible: %w", err)
		}
	}
	return nil
}
