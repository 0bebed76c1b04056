// Package application loads declarative season definitions from YAML
// and binds them to registered mission calculators, so seasons can ship
// as data while their scoring rules stay unit-testable Go functions.
package application

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/scorehub/podium/internal/domain"
)

// SeasonConfig is the YAML schema for one season file.
type SeasonConfig struct {
	// Season names the season; it becomes the definition's name.
	Season string `yaml:"season" validate:"required,min=1,max=100"`

	// Missions lists the season's missions in scoresheet order.
	Missions []MissionConfig `yaml:"missions" validate:"required,min=1,dive"`

	// Validators names the registered cross-mission validators to
	// attach, in execution order.
	Validators []string `yaml:"validators" validate:"dive,min=1"`

	// Rubrics flags rubric fields shared with the core-values category,
	// keyed by source category.
	Rubrics RubricsConfig `yaml:"rubrics"`
}

// MissionConfig declares one mission and names its registered
// calculator.
type MissionConfig struct {
	// ID uniquely identifies the mission within the season.
	ID string `yaml:"id" validate:"required,min=1,max=16"`

	// Title is the mission's display name.
	Title string `yaml:"title" validate:"max=200"`

	// Calc is the registry key of the mission's calculation function.
	Calc string `yaml:"calc" validate:"required,min=1"`

	// Clauses lists the mission's inputs in recording order.
	Clauses []ClauseConfig `yaml:"clauses" validate:"required,min=1,dive"`
}

// ClauseConfig declares one clause of a mission.
type ClauseConfig struct {
	Kind        string   `yaml:"kind" validate:"required,oneof=boolean enum number"`
	Options     []string `yaml:"options,omitempty" validate:"dive,min=1"`
	MultiSelect bool     `yaml:"multi_select,omitempty"`
	EmptyOption string   `yaml:"empty_option,omitempty"`
	Min         int      `yaml:"min,omitempty"`
	Max         int      `yaml:"max,omitempty"`

	// Default holds the clause's starting value as flexible YAML,
	// decoded according to Kind: a bool, an integer, or a string or
	// string list of options.
	Default yaml.Node `yaml:"default,omitempty"`
}

// RubricsConfig flags the rubric fields copied into the core-values
// view at read time.
type RubricsConfig struct {
	CoreValuesFields map[string][]string `yaml:"core_values_fields,omitempty"`
}

// decodeDefault interprets a clause's default node according to its
// declared kind.
func decodeDefault(node yaml.Node, kind domain.ClauseKind) (domain.ClauseValue, error) {
	if node.IsZero() {
		return domain.ClauseValue{}, nil
	}

	switch kind {
	case domain.ClauseBoolean:
		var v bool
		if err := node.Decode(&v); err != nil {
			return domain.ClauseValue{}, fmt.Errorf("boolean default: %w", err)
		}
		return domain.BooleanValue(v), nil

	case domain.ClauseNumber:
		var v int
		if err := node.Decode(&v); err != nil {
			return domain.ClauseValue{}, fmt.Errorf("number default: %w", err)
		}
		return domain.NumberValue(v), nil

	default:
		var many []string
		if err := node.Decode(&many); err == nil {
			return domain.SelectionValue(many...), nil
		}
		var one string
		if err := node.Decode(&one); err != nil {
			return domain.ClauseValue{}, fmt.Errorf("enum default: %w", err)
		}
		return domain.SelectionValue(one), nil
	}
}
