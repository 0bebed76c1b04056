package season

import (
	"fmt"

	"github.com/scorehub/podium/internal/domain"
)

// Validator is a season-level cross-mission rule. It runs after every
// mission calculation has succeeded and sees the raw clause values of
// all missions, enabling rules that span missions. A violation is
// reported as a *domain.ScoresheetError carrying the rule's code.
type Validator func(values domain.MissionValues) error

// RubricSchema flags which fields of a judged category's rubric are
// also scored as core values. Flagged fields are copied into the
// synthesized core-values view at read time, never persisted there.
type RubricSchema struct {
	// CoreValuesFields maps a judged category to the IDs of its fields
	// flagged "also scored as core values".
	CoreValuesFields map[domain.JudgingCategory][]string
}

// Definition is the complete scoring specification for one season:
// the mission schema, its cross-mission validators, and the rubric
// schema for the judged categories.
//
// A Definition is passed explicitly into the evaluator and deliberation
// engine; there is no ambient season registry.
type Definition struct {
	// Name identifies the season, e.g. "deepwater".
	Name string

	// Missions lists the season's missions in scoresheet order.
	Missions []Mission

	// Validators lists the season's cross-mission rules, run in order.
	Validators []Validator

	// Rubrics flags rubric fields shared with the core-values category.
	Rubrics RubricSchema
}

// Mission returns the mission with the given ID.
func (d *Definition) Mission(id string) (Mission, bool) {
	for _, m := range d.Missions {
		if m.ID == id {
			return m, true
		}
	}
	return Mission{}, false
}

// Defaults returns the clause values of a freshly loaded scoresheet,
// every mission at its declared defaults.
func (d *Definition) Defaults() domain.MissionValues {
	values := make(domain.MissionValues, len(d.Missions))
	for _, m := range d.Missions {
		values[m.ID] = m.Defaults()
	}
	return values
}

// AllValidators returns the validators the evaluator must run, in
// order: first the generated empty-marker rules for every enum clause
// that declares an empty option, then the season's own validators.
func (d *Definition) AllValidators() []Validator {
	validators := make([]Validator, 0, len(d.Missions)+len(d.Validators))
	for _, m := range d.Missions {
		for i, c := range m.Clauses {
			if c.Kind != domain.ClauseEnum || c.EmptyOption == "" || !c.MultiSelect {
				continue
			}
			validators = append(validators, emptyMarkerValidator(m.ID, i, c))
		}
	}
	return append(validators, d.Validators...)
}

// emptyMarkerValidator builds the generated rule rejecting a selection
// that combines a clause's empty marker with other options. The rule's
// code is derived from the mission ID: "<missionID>-e-empty".
func emptyMarkerValidator(missionID string, clause int, def ClauseDef) Validator {
	code := fmt.Sprintf("%s-e-empty", missionID)
	return func(values domain.MissionValues) error {
		mv, ok := values[missionID]
		if !ok || clause >= len(mv) {
			return nil
		}
		if def.EmptyMarkerConflict(mv[clause]) {
			return domain.NewScoresheetError(code)
		}
		return nil
	}
}

// Validate checks structural sanity of the season definition: a name,
// at least one mission, unique mission IDs, and valid clause
// definitions throughout. It does not evaluate any scores.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("season definition has no name")
	}
	if len(d.Missions) == 0 {
		return fmt.Errorf("season %s defines no missions", d.Name)
	}

	seen := make(map[string]bool, len(d.Missions))
	for _, m := range d.Missions {
		if err := m.validateDef(); err != nil {
			return fmt.Errorf("season %s: %w", d.Name, err)
		}
		if seen[m.ID] {
			return fmt.Errorf("season %s: duplicate mission ID %s", d.Name, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}
