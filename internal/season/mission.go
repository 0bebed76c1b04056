package season

import (
	"fmt"

	"github.com/scorehub/podium/internal/domain"
)

// CalcFunc is a mission's pure scoring function. It maps the mission's
// checked, normalized clause values to a point value.
//
// A CalcFunc must be total and side-effect-free for a fixed season
// definition: same values, same points. The only error it may return is
// a *domain.ScoresheetError carrying the mission's designated code for
// a logically inconsistent combination of observations.
type CalcFunc func(values domain.ClauseValues) (int, error)

// Mission declares one scorable objective: its ordered input clauses
// and the calculation mapping their values to points. Missions are
// season data; they never hold match state.
type Mission struct {
	// ID uniquely identifies the mission within the season, e.g. "m04".
	ID string

	// Title is the mission's display name.
	Title string

	// Clauses lists the mission's inputs in recording order.
	Clauses []ClauseDef

	// Score is the mission's pure calculation function.
	Score CalcFunc
}

// Defaults returns the clause values a freshly loaded scoresheet starts
// with, one per clause in definition order.
func (m Mission) Defaults() domain.ClauseValues {
	values := make(domain.ClauseValues, len(m.Clauses))
	for i, c := range m.Clauses {
		values[i] = c.DefaultValue()
	}
	return values
}

// CheckValues validates recorded values against the mission's clause
// definitions: correct count, matching kinds, in-range numbers, and
// known options.
func (m Mission) CheckValues(values domain.ClauseValues) error {
	if len(values) != len(m.Clauses) {
		return fmt.Errorf("%w: mission %s wants %d values, got %d",
			domain.ErrClauseCountMismatch, m.ID, len(m.Clauses), len(values))
	}
	for i, c := range m.Clauses {
		if err := c.Check(values[i]); err != nil {
			return fmt.Errorf("mission %s clause %d: %w", m.ID, i, err)
		}
	}
	return nil
}

// NormalizeValues returns the canonical form of checked values, clause
// by clause. Calculators always operate on normalized values.
func (m Mission) NormalizeValues(values domain.ClauseValues) domain.ClauseValues {
	normalized := make(domain.ClauseValues, len(values))
	for i, c := range m.Clauses {
		normalized[i] = c.Normalize(values[i])
	}
	return normalized
}

// validateDef checks structural sanity of the mission definition.
func (m Mission) validateDef() error {
	if m.ID == "" {
		return fmt.Errorf("mission with empty ID")
	}
	if m.Score == nil {
		return fmt.Errorf("mission %s has no calculation function", m.ID)
	}
	if len(m.Clauses) == 0 {
		return fmt.Errorf("mission %s declares no clauses", m.ID)
	}
	for i, c := range m.Clauses {
		if err := c.validateDef(); err != nil {
			return fmt.Errorf("mission %s clause %d: %w", m.ID, i, err)
		}
	}
	return nil
}
