// Package deliberation aggregates judged and robot-game scores,
// normalizes them across judging rooms, and produces the ranked
// per-team records that award deliberation runs on.
//
// Everything in this package is pure and synchronous: a build operates
// on one consistent snapshot supplied by the caller and touches no live
// store. Re-running a build on the same snapshot yields the same report
// apart from its identifier and timestamp.
package deliberation

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/scorehub/podium/internal/domain"
)

// CategoryAverage is the pseudo-category spanning all judged
// categories, normalized alongside them so deliberation can compare
// overall panel impressions across rooms.
const CategoryAverage domain.JudgingCategory = "average"

// Common errors returned by the deliberation engine.
var (
	// ErrNoTeams is returned when a build or ranking receives an empty
	// team set.
	ErrNoTeams = errors.New("no teams to rank")

	// ErrDuplicateTeam is returned when the same team appears twice in a
	// ranking input.
	ErrDuplicateTeam = errors.New("duplicate team in ranking input")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// round2 rounds to two decimal places, the precision every normalized
// score and total rank is reported at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
