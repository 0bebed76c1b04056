package domain

import "time"

// DeliberationTeam is the fully aggregated, ranked record for one team,
// assembled fresh on every deliberation build. It is never persisted
// and carries no identity beyond the team's.
type DeliberationTeam struct {
	// Team echoes the team's identity and room assignment.
	Team Team `json:"team"`

	// Scores holds the raw per-category scores (rubric sums, GP folded
	// into core values; robot game carries the best attempt score).
	Scores map[JudgingCategory]float64 `json:"scores"`

	// NormalizedScores holds room-factor-corrected scores for the judged
	// categories, rounded to two decimals. Empty when the build ran in
	// unnormalized fallback mode.
	NormalizedScores map[JudgingCategory]float64 `json:"normalized_scores,omitempty"`

	// RobotGameScores lists the team's ranking-round totals in round
	// order. Rounds without a completed sheet are absent, not zero.
	RobotGameScores []float64 `json:"robot_game_scores"`

	// GPScores maps ranking round numbers to the gracious-professionalism
	// grade recorded for that match.
	GPScores map[int]GPLevel `json:"gp_scores"`

	// CoreValuesView is the display view of the team's core-values
	// rubric: its own fields plus the flagged fields borrowed from the
	// innovation-project and robot-design rubrics under namespaced
	// keys. Synthesized on every build, never persisted.
	CoreValuesView map[string]RubricValue `json:"core_values_view,omitempty"`

	// Ranks holds the team's 1-based rank in every ranked category.
	Ranks map[JudgingCategory]int `json:"ranks"`

	// TotalRank is the arithmetic mean of the per-category ranks,
	// rounded to two decimals. Lower is better.
	TotalRank float64 `json:"total_rank"`

	// CVFormSeverities lists severities of core-values forms filed
	// against the team.
	CVFormSeverities []CVFormSeverity `json:"cv_form_severities,omitempty"`

	// AwardNominations merges the panels' optional-award nominations.
	AwardNominations map[string]bool `json:"award_nominations,omitempty"`
}

// Report is the output of one deliberation build: every team's record,
// ordered by total rank, plus bookkeeping about how the build ran.
type Report struct {
	// ID uniquely identifies this build (a UUID).
	ID string `json:"id"`

	// Season names the season definition the robot-game scores were
	// evaluated under.
	Season string `json:"season"`

	// Strategy records which tie-handling strategy ranked the teams.
	Strategy string `json:"strategy"`

	// Normalized reports whether judged-category ranks were computed
	// from room-normalized scores. False means the build fell back to
	// raw scores after a normalization precondition failure.
	Normalized bool `json:"normalized"`

	// Issues lists non-fatal conditions encountered during the build,
	// such as the normalization failure that forced raw-score ranking.
	Issues []string `json:"issues,omitempty"`

	// Teams holds one record per team, sorted by ascending total rank.
	Teams []DeliberationTeam `json:"teams"`

	// GeneratedAt records when this report was built.
	GeneratedAt time.Time `json:"generated_at"`
}
