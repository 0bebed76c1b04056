package domain

// MatchStage distinguishes practice rounds from ranking rounds. Only
// ranking-stage matches feed aggregation and deliberation.
type MatchStage string

// Match stages.
const (
	StagePractice MatchStage = "practice"
	StageRanking  MatchStage = "ranking"
)

// ScoresheetStatus tracks the lifecycle of a match scoresheet.
type ScoresheetStatus string

// Scoresheet lifecycle states. A sheet is created empty when the match
// is loaded, mutated by referees while in progress, and becomes
// immutable once submitted.
const (
	ScoresheetStatusEmpty      ScoresheetStatus = "empty"
	ScoresheetStatusInProgress ScoresheetStatus = "in-progress"
	ScoresheetStatusCompleted  ScoresheetStatus = "completed"
	ScoresheetStatusSubmitted  ScoresheetStatus = "submitted"
)

// GPLevel is the per-match gracious-professionalism grade a referee
// awards to a team, folded into the core-values category score.
type GPLevel int

// Gracious-professionalism levels. The zero value means the referee has
// not recorded a grade yet.
const (
	GPUnset        GPLevel = 0
	GPDiscouraged  GPLevel = 2
	GPAccomplished GPLevel = 3
	GPExceeds      GPLevel = 4
)

// DefaultGP is the grade assumed when a sheet carries no explicit one.
const DefaultGP = GPAccomplished

// Effective returns the level itself, or DefaultGP when unset.
func (g GPLevel) Effective() GPLevel {
	if g == GPUnset {
		return DefaultGP
	}
	return g
}

// MissionScore records one mission's raw clause values and the points
// those values calculated to at evaluation time.
type MissionScore struct {
	MissionID string       `json:"mission_id" yaml:"mission_id"`
	Values    ClauseValues `json:"values" yaml:"values"`
	Points    int          `json:"points" yaml:"points"`
}

// Scoresheet is one team's one match attempt: the full set of recorded
// clause values, the derived per-mission and total points, and match
// bookkeeping.
//
// TotalPoints is always the sum of the mission points and is recomputed
// from clause values rather than edited independently; a sheet whose
// values fail evaluation must not carry a total at all.
type Scoresheet struct {
	TeamID  string           `json:"team_id" yaml:"team_id"`
	MatchID string           `json:"match_id" yaml:"match_id"`
	Round   int              `json:"round" yaml:"round"`
	Stage   MatchStage       `json:"stage" yaml:"stage"`
	Status  ScoresheetStatus `json:"status" yaml:"status"`

	Missions []MissionScore `json:"missions" yaml:"missions"`

	TotalPoints int `json:"total_points" yaml:"total_points"`

	// GP is the referee's gracious-professionalism grade for the match.
	GP GPLevel `json:"gp,omitempty" yaml:"gp,omitempty"`

	// Signature is the head referee's captured sign-off, opaque to the
	// engine.
	Signature []byte `json:"signature,omitempty" yaml:"signature,omitempty"`
}

// Completed reports whether the sheet has reached a terminal, countable
// state for aggregation purposes.
func (s Scoresheet) Completed() bool {
	return s.Status == ScoresheetStatusCompleted || s.Status == ScoresheetStatusSubmitted
}

// Values collects the sheet's raw clause values keyed by mission ID,
// in the shape the evaluator consumes.
func (s Scoresheet) Values() MissionValues {
	mv := make(MissionValues, len(s.Missions))
	for _, m := range s.Missions {
		mv[m.MissionID] = m.Values
	}
	return mv
}
