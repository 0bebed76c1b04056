package domain

// RubricStatus tracks the lifecycle of a judged rubric.
type RubricStatus string

// Rubric lifecycle states. A rubric is mutable while in progress and
// becomes read-only once completed; enforcing that transition is the
// surrounding application's job, not the engine's.
const (
	RubricStatusEmpty      RubricStatus = "empty"
	RubricStatusInProgress RubricStatus = "in-progress"
	RubricStatusCompleted  RubricStatus = "completed"
)

// RubricValue is a single judged field inside a category rubric.
// Values are on the standard 1..4 scale.
type RubricValue struct {
	// Value is the judged level, 1 (beginning) through 4 (exceeds).
	Value int `json:"value" yaml:"value" validate:"min=1,max=4"`

	// Notes holds the judge's optional remark for this field.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// RubricFeedback carries the free-text feedback a panel writes for a team.
type RubricFeedback struct {
	GreatJob   string `json:"great_job,omitempty" yaml:"great_job,omitempty"`
	ThinkAbout string `json:"think_about,omitempty" yaml:"think_about,omitempty"`
}

// Rubric is the judged record for one team in one category. Each team
// has exactly one rubric per judged category.
//
// Core-values rubrics additionally surface a set of derived fields
// copied at read time from flagged fields on the innovation-project and
// robot-design rubrics. Those derived values are never stored here;
// they are synthesized on every read (see the deliberation package).
type Rubric struct {
	TeamID   string          `json:"team_id" yaml:"team_id"`
	Category JudgingCategory `json:"category" yaml:"category"`
	Status   RubricStatus    `json:"status" yaml:"status"`

	// Values maps field IDs to their judged values.
	Values map[string]RubricValue `json:"values" yaml:"values"`

	// AwardNominations maps optional-award IDs to whether the panel
	// nominated the team for that award.
	AwardNominations map[string]bool `json:"award_nominations,omitempty" yaml:"award_nominations,omitempty"`

	Feedback RubricFeedback `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// FieldSum returns the sum of all judged field values on the rubric.
func (r Rubric) FieldSum() float64 {
	var sum float64
	for _, v := range r.Values {
		sum += float64(v.Value)
	}
	return sum
}
