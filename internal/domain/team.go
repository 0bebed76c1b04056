package domain

// JudgingCategory identifies one of the award categories a team is
// evaluated in. Three categories are judged from rubrics in judging
// rooms; the robot game is scored on the field from scoresheets.
type JudgingCategory string

// The four ranking categories.
const (
	CategoryCoreValues        JudgingCategory = "core-values"
	CategoryInnovationProject JudgingCategory = "innovation-project"
	CategoryRobotDesign       JudgingCategory = "robot-design"
	CategoryRobotGame         JudgingCategory = "robot-game"
)

// JudgedCategories returns the rubric-bearing categories, in display order.
// The robot game has no rubric and is excluded.
func JudgedCategories() []JudgingCategory {
	return []JudgingCategory{
		CategoryCoreValues,
		CategoryInnovationProject,
		CategoryRobotDesign,
	}
}

// RankedCategories returns every category that contributes to a team's
// total rank, robot game included.
func RankedCategories() []JudgingCategory {
	return []JudgingCategory{
		CategoryCoreValues,
		CategoryInnovationProject,
		CategoryRobotDesign,
		CategoryRobotGame,
	}
}

// Team is one competing team at an event.
type Team struct {
	// ID uniquely identifies the team within the event.
	ID string `json:"id" yaml:"id"`

	// Number is the team's public competition number.
	Number int `json:"number" yaml:"number"`

	// Name is the team's display name.
	Name string `json:"name" yaml:"name"`

	// RoomID is the judging room the team was assigned to. All three
	// judged categories for a team are heard by the same room's panel.
	RoomID string `json:"room_id" yaml:"room_id"`
}

// Room is a judging room staffed by one panel of judges.
type Room struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// CVFormSeverity grades how serious a filed core-values incident is.
type CVFormSeverity string

// Core-values form severities, mildest first.
const (
	CVSeverityLow    CVFormSeverity = "low"
	CVSeverityMedium CVFormSeverity = "medium"
	CVSeverityHigh   CVFormSeverity = "high"
)

// CVForm is a core-values incident form filed against a team during the
// event. Forms do not change scores; their severities are surfaced on
// the deliberation record for award screening.
type CVForm struct {
	TeamID   string         `json:"team_id" yaml:"team_id"`
	Severity CVFormSeverity `json:"severity" yaml:"severity"`
	Notes    string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}
