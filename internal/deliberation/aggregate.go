package deliberation

import (
	"sort"

	"github.com/scorehub/podium/internal/domain"
	"github.com/scorehub/podium/internal/season"
)

// Namespace prefixes for core-values fields borrowed from the other
// two judged rubrics. The prefix is an explicit convention: a derived
// key like "ip-teamwork" always names the source category and field.
const (
	PrefixInnovationProject = "ip-"
	PrefixRobotDesign       = "rd-"
)

// categoryPrefix maps a source category to its derived-field prefix.
func categoryPrefix(category domain.JudgingCategory) string {
	switch category {
	case domain.CategoryInnovationProject:
		return PrefixInnovationProject
	case domain.CategoryRobotDesign:
		return PrefixRobotDesign
	default:
		return ""
	}
}

// CategoryScores computes one team's raw score per judged category plus
// the robot game.
//
// A standard category's score is the sum of its rubric field values.
// The core-values score additionally folds in one gracious-
// professionalism grade per completed ranking-stage match, defaulting
// to accomplished when the referee recorded none. The robot-game score
// is the team's best completed ranking-round total.
//
// Missing rubrics contribute zero; every category is always present in
// the returned map so downstream ranking sees a complete score set.
func CategoryScores(
	rubrics map[domain.JudgingCategory]domain.Rubric,
	sheets []domain.Scoresheet,
) map[domain.JudgingCategory]float64 {
	scores := make(map[domain.JudgingCategory]float64, len(domain.RankedCategories()))

	for _, category := range domain.JudgedCategories() {
		scores[category] = rubrics[category].FieldSum()
	}

	best := 0.0
	for _, sheet := range sheets {
		if sheet.Stage != domain.StageRanking || !sheet.Completed() {
			continue
		}
		scores[domain.CategoryCoreValues] += float64(sheet.GP.Effective())
		if total := float64(sheet.TotalPoints); total > best {
			best = total
		}
	}
	scores[domain.CategoryRobotGame] = best

	return scores
}

// DeriveCoreValuesFields synthesizes the core-values view of the fields
// flagged "also scored as core values" on the innovation-project and
// robot-design rubrics. Each flagged field's value is copied under its
// namespaced key ("ip-" or "rd-" prefix).
//
// The result is computed fresh on every read and must never be written
// back into persisted core-values storage; the source rubrics remain
// the single source of truth.
func DeriveCoreValuesFields(
	ip, rd domain.Rubric,
	schema season.RubricSchema,
) map[string]domain.RubricValue {
	derived := make(map[string]domain.RubricValue)
	copyFlagged := func(source domain.Rubric, category domain.JudgingCategory) {
		prefix := categoryPrefix(category)
		for _, field := range schema.CoreValuesFields[category] {
			if value, ok := source.Values[field]; ok {
				derived[prefix+field] = value
			}
		}
	}
	copyFlagged(ip, domain.CategoryInnovationProject)
	copyFlagged(rd, domain.CategoryRobotDesign)
	return derived
}

// CoreValuesView assembles the full display/export view of a team's
// core-values rubric: its own persisted fields plus the derived fields
// borrowed from the other two panels.
func CoreValuesView(
	cv, ip, rd domain.Rubric,
	schema season.RubricSchema,
) map[string]domain.RubricValue {
	view := make(map[string]domain.RubricValue, len(cv.Values))
	for field, value := range cv.Values {
		view[field] = value
	}
	for field, value := range DeriveCoreValuesFields(ip, rd, schema) {
		view[field] = value
	}
	return view
}

// RobotGameScores lists a team's completed ranking-round totals in
// round order. Rounds without a completed sheet are absent from the
// result, not recorded as zero.
func RobotGameScores(sheets []domain.Scoresheet) []float64 {
	ranked := make([]domain.Scoresheet, 0, len(sheets))
	for _, sheet := range sheets {
		if sheet.Stage == domain.StageRanking && sheet.Completed() {
			ranked = append(ranked, sheet)
		}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Round < ranked[j].Round })

	scores := make([]float64, len(ranked))
	for i, sheet := range ranked {
		scores[i] = float64(sheet.TotalPoints)
	}
	return scores
}

// GPScores maps ranking round numbers to the gracious-professionalism
// grade recorded for that match, for completed sheets only.
func GPScores(sheets []domain.Scoresheet) map[int]domain.GPLevel {
	grades := make(map[int]domain.GPLevel)
	for _, sheet := range sheets {
		if sheet.Stage == domain.StageRanking && sheet.Completed() {
			grades[sheet.Round] = sheet.GP.Effective()
		}
	}
	return grades
}
