package deliberation

import (
	"fmt"

	"github.com/scorehub/podium/internal/domain"
)

// TeamCategoryScores pairs a team's room assignment with its raw
// per-category scores, the input shape room normalization works on.
type TeamCategoryScores struct {
	TeamID string
	RoomID string
	Scores map[domain.JudgingCategory]float64
}

// Factors holds the per-category, per-room correction factors computed
// from one snapshot's scores. A factor above 1 marks a strict room
// whose scores are lifted toward the event mean, below 1 a lenient one.
type Factors struct {
	factor map[domain.JudgingCategory]map[string]float64
}

// Factor returns the correction factor for a category and room.
func (f Factors) Factor(category domain.JudgingCategory, roomID string) (float64, bool) {
	rooms, ok := f.factor[category]
	if !ok {
		return 0, false
	}
	value, ok := rooms[roomID]
	return value, ok
}

// Normalize applies a room's factor to a raw score, rounded to two
// decimal places. Asking for an unknown category/room pair is a
// caller error.
func (f Factors) Normalize(raw float64, category domain.JudgingCategory, roomID string) (float64, error) {
	factor, ok := f.Factor(category, roomID)
	if !ok {
		return 0, fmt.Errorf("no room factor for category=%s room=%s", category, roomID)
	}
	return round2(raw * factor), nil
}

// RoomFactors computes correction factors for every judged category and
// the overall average pseudo-category, from the mean score each room
// awarded: factor = mean-of-room-means / room-mean.
//
// Different panels systematically score higher or lower; the factors
// re-center every room on the event-wide mean before cross-room
// comparisons are made. Raw scores stay available for audit.
//
// Every room in rooms must have at least one scored team and a nonzero
// mean in every category; otherwise its factor is undefined and a
// *domain.NormalizationError is returned rather than a silent Inf/NaN
// or a coerced factor.
func RoomFactors(teams []TeamCategoryScores, rooms []domain.Room) (Factors, error) {
	if len(teams) == 0 {
		return Factors{}, ErrNoTeams
	}
	if len(rooms) == 0 {
		return Factors{}, &domain.NormalizationError{
			Category: CategoryAverage, Reason: "no judging rooms in snapshot",
		}
	}

	categories := append(domain.JudgedCategories(), CategoryAverage)
	factors := Factors{factor: make(map[domain.JudgingCategory]map[string]float64, len(categories))}

	for _, category := range categories {
		roomMeans := make(map[string]float64, len(rooms))
		for _, room := range rooms {
			mean, err := roomMean(teams, room.ID, category)
			if err != nil {
				return Factors{}, err
			}
			roomMeans[room.ID] = mean
		}

		var sum float64
		for _, mean := range roomMeans {
			sum += mean
		}
		overall := sum / float64(len(roomMeans))

		byRoom := make(map[string]float64, len(roomMeans))
		for roomID, mean := range roomMeans {
			byRoom[roomID] = overall / mean
		}
		factors.factor[category] = byRoom
	}

	return factors, nil
}

// roomMean computes one room's mean score for a category, or for the
// average pseudo-category the mean of the room's per-team category
// averages.
func roomMean(teams []TeamCategoryScores, roomID string, category domain.JudgingCategory) (float64, error) {
	var sum float64
	var count int
	for _, team := range teams {
		if team.RoomID != roomID {
			continue
		}
		sum += teamScore(team, category)
		count++
	}

	if count == 0 {
		return 0, &domain.NormalizationError{
			Category: category, RoomID: roomID, Reason: "no scored teams",
		}
	}

	mean := sum / float64(count)
	if mean == 0 {
		return 0, &domain.NormalizationError{
			Category: category, RoomID: roomID, Reason: "zero mean score",
		}
	}
	return mean, nil
}

// teamScore resolves a team's score for a real category, or its mean
// across the judged categories for the average pseudo-category.
func teamScore(team TeamCategoryScores, category domain.JudgingCategory) float64 {
	if category != CategoryAverage {
		return team.Scores[category]
	}
	judged := domain.JudgedCategories()
	var sum float64
	for _, c := range judged {
		sum += team.Scores[c]
	}
	return sum / float64(len(judged))
}
