package deliberation

import (
	"sort"

	"github.com/scorehub/podium/internal/domain"
)

// Strategy selects how tied scores are ranked among the teams a
// picklist does not cover.
type Strategy string

// Supported ranking strategies.
const (
	// RankOrdinal assigns distinct consecutive ranks even to tied
	// scores, in sorted order. This mirrors the historical deliberation
	// behavior of ranking by sorted position.
	RankOrdinal Strategy = "ordinal"

	// RankShared assigns tied scores the same rank and the next
	// distinct score the following rank (dense ranking), keeping the
	// rank sequence gap-free.
	RankShared Strategy = "shared"
)

// Entry is one team's scoring input to a category ranking. For the
// robot game, Attempts carries the per-attempt score array and takes
// precedence over Score; for judged categories Attempts is nil and
// Score is the (normalized) category score.
type Entry struct {
	TeamID string

	// Score is the single-number category score.
	Score float64

	// Attempts holds per-attempt robot-game scores, compared by the
	// multi-value tie-break rule instead of Score when non-nil.
	Attempts []float64
}

// CompareAttempts compares two attempt-score arrays by the robot-game
// tie-break rule: both arrays are sorted descending and compared
// element by element, the first differing position deciding. When one
// array is a strict prefix of the other, the shorter array loses:
// fewer attempts never outranks an equal prefix of more attempts.
// Missing trailing attempts are absent, not zero.
//
// The result is positive when a ranks higher than b, negative when b
// ranks higher, and zero for an exact tie.
func CompareAttempts(a, b []float64) int {
	as := sortedDesc(a)
	bs := sortedDesc(b)

	for i := 0; i < len(as) && i < len(bs); i++ {
		switch {
		case as[i] > bs[i]:
			return 1
		case as[i] < bs[i]:
			return -1
		}
	}

	switch {
	case len(as) > len(bs):
		return 1
	case len(as) < len(bs):
		return -1
	default:
		return 0
	}
}

// sortedDesc returns a descending copy without mutating the input.
func sortedDesc(v []float64) []float64 {
	s := make([]float64, len(v))
	copy(s, v)
	sort.Sort(sort.Reverse(sort.Float64Slice(s)))
	return s
}

// compareEntries orders two entries for one category: attempt arrays
// when both carry them, single scores otherwise.
func compareEntries(a, b Entry) int {
	if a.Attempts != nil || b.Attempts != nil {
		return CompareAttempts(a.Attempts, b.Attempts)
	}
	switch {
	case a.Score > b.Score:
		return 1
	case a.Score < b.Score:
		return -1
	default:
		return 0
	}
}

// RankCategory produces a complete, gap-free 1-based rank for every
// entry in one category.
//
// Teams on the picklist receive ranks 1..N in picklist order; those
// ranks are authoritative and bypass scoring entirely. The remaining
// teams are sorted by strictly descending score (attempt arrays for the
// robot game) and ranked after the picklist according to the strategy.
//
// A picklist member missing from the entry set, or a duplicate team
// anywhere in the input, is a data-integrity error: ranking fails with
// a *domain.RankingError rather than leaving a team silently unranked
// or defaulted.
func RankCategory(
	category domain.JudgingCategory,
	entries []Entry,
	picklist []string,
	strategy Strategy,
) (map[string]int, error) {
	if len(entries) == 0 {
		return nil, ErrNoTeams
	}

	byTeam := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if _, dup := byTeam[entry.TeamID]; dup {
			return nil, &domain.RankingError{
				Category: category, TeamID: entry.TeamID, Reason: ErrDuplicateTeam.Error(),
			}
		}
		byTeam[entry.TeamID] = entry
	}

	ranks := make(map[string]int, len(entries))
	picked := make(map[string]bool, len(picklist))
	for i, teamID := range picklist {
		if _, ok := byTeam[teamID]; !ok {
			return nil, &domain.RankingError{
				Category: category, TeamID: teamID, Reason: "picklist references unknown team",
			}
		}
		if picked[teamID] {
			return nil, &domain.RankingError{
				Category: category, TeamID: teamID, Reason: "team listed twice on picklist",
			}
		}
		picked[teamID] = true
		ranks[teamID] = i + 1
	}

	rest := make([]Entry, 0, len(entries)-len(picklist))
	for _, entry := range entries {
		if !picked[entry.TeamID] {
			rest = append(rest, entry)
		}
	}
	// Stable over input order so tied scores rank deterministically.
	sort.SliceStable(rest, func(i, j int) bool {
		return compareEntries(rest[i], rest[j]) > 0
	})

	offset := len(picklist)
	position := 0
	for i, entry := range rest {
		switch strategy {
		case RankShared:
			if i == 0 || compareEntries(rest[i-1], entry) != 0 {
				position++
			}
		default:
			position = i + 1
		}
		ranks[entry.TeamID] = offset + position
	}

	return ranks, nil
}

// TotalRank is the arithmetic mean of a team's per-category ranks,
// robot game included, rounded to two decimal places.
func TotalRank(ranks map[domain.JudgingCategory]int) float64 {
	if len(ranks) == 0 {
		return 0
	}
	var sum float64
	for _, rank := range ranks {
		sum += float64(rank)
	}
	return round2(sum / float64(len(ranks)))
}
