package domain

import (
	"errors"
	"fmt"
)

// Common domain errors for boundary validation of referee input.
// These indicate caller-side contract violations, not scoring rule
// violations: they must be caught before evaluation, never surfaced to
// operators as scoresheet errors.
var (
	// ErrUnknownMission indicates values were supplied for a mission the
	// season does not define, or a defined mission has no values.
	ErrUnknownMission = errors.New("unknown mission")

	// ErrClauseCountMismatch indicates the number of recorded values does
	// not match the mission's clause definitions.
	ErrClauseCountMismatch = errors.New("clause count mismatch")

	// ErrClauseKindMismatch indicates a value's kind does not match its
	// clause definition.
	ErrClauseKindMismatch = errors.New("clause kind mismatch")

	// ErrNumberOutOfRange indicates a numeric clause value is outside its
	// declared min..max bounds.
	ErrNumberOutOfRange = errors.New("number out of range")

	// ErrUnknownOption indicates an enum clause selection is not among
	// the clause's declared options.
	ErrUnknownOption = errors.New("unknown option")

	// ErrDuplicateOption indicates an enum selection contains the same
	// option more than once.
	ErrDuplicateOption = errors.New("duplicate option")
)

// ScoresheetError reports a logically inconsistent set of referee
// observations for one match attempt. It carries a stable, season- and
// mission-scoped code (e.g. "m04-e1") that the surrounding application
// resolves to localized operator-facing text; the engine itself never
// attaches free-text messages.
//
// A ScoresheetError is never retried: the recorded observations must be
// corrected at the source and the sheet re-evaluated.
type ScoresheetError struct {
	// Code is the stable identifier driving the operator-facing message.
	Code string

	// MissionID names the mission whose calculation raised the error.
	// It is empty for season-level validator errors, whose codes already
	// identify the offending rule.
	MissionID string
}

// Error implements the error interface for ScoresheetError.
func (e *ScoresheetError) Error() string {
	if e.MissionID != "" {
		return fmt.Sprintf("scoresheet rule violation: mission=%s, code=%s", e.MissionID, e.Code)
	}
	return fmt.Sprintf("scoresheet rule violation: code=%s", e.Code)
}

// NewScoresheetError creates a ScoresheetError with the given code.
func NewScoresheetError(code string) *ScoresheetError {
	return &ScoresheetError{Code: code}
}

// NormalizationError reports a judging room for which a room factor is
// undefined: the room has no scored teams, or its mean score is zero.
// It is an explicit precondition failure, never silently coerced to a
// factor of 1 or an Inf/NaN result.
type NormalizationError struct {
	// Category is the judging category being normalized.
	Category JudgingCategory

	// RoomID is the room whose factor is undefined.
	RoomID string

	// Reason describes the failed precondition.
	Reason string
}

// Error implements the error interface for NormalizationError.
func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization undefined: category=%s, room=%s, reason=%s",
		e.Category, e.RoomID, e.Reason)
}

// RankingError reports a data-integrity problem that prevents a
// complete, gap-free ranking: typically a picklist referencing a team
// that is not part of the deliberation set.
type RankingError struct {
	// Category is the category being ranked.
	Category JudgingCategory

	// TeamID is the offending team reference, when one exists.
	TeamID string

	// Reason describes the integrity violation.
	Reason string
}

// Error implements the error interface for RankingError.
func (e *RankingError) Error() string {
	if e.TeamID != "" {
		return fmt.Sprintf("ranking failed: category=%s, team=%s, reason=%s",
			e.Category, e.TeamID, e.Reason)
	}
	return fmt.Sprintf("ranking failed: category=%s, reason=%s", e.Category, e.Reason)
}
