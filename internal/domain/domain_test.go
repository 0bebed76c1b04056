package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoresheetError_Error(t *testing.T) {
	err := NewScoresheetError("m04-e1")
	assert.Equal(t, "scoresheet rule violation: code=m04-e1", err.Error())

	err.MissionID = "m04"
	assert.Equal(t, "scoresheet rule violation: mission=m04, code=m04-e1", err.Error())
}

func TestNormalizationError_Error(t *testing.T) {
	err := &NormalizationError{
		Category: CategoryCoreValues, RoomID: "r2", Reason: "no scored teams",
	}
	assert.Equal(t,
		"normalization undefined: category=core-values, room=r2, reason=no scored teams",
		err.Error())
}

func TestRankingError_Error(t *testing.T) {
	err := &RankingError{
		Category: CategoryRobotGame, TeamID: "t7", Reason: "picklist references unknown team",
	}
	assert.Contains(t, err.Error(), "team=t7")

	err.TeamID = ""
	assert.NotContains(t, err.Error(), "team=")
}

func TestGPLevel_Effective(t *testing.T) {
	assert.Equal(t, GPAccomplished, GPUnset.Effective())
	assert.Equal(t, GPDiscouraged, GPDiscouraged.Effective())
	assert.Equal(t, GPExceeds, GPExceeds.Effective())
}

func TestScoresheet_Completed(t *testing.T) {
	tests := []struct {
		status ScoresheetStatus
		want   bool
	}{
		{ScoresheetStatusEmpty, false},
		{ScoresheetStatusInProgress, false},
		{ScoresheetStatusCompleted, true},
		{ScoresheetStatusSubmitted, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Scoresheet{Status: tt.status}.Completed(), string(tt.status))
	}
}

func TestScoresheet_Values(t *testing.T) {
	sheet := Scoresheet{
		Missions: []MissionScore{
			{MissionID: "m00", Values: ClauseValues{BooleanValue(true)}},
			{MissionID: "m02", Values: ClauseValues{NumberValue(3)}},
		},
	}

	values := sheet.Values()
	assert.Equal(t, MissionValues{
		"m00": {BooleanValue(true)},
		"m02": {NumberValue(3)},
	}, values)
}

func TestRubric_FieldSum(t *testing.T) {
	r := Rubric{Values: map[string]RubricValue{
		"a": {Value: 3},
		"b": {Value: 4},
		"c": {Value: 1},
	}}
	assert.Equal(t, 8.0, r.FieldSum())

	assert.Zero(t, Rubric{}.FieldSum())
}

func TestClauseValue_Selected(t *testing.T) {
	v := SelectionValue("shallow", "deep")
	assert.True(t, v.Selected("deep"))
	assert.False(t, v.Selected("mid"))
	assert.False(t, SelectionValue().Selected("deep"))
}

func TestIsEmptySelection(t *testing.T) {
	assert.True(t, SelectionValue().IsEmptySelection())
	assert.False(t, SelectionValue("a").IsEmptySelection())
}
