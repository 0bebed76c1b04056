// Package seasons holds the concrete season definitions shipped with
// the engine. Each season is a plain value built from the season
// package's mission model; nothing here is looked up ambiently.
package seasons

import (
	"github.com/scorehub/podium/internal/domain"
	"github.com/scorehub/podium/internal/season"
)

// Zone options for the m04 sonar sweep clause.
const (
	zoneNone    = "none"
	zoneShallow = "shallow"
	zoneMid     = "mid"
	zoneDeep    = "deep"
)

// Docking options for m06.
const (
	dockNone     = "none"
	dockPartial  = "partial"
	dockComplete = "complete"
)

// precisionPoints maps remaining precision tokens to points for m07.
var precisionPoints = [...]int{0, 10, 15, 25, 35, 50, 60}

// Deepwater returns the "deepwater" season definition: eight missions
// covering every clause kind, one cross-mission delivery rule, and the
// rubric fields shared with the core-values category.
func Deepwater() *season.Definition {
	return &season.Definition{
		Name: "deepwater",
		Missions: []season.Mission{
			{
				ID:    "m00",
				Title: "Equipment Inspection",
				Clauses: []season.ClauseDef{
					{Kind: domain.ClauseBoolean},
				},
				Score: func(v domain.ClauseValues) (int, error) {
					if v[0].Bool {
						return 20, nil
					}
					return 0, nil
				},
			},
			{
				ID:    "m01",
				Title: "Reef Restoration",
				Clauses: []season.ClauseDef{
					{Kind: domain.ClauseBoolean}, // coral tree raised
					{Kind: domain.ClauseBoolean}, // coral tree supported
				},
				Score: func(v domain.ClauseValues) (int, error) {
					raised, supported := v[0].Bool, v[1].Bool
					if supported && !raised {
						// The tree cannot be supported without being raised.
						return 0, domain.NewScoresheetError("m01-e1")
					}
					points := 0
					if raised {
						points += 20
					}
					if supported {
						points += 10
					}
					return points, nil
				},
			},
			{
				ID:    "m02",
				Title: "Specimen Collection",
				Clauses: []season.ClauseDef{
					{Kind: domain.ClauseNumber, Min: 0, Max: 4}, // specimens in basket
				},
				Score: func(v domain.ClauseValues) (int, error) {
					return v[0].Number * 10, nil
				},
			},
			{
				ID:    "m03",
				Title: "Cargo Transfer",
				Clauses: []season.ClauseDef{
					{Kind: domain.ClauseBoolean}, // kelp sample loaded onto submarine
				},
				Score: func(v domain.ClauseValues) (int, error) {
					if v[0].Bool {
						return 5, nil
					}
					return 0, nil
				},
			},
			{
				ID:    "m04",
				Title: "Sonar Sweep",
				Clauses: []season.ClauseDef{
					{
						Kind:        domain.ClauseEnum,
						Options:     []string{zoneNone, zoneShallow, zoneMid, zoneDeep},
						MultiSelect: true,
						EmptyOption: zoneNone,
						Default:     domain.SelectionValue(zoneNone),
					},
				},
				Score: func(v domain.ClauseValues) (int, error) {
					// Values arrive normalized: a none-only selection is
					// already the null selection.
					return len(v[0].Selection) * 10, nil
				},
			},
			{
				ID:    "m05",
				Title: "Sample Delivery",
				Clauses: []season.ClauseDef{
					{Kind: domain.ClauseNumber, Min: 0, Max: 3}, // samples delivered to port
				},
				Score: func(v domain.ClauseValues) (int, error) {
					return v[0].Number * 15, nil
				},
			},
			{
				ID:    "m06",
				Title: "Docking",
				Clauses: []season.ClauseDef{
					{
						Kind:    domain.ClauseEnum,
						Options: []string{dockNone, dockPartial, dockComplete},
						Default: domain.SelectionValue(dockNone),
					},
				},
				Score: func(v domain.ClauseValues) (int, error) {
					switch {
					case v[0].Selected(dockComplete):
						return 30, nil
					case v[0].Selected(dockPartial):
						return 15, nil
					default:
						return 0, nil
					}
				},
			},
			{
				ID:    "m07",
				Title: "Precision Tokens",
				Clauses: []season.ClauseDef{
					{Kind: domain.ClauseNumber, Min: 0, Max: 6, Default: domain.NumberValue(6)},
				},
				Score: func(v domain.ClauseValues) (int, error) {
					return precisionPoints[v[0].Number], nil
				},
			},
		},
		Validators: []season.Validator{
			// A sample claimed as loaded in m03 must be reflected in
			// m05's delivered count.
			func(values domain.MissionValues) error {
				loaded := values["m03"][0].Bool
				delivered := values["m05"][0].Number
				if loaded && delivered == 0 {
					return domain.NewScoresheetError("m05-e1")
				}
				return nil
			},
		},
		Rubrics: season.RubricSchema{
			CoreValuesFields: map[domain.JudgingCategory][]string{
				domain.CategoryInnovationProject: {"discovery", "teamwork"},
				domain.CategoryRobotDesign:       {"inclusion", "impact"},
			},
		},
	}
}
