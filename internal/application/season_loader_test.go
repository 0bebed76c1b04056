package application

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorehub/podium/internal/domain"
	"github.com/scorehub/podium/internal/season"
)

const testSeasonYAML = `
season: testsea
missions:
  - id: m00
    title: Inspection
    calc: testsea/m00
    clauses:
      - kind: boolean
  - id: m01
    title: Sonar
    calc: testsea/m01
    clauses:
      - kind: enum
        options: [none, shallow, deep]
        multi_select: true
        empty_option: none
        default: none
  - id: m02
    title: Tokens
    calc: testsea/m02
    clauses:
      - kind: number
        min: 0
        max: 6
        default: 6
validators:
  - testsea/delivery
rubrics:
  core_values_fields:
    innovation-project: [discovery]
`

func testRegistry(t *testing.T) *CalcRegistry {
	t.Helper()
	registry := NewCalcRegistry()
	require.NoError(t, registry.RegisterCalc("testsea/m00", func(v domain.ClauseValues) (int, error) {
		if v[0].Bool {
			return 20, nil
		}
		return 0, nil
	}))
	require.NoError(t, registry.RegisterCalc("testsea/m01", func(v domain.ClauseValues) (int, error) {
		return len(v[0].Selection) * 10, nil
	}))
	require.NoError(t, registry.RegisterCalc("testsea/m02", func(v domain.ClauseValues) (int, error) {
		return v[0].Number * 5, nil
	}))
	require.NoError(t, registry.RegisterValidator("testsea/delivery", func(domain.MissionValues) error {
		return nil
	}))
	return registry
}

func TestSeasonLoader_LoadFromReader(t *testing.T) {
	loader, err := NewSeasonLoader(testRegistry(t))
	require.NoError(t, err)

	def, err := loader.LoadFromReader(strings.NewReader(testSeasonYAML))
	require.NoError(t, err)

	assert.Equal(t, "testsea", def.Name)
	require.Len(t, def.Missions, 3)
	require.Len(t, def.Validators, 1)
	require.NoError(t, def.Validate())

	// Clause shapes and defaults survive compilation.
	sonar, ok := def.Mission("m01")
	require.True(t, ok)
	require.Len(t, sonar.Clauses, 1)
	assert.Equal(t, domain.ClauseEnum, sonar.Clauses[0].Kind)
	assert.True(t, sonar.Clauses[0].MultiSelect)
	assert.Equal(t, "none", sonar.Clauses[0].EmptyOption)
	assert.Equal(t, domain.SelectionValue("none"), sonar.Clauses[0].DefaultValue())

	tokens, ok := def.Mission("m02")
	require.True(t, ok)
	assert.Equal(t, domain.NumberValue(6), tokens.Clauses[0].DefaultValue())

	// Bound calculators are live.
	points, err := tokens.Score(domain.ClauseValues{domain.NumberValue(4)})
	require.NoError(t, err)
	assert.Equal(t, 20, points)

	// Rubric flags come through with typed category keys.
	assert.Equal(t, []string{"discovery"},
		def.Rubrics.CoreValuesFields[domain.CategoryInnovationProject])
}

func TestSeasonLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "season: [",
			wantErr: "failed to parse",
		},
		{
			name: "unknown field rejected",
			yaml: `
season: testsea
surprise: true
missions:
  - id: m00
    calc: testsea/m00
    clauses:
      - kind: boolean
`,
			wantErr: "failed to parse",
		},
		{
			name:    "missing missions",
			yaml:    "season: testsea",
			wantErr: "validation failed",
		},
		{
			name: "unknown calc key",
			yaml: `
season: testsea
missions:
  - id: m00
    calc: testsea/nope
    clauses:
      - kind: boolean
`,
			wantErr: `unknown calc "testsea/nope"`,
		},
		{
			name: "unknown validator key",
			yaml: `
season: testsea
missions:
  - id: m00
    calc: testsea/m00
    clauses:
      - kind: boolean
validators: [testsea/nope]
`,
			wantErr: `unknown validator "testsea/nope"`,
		},
		{
			name: "invalid clause kind",
			yaml: `
season: testsea
missions:
  - id: m00
    calc: testsea/m00
    clauses:
      - kind: slider
`,
			wantErr: "validation failed",
		},
		{
			name: "inadmissible default",
			yaml: `
season: testsea
missions:
  - id: m02
    calc: testsea/m02
    clauses:
      - kind: number
        min: 0
        max: 6
        default: 9
`,
			wantErr: "default value inadmissible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := NewSeasonLoader(testRegistry(t))
			require.NoError(t, err)

			_, err = loader.LoadFromReader(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// Identical sources compile once and share the cached definition, even
// under concurrent loads.
func TestSeasonLoader_Caching(t *testing.T) {
	loader, err := NewSeasonLoader(testRegistry(t))
	require.NoError(t, err)

	first, err := loader.LoadFromReader(strings.NewReader(testSeasonYAML))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*season.Definition, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			def, err := loader.LoadFromReader(strings.NewReader(testSeasonYAML))
			assert.NoError(t, err)
			results[i] = def
		}()
	}
	wg.Wait()

	for _, def := range results {
		assert.Same(t, first, def)
	}
}

func TestSeasonLoader_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "season.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSeasonYAML), 0o600))

	loader, err := NewSeasonLoader(testRegistry(t))
	require.NoError(t, err)

	def, err := loader.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "testsea", def.Name)

	_, err = loader.LoadFromFile(path + ".missing")
	assert.Error(t, err)
}

func TestNewSeasonLoader_RequiresRegistry(t *testing.T) {
	_, err := NewSeasonLoader(nil)
	assert.Error(t, err)
}

func TestCalcRegistry(t *testing.T) {
	registry := NewCalcRegistry()

	assert.Error(t, registry.RegisterCalc("", func(domain.ClauseValues) (int, error) { return 0, nil }))
	assert.Error(t, registry.RegisterCalc("k", nil))
	assert.Error(t, registry.RegisterValidator("", func(domain.MissionValues) error { return nil }))
	assert.Error(t, registry.RegisterValidator("k", nil))

	_, ok := registry.Calc("k")
	assert.False(t, ok)

	require.NoError(t, registry.RegisterCalc("k", func(domain.ClauseValues) (int, error) { return 7, nil }))
	fn, ok := registry.Calc("k")
	require.True(t, ok)
	points, err := fn(nil)
	require.NoError(t, err)
	assert.Equal(t, 7, points)
}

func TestCalcRegistry_RegisterDefinition(t *testing.T) {
	registry := NewCalcRegistry()
	def := &season.Definition{
		Name: "testsea",
		Missions: []season.Mission{{
			ID:      "m00",
			Clauses: []season.ClauseDef{{Kind: domain.ClauseBoolean}},
			Score:   func(domain.ClauseValues) (int, error) { return 1, nil },
		}},
	}

	require.NoError(t, registry.RegisterDefinition(def))
	_, ok := registry.Calc("testsea/m00")
	assert.True(t, ok)

	assert.Error(t, registry.RegisterDefinition(nil))
}
