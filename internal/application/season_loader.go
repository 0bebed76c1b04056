package application

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/scorehub/podium/internal/domain"
	"github.com/scorehub/podium/internal/season"
)

// SeasonLoader parses, validates, and compiles YAML season files into
// season definitions, caching compiled definitions by content hash so
// identical files are compiled once.
type SeasonLoader struct {
	// validator performs struct field validation on season configs.
	validator *validator.Validate
	// registry resolves calculator and validator keys to functions.
	registry *CalcRegistry
	// cache stores compiled definitions indexed by SHA256 of the source.
	// Cached definitions are shared and must not be mutated by callers.
	cache map[string]*season.Definition
	// cacheMu guards cache.
	cacheMu sync.RWMutex
	// sf collapses concurrent compilations of the same file.
	sf singleflight.Group
}

// NewSeasonLoader creates a season loader resolving scoring rules
// through the given registry.
func NewSeasonLoader(registry *CalcRegistry) (*SeasonLoader, error) {
	if registry == nil {
		return nil, fmt.Errorf("calc registry is required")
	}
	return &SeasonLoader{
		validator: validator.New(),
		registry:  registry,
		cache:     make(map[string]*season.Definition),
	}, nil
}

// LoadFromFile loads and compiles a season definition from a YAML
// file. The returned definition is a shared cached instance and must
// not be mutated.
func (sl *SeasonLoader) LoadFromFile(path string) (*season.Definition, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read season file: %w", err)
	}
	return sl.load(data)
}

// LoadFromReader loads and compiles a season definition from YAML data
// supplied by a reader.
func (sl *SeasonLoader) LoadFromReader(r io.Reader) (*season.Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read season data: %w", err)
	}
	return sl.load(data)
}

// load compiles season YAML, collapsing duplicate concurrent loads and
// serving identical sources from the cache.
func (sl *SeasonLoader) load(data []byte) (*season.Definition, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	v, err, _ := sl.sf.Do(hash, func() (any, error) {
		sl.cacheMu.RLock()
		cached, ok := sl.cache[hash]
		sl.cacheMu.RUnlock()
		if ok {
			return cached, nil
		}

		config, err := sl.parse(data)
		if err != nil {
			return nil, err
		}
		if err := sl.validator.Struct(config); err != nil {
			return nil, fmt.Errorf("season config validation failed: %w", err)
		}

		def, err := sl.build(config)
		if err != nil {
			return nil, err
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}

		sl.cacheMu.Lock()
		sl.cache[hash] = def
		sl.cacheMu.Unlock()
		return def, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*season.Definition), nil
}

// parse decodes season YAML strictly, rejecting unknown fields.
func (sl *SeasonLoader) parse(data []byte) (*SeasonConfig, error) {
	var config SeasonConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse season YAML: %w", err)
	}
	return &config, nil
}

// build compiles a validated config into a season definition, binding
// every calculator and validator through the registry.
func (sl *SeasonLoader) build(config *SeasonConfig) (*season.Definition, error) {
	missions := make([]season.Mission, 0, len(config.Missions))
	for _, mc := range config.Missions {
		calc, ok := sl.registry.Calc(mc.Calc)
		if !ok {
			return nil, fmt.Errorf("mission %s: unknown calc %q", mc.ID, mc.Calc)
		}

		clauses := make([]season.ClauseDef, 0, len(mc.Clauses))
		for i, cc := range mc.Clauses {
			def, err := buildClause(cc)
			if err != nil {
				return nil, fmt.Errorf("mission %s clause %d: %w", mc.ID, i, err)
			}
			clauses = append(clauses, def)
		}

		missions = append(missions, season.Mission{
			ID:      mc.ID,
			Title:   mc.Title,
			Clauses: clauses,
			Score:   calc,
		})
	}

	validators := make([]season.Validator, 0, len(config.Validators))
	for _, key := range config.Validators {
		v, ok := sl.registry.Validator(key)
		if !ok {
			return nil, fmt.Errorf("unknown validator %q", key)
		}
		validators = append(validators, v)
	}

	return &season.Definition{
		Name:       config.Season,
		Missions:   missions,
		Validators: validators,
		Rubrics:    buildRubricSchema(config.Rubrics),
	}, nil
}

// buildClause converts one clause config into its definition.
func buildClause(cc ClauseConfig) (season.ClauseDef, error) {
	kind := domain.ClauseKind(cc.Kind)
	def, err := decodeDefault(cc.Default, kind)
	if err != nil {
		return season.ClauseDef{}, err
	}
	return season.ClauseDef{
		Kind:        kind,
		Options:     cc.Options,
		MultiSelect: cc.MultiSelect,
		EmptyOption: cc.EmptyOption,
		Min:         cc.Min,
		Max:         cc.Max,
		Default:     def,
	}, nil
}

// buildRubricSchema converts the rubric flags into the season schema.
func buildRubricSchema(rc RubricsConfig) season.RubricSchema {
	if len(rc.CoreValuesFields) == 0 {
		return season.RubricSchema{}
	}
	fields := make(map[domain.JudgingCategory][]string, len(rc.CoreValuesFields))
	for category, ids := range rc.CoreValuesFields {
		fields[domain.JudgingCategory(category)] = ids
	}
	return season.RubricSchema{CoreValuesFields: fields}
}
