package application

import (
	"fmt"
	"sync"

	"github.com/scorehub/podium/internal/season"
)

// CalcRegistry maps registry keys to mission calculation functions and
// season validators, so YAML season files can reference scoring rules
// by name. Keys are conventionally "<season>/<mission>" for calculators
// and "<season>/<rule>" for validators.
//
// The registry is safe for concurrent use.
type CalcRegistry struct {
	mu         sync.RWMutex
	calcs      map[string]season.CalcFunc
	validators map[string]season.Validator
}

// NewCalcRegistry creates an empty registry.
func NewCalcRegistry() *CalcRegistry {
	return &CalcRegistry{
		calcs:      make(map[string]season.CalcFunc),
		validators: make(map[string]season.Validator),
	}
}

// RegisterCalc registers a calculation function under the given key,
// replacing any previous registration.
func (r *CalcRegistry) RegisterCalc(key string, fn season.CalcFunc) error {
	if key == "" {
		return fmt.Errorf("calc key cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("calc %s: function cannot be nil", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calcs[key] = fn
	return nil
}

// RegisterValidator registers a season validator under the given key,
// replacing any previous registration.
func (r *CalcRegistry) RegisterValidator(key string, v season.Validator) error {
	if key == "" {
		return fmt.Errorf("validator key cannot be empty")
	}
	if v == nil {
		return fmt.Errorf("validator %s: function cannot be nil", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[key] = v
	return nil
}

// RegisterDefinition registers every mission calculator of an existing
// season definition under "<season>/<mission>" keys, making a Go-built
// season's rules addressable from YAML files.
func (r *CalcRegistry) RegisterDefinition(def *season.Definition) error {
	if def == nil {
		return fmt.Errorf("definition cannot be nil")
	}
	for _, m := range def.Missions {
		if err := r.RegisterCalc(fmt.Sprintf("%s/%s", def.Name, m.ID), m.Score); err != nil {
			return err
		}
	}
	return nil
}

// Calc returns the calculation function registered under key.
func (r *CalcRegistry) Calc(key string) (season.CalcFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.calcs[key]
	return fn, ok
}

// Validator returns the validator registered under key.
func (r *CalcRegistry) Validator(key string) (season.Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[key]
	return v, ok
}
