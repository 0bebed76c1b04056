// Package scoresheet evaluates one match attempt's referee observations
// against a season's mission schema, producing a validated total score
// or a scoresheet rule violation.
package scoresheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/scorehub/podium/internal/domain"
	"github.com/scorehub/podium/internal/ports"
	"github.com/scorehub/podium/internal/season"
)

// MissionPoints is one mission's calculated score within a result.
type MissionPoints struct {
	MissionID string `json:"mission_id"`
	Points    int    `json:"points"`
}

// Result is a successful evaluation: per-mission points in schema order
// and their sum. A Result exists only when every mission calculation
// and every season validator passed; a failed evaluation produces no
// partial score.
type Result struct {
	// Missions lists per-mission points in schema order.
	Missions []MissionPoints `json:"missions"`

	// TotalPoints is always the exact sum of the mission points.
	TotalPoints int `json:"total_points"`
}

// Points returns the points scored by the given mission.
func (r Result) Points(missionID string) (int, bool) {
	for _, m := range r.Missions {
		if m.MissionID == missionID {
			return m.Points, true
		}
	}
	return 0, false
}

// Evaluator evaluates match attempts under one explicit season
// definition. It is stateless apart from its configuration and safe
// for concurrent use.
type Evaluator struct {
	def     *season.Definition
	metrics ports.MetricsCollector
	tracer  trace.Tracer
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMetrics wires a metrics collector into the evaluator.
func WithMetrics(mc ports.MetricsCollector) Option {
	return func(e *Evaluator) {
		if mc != nil {
			e.metrics = mc
		}
	}
}

// NewEvaluator creates an Evaluator for the given season definition.
// The definition is validated structurally before any evaluation can
// run; an invalid season is a construction error, not an evaluation
// error.
func NewEvaluator(def *season.Definition, opts ...Option) (*Evaluator, error) {
	if def == nil {
		return nil, fmt.Errorf("season definition is required")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid season definition: %w", err)
	}

	e := &Evaluator{
		def:     def,
		metrics: ports.NopMetrics{},
		tracer:  otel.Tracer("scoresheet-evaluator"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Season returns the name of the season this evaluator scores under.
func (e *Evaluator) Season() string { return e.def.Name }

// Evaluate scores one match attempt. The values map must cover exactly
// the season's missions; malformed or out-of-range values are rejected
// as caller-side contract violations before any calculation runs.
//
// Missions are calculated in schema order. The first mission whose
// calculation raises a *domain.ScoresheetError aborts the evaluation
// with that error and no validator runs. When all missions succeed, the
// season's validators run in order against the full map of raw clause
// values; the first violation aborts with its error. On success the
// result's total is the exact sum of the per-mission points.
//
// Evaluation is deterministic: the same definition and values always
// yield the same result or the same error code.
func (e *Evaluator) Evaluate(ctx context.Context, values domain.MissionValues) (Result, error) {
	_, span := e.tracer.Start(ctx, "Evaluator.Evaluate",
		trace.WithAttributes(
			attribute.String("season", e.def.Name),
			attribute.Int("missions", len(e.def.Missions)),
		),
	)
	defer span.End()

	start := time.Now()

	if err := e.checkBoundary(values); err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	result, err := e.evaluate(values)
	labels := map[string]string{"season": e.def.Name}
	e.metrics.RecordLatency("evaluate", time.Since(start), labels)

	if err != nil {
		span.RecordError(err)
		var sErr *domain.ScoresheetError
		if errors.As(err, &sErr) {
			span.SetAttributes(attribute.String("violation.code", sErr.Code))
			e.metrics.RecordCounter("scoresheet_rule_violations", 1, map[string]string{
				"season": e.def.Name,
				"code":   sErr.Code,
			})
		}
		return Result{}, err
	}

	span.SetAttributes(attribute.Int("total_points", result.TotalPoints))
	e.metrics.RecordCounter("scoresheet_evaluations", 1, labels)
	e.metrics.RecordHistogram("scoresheet_total_points", float64(result.TotalPoints), labels)
	return result, nil
}

// Rescore recomputes a persisted scoresheet's mission points and total
// from its stored clause values, returning an updated copy. The total
// is always derived, never edited independently of the values.
func (e *Evaluator) Rescore(ctx context.Context, sheet domain.Scoresheet) (domain.Scoresheet, error) {
	result, err := e.Evaluate(ctx, sheet.Values())
	if err != nil {
		return domain.Scoresheet{}, err
	}

	rescored := sheet
	rescored.Missions = make([]domain.MissionScore, len(sheet.Missions))
	copy(rescored.Missions, sheet.Missions)
	for i := range rescored.Missions {
		points, _ := result.Points(rescored.Missions[i].MissionID)
		rescored.Missions[i].Points = points
	}
	rescored.TotalPoints = result.TotalPoints
	return rescored, nil
}

// checkBoundary enforces the caller-side contract: exact mission
// coverage and admissible clause values throughout.
func (e *Evaluator) checkBoundary(values domain.MissionValues) error {
	for _, m := range e.def.Missions {
		mv, ok := values[m.ID]
		if !ok {
			return fmt.Errorf("%w: no values for mission %s", domain.ErrUnknownMission, m.ID)
		}
		if err := m.CheckValues(mv); err != nil {
			return err
		}
	}
	for id := range values {
		if _, ok := e.def.Mission(id); !ok {
			return fmt.Errorf("%w: %s not in season %s", domain.ErrUnknownMission, id, e.def.Name)
		}
	}
	return nil
}

// evaluate runs the calculation and validation phases over checked
// values.
func (e *Evaluator) evaluate(values domain.MissionValues) (Result, error) {
	missions := make([]MissionPoints, 0, len(e.def.Missions))
	total := 0

	for _, m := range e.def.Missions {
		points, err := m.Score(m.NormalizeValues(values[m.ID]))
		if err != nil {
			// Stamp the mission onto a copy; the calculator owns the
			// returned instance and may share it across evaluations.
			var sErr *domain.ScoresheetError
			if errors.As(err, &sErr) && sErr.MissionID == "" {
				stamped := *sErr
				stamped.MissionID = m.ID
				return Result{}, fmt.Errorf("mission %s: %w", m.ID, &stamped)
			}
			return Result{}, fmt.Errorf("mission %s: %w", m.ID, err)
		}
		missions = append(missions, MissionPoints{MissionID: m.ID, Points: points})
		total += points
	}

	// Validators see every mission's raw clause values, not points.
	for _, v := range e.def.AllValidators() {
		if err := v(values); err != nil {
			return Result{}, err
		}
	}

	return Result{Missions: missions, TotalPoints: total}, nil
}
