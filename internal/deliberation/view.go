package deliberation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/scorehub/podium/internal/domain"
	"github.com/scorehub/podium/internal/ports"
	"github.com/scorehub/podium/internal/season"
	"github.com/scorehub/podium/pkg/logger"
)

// Picklists maps a category to its human-curated, ordered team list.
// Picklist members receive their list position as an authoritative
// rank; everyone else falls back to computed ranking.
type Picklists map[domain.JudgingCategory][]string

// Snapshot is the consistent, read-only batch of persisted entities a
// deliberation build operates on. Callers take the snapshot in one
// read; the engine never reads from a live store, and a changed
// snapshot means re-running the build.
type Snapshot struct {
	Teams       []domain.Team
	Rooms       []domain.Room
	Rubrics     []domain.Rubric
	Scoresheets []domain.Scoresheet
	CVForms     []domain.CVForm
	Picklists   Picklists
}

// Config controls how a deliberation build ranks teams.
type Config struct {
	// Strategy selects tie handling among non-picklisted teams.
	Strategy Strategy `koanf:"strategy" validate:"required,oneof=ordinal shared"`

	// FallbackToRaw makes a normalization precondition failure degrade
	// the build to raw-score ranking, recorded on the report, instead of
	// failing it.
	FallbackToRaw bool `koanf:"fallback_to_raw"`
}

// DefaultConfig returns the engine defaults: ordinal tie handling and
// builds that fail on normalization preconditions.
func DefaultConfig() Config {
	return Config{Strategy: RankOrdinal}
}

// Engine assembles deliberation reports from snapshots under one season
// definition. It is stateless apart from configuration and safe for
// concurrent builds.
type Engine struct {
	def     *season.Definition
	cfg     Config
	log     logger.Logger
	metrics ports.MetricsCollector
	tracer  trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger wires a logger into the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log.Named("deliberation")
		}
	}
}

// WithMetrics wires a metrics collector into the engine.
func WithMetrics(mc ports.MetricsCollector) Option {
	return func(e *Engine) {
		if mc != nil {
			e.metrics = mc
		}
	}
}

// NewEngine creates a deliberation engine for the given season
// definition and build configuration.
func NewEngine(def *season.Definition, cfg Config, opts ...Option) (*Engine, error) {
	if def == nil {
		return nil, fmt.Errorf("season definition is required")
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	e := &Engine{
		def:     def,
		cfg:     cfg,
		log:     logger.Nop(),
		metrics: ports.NopMetrics{},
		tracer:  otel.Tracer("deliberation-engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// BuildReport computes the full deliberation report for one snapshot:
// raw and normalized per-category scores, robot-game arrays, per-
// category ranks with picklists honored, and total ranks.
//
// Ranks for the judged categories are computed from room-normalized
// scores; on a normalization precondition failure the build either
// fails (default) or, with FallbackToRaw, ranks on raw scores and
// records the degradation on the report. Every team ends up with
// exactly one rank per category, and the total rank is the unweighted
// mean of the per-category ranks.
func (e *Engine) BuildReport(ctx context.Context, snap Snapshot) (*domain.Report, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.BuildReport",
		trace.WithAttributes(
			attribute.String("season", e.def.Name),
			attribute.Int("teams", len(snap.Teams)),
		),
	)
	defer span.End()

	start := time.Now()

	if len(snap.Teams) == 0 {
		span.RecordError(ErrNoTeams)
		return nil, ErrNoTeams
	}

	teams, err := e.assembleTeams(ctx, snap)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	report := &domain.Report{
		ID:         uuid.NewString(),
		Season:     e.def.Name,
		Strategy:   string(e.cfg.Strategy),
		Normalized: true,
	}

	if err := e.normalize(teams, snap.Rooms); err != nil {
		if !e.cfg.FallbackToRaw {
			span.RecordError(err)
			return nil, err
		}
		e.log.Warn(ctx, "normalization unavailable, ranking on raw scores",
			logger.Error(err))
		e.metrics.RecordCounter("deliberation_normalization_fallbacks", 1,
			map[string]string{"season": e.def.Name})
		report.Normalized = false
		report.Issues = append(report.Issues, err.Error())
	}

	if err := e.rank(teams, snap.Picklists, report.Normalized); err != nil {
		span.RecordError(err)
		return nil, err
	}

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].TotalRank != teams[j].TotalRank {
			return teams[i].TotalRank < teams[j].TotalRank
		}
		return teams[i].Team.Number < teams[j].Team.Number
	})
	report.Teams = teams
	report.GeneratedAt = time.Now().UTC()

	labels := map[string]string{"season": e.def.Name}
	e.metrics.RecordCounter("deliberation_builds", 1, labels)
	e.metrics.RecordLatency("build_report", time.Since(start), labels)
	e.metrics.RecordGauge("deliberation_teams", float64(len(teams)), labels)

	e.log.Info(ctx, "deliberation report built",
		logger.String("report_id", report.ID),
		logger.Int("teams", len(teams)),
		logger.Any("normalized", report.Normalized))
	return report, nil
}

// assembleTeams builds the unranked deliberation record for every team
// in the snapshot, fanning out across teams.
func (e *Engine) assembleTeams(ctx context.Context, snap Snapshot) ([]domain.DeliberationTeam, error) {
	rubricsByTeam := make(map[string]map[domain.JudgingCategory]domain.Rubric, len(snap.Teams))
	for _, rubric := range snap.Rubrics {
		if rubricsByTeam[rubric.TeamID] == nil {
			rubricsByTeam[rubric.TeamID] = make(map[domain.JudgingCategory]domain.Rubric, 3)
		}
		rubricsByTeam[rubric.TeamID][rubric.Category] = rubric
	}
	sheetsByTeam := make(map[string][]domain.Scoresheet, len(snap.Teams))
	for _, sheet := range snap.Scoresheets {
		sheetsByTeam[sheet.TeamID] = append(sheetsByTeam[sheet.TeamID], sheet)
	}
	formsByTeam := make(map[string][]domain.CVForm)
	for _, form := range snap.CVForms {
		formsByTeam[form.TeamID] = append(formsByTeam[form.TeamID], form)
	}

	teams := make([]domain.DeliberationTeam, len(snap.Teams))
	g, _ := errgroup.WithContext(ctx)
	for i, team := range snap.Teams {
		i, team := i, team
		g.Go(func() error {
			rubrics := rubricsByTeam[team.ID]
			sheets := sheetsByTeam[team.ID]

			record := domain.DeliberationTeam{
				Team:            team,
				Scores:          CategoryScores(rubrics, sheets),
				RobotGameScores: RobotGameScores(sheets),
				GPScores:        GPScores(sheets),
				Ranks:           make(map[domain.JudgingCategory]int, len(domain.RankedCategories())),
			}
			for _, form := range formsByTeam[team.ID] {
				record.CVFormSeverities = append(record.CVFormSeverities, form.Severity)
			}
			record.AwardNominations = mergeNominations(rubrics)
			if view := CoreValuesView(
				rubrics[domain.CategoryCoreValues],
				rubrics[domain.CategoryInnovationProject],
				rubrics[domain.CategoryRobotDesign],
				e.def.Rubrics,
			); len(view) > 0 {
				record.CoreValuesView = view
			}

			teams[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return teams, nil
}

// normalize computes room factors and attaches normalized judged-
// category scores to every team.
func (e *Engine) normalize(teams []domain.DeliberationTeam, rooms []domain.Room) error {
	inputs := make([]TeamCategoryScores, len(teams))
	for i, team := range teams {
		inputs[i] = TeamCategoryScores{
			TeamID: team.Team.ID,
			RoomID: team.Team.RoomID,
			Scores: team.Scores,
		}
	}

	factors, err := RoomFactors(inputs, rooms)
	if err != nil {
		return err
	}

	// Stage results and commit only once every team normalized, so a
	// failure partway through (e.g. a team assigned to an undeclared
	// room) leaves no partial normalized scores for the fallback path
	// to publish.
	staged := make([]map[domain.JudgingCategory]float64, len(teams))
	for i := range teams {
		normalized := make(map[domain.JudgingCategory]float64, len(domain.JudgedCategories()))
		for _, category := range domain.JudgedCategories() {
			score, err := factors.Normalize(teams[i].Scores[category], category, teams[i].Team.RoomID)
			if err != nil {
				return err
			}
			normalized[category] = score
		}
		staged[i] = normalized
	}

	for i := range teams {
		teams[i].NormalizedScores = staged[i]
	}
	return nil
}

// rank computes every category's ranks and each team's total rank.
func (e *Engine) rank(teams []domain.DeliberationTeam, picklists Picklists, normalized bool) error {
	index := make(map[string]int, len(teams))
	for i, team := range teams {
		index[team.Team.ID] = i
	}

	for _, category := range domain.RankedCategories() {
		entries := make([]Entry, len(teams))
		for i, team := range teams {
			if category == domain.CategoryRobotGame {
				attempts := team.RobotGameScores
				if attempts == nil {
					attempts = []float64{}
				}
				entries[i] = Entry{TeamID: team.Team.ID, Attempts: attempts}
				continue
			}
			score := team.Scores[category]
			if normalized {
				score = team.NormalizedScores[category]
			}
			entries[i] = Entry{TeamID: team.Team.ID, Score: score}
		}

		ranks, err := RankCategory(category, entries, picklists[category], e.cfg.Strategy)
		if err != nil {
			return err
		}
		for teamID, rank := range ranks {
			teams[index[teamID]].Ranks[category] = rank
		}
	}

	for i := range teams {
		teams[i].TotalRank = TotalRank(teams[i].Ranks)
	}
	return nil
}

// mergeNominations unions the panels' optional-award nominations.
func mergeNominations(rubrics map[domain.JudgingCategory]domain.Rubric) map[string]bool {
	merged := make(map[string]bool)
	for _, rubric := range rubrics {
		for award, nominated := range rubric.AwardNominations {
			if nominated {
				merged[award] = true
			}
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}
