// Command podium-report builds a deliberation report from a snapshot
// file and prints it, for offline deliberation exports and dry runs.
//
// Usage:
//
//	podium-report [snapshot.yaml]
//
// Configuration comes from PODIUM_-prefixed environment variables and
// an optional PODIUM_CONFIG YAML file; see internal/config.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/scorehub/podium/internal/application"
	"github.com/scorehub/podium/internal/config"
	"github.com/scorehub/podium/internal/deliberation"
	"github.com/scorehub/podium/internal/domain"
	"github.com/scorehub/podium/internal/scoresheet"
	"github.com/scorehub/podium/internal/season"
	"github.com/scorehub/podium/internal/seasons"
	"github.com/scorehub/podium/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "podium-report: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel).Named("podium-report")

	snapshotPath := cfg.SnapshotFile
	if len(os.Args) > 1 {
		snapshotPath = os.Args[1]
	}
	if snapshotPath == "" {
		return fmt.Errorf("no snapshot file given (argument or PODIUM_SNAPSHOT_FILE)")
	}

	def, err := loadSeason(cfg)
	if err != nil {
		return fmt.Errorf("load season: %w", err)
	}

	snap, err := loadSnapshot(snapshotPath)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	log.Info(ctx, "snapshot loaded",
		logger.String("season", def.Name),
		logger.Int("teams", len(snap.Teams)),
		logger.Int("scoresheets", len(snap.Scoresheets)))

	// Re-derive every completed sheet's points from its raw clause
	// values; stored totals are never trusted.
	if err := rescoreSheets(ctx, def, snap); err != nil {
		return err
	}

	engine, err := deliberation.NewEngine(def, deliberation.Config{
		Strategy:      deliberation.Strategy(cfg.Strategy),
		FallbackToRaw: cfg.FallbackToRaw,
	}, deliberation.WithLogger(log))
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	report, err := engine.BuildReport(ctx, *snap)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if cfg.Output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}
	return printTable(report)
}

// loadSeason resolves the season definition: a YAML file when
// configured, the built-in season otherwise.
func loadSeason(cfg *config.Config) (*season.Definition, error) {
	if cfg.SeasonFile == "" {
		return seasons.Deepwater(), nil
	}

	registry := application.NewCalcRegistry()
	if err := registry.RegisterDefinition(seasons.Deepwater()); err != nil {
		return nil, err
	}
	loader, err := application.NewSeasonLoader(registry)
	if err != nil {
		return nil, err
	}
	return loader.LoadFromFile(cfg.SeasonFile)
}

// loadSnapshot reads a deliberation snapshot from a YAML file.
func loadSnapshot(path string) (*deliberation.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap deliberation.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// rescoreSheets recomputes mission points and totals for every
// completed sheet in the snapshot.
func rescoreSheets(ctx context.Context, def *season.Definition, snap *deliberation.Snapshot) error {
	evaluator, err := scoresheet.NewEvaluator(def)
	if err != nil {
		return err
	}
	for i, sheet := range snap.Scoresheets {
		if !sheet.Completed() {
			continue
		}
		rescored, err := evaluator.Rescore(ctx, sheet)
		if err != nil {
			return fmt.Errorf("scoresheet %s round %d: %w", sheet.TeamID, sheet.Round, err)
		}
		snap.Scoresheets[i] = rescored
	}
	return nil
}

// printTable writes the report as an aligned text table.
func printTable(report *domain.Report) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Report %s (season %s, strategy %s, normalized %v)\n\n",
		report.ID, report.Season, report.Strategy, report.Normalized)
	fmt.Fprintln(w, "RANK\tTEAM\tNAME\tCV\tIP\tRD\tRG\tTOTAL RANK")

	for i, team := range report.Teams {
		fmt.Fprintf(w, "%d\t#%d\t%s\t%d\t%d\t%d\t%d\t%.2f\n",
			i+1,
			team.Team.Number,
			team.Team.Name,
			team.Ranks[domain.CategoryCoreValues],
			team.Ranks[domain.CategoryInnovationProject],
			team.Ranks[domain.CategoryRobotDesign],
			team.Ranks[domain.CategoryRobotGame],
			team.TotalRank,
		)
	}

	for _, issue := range report.Issues {
		fmt.Fprintf(w, "\nissue: %s\n", issue)
	}
	return w.Flush()
}
