package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gitspread/gitspread/internal/export"
	"github.com/gitspread/gitspread/internal/gitscan"
	"github.com/gitspread/gitspread/internal/plan"
	"github.com/gitspread/gitspread/internal/report"
	"github.com/gitspread/gitspread/internal/runner"
	"github.com/gitspread/gitspread/internal/store"
)

var (
	planDays         int
	planEmail        string
	planMaxGap       int
	planWeekdayRange string
	planWeekendRange string
	planRepos        []string
	planOutputDir    string
	planFormat       string
	planHTML         bool
)

var planCmd = &cobra.Command{
	Use:   "plan [dir]",
	Short: "Plan a commit redistribution and export the rewrite artifacts",
	Long: `Runs the full pipeline: scan, analyze, plan, assign, export. The result
is a rewrite artifact (script, JSON, or CSV) mapping every commit in the
window to its new timestamp, plus a before/after report for review.

Nothing is rewritten. Back your repositories up, review the plan, then run
the generated script yourself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().IntVar(&planDays, "days", 0, "trailing window length in days (default from config)")
	planCmd.Flags().StringVar(&planEmail, "email", "", "only redistribute commits by this author email")
	planCmd.Flags().IntVar(&planMaxGap, "max-gap", 0, "gap threshold in days (default from config)")
	planCmd.Flags().StringVar(&planWeekdayRange, "weekday-range", "", "weekday daily bounds as lo,hi (default from config)")
	planCmd.Flags().StringVar(&planWeekendRange, "weekend-range", "", "weekend daily bounds as lo,hi (default from config)")
	planCmd.Flags().StringSliceVar(&planRepos, "repo", nil, "explicit repository path (repeatable, overrides discovery)")
	planCmd.Flags().StringVarP(&planOutputDir, "output", "o", "", "directory artifacts are written to (default from config)")
	planCmd.Flags().StringVar(&planFormat, "format", string(export.FormatScript), "artifact format: script, json, or csv")
	planCmd.Flags().BoolVar(&planHTML, "html", false, "also write a before/after heatmap HTML page per repository")
}

func runPlan(cmd *cobra.Command, args []string) error {
	repos, err := resolveRepos(args, planRepos)
	if err != nil {
		return err
	}

	opts, err := runnerOptions(planDays, planMaxGap, planWeekdayRange, planWeekendRange)
	if err != nil {
		return err
	}
	opts.Email = resolveEmail(planEmail, repos)

	runID := uuid.NewString()
	startedAt := time.Now()
	logger.WithField("run_id", runID).WithField("repos", len(repos)).Info("planning redistribution")

	results, err := runner.New(gitscan.NewScanner(), logger).Run(cmd.Context(), repos, opts)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(os.Stdout, stdoutIsTerminal())
	combined := &plan.Assignment{}
	rec := store.RunRecord{ID: runID, StartedAt: startedAt}
	planned := 0

	for _, res := range results {
		fmt.Printf("\n=== %s ===\n", res.Repo)
		if res.Err != nil {
			printer.Failure(res.Repo, res.Err)
			continue
		}

		printer.Statistics("Before", res.Before)
		printer.Gaps(res.Gaps, opts.Plan.MaxGapDays)
		printer.Statistics("After", res.After)
		printer.Warnings(res.Plan.Warnings)
		printer.DayDiff(res.Plan)
		printer.Summary(res.Repo, res.Before, res.After)

		combined.Entries = append(combined.Entries, res.Assignment.Entries...)
		rec.Repos = append(rec.Repos, res.Repo)
		rec.TotalCommits += res.Before.Total
		rec.StdDevBefore += res.Before.StdDev
		rec.StdDevAfter += res.After.StdDev
		rec.Warnings += len(res.Plan.Warnings)
		planned++

		if planHTML {
			path, err := writeHeatmap(res)
			if err != nil {
				logger.WithError(err).Warn("Failed to write heatmap")
			} else {
				rec.Artifacts = append(rec.Artifacts, path)
			}
		}
	}

	if planned == 0 {
		return fmt.Errorf("no repository produced a plan")
	}
	rec.StdDevBefore /= float64(planned)
	rec.StdDevAfter /= float64(planned)

	artifact, err := writeArtifact(combined, runID)
	if err != nil {
		return err
	}
	rec.Artifacts = append(rec.Artifacts, artifact)

	if err := recordRun(rec); err != nil {
		logger.WithError(err).Warn("Failed to record run in archive")
	}

	fmt.Printf("\nPlan written to %s (%d commits across %d repositories)\n",
		artifact, len(combined.Entries), planned)
	fmt.Println("\nBefore rewriting:")
	fmt.Println("  1. Back up every repository listed above")
	fmt.Println("  2. Review the plan; the rewrite is destructive and needs a force push")
	fmt.Printf("  3. Run the artifact yourself: %s\n", artifact)
	return nil
}

func writeArtifact(a *plan.Assignment, runID string) (string, error) {
	exporter, err := export.New(export.Format(planFormat), runID)
	if err != nil {
		return "", err
	}

	outDir := planOutputDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outDir, "rewrite_history"+exporter.Ext())
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, artifactMode(exporter))
	if err != nil {
		return "", fmt.Errorf("creating artifact: %w", err)
	}
	defer f.Close()

	if err := exporter.Export(a, f); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	return path, nil
}

// Scripts need the execute bit; data formats do not.
func artifactMode(e export.Exporter) os.FileMode {
	if e.Ext() == ".sh" {
		return 0o755
	}
	return 0o644
}

func writeHeatmap(res runner.Result) (string, error) {
	outDir := planOutputDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	name := fmt.Sprintf("heatmap_%s.html", filepath.Base(res.Repo))
	path := filepath.Join(outDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := report.WriteHeatmap(f, res.Plan); err != nil {
		return "", err
	}
	return path, nil
}

func recordRun(rec store.RunRecord) error {
	archive, err := store.Open(cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer archive.Close()
	return archive.Record(rec)
}
