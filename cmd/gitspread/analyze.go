package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitspread/gitspread/internal/gitscan"
	"github.com/gitspread/gitspread/internal/report"
	"github.com/gitspread/gitspread/internal/runner"
)

var (
	analyzeDays   int
	analyzeEmail  string
	analyzeMaxGap int
	analyzeRepos  []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dir]",
	Short: "Analyze daily commit activity without planning anything",
	Long: `Scans the repositories under the given directory (default ~/git) and
prints per-day commit statistics and the list of silent gaps. Read-only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 0, "trailing window length in days (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeEmail, "email", "", "only count commits by this author email")
	analyzeCmd.Flags().IntVar(&analyzeMaxGap, "max-gap", 0, "gap threshold in days (default from config)")
	analyzeCmd.Flags().StringSliceVar(&analyzeRepos, "repo", nil, "explicit repository path (repeatable, overrides discovery)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	repos, err := resolveRepos(args, analyzeRepos)
	if err != nil {
		return err
	}

	opts, err := runnerOptions(analyzeDays, analyzeMaxGap, "", "")
	if err != nil {
		return err
	}
	opts.Email = resolveEmail(analyzeEmail, repos)
	opts.AnalyzeOnly = true

	results, err := runner.New(gitscan.NewScanner(), logger).Run(cmd.Context(), repos, opts)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(os.Stdout, stdoutIsTerminal())
	failures := 0
	for _, res := range results {
		fmt.Printf("\n=== %s ===\n", res.Repo)
		if res.Err != nil {
			printer.Failure(res.Repo, res.Err)
			failures++
			continue
		}
		printer.Statistics("Statistics", res.Before)
		printer.Gaps(res.Gaps, opts.Plan.MaxGapDays)
	}

	if failures == len(results) {
		return fmt.Errorf("all %d repositories failed", failures)
	}
	return nil
}
