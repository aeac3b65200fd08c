package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/gitspread/gitspread/internal/gitscan"
	"github.com/gitspread/gitspread/internal/plan"
	"github.com/gitspread/gitspread/internal/runner"
)

// resolveRepos turns the command line into a repository list: explicit
// --repo paths win, otherwise the base directory argument (default ~/git)
// is searched for repositories.
func resolveRepos(args, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		for _, repo := range explicit {
			if err := gitscan.DetectGitRepo(repo); err != nil {
				return nil, err
			}
		}
		return explicit, nil
	}

	baseDir := ""
	if len(args) > 0 {
		baseDir = args[0]
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, "git")
	}

	repos, err := gitscan.DiscoverRepos(baseDir)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, fmt.Errorf("no git repositories found in %s", baseDir)
	}
	return repos, nil
}

// resolveEmail picks the author filter: flag, then config, then the git
// user.email of the first repository. Empty means every author counts.
func resolveEmail(flagEmail string, repos []string) string {
	if flagEmail != "" {
		return flagEmail
	}
	if cfg.Email != "" {
		return cfg.Email
	}
	for _, repo := range repos {
		if email, err := gitscan.ConfiguredEmail(repo); err == nil && email != "" {
			logger.WithField("email", email).Debug("using email from git config")
			return email
		}
	}
	logger.Warn("No author email configured or detectable; counting all commits")
	return ""
}

// runnerOptions assembles runner options from config plus command flags.
// Flag values of -1 / "" mean "not set, use config".
func runnerOptions(days int, maxGap int, weekdayRange, weekendRange string) (runner.Options, error) {
	if days <= 0 {
		days = cfg.WindowDays
	}
	if maxGap <= 0 {
		maxGap = cfg.MaxGapDays
	}

	weekday := plan.Range{Min: cfg.Weekday.Min, Max: cfg.Weekday.Max}
	weekend := plan.Range{Min: cfg.Weekend.Min, Max: cfg.Weekend.Max}
	var err error
	if weekdayRange != "" {
		if weekday, err = parseRange(weekdayRange); err != nil {
			return runner.Options{}, fmt.Errorf("--weekday-range: %w", err)
		}
	}
	if weekendRange != "" {
		if weekend, err = parseRange(weekendRange); err != nil {
			return runner.Options{}, fmt.Errorf("--weekend-range: %w", err)
		}
	}

	opts := runner.Options{
		Window: gitscan.TrailingWindow(time.Now(), days),
		Plan: plan.Config{
			Bounds:     plan.Bounds{Weekday: weekday, Weekend: weekend},
			MaxGapDays: maxGap,
		},
		Workday: plan.Workday{
			StartHour: cfg.Workday.StartHour,
			EndHour:   cfg.Workday.EndHour,
		},
		Parallelism: cfg.Parallelism,
	}
	return opts, opts.Plan.Validate()
}

// parseRange parses "lo,hi" into a Range.
func parseRange(s string) (plan.Range, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return plan.Range{}, fmt.Errorf("expected lo,hi but got %q", s)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return plan.Range{}, fmt.Errorf("bad lower bound in %q", s)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return plan.Range{}, fmt.Errorf("bad upper bound in %q", s)
	}
	return plan.Range{Min: lo, Max: hi}, nil
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
