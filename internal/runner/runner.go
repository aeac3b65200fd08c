// Package runner plans repositories independently: each repository's scan,
// analysis, and plan are self-contained, so repositories run concurrently
// with no shared mutable state and a failure in one never aborts the others.
// The single exception is a plan/commit count mismatch, which means the
// planner itself is broken and the whole run must stop before a corrupt plan
// is emitted.
package runner

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gitspread/gitspread/internal/calendar"
	"github.com/gitspread/gitspread/internal/gitscan"
	"github.com/gitspread/gitspread/internal/plan"
)

// Options drives one multi-repository run. All fields are read-only during
// the run.
type Options struct {
	Window      gitscan.Window
	Email       string
	Plan        plan.Config
	Workday     plan.Workday
	Parallelism int
	// AnalyzeOnly skips planning and assignment; scan and report only.
	AnalyzeOnly bool
}

// Result is everything planned for one repository. Err is set for
// per-repository failures (unreadable source, infeasible plan); the rest of
// the fields are only meaningful when Err is nil.
type Result struct {
	Repo       string
	Commits    []gitscan.Commit
	Before     calendar.Statistics
	After      calendar.Statistics
	Gaps       []calendar.Gap
	Plan       *plan.Plan
	Assignment *plan.Assignment
	Err        error
}

// CommitSource yields the ordered commit sequence of one repository.
// *gitscan.Scanner is the production implementation.
type CommitSource interface {
	Commits(ctx context.Context, repoPath string, window gitscan.Window, emailFilter string) ([]gitscan.Commit, error)
}

// Runner executes planning runs.
type Runner struct {
	source CommitSource
	log    *logrus.Logger
}

// New creates a Runner.
func New(source CommitSource, log *logrus.Logger) *Runner {
	return &Runner{source: source, log: log}
}

// Run plans every repository and returns one Result per repository, in input
// order. The returned error is non-nil only for run-fatal conditions.
func (r *Runner) Run(ctx context.Context, repos []string, opts Options) ([]Result, error) {
	results := make([]Result, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	limit := opts.Parallelism
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			res := r.planRepo(ctx, repo, opts)
			results[i] = res

			var mismatch *plan.CountMismatchError
			if errors.As(res.Err, &mismatch) {
				// Logic defect, not bad input. Stop everything.
				return res.Err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) planRepo(ctx context.Context, repo string, opts Options) Result {
	res := Result{Repo: repo}
	log := r.log.WithField("repo", repo)

	commits, err := r.source.Commits(ctx, repo, opts.Window, opts.Email)
	if err != nil {
		res.Err = err
		return res
	}
	res.Commits = commits
	log.WithField("commits", len(commits)).Debug("scanned repository")

	hist := calendar.Aggregate(commits, opts.Window)
	res.Before = calendar.Compute(hist)
	res.Gaps = calendar.FindGaps(hist, opts.Plan.MaxGapDays)

	if opts.AnalyzeOnly {
		return res
	}

	p, err := plan.Build(hist, opts.Plan)
	if err != nil {
		res.Err = err
		return res
	}
	res.Plan = p
	for _, v := range p.Warnings {
		log.WithField("day", v.Date.Format(calendar.DayFormat)).
			WithField("target", v.Target).
			Warn("day target outside nominal bounds")
	}

	res.After = calendar.Compute(targetHistogram(p, opts.Window))

	a, err := plan.Assign(commits, p, opts.Workday)
	if err != nil {
		res.Err = err
		return res
	}
	res.Assignment = a
	return res
}

// targetHistogram rebuilds a histogram from the plan's targets so the same
// statistics code reports the post-rewrite shape.
func targetHistogram(p *plan.Plan, window gitscan.Window) *calendar.Histogram {
	h := calendar.NewHistogram(window)
	for _, t := range p.Targets {
		for i := 0; i < t.Target; i++ {
			h.Add(t.Date)
		}
	}
	return h
}
