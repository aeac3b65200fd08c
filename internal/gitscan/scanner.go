package gitscan

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// SourceUnavailableError marks a repository whose log could not be read.
// Fatal for that repository only; sibling repositories keep planning.
type SourceUnavailableError struct {
	Repo string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("commit source unavailable for %s: %v", e.Repo, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// Scanner reads commit metadata from local repositories by shelling out to
// git. It is read-only: nothing here writes to a repository.
type Scanner struct{}

// NewScanner creates a Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Commits returns the commits of repoPath whose author timestamp falls inside
// the window, restricted to the given author email when emailFilter is
// non-empty (case-insensitive). The result is sorted ascending by timestamp.
func (s *Scanner) Commits(ctx context.Context, repoPath string, window Window, emailFilter string) ([]Commit, error) {
	if err := DetectGitRepo(repoPath); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "git", "log",
		"--all",
		"--pretty=format:%H|%aI|%ae|%s",
		fmt.Sprintf("--since=%s", window.Start.Format("2006-01-02")),
	)
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, &SourceUnavailableError{
				Repo: repoPath,
				Err:  fmt.Errorf("git log failed: %w (stderr: %s)", err, strings.TrimSpace(string(exitErr.Stderr))),
			}
		}
		return nil, &SourceUnavailableError{Repo: repoPath, Err: fmt.Errorf("git log failed: %w", err)}
	}

	commits, err := parseLog(string(output), repoPath)
	if err != nil {
		return nil, &SourceUnavailableError{Repo: repoPath, Err: err}
	}

	filtered := commits[:0]
	for _, c := range commits {
		if !window.Contains(c.Timestamp) {
			continue
		}
		if emailFilter != "" && !strings.EqualFold(c.Email, emailFilter) {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})
	return filtered, nil
}

// parseLog parses `git log --pretty=format:%H|%aI|%ae|%s` output.
// Malformed lines are skipped rather than failing the scan; a truncated log
// line is not worth losing a whole repository over.
func parseLog(output, repoPath string) ([]Commit, error) {
	var commits []Commit

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "|", 4)
		if len(parts) != 4 {
			continue
		}

		timestamp, err := time.Parse(time.RFC3339, parts[1])
		if err != nil {
			continue
		}

		commits = append(commits, Commit{
			Hash:      parts[0],
			Timestamp: timestamp,
			Email:     parts[2],
			Message:   parts[3],
			Repo:      repoPath,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning git log output: %w", err)
	}
	return commits, nil
}
