package gitscan

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DiscoverRepos returns the immediate subdirectories of baseDir that contain
// a .git directory. Discovery is intentionally shallow: nested repositories
// and submodules are the outer repository's concern, not ours.
func DiscoverRepos(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("reading base directory %s: %w", baseDir, err)
	}

	var repos []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(baseDir, entry.Name())
		if info, err := os.Stat(filepath.Join(path, ".git")); err == nil && info.IsDir() {
			repos = append(repos, path)
		}
	}
	return repos, nil
}

// DetectGitRepo checks that path is inside a git working tree.
// Uses git rev-parse so that bare checkouts and worktrees are handled the
// same way git itself handles them.
func DetectGitRepo(path string) error {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = path
	if err := cmd.Run(); err != nil {
		return &SourceUnavailableError{Repo: path, Err: fmt.Errorf("not a git repository: %w", err)}
	}
	return nil
}

// ConfiguredEmail returns the git user.email configured for the given
// repository (falling back to the global config, as git does). Used as the
// default author filter when none is configured explicitly.
func ConfiguredEmail(path string) (string, error) {
	cmd := exec.Command("git", "config", "user.email")
	cmd.Dir = path
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("reading git user.email: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
