// Package gitops versions the books directory with git so every posted
// entry has a commit behind it. All operations shell out to the system git.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo wraps git operations on a books directory.
type Repo struct {
	dir string
}

// New returns a Repo rooted at dir. The directory need not be a repository
// yet; call Init first.
func New(dir string) *Repo {
	return &Repo{dir: dir}
}

// Init initializes a git repository at the books root.
func (r *Repo) Init() error {
	cmd := exec.Command("git", "init")
	cmd.Dir = r.dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	return nil
}

// IsRepo reports whether the books root is a git repository.
func (r *Repo) IsRepo() bool {
	_, err := os.Stat(filepath.Join(r.dir, ".git"))
	return err == nil
}

// CommitAll stages everything and commits with the given author. Returns
// the short commit hash.
func (r *Repo) CommitAll(message, authorName, authorEmail string) (string, error) {
	author := fmt.Sprintf("%s <%s>", authorName, authorEmail)

	add := exec.Command("git", "add", "-A")
	add.Dir = r.dir
	if out, err := add.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	commit := exec.Command("git", "commit", "-m", message, "--author", author)
	commit.Dir = r.dir
	if out, err := commit.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	rev := exec.Command("git", "rev-parse", "--short", "HEAD")
	rev.Dir = r.dir
	out, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
