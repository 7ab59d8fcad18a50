// Package gitops commits ledger changes to a git repository with the git CLI.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Init initializes a new git repository at dir.
func Init(dir string) error {
	cmd := exec.Command("git", "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	return nil
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func CommitAll(dir, message, authorName, authorEmail string) (string, error) {
	author := fmt.Sprintf("%s <%s>", authorName, authorEmail)

	// Stage all files.
	add := exec.Command("git", "add", "-A")
	add.Dir = dir
	if out, err := add.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	// Commit. The committer identity falls back to the author so that
	// commits work on machines without a global git identity.
	commit := exec.Command("git", "commit", "--quiet", "-m", message, "--author", author)
	commit.Dir = dir
	commit.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+authorName,
		"GIT_COMMITTER_EMAIL="+authorEmail,
	)
	if out, err := commit.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	// Get short hash.
	rev := exec.Command("git", "rev-parse", "--short", "HEAD")
	rev.Dir = dir
	out, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Committer commits the whole project directory after each ledger change.
type Committer struct {
	Dir         string
	AuthorName  string
	AuthorEmail string
}

// Commit stages everything under Dir and commits it with message.
func (c Committer) Commit(message string) error {
	if !IsRepo(c.Dir) {
		return fmt.Errorf("%s is not a git repository", c.Dir)
	}
	hash, err := CommitAll(c.Dir, message, c.AuthorName, c.AuthorEmail)
	if err != nil {
		return err
	}
	log.Debug().Str("hash", hash).Str("message", message).Msg("committed ledger change")
	return nil
}
