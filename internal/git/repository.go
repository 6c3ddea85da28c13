package git

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repository wraps a go-git repository together with a command runner
// rooted at its working tree.
type Repository struct {
	*git.Repository
	path   string
	runner *CommandRunner
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repository{
		Repository: repo,
		path:       root,
		runner:     NewCommandRunner(root),
	}, nil
}

// GetRepoRoot returns the root directory of the repository
func (r *Repository) GetRepoRoot() string {
	return r.path
}

// Runner returns the command runner bound to the repository root
func (r *Repository) Runner() *CommandRunner {
	return r.runner
}

// ReadCommit reads a commit object by its full hash
func (r *Repository) ReadCommit(hash string) (LogEntry, error) {
	commit, err := r.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return LogEntry{}, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}

	parents := make([]string, len(commit.ParentHashes))
	for i, p := range commit.ParentHashes {
		parents[i] = p.String()
	}

	return LogEntry{
		Hash:         commit.Hash.String(),
		ParentHashes: parents,
		Message:      commit.Message,
	}, nil
}

// RemoteURL returns the first configured URL of the named remote
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.Remote(name)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}
