// Package errors provides sentinel errors and custom error types for git-pr-chain.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrMergeCommit indicates that the chain contains a merge commit
	ErrMergeCommit = errors.New("merge commit in chain")

	// ErrAABA indicates that a branch label reappears after being interrupted
	ErrAABA = errors.New("branch reappears after interruption")

	// ErrUnlabeledGap indicates commits without a branch between labelled commits
	ErrUnlabeledGap = errors.New("unlabeled commits inside chain")

	// ErrMultipleAnnotations indicates a commit message with more than one annotation line
	ErrMultipleAnnotations = errors.New("multiple annotation lines")

	// ErrEmptyAnnotation indicates an annotation line without a branch name
	ErrEmptyAnnotation = errors.New("empty annotation")

	// ErrNoUpstream indicates that the current branch does not track an upstream branch
	ErrNoUpstream = errors.New("no upstream branch")

	// ErrNoToken indicates that no GitHub credential could be found
	ErrNoToken = errors.New("no GitHub token")

	// ErrNoCommits indicates that the current branch has no commits ahead of its upstream
	ErrNoCommits = errors.New("no commits in branch")

	// ErrAmbiguousPullRequest indicates that more than one open pull request targets a branch
	ErrAmbiguousPullRequest = errors.New("multiple open pull requests")
)

func listItems(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  - " + item
	}
	return strings.Join(lines, "\n")
}

// MergeCommitError lists the merge commits found in the chain
type MergeCommitError struct {
	Commits []string
}

func (e *MergeCommitError) Error() string {
	return fmt.Sprintf(`History contained merge commit(s):

%s

Merges are incompatible with git-pr-chain.  Rewrite your branch
to a linear history.`, listItems(e.Commits))
}

// Is returns true if the target error is ErrMergeCommit
func (e *MergeCommitError) Is(target error) bool {
	return target == ErrMergeCommit
}

// NewMergeCommitError creates a new MergeCommitError
func NewMergeCommitError(commits []string) *MergeCommitError {
	return &MergeCommitError{Commits: commits}
}

// AABAError lists branches that appear, are interrupted, then reappear
type AABAError struct {
	Branches []string
}

func (e *AABAError) Error() string {
	return fmt.Sprintf(`Upstream branch(es) AABA problem.  The following upstream
branches appear, then are interrupted by a different branch,
then reappear.

%s

This is not allowed; reorder commits or change their upstream
branches.`, listItems(e.Branches))
}

// Is returns true if the target error is ErrAABA
func (e *AABAError) Is(target error) bool {
	return target == ErrAABA
}

// NewAABAError creates a new AABAError
func NewAABAError(branches []string) *AABAError {
	return &AABAError{Branches: branches}
}

// UnlabeledGapError lists commits whose branch could not be inferred
type UnlabeledGapError struct {
	Commits []string
}

func (e *UnlabeledGapError) Error() string {
	return fmt.Sprintf(`Unable to infer upstream branches for commit(s):

%s

This shouldn't happen and is probably a bug in git-pr-chain.`, listItems(e.Commits))
}

// Is returns true if the target error is ErrUnlabeledGap
func (e *UnlabeledGapError) Is(target error) bool {
	return target == ErrUnlabeledGap
}

// NewUnlabeledGapError creates a new UnlabeledGapError
func NewUnlabeledGapError(commits []string) *UnlabeledGapError {
	return &UnlabeledGapError{Commits: commits}
}

// AnnotationError reports a malformed annotation on a single commit
type AnnotationError struct {
	Commit string
	Count  int
	Err    error
}

func (e *AnnotationError) Error() string {
	if errors.Is(e.Err, ErrMultipleAnnotations) {
		return fmt.Sprintf("Commit %s has %d git-pr-chain lines.  Rewrite history and fix this.", e.Commit, e.Count)
	}
	return fmt.Sprintf("Commit %s has a git-pr-chain line without a branch name.  Rewrite history and fix this.", e.Commit)
}

func (e *AnnotationError) Unwrap() error {
	return e.Err
}

// NewMultipleAnnotationsError creates an AnnotationError for a commit with count annotation lines
func NewMultipleAnnotationsError(commit string, count int) *AnnotationError {
	return &AnnotationError{Commit: commit, Count: count, Err: ErrMultipleAnnotations}
}

// NewEmptyAnnotationError creates an AnnotationError for an annotation with no value
func NewEmptyAnnotationError(commit string) *AnnotationError {
	return &AnnotationError{Commit: commit, Count: 1, Err: ErrEmptyAnnotation}
}

// AmbiguousPullRequestError lists the open pull requests competing for one branch
type AmbiguousPullRequestError struct {
	BranchName string
	URLs       []string
}

func (e *AmbiguousPullRequestError) Error() string {
	return fmt.Sprintf("Branch %s has multiple open PRs:\n%s\nDon't know which to choose!", e.BranchName, strings.Join(e.URLs, "\n"))
}

// Is returns true if the target error is ErrAmbiguousPullRequest
func (e *AmbiguousPullRequestError) Is(target error) bool {
	return target == ErrAmbiguousPullRequest
}

// NewAmbiguousPullRequestError creates a new AmbiguousPullRequestError
func NewAmbiguousPullRequestError(branchName string, urls []string) *AmbiguousPullRequestError {
	return &AmbiguousPullRequestError{BranchName: branchName, URLs: urls}
}

// GroupError scopes a reconciliation failure to one remote branch
type GroupError struct {
	BranchName string
	Op         string
	Err        error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.BranchName, e.Err)
}

func (e *GroupError) Unwrap() error {
	return e.Err
}

// NewGroupError creates a new GroupError
func NewGroupError(branchName, op string, err error) *GroupError {
	return &GroupError{BranchName: branchName, Op: op, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
