// Package git provides the Git operations git-pr-chain needs.
//
// It wraps git command execution and go-git repository access for:
//   - Reading the commits between the tracked upstream and HEAD
//   - Resolving the upstream of the current branch
//   - Reading the pr-chain configuration keys
//   - Force-pushing group heads to remote branches
//
// This package should be the only place where direct git commands are executed.
package git
