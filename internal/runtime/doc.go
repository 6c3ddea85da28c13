// Package runtime provides the execution context for git-pr-chain commands.
//
// It bundles the configuration, logger and the git and GitHub collaborators
// that actions need, so they take a single parameter.
package runtime
