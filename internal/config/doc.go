// Package config loads the git-pr-chain configuration.
//
// It handles:
//   - The tracked upstream of the current branch
//   - The remote branch prefix from git config
//   - GitHub token discovery from the environment, gh and hub
//
// The configuration is read once at startup and passed around by value.
package config
