// Package actions provides the use cases behind the CLI commands.
//
// Each action takes a runtime.Context, which carries the configuration, the
// logger and the git and GitHub collaborators.
//
// Key patterns:
//   - LoadChain turns the branch log into validated branch groups
//   - ShowAction prints the grouping and never mutates anything
//   - UploadAction pushes every group, then reconciles pull requests
package actions
