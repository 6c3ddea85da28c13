// Package chain models the commits between a branch and its upstream.
//
// It is the core of git-pr-chain, responsible for:
//   - Resolving each commit's destination branch from its annotation or its parent
//   - Propagating the STOP marker to every descendant
//   - Rejecting chains that cannot be split into one pull request per branch
//   - Collapsing the chain into ordered branch groups with their bases
//
// Everything here is pure computation over an ordered slice of commits.
// Reading the log and talking to remotes happens elsewhere.
package chain
