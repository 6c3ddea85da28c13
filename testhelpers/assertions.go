// Package testhelpers provides testing utilities for git-pr-chain,
// including a scene system, Git repository helpers, a mock GitHub server
// and in-memory collaborator fakes.
package testhelpers

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectRemoteBranches asserts that the bare remote at remoteDir has exactly the expected branches.
func ExpectRemoteBranches(t *testing.T, remoteDir string, expected []string) {
	t.Helper()

	repo := &GitRepo{Dir: remoteDir}
	output, err := repo.runGitCommandAndGetOutput("for-each-ref", "refs/heads/", "--format=%(refname:short)")
	require.NoError(t, err, "Failed to list remote branches")

	branches := []string{}
	for _, b := range strings.Split(output, "\n") {
		if b = strings.TrimSpace(b); b != "" {
			branches = append(branches, b)
		}
	}

	sort.Strings(branches)
	want := append([]string(nil), expected...)
	sort.Strings(want)

	require.Equal(t, want, branches, "Remote branches do not match")
}

// ExpectRemoteBranchAt asserts that branch on the bare remote points at sha.
func ExpectRemoteBranchAt(t *testing.T, remoteDir, branch, sha string) {
	t.Helper()
	require.Equal(t, sha, RemoteBranchSHA(remoteDir, branch), "remote branch %s", branch)
}
