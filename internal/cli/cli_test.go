package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"prchain.dev/prchain/internal/cli"
	prerrors "prchain.dev/prchain/internal/errors"
	"prchain.dev/prchain/testhelpers"
)

// execute runs the root command in dir and returns its output
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd("1.2.3", "abc", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	logFile := filepath.Join(t.TempDir(), "git-pr-chain.log")
	cmd.SetArgs(append([]string{"-C", dir, "--log-file", logFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestShowCommand(t *testing.T) {
	t.Run("prints the chain", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		_, err := scene.Repo.CommitChain(
			"one\n\ngit-pr-chain: first",
			"two\n\ngit-pr-chain: second",
		)
		require.NoError(t, err)

		out, err := execute(t, scene.Dir, "show")
		require.NoError(t, err, out)
		require.Contains(t, out, "2 commit(s) ahead")
		require.Contains(t, out, "Github branch first")
		require.Contains(t, out, "Github branch second")
	})

	t.Run("fails without an upstream", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		out, err := execute(t, scene.Dir, "show")
		require.ErrorIs(t, err, prerrors.ErrNoUpstream)
		require.Contains(t, out, "--set-upstream-to")
	})

	t.Run("fails on structural errors", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		_, err := scene.Repo.CommitChain("one\n\ngit-pr-chain: a\ngit-pr-chain: b")
		require.NoError(t, err)

		_, err = execute(t, scene.Dir, "show")
		require.ErrorIs(t, err, prerrors.ErrMultipleAnnotations)
	})

	t.Run("writes the log file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		_, err := scene.Repo.CommitChain("one\n\ngit-pr-chain: first")
		require.NoError(t, err)

		cmd := cli.NewRootCmd("dev", "none", "unknown")
		cmd.SetOut(&bytes.Buffer{})
		logFile := filepath.Join(t.TempDir(), "logs", "out.log")
		cmd.SetArgs([]string{"-C", scene.Dir, "--log-file", logFile, "show"})
		require.NoError(t, cmd.Execute())
		require.FileExists(t, logFile)
	})
}

func TestUploadCommand(t *testing.T) {
	t.Run("no-prs pushes every branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		hashes, err := scene.Repo.CommitChain(
			"one\n\ngit-pr-chain: first",
			"two\n\ngit-pr-chain: second",
		)
		require.NoError(t, err)

		out, err := execute(t, scene.Dir, "upload", "--no-prs")
		require.NoError(t, err, out)
		testhelpers.ExpectRemoteBranchAt(t, scene.RemoteDir, "first", hashes[0])
		testhelpers.ExpectRemoteBranchAt(t, scene.RemoteDir, "second", hashes[1])
	})

	t.Run("honours the branch prefix", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		require.NoError(t, scene.Repo.SetConfig("pr-chain.branch-prefix", "me/"))
		hashes, err := scene.Repo.CommitChain("one\n\ngit-pr-chain: first")
		require.NoError(t, err)

		out, err := execute(t, scene.Dir, "upload", "--no-prs")
		require.NoError(t, err, out)
		testhelpers.ExpectRemoteBranches(t, scene.RemoteDir, []string{"main", "me/first"})
		testhelpers.ExpectRemoteBranchAt(t, scene.RemoteDir, "me/first", hashes[0])
	})

	t.Run("dry run pushes nothing", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		_, err := scene.Repo.CommitChain("one\n\ngit-pr-chain: first")
		require.NoError(t, err)

		out, err := execute(t, scene.Dir, "-n", "upload", "--no-prs")
		require.NoError(t, err, out)
		require.Contains(t, out, "DRY RUN: Pushing first to origin")
		testhelpers.ExpectRemoteBranches(t, scene.RemoteDir, []string{"main"})
	})

	t.Run("pull requests need a GitHub remote", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		_, err := scene.Repo.CommitChain("one\n\ngit-pr-chain: first")
		require.NoError(t, err)

		_, err = execute(t, scene.Dir, "upload")
		require.Error(t, err)
		testhelpers.ExpectRemoteBranches(t, scene.RemoteDir, []string{"main"})
	})

	t.Run("no-push and no-prs are exclusive", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		_, err := execute(t, scene.Dir, "upload", "--no-push", "--no-prs")
		require.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	require.Contains(t, out, "git-pr-chain 1.2.3 (commit abc, built today)")
}
