package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"prchain.dev/prchain/internal/config"
	prerrors "prchain.dev/prchain/internal/errors"
	"prchain.dev/prchain/internal/git"
	"prchain.dev/prchain/testhelpers"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads upstream and prefix from the repository", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		require.NoError(t, scene.Repo.SetConfig(git.BranchPrefixKey, "me/"))
		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		cfg, err := config.Load(context.Background(), repo, config.Options{Verbose: true, DryRun: true})
		require.NoError(t, err)
		require.Equal(t, "refs/heads/main", cfg.BranchRef)
		require.Equal(t, "origin/main", cfg.Upstream.String())
		require.Equal(t, "main", cfg.Upstream.Branch)
		require.Equal(t, "me/", cfg.BranchPrefix)
		require.True(t, cfg.Verbose)
		require.True(t, cfg.DryRun)
		require.Empty(t, cfg.Token)
	})

	t.Run("fails with a hint when there is no upstream", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		_, err = config.Load(context.Background(), repo, config.Options{})
		require.ErrorIs(t, err, prerrors.ErrNoUpstream)
		require.Contains(t, err.Error(), "--set-upstream-to")
	})

	t.Run("adds the token without changing the original", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.RemoteSceneSetup)
		repo, err := git.OpenRepository(scene.Dir)
		require.NoError(t, err)

		cfg, err := config.Load(context.Background(), repo, config.Options{})
		require.NoError(t, err)

		withToken := cfg.WithToken("abc")
		require.Equal(t, "abc", withToken.Token)
		require.Empty(t, cfg.Token)
		require.Equal(t, cfg.Upstream, withToken.Upstream)
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestTokenSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("prefers GITHUB_TOKEN over GH_TOKEN", func(t *testing.T) {
		t.Parallel()
		src := &config.TokenSource{
			Getenv:    envOf(map[string]string{"GITHUB_TOKEN": "one", "GH_TOKEN": "two"}),
			ConfigDir: t.TempDir(),
		}
		token, err := src.Find(ctx)
		require.NoError(t, err)
		require.Equal(t, "one", token)
	})

	t.Run("falls back to gh auth token", func(t *testing.T) {
		t.Parallel()
		var askedHost string
		src := &config.TokenSource{
			Host:      "github.company.com",
			Getenv:    envOf(nil),
			ConfigDir: t.TempDir(),
			GHToken: func(_ context.Context, host string) (string, error) {
				askedHost = host
				return "from-gh\n", nil
			},
		}
		token, err := src.Find(ctx)
		require.NoError(t, err)
		require.Equal(t, "from-gh", token)
		require.Equal(t, "github.company.com", askedHost)
	})

	t.Run("reads gh hosts.yml when gh fails", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "gh", "hosts.yml"), "github.com:\n    user: me\n    oauth_token: hosts-token\n")
		src := &config.TokenSource{
			Getenv:    envOf(nil),
			ConfigDir: dir,
			GHToken: func(context.Context, string) (string, error) {
				return "", errors.New("gh not installed")
			},
		}
		token, err := src.Find(ctx)
		require.NoError(t, err)
		require.Equal(t, "hosts-token", token)
	})

	t.Run("reads hosts nested in gh config.yml", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "gh", "config.yml"), "editor: vim\nhosts:\n  github.com:\n    oauth_token: config-token\n")
		src := &config.TokenSource{Getenv: envOf(nil), ConfigDir: dir}
		token, err := src.Find(ctx)
		require.NoError(t, err)
		require.Equal(t, "config-token", token)
	})

	t.Run("reads the first hub entry", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "hub"), "github.com:\n- user: me\n  oauth_token: hub-token\n  protocol: https\n")
		src := &config.TokenSource{Getenv: envOf(nil), ConfigDir: dir}
		token, err := src.Find(ctx)
		require.NoError(t, err)
		require.Equal(t, "hub-token", token)
	})

	t.Run("uses XDG_CONFIG_HOME", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "hub"), "github.com:\n- oauth_token: xdg-token\n")
		src := &config.TokenSource{Getenv: envOf(map[string]string{"XDG_CONFIG_HOME": dir})}
		token, err := src.Find(ctx)
		require.NoError(t, err)
		require.Equal(t, "xdg-token", token)
	})

	t.Run("ignores other hosts", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "gh", "hosts.yml"), "github.company.com:\n    oauth_token: enterprise\n")
		src := &config.TokenSource{Getenv: envOf(nil), ConfigDir: dir}
		_, err := src.Find(ctx)
		require.ErrorIs(t, err, prerrors.ErrNoToken)
	})

	t.Run("reports malformed files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "gh", "hosts.yml"), "github.com: [unterminated\n")
		src := &config.TokenSource{Getenv: envOf(nil), ConfigDir: dir}
		_, err := src.Find(ctx)
		require.Error(t, err)
		require.Contains(t, err.Error(), "hosts.yml")
	})
}
