package runtime

import (
	"context"
	"fmt"
	"strings"

	"prchain.dev/prchain/internal/config"
	"prchain.dev/prchain/internal/git"
	"prchain.dev/prchain/internal/github"
	"prchain.dev/prchain/internal/plan"
	"prchain.dev/prchain/internal/tui"
)

// LogProvider lists the commits of the current branch
type LogProvider interface {
	CommitsSince(ctx context.Context, upstreamRef string) ([]git.LogEntry, error)
	Abbrev(ctx context.Context, hash string) string
}

// Context provides access to configuration, output and collaborators for commands
type Context struct {
	Context context.Context
	Config  config.Config
	Splog   *tui.Splog

	Log    LogProvider
	Pushes plan.PushSink
	// Pulls is nil for commands that do not talk to GitHub
	Pulls plan.PullRegistry
}

// NewContext creates a context for repo. pulls may be nil.
func NewContext(ctx context.Context, cfg config.Config, splog *tui.Splog, repo *git.Repository, pulls plan.PullRegistry) *Context {
	return &Context{
		Context: ctx,
		Config:  cfg,
		Splog:   splog,
		Log:     repo,
		Pushes:  repo,
		Pulls:   pulls,
	}
}

// Options controls GetContext
type Options struct {
	// Dir is any directory inside the repository
	Dir    string
	Config config.Options
	// NeedPulls resolves a GitHub token and connects to the upstream's repository
	NeedPulls bool
}

// GetContext opens the repository, reads the configuration once and, when
// asked, builds the GitHub client for the upstream remote.
func GetContext(ctx context.Context, splog *tui.Splog, opts Options) (*Context, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	repo, err := git.OpenRepository(dir)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	cfg, err := config.Load(ctx, repo, opts.Config)
	if err != nil {
		return nil, err
	}

	if !opts.NeedPulls {
		return NewContext(ctx, cfg, splog, repo, nil), nil
	}

	if cfg.Upstream.Remote == "." {
		return nil, fmt.Errorf("upstream %s is a local branch; pull requests need a remote upstream", cfg.Upstream)
	}
	remoteURL, err := repo.RemoteURL(cfg.Upstream.Remote)
	if err != nil {
		return nil, err
	}
	info, err := github.ParseGitHubRemoteURL(remoteURL)
	if err != nil {
		return nil, err
	}

	runner := repo.Runner()
	tokens := &config.TokenSource{
		Host: info.Hostname,
		GHToken: func(ctx context.Context, host string) (string, error) {
			return runner.RunGH(ctx, "auth", "token", "--hostname", host)
		},
	}
	token, err := tokens.Find(ctx)
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithToken(strings.TrimSpace(token))

	client, err := github.NewClient(ctx, cfg.Token, info)
	if err != nil {
		return nil, err
	}
	splog.Debug("Using GitHub repository %s on %s", info.Slug(), info.Hostname)

	return NewContext(ctx, cfg, splog, repo, client), nil
}
