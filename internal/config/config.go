package config

import (
	"context"
	"errors"
	"fmt"

	prerrors "prchain.dev/prchain/internal/errors"
	"prchain.dev/prchain/internal/git"
)

// Source is the repository state the configuration is read from
type Source interface {
	CurrentBranchRef(ctx context.Context) (string, error)
	UpstreamOf(ctx context.Context, branchRef string) (git.Upstream, error)
	BranchPrefix(ctx context.Context) (string, error)
}

// Options carries command-line settings into the configuration
type Options struct {
	Verbose bool
	DryRun  bool
	Draft   bool
	LogFile string
}

// Config is the immutable configuration of one invocation
type Config struct {
	BranchRef    string
	Upstream     git.Upstream
	BranchPrefix string
	Token        string

	Verbose bool
	DryRun  bool
	Draft   bool
	LogFile string
}

// Load reads the repository configuration once. The token is added with WithToken
// by commands that talk to GitHub.
func Load(ctx context.Context, src Source, opts Options) (Config, error) {
	cfg := Config{
		Verbose: opts.Verbose,
		DryRun:  opts.DryRun,
		Draft:   opts.Draft,
		LogFile: opts.LogFile,
	}

	ref, err := src.CurrentBranchRef(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg.BranchRef = ref

	upstream, err := src.UpstreamOf(ctx, ref)
	if err != nil {
		if errors.Is(err, prerrors.ErrNoUpstream) {
			return Config{}, fmt.Errorf("%w\nSet an upstream branch with e.g. `git branch --set-upstream-to origin/master`", err)
		}
		return Config{}, err
	}
	cfg.Upstream = upstream

	prefix, err := src.BranchPrefix(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg.BranchPrefix = prefix

	return cfg, nil
}

// WithToken returns a copy of the configuration carrying token
func (c Config) WithToken(token string) Config {
	c.Token = token
	return c
}
