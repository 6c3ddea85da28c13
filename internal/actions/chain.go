package actions

import (
	"time"

	"prchain.dev/prchain/internal/chain"
	"prchain.dev/prchain/internal/runtime"
)

// Chain is the analysed state of the current branch
type Chain struct {
	// Commits are annotated and validated, oldest first
	Commits []chain.Commit
	Groups  []chain.Group
	Views   *chain.Views
}

// Runs returns the commits split into runs for display
func (c *Chain) Runs() []chain.Run {
	return chain.DisplayRuns(c.Commits)
}

// LoadChain reads the commits between the upstream and HEAD, resolves their
// annotations, validates the result and groups it into branches. A branch
// with no commits ahead of its upstream yields an empty chain.
func LoadChain(ctx *runtime.Context) (*Chain, error) {
	cfg := ctx.Config
	if cfg.Verbose {
		start := time.Now()
		defer func() { ctx.Splog.Trace("load chain", start, nil) }()
	}

	entries, err := ctx.Log.CommitsSince(ctx.Context, cfg.Upstream.Ref)
	if err != nil {
		return nil, err
	}
	commits := make([]chain.Commit, len(entries))
	for i, e := range entries {
		commits[i] = chain.Commit{
			Hash:        e.Hash,
			ParentHash:  e.ParentHash(),
			Message:     e.Message,
			ParentCount: e.ParentCount(),
		}
	}

	views := chain.NewViews(func(hash string) string {
		return ctx.Log.Abbrev(ctx.Context, hash)
	})

	commits, err = chain.Annotate(commits)
	if err != nil {
		return nil, err
	}
	if err := chain.Validate(commits, views); err != nil {
		return nil, err
	}

	return &Chain{
		Commits: commits,
		Groups:  chain.BuildGroups(commits, cfg.Upstream.Branch, cfg.BranchPrefix),
		Views:   views,
	}, nil
}
