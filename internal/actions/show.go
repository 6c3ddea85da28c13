package actions

import (
	"fmt"
	"strings"

	"prchain.dev/prchain/internal/chain"
	prerrors "prchain.dev/prchain/internal/errors"
	"prchain.dev/prchain/internal/runtime"
	"prchain.dev/prchain/internal/tui"
)

// ShowAction prints how the commits of the current branch map onto remote branches
func ShowAction(ctx *runtime.Context) error {
	c, err := LoadChain(ctx)
	if err != nil {
		return err
	}
	if len(c.Commits) == 0 {
		return fmt.Errorf("%w. Is the upstream branch (%s) set correctly?", prerrors.ErrNoCommits, ctx.Config.Upstream)
	}
	splog := ctx.Splog

	names := make(map[string]string, len(c.Groups))
	for _, g := range c.Groups {
		names[g.Label] = g.Name
	}

	splog.Info("Current branch is downstream from %s, %d commit(s) ahead.",
		tui.ColorBranchName(ctx.Config.Upstream.String()), len(c.Commits))

	for _, run := range c.Runs() {
		splog.Newline()
		switch {
		case run.Label != "":
			splog.Info("Github branch %s", tui.ColorBranchName(names[run.Label]))
		case run.Stopped():
			splog.Info("%s", tui.ColorYellow("Will not be pushed; remove git-pr-chain:STOP to push."))
		default:
			splog.Info("%s", tui.ColorDim(`No github branch; will not be pushed. (Add "git-pr-chain: <branch>" to commit msg.)`))
		}
		for _, commit := range run.Commits {
			splog.Info("  %s", formatCommit(c.Views, commit))
		}
	}
	return nil
}

func formatCommit(views *chain.Views, c chain.Commit) string {
	hash, subject, _ := strings.Cut(views.ShortDescription(c), " ")
	return tui.ColorHash(hash) + " " + subject
}
