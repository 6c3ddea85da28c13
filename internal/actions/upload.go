package actions

import (
	"fmt"

	"prchain.dev/prchain/internal/plan"
	"prchain.dev/prchain/internal/runtime"
	"prchain.dev/prchain/internal/tui"
)

// UploadOptions contains options for the upload command
type UploadOptions struct {
	// Confirm asks before touching the remote
	Confirm bool
	// NoPush skips pushing branches
	NoPush bool
	// NoPRs skips creating and retargeting pull requests
	NoPRs bool
	// UI overrides the progress display, chosen from the terminal when nil
	UI tui.UploadUI
}

// UploadAction force-pushes every branch group and then makes each group's
// pull request target the branch below it.
func UploadAction(ctx *runtime.Context, opts UploadOptions) error {
	c, err := LoadChain(ctx)
	if err != nil {
		return err
	}
	cfg := ctx.Config
	splog := ctx.Splog

	if len(c.Commits) == 0 {
		splog.Info("No commits ahead of %s; nothing to upload.", cfg.Upstream)
		return nil
	}
	if len(c.Groups) == 0 {
		splog.Info("No commits are marked with a github branch; nothing to upload.")
		splog.Tip(`Add "git-pr-chain: <branch>" to a commit message.`)
		return nil
	}

	remote := cfg.Upstream.Remote
	if remote == "" || remote == "." {
		return fmt.Errorf("upstream %s is a local branch; set a remote upstream to upload", cfg.Upstream)
	}
	if !opts.NoPRs && ctx.Pulls == nil {
		return fmt.Errorf("no GitHub connection available for pull requests")
	}

	if opts.Confirm && !cfg.DryRun {
		for _, g := range c.Groups {
			splog.Info("  %s -> %s (%d commit(s))", tui.ColorBranchName(g.Name), g.Base, len(g.Commits))
		}
		ok, err := tui.PromptConfirm(fmt.Sprintf("Upload %d branch(es) to %s?", len(c.Groups), remote), false)
		if err != nil {
			return err
		}
		if !ok {
			splog.Info("Aborted.")
			return nil
		}
	}

	ui := opts.UI
	if ui == nil {
		ui = tui.NewUploadUI(splog)
	}
	executor := plan.NewExecutor(ctx.Pushes, ctx.Pulls, splog, ui, plan.Options{
		Remote: remote,
		DryRun: cfg.DryRun,
		Draft:  cfg.Draft,
	})

	var pushes []plan.PushResult
	if !opts.NoPush {
		pushes = executor.Push(ctx.Context, c.Groups)
	}

	var pulls []plan.PullResult
	if !opts.NoPRs {
		pulls = executor.Reconcile(ctx.Context, c.Groups, plan.FailedPushes(pushes))
	}

	return plan.Errors(pushes, pulls)
}
