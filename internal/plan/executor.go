package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"prchain.dev/prchain/internal/chain"
	prerrors "prchain.dev/prchain/internal/errors"
	"prchain.dev/prchain/internal/github"
	"prchain.dev/prchain/internal/tui"
)

// DefaultWorkers bounds the number of concurrent pushes
const DefaultWorkers = 32

// PushSink force-pushes commits to remote branches
type PushSink interface {
	ForcePush(ctx context.Context, localRef, remote, branch string) (string, error)
}

// PullRegistry reads and changes pull requests
type PullRegistry interface {
	OpenPullsWithHead(ctx context.Context, branch string) ([]github.PullRequestInfo, error)
	CreatePull(ctx context.Context, opts github.CreatePROptions) (*github.PullRequestInfo, error)
	UpdatePullBase(ctx context.Context, number int, base string) error
}

// Options controls an Executor
type Options struct {
	Remote  string
	DryRun  bool
	Draft   bool
	Workers int
}

// PushResult is the outcome of pushing one group
type PushResult struct {
	Group  chain.Group
	Output string
	Err    error
}

// PullResult is the outcome of reconciling one group's pull request
type PullResult struct {
	Decision Decision
	// Pull is the pull request after reconciliation, nil when skipped or failed
	Pull *github.PullRequestInfo
	// Skipped is set when the group's push failed
	Skipped bool
	Err     error
}

// Executor applies decisions through the push sink and pull registry
type Executor struct {
	pushes PushSink
	pulls  PullRegistry
	splog  *tui.Splog
	ui     tui.UploadUI
	opts   Options
}

// NewExecutor creates an Executor. ui may be nil, in which case progress is logged.
func NewExecutor(pushes PushSink, pulls PullRegistry, splog *tui.Splog, ui tui.UploadUI, opts Options) *Executor {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Executor{
		pushes: pushes,
		pulls:  pulls,
		splog:  splog,
		ui:     ui,
		opts:   opts,
	}
}

// Push force-pushes every group head to its branch. Pushes run concurrently;
// a failed push does not stop the others. Results are in group order.
func (e *Executor) Push(ctx context.Context, groups []chain.Group) []PushResult {
	results := make([]PushResult, len(groups))
	for i, g := range groups {
		results[i].Group = g
	}

	if e.opts.DryRun {
		for _, g := range groups {
			e.splog.Info("DRY RUN: Pushing %s to %s", tui.ColorBranchName(g.Name), e.opts.Remote)
		}
		return results
	}

	if e.ui != nil {
		items := make([]tui.UploadItem, len(groups))
		for i, g := range groups {
			items[i] = tui.UploadItem{BranchName: g.Name, Action: "push", Status: tui.StatusPending}
		}
		e.ui.StartPhase(fmt.Sprintf("Pushing to %s", e.opts.Remote), items)
		defer e.ui.EndPhase()
	} else {
		for _, g := range groups {
			e.splog.Info("Pushing %s to %s", tui.ColorBranchName(g.Name), e.opts.Remote)
		}
	}

	var eg errgroup.Group
	eg.SetLimit(e.opts.Workers)
	for i, g := range groups {
		eg.Go(func() error {
			if e.ui != nil {
				e.ui.UpdateItem(i, tui.StatusRunning, "", nil)
			}
			output, err := e.pushes.ForcePush(ctx, g.Head().Hash, e.opts.Remote, g.Name)
			results[i].Output = output
			if err != nil {
				results[i].Err = prerrors.NewGroupError(g.Name, "push", err)
			}
			if e.ui != nil {
				if err != nil {
					e.ui.UpdateItem(i, tui.StatusError, "", err)
				} else {
					e.ui.UpdateItem(i, tui.StatusDone, "", nil)
				}
			}
			// Failures are reported per group and never cancel siblings
			return nil
		})
	}
	_ = eg.Wait()

	for _, r := range results {
		if r.Output != "" {
			e.splog.Debug("%s", r.Output)
		}
	}
	return results
}

// Reconcile brings each group's pull request in line with its computed base.
// Groups are handled one at a time in chain order. skip reports groups whose
// push failed; their pull requests are left alone.
func (e *Executor) Reconcile(ctx context.Context, groups []chain.Group, skip func(chain.Group) bool) []PullResult {
	results := make([]PullResult, len(groups))

	useUI := e.ui != nil && !e.opts.DryRun
	if useUI {
		items := make([]tui.UploadItem, len(groups))
		for i, g := range groups {
			items[i] = tui.UploadItem{BranchName: g.Name, Action: "pull request", Status: tui.StatusPending}
		}
		e.ui.StartPhase("Updating pull requests", items)
		defer e.ui.EndPhase()
	}

	for i, g := range groups {
		results[i] = e.reconcileOne(ctx, g, skip)
		if !useUI {
			continue
		}
		r := results[i]
		switch {
		case r.Skipped:
			e.ui.UpdateItem(i, tui.StatusSkipped, "push failed", nil)
		case r.Err != nil:
			e.ui.UpdateItem(i, tui.StatusError, "", r.Err)
		default:
			e.ui.UpdateItem(i, tui.StatusDone, describe(r), nil)
		}
	}
	return results
}

func describe(r PullResult) string {
	url := ""
	if r.Pull != nil {
		url = r.Pull.HTMLURL
	}
	switch r.Decision.Kind {
	case Create:
		return "created " + url
	case UpdateBase:
		return fmt.Sprintf("base set to %s %s", r.Decision.Group.Base, url)
	}
	return "up to date " + url
}

func (e *Executor) reconcileOne(ctx context.Context, g chain.Group, skip func(chain.Group) bool) (result PullResult) {
	result.Decision = Decision{Group: g}
	if skip != nil && skip(g) {
		result.Skipped = true
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Err = prerrors.NewGroupError(g.Name, "reconcile", err)
		return result
	}

	if e.splog.Verbose() {
		start := time.Now()
		defer func() { e.splog.Trace("reconcile "+g.Name, start, result.Decision.Kind) }()
	}

	open, err := e.pulls.OpenPullsWithHead(ctx, g.Name)
	if err != nil {
		result.Err = prerrors.NewGroupError(g.Name, "list pull requests for", err)
		return result
	}

	d := Decide(g, open)
	result.Decision = d

	switch d.Kind {
	case Ambiguous:
		result.Err = prerrors.NewAmbiguousPullRequestError(g.Name, d.CandidateURLs())

	case NoOp:
		result.Pull = d.Pull
		e.splog.Debug("Pull request for %s already targets %s", g.Name, g.Base)

	case Create:
		if e.opts.DryRun {
			e.splog.Info("DRY RUN: Creating pull request %s -> %s", tui.ColorBranchName(g.Name), g.Base)
			return result
		}
		pr, err := e.pulls.CreatePull(ctx, github.CreatePROptions{
			Title: g.Name,
			Head:  g.Name,
			Base:  g.Base,
			Draft: e.opts.Draft,
		})
		if err != nil {
			result.Err = prerrors.NewGroupError(g.Name, "create pull request for", err)
			return result
		}
		result.Pull = pr
		if e.ui == nil {
			e.splog.Info("Created pull request for %s: %s", tui.ColorBranchName(g.Name), pr.HTMLURL)
		}

	case UpdateBase:
		if e.opts.DryRun {
			e.splog.Info("DRY RUN: Changing base of %s from %s to %s", d.Pull.HTMLURL, d.Pull.Base, g.Base)
			return result
		}
		if err := e.pulls.UpdatePullBase(ctx, d.Pull.Number, g.Base); err != nil {
			result.Err = prerrors.NewGroupError(g.Name, "update base of", err)
			return result
		}
		pr := *d.Pull
		pr.Base = g.Base
		result.Pull = &pr
		if e.ui == nil {
			e.splog.Info("Changed base of %s from %s to %s", pr.HTMLURL, d.Pull.Base, g.Base)
		}
	}
	return result
}

// FailedPushes returns a skip function matching the groups whose push failed
func FailedPushes(results []PushResult) func(chain.Group) bool {
	failed := make(map[string]bool)
	for _, r := range results {
		if r.Err != nil {
			failed[r.Group.Name] = true
		}
	}
	return func(g chain.Group) bool {
		return failed[g.Name]
	}
}

// Errors joins every per-group failure, or returns nil
func Errors(pushes []PushResult, pulls []PullResult) error {
	var errs []error
	for _, r := range pushes {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	for _, r := range pulls {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
