package chain

import (
	prerrors "prchain.dev/prchain/internal/errors"
)

// Run is a maximal stretch of consecutive commits sharing one label.
type Run struct {
	Label   string
	Commits []Commit
}

// Stopped reports whether the run is held back by a STOP marker
func (r Run) Stopped() bool {
	return len(r.Commits) > 0 && r.Commits[0].Stop
}

// Runs groups consecutive commits by label, preserving order.
// Unlabelled commits form runs too.
func Runs(commits []Commit) []Run {
	var runs []Run
	for _, c := range commits {
		if n := len(runs); n > 0 && runs[n-1].Label == c.Label {
			runs[n-1].Commits = append(runs[n-1].Commits, c)
			continue
		}
		runs = append(runs, Run{Label: c.Label, Commits: []Commit{c}})
	}
	return runs
}

// DisplayRuns is Runs, but also starts a new run where a STOP marker takes
// effect, so a stopped tail is never folded into a leading unlabelled run.
func DisplayRuns(commits []Commit) []Run {
	var runs []Run
	for _, c := range commits {
		if n := len(runs); n > 0 && runs[n-1].Label == c.Label && runs[n-1].Stopped() == c.Stop {
			runs[n-1].Commits = append(runs[n-1].Commits, c)
			continue
		}
		runs = append(runs, Run{Label: c.Label, Commits: []Commit{c}})
	}
	return runs
}

// Validate checks the structural invariants of an annotated chain:
// no merge commits, no label reappearing after another label, and
// unlabelled commits only at the start or end of the chain.
func Validate(commits []Commit, d Describer) error {
	var merges []Commit
	for _, c := range commits {
		if c.IsMerge() {
			merges = append(merges, c)
		}
	}
	if len(merges) > 0 {
		return prerrors.NewMergeCommitError(describeAll(d, merges))
	}

	runs := Runs(commits)

	counts := make(map[string]int)
	var order []string
	for _, r := range runs {
		if r.Label == "" {
			continue
		}
		if counts[r.Label] == 0 {
			order = append(order, r.Label)
		}
		counts[r.Label]++
	}
	var repeated []string
	for _, label := range order {
		if counts[label] > 1 {
			repeated = append(repeated, label)
		}
	}
	if len(repeated) > 0 {
		return prerrors.NewAABAError(repeated)
	}

	var gap []Commit
	for i := 1; i < len(runs)-1; i++ {
		if runs[i].Label == "" {
			gap = append(gap, runs[i].Commits...)
		}
	}
	if len(gap) > 0 {
		return prerrors.NewUnlabeledGapError(describeAll(d, gap))
	}

	return nil
}
