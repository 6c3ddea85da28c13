package chain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"prchain.dev/prchain/internal/chain"
	prerrors "prchain.dev/prchain/internal/errors"
)

// newChain builds a linear chain with one commit per message, oldest first.
func newChain(messages ...string) []chain.Commit {
	commits := make([]chain.Commit, len(messages))
	for i, msg := range messages {
		commits[i] = chain.Commit{
			Hash:        fmt.Sprintf("%040x", i+1),
			Message:     msg,
			ParentCount: 1,
		}
		if i > 0 {
			commits[i].ParentHash = commits[i-1].Hash
		}
	}
	return commits
}

// labelled builds an already annotated chain from raw labels.
func labelled(labels ...string) []chain.Commit {
	commits := newChain(make([]string, len(labels))...)
	for i, label := range labels {
		commits[i].Message = fmt.Sprintf("commit %d", i)
		commits[i].Label = label
	}
	return commits
}

func labels(commits []chain.Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Label
	}
	return out
}

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    chain.Annotation
		wantErr error
	}{
		{"no annotation", "Add feature\n\nSome body", chain.Annotation{}, nil},
		{"long keyword", "Add feature\n\ngit-pr-chain: feat-x", chain.Annotation{Found: true, Branch: "feat-x"}, nil},
		{"short keyword", "Add feature\n\nGPC: feat-x", chain.Annotation{Found: true, Branch: "feat-x"}, nil},
		{"no space after colon", "Add feature\n\nGPC:feat-x", chain.Annotation{Found: true, Branch: "feat-x"}, nil},
		{"trailing whitespace and CR", "Add feature\r\n\r\ngit-pr-chain: feat-x \r\n", chain.Annotation{Found: true, Branch: "feat-x"}, nil},
		{"stop marker", "WIP\n\ngit-pr-chain: STOP", chain.Annotation{Found: true, Stop: true}, nil},
		{"stop marker with comment", "WIP\n\nGPC: STOP until review", chain.Annotation{Found: true, Stop: true}, nil},
		{"stop prefix is a branch", "WIP\n\nGPC: STOPPER", chain.Annotation{Found: true, Branch: "STOPPER"}, nil},
		{"hyphenated stop prefix is a branch", "WIP\n\nGPC: STOP-gap", chain.Annotation{Found: true, Branch: "STOP-gap"}, nil},
		{"stop marker followed by a tab", "WIP\n\nGPC: STOP\tlater", chain.Annotation{Found: true, Stop: true}, nil},
		{"keyword mid-line is ignored", "Mention git-pr-chain: feat-x inline", chain.Annotation{}, nil},
		{"empty value", "Add feature\n\nGPC:", chain.Annotation{}, prerrors.ErrEmptyAnnotation},
		{"two annotations", "Add feature\n\nGPC: feat-x\ngit-pr-chain: feat-y", chain.Annotation{}, prerrors.ErrMultipleAnnotations},
		{"two identical annotations", "Add feature\n\nGPC: feat-x\nGPC: feat-x", chain.Annotation{}, prerrors.ErrMultipleAnnotations},
		{"stop and branch", "Add feature\n\nGPC: STOP\nGPC: feat-x", chain.Annotation{}, prerrors.ErrMultipleAnnotations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChain(tt.message)[0]
			got, err := chain.ParseAnnotation(c)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Contains(t, err.Error(), c.Hash)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAnnotate(t *testing.T) {
	t.Run("no annotations leaves every commit unlabelled", func(t *testing.T) {
		commits, err := chain.Annotate(newChain("a", "b", "c", "d"))
		require.NoError(t, err)
		require.Equal(t, []string{"", "", "", ""}, labels(commits))
		require.Empty(t, chain.BuildGroups(commits, "main", ""))
	})

	t.Run("labels propagate from the root", func(t *testing.T) {
		commits, err := chain.Annotate(newChain("a\n\nGPC: feat-x", "b", "c"))
		require.NoError(t, err)
		require.Equal(t, []string{"feat-x", "feat-x", "feat-x"}, labels(commits))
	})

	t.Run("explicit annotation overrides the parent", func(t *testing.T) {
		commits, err := chain.Annotate(newChain("a", "b\n\nGPC: feat-x", "c", "d\n\ngit-pr-chain: feat-y", "e"))
		require.NoError(t, err)
		require.Equal(t, []string{"", "feat-x", "feat-x", "feat-y", "feat-y"}, labels(commits))
	})

	t.Run("stop propagates to every descendant", func(t *testing.T) {
		commits, err := chain.Annotate(newChain(
			"a\n\nGPC: feat-x",
			"b\n\nGPC: STOP",
			"c",
			"d\n\nGPC: feat-y",
		))
		require.NoError(t, err)
		require.Equal(t, []string{"feat-x", "", "", ""}, labels(commits))
		require.False(t, commits[0].Stop)
		for _, c := range commits[1:] {
			require.True(t, c.Stop)
			require.False(t, c.Pushable())
		}

		groups := chain.BuildGroups(commits, "main", "")
		require.Len(t, groups, 1)
		require.Equal(t, "feat-x", groups[0].Name)
	})

	t.Run("rejects multiple annotations anywhere in the chain", func(t *testing.T) {
		_, err := chain.Annotate(newChain("a\n\nGPC: STOP", "b\n\nGPC: x\nGPC: y"))
		require.ErrorIs(t, err, prerrors.ErrMultipleAnnotations)
	})

	t.Run("does not modify its input", func(t *testing.T) {
		in := newChain("a\n\nGPC: feat-x")
		_, err := chain.Annotate(in)
		require.NoError(t, err)
		require.Empty(t, in[0].Label)
	})

	t.Run("is idempotent", func(t *testing.T) {
		in := newChain("a", "b\n\nGPC: feat-x", "c\n\nGPC: STOP")
		first, err := chain.Annotate(in)
		require.NoError(t, err)
		second, err := chain.Annotate(first)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts leading and trailing unlabelled runs", func(t *testing.T) {
		require.NoError(t, chain.Validate(labelled("", "feat-x", "feat-y", ""), nil))
	})

	t.Run("accepts an empty chain", func(t *testing.T) {
		require.NoError(t, chain.Validate(nil, nil))
	})

	t.Run("rejects merge commits and names them", func(t *testing.T) {
		commits := labelled("feat-x", "feat-x", "feat-y")
		commits[1].ParentCount = 2
		commits[1].Message = "Merge branch 'main'"

		err := chain.Validate(commits, nil)
		var mergeErr *prerrors.MergeCommitError
		require.ErrorAs(t, err, &mergeErr)
		require.Equal(t, []string{"0000000 Merge branch 'main'"}, mergeErr.Commits)
	})

	t.Run("merge check runs before label checks", func(t *testing.T) {
		commits := labelled("feat-x", "feat-y", "feat-x")
		commits[0].ParentCount = 2
		require.ErrorIs(t, chain.Validate(commits, nil), prerrors.ErrMergeCommit)
	})

	aabaCases := [][]string{
		{"feat-x", "feat-y", "feat-x"},
		{"feat-x", "feat-x", "feat-y", "feat-x"},
		{"", "feat-x", "feat-y", "feat-z", "feat-x", ""},
		{"feat-x", "feat-y", "feat-y", "feat-x", "feat-x"},
	}
	for _, tc := range aabaCases {
		t.Run(fmt.Sprintf("rejects AABA %v", tc), func(t *testing.T) {
			err := chain.Validate(labelled(tc...), nil)
			var aaba *prerrors.AABAError
			require.ErrorAs(t, err, &aaba)
			require.Equal(t, []string{"feat-x"}, aaba.Branches)
		})
	}

	t.Run("lists every repeated branch in order of first appearance", func(t *testing.T) {
		err := chain.Validate(labelled("b", "a", "b", "a"), nil)
		var aaba *prerrors.AABAError
		require.ErrorAs(t, err, &aaba)
		require.Equal(t, []string{"b", "a"}, aaba.Branches)
	})

	gapCases := [][]string{
		{"feat-x", "", "feat-y"},
		{"feat-y", "", "", "feat-x"},
		{"", "feat-x", "", "feat-y", ""},
	}
	for _, tc := range gapCases {
		t.Run(fmt.Sprintf("rejects unlabelled gap %v", tc), func(t *testing.T) {
			err := chain.Validate(labelled(tc...), nil)
			require.ErrorIs(t, err, prerrors.ErrUnlabeledGap)
			require.False(t, errors.Is(err, prerrors.ErrAABA))
		})
	}

	t.Run("uses the describer for commit names", func(t *testing.T) {
		views := chain.NewViews(func(hash string) string { return "short" })
		err := chain.Validate(labelled("feat-x", "", "feat-y"), views)
		var gap *prerrors.UnlabeledGapError
		require.ErrorAs(t, err, &gap)
		require.Equal(t, []string{"short commit 1"}, gap.Commits)
	})
}

func TestBuildGroups(t *testing.T) {
	t.Run("splits the chain and chains the bases", func(t *testing.T) {
		commits, err := chain.Annotate(newChain(
			"A",
			"B\n\ngit-pr-chain: feat-x",
			"C\n\ngit-pr-chain: feat-x",
			"D\n\nGPC: feat-y",
		))
		require.NoError(t, err)
		require.NoError(t, chain.Validate(commits, nil))

		groups := chain.BuildGroups(commits, "main", "")
		require.Len(t, groups, 2)

		require.Equal(t, "feat-x", groups[0].Name)
		require.Equal(t, "main", groups[0].Base)
		require.Equal(t, []string{"B", "C"}, []string{groups[0].Commits[0].Subject(), groups[0].Commits[1].Subject()})
		require.Equal(t, commits[2].Hash, groups[0].Head().Hash)

		require.Equal(t, "feat-y", groups[1].Name)
		require.Equal(t, "feat-x", groups[1].Base)
		require.Equal(t, commits[3].Hash, groups[1].Head().Hash)

		runs := chain.Runs(commits)
		require.Len(t, runs, 3)
		require.Equal(t, "", runs[0].Label)
		require.False(t, runs[0].Stopped())
	})

	t.Run("display runs separate a stopped tail from leading unlabelled commits", func(t *testing.T) {
		commits, err := chain.Annotate(newChain("loose", "WIP\n\ngit-pr-chain: STOP", "more wip"))
		require.NoError(t, err)
		require.NoError(t, chain.Validate(commits, nil))

		require.Len(t, chain.Runs(commits), 1)

		runs := chain.DisplayRuns(commits)
		require.Len(t, runs, 2)
		require.False(t, runs[0].Stopped())
		require.Len(t, runs[0].Commits, 1)
		require.True(t, runs[1].Stopped())
		require.Len(t, runs[1].Commits, 2)
	})

	t.Run("prefixes names and bases but not the upstream", func(t *testing.T) {
		groups := chain.BuildGroups(labelled("a", "b", "c"), "develop", "me/")
		require.Len(t, groups, 3)
		for i, g := range groups {
			require.Equal(t, "me/"+g.Label, g.Name)
			if i == 0 {
				require.Equal(t, "develop", g.Base)
				continue
			}
			require.Equal(t, groups[i-1].Name, g.Base)
		}
	})
}

func TestViews(t *testing.T) {
	calls := 0
	views := chain.NewViews(func(hash string) string {
		calls++
		return hash[:4]
	})
	c := newChain("Subject line\n\nbody")[0]

	require.Equal(t, "0000 Subject line", views.ShortDescription(c))
	require.Equal(t, "0000 Subject line", views.ShortDescription(c))
	require.Equal(t, 1, calls)

	fallback := chain.NewViews(func(string) string { return "" })
	require.Equal(t, "0000000 Subject line", fallback.ShortDescription(c))
}
