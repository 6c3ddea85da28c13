package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	prerrors "prchain.dev/prchain/internal/errors"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"merge commit", prerrors.NewMergeCommitError([]string{"abc1234 merge"}), prerrors.ErrMergeCommit},
		{"aaba", prerrors.NewAABAError([]string{"feat-x"}), prerrors.ErrAABA},
		{"unlabeled gap", prerrors.NewUnlabeledGapError([]string{"abc1234 wip"}), prerrors.ErrUnlabeledGap},
		{"multiple annotations", prerrors.NewMultipleAnnotationsError("abc1234", 2), prerrors.ErrMultipleAnnotations},
		{"empty annotation", prerrors.NewEmptyAnnotationError("abc1234"), prerrors.ErrEmptyAnnotation},
		{"ambiguous", prerrors.NewAmbiguousPullRequestError("feat-x", []string{"u1", "u2"}), prerrors.ErrAmbiguousPullRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("validation failed: %w", tt.err)
			require.True(t, errors.Is(wrapped, tt.sentinel))
		})
	}
}

func TestErrorMessagesNameOffenders(t *testing.T) {
	t.Run("aaba lists branches", func(t *testing.T) {
		err := prerrors.NewAABAError([]string{"feat-x", "feat-y"})
		require.Contains(t, err.Error(), "  - feat-x\n  - feat-y")
	})

	t.Run("merge lists commits", func(t *testing.T) {
		err := prerrors.NewMergeCommitError([]string{"abc1234 Merge branch 'x'"})
		require.Contains(t, err.Error(), "  - abc1234 Merge branch 'x'")
	})

	t.Run("ambiguous lists urls", func(t *testing.T) {
		err := prerrors.NewAmbiguousPullRequestError("feat-x", []string{"https://example.com/1", "https://example.com/2"})
		require.Contains(t, err.Error(), "Branch feat-x has multiple open PRs")
		require.Contains(t, err.Error(), "https://example.com/1\nhttps://example.com/2")
	})
}

func TestGroupErrorUnwraps(t *testing.T) {
	inner := prerrors.NewAmbiguousPullRequestError("feat-x", nil)
	err := prerrors.NewGroupError("feat-x", "reconcile", inner)

	var ambiguous *prerrors.AmbiguousPullRequestError
	require.True(t, errors.As(err, &ambiguous))
	require.Equal(t, "feat-x", ambiguous.BranchName)
	require.Contains(t, err.Error(), "reconcile feat-x")
}
