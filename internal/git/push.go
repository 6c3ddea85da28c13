package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	prerrors "prchain.dev/prchain/internal/errors"
)

// ForcePush force-pushes localRef to refs/heads/<branch> on remote and
// returns git's output.
func (r *Repository) ForcePush(ctx context.Context, localRef, remote, branch string) (string, error) {
	output, err := r.runner.RunCombined(ctx, "push", "-f", remote, localRef+":refs/heads/"+branch)
	if err != nil {
		var gitErr *prerrors.GitCommandError
		if errors.As(err, &gitErr) {
			output = strings.TrimSpace(gitErr.Stdout)
			return output, fmt.Errorf("failed to push branch %s: %s: %w", branch, output, gitErr.Err)
		}
		return "", fmt.Errorf("failed to push branch %s: %w", branch, err)
	}
	return output, nil
}
