package git

import (
	"context"
	"fmt"
	"strings"

	prerrors "prchain.dev/prchain/internal/errors"
)

// BranchPrefixKey is the git config key holding the remote branch prefix
const BranchPrefixKey = "pr-chain.branch-prefix"

// Upstream identifies the branch a local branch tracks
type Upstream struct {
	// Remote is the remote name, or "." for a local upstream
	Remote string
	// Branch is the branch name on the remote
	Branch string
	// Ref is the full local ref, e.g. refs/remotes/origin/main
	Ref string
}

// String returns the short name, e.g. origin/main
func (u Upstream) String() string {
	if u.Remote == "" || u.Remote == "." {
		return u.Branch
	}
	return u.Remote + "/" + u.Branch
}

// CurrentBranchRef returns the full ref HEAD points to
func (r *Repository) CurrentBranchRef(ctx context.Context) (string, error) {
	ref, err := r.runner.Run(ctx, "symbolic-ref", "-q", "HEAD")
	if err != nil || ref == "" {
		return "", fmt.Errorf("HEAD is not on a branch")
	}
	return ref, nil
}

// UpstreamOf returns the upstream tracked by branchRef
func (r *Repository) UpstreamOf(ctx context.Context, branchRef string) (Upstream, error) {
	out, err := r.runner.Run(ctx, "for-each-ref",
		"--format=%(upstream)%09%(upstream:remotename)", branchRef)
	if err != nil {
		return Upstream{}, fmt.Errorf("failed to read upstream of %s: %w", branchRef, err)
	}

	fields := strings.Split(out, "\t")
	if len(fields) != 2 || fields[0] == "" {
		return Upstream{}, fmt.Errorf("%w: %s", prerrors.ErrNoUpstream, branchRef)
	}

	up := Upstream{Ref: fields[0], Remote: fields[1]}
	switch {
	case up.Remote != "" && up.Remote != "." && strings.HasPrefix(up.Ref, "refs/remotes/"+up.Remote+"/"):
		up.Branch = strings.TrimPrefix(up.Ref, "refs/remotes/"+up.Remote+"/")
	case strings.HasPrefix(up.Ref, "refs/heads/"):
		up.Branch = strings.TrimPrefix(up.Ref, "refs/heads/")
	default:
		up.Branch = up.Ref[strings.LastIndex(up.Ref, "/")+1:]
	}
	return up, nil
}

// BranchPrefix returns the configured remote branch prefix, or "" when unset
func (r *Repository) BranchPrefix(ctx context.Context) (string, error) {
	prefix, err := r.runner.Run(ctx, "config", "--get", BranchPrefixKey)
	if err != nil {
		// git config exits 1 when the key is missing
		if exitCode(err) == 1 {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", BranchPrefixKey, err)
	}
	return prefix, nil
}
