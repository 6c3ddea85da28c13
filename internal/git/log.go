package git

import (
	"context"
	"fmt"
)

// LogEntry is one commit read from the repository
type LogEntry struct {
	Hash         string
	ParentHashes []string
	Message      string
}

// ParentCount returns the number of parents of the commit
func (e LogEntry) ParentCount() int {
	return len(e.ParentHashes)
}

// ParentHash returns the first parent hash, or "" for a root commit
func (e LogEntry) ParentHash() string {
	if len(e.ParentHashes) == 0 {
		return ""
	}
	return e.ParentHashes[0]
}

// CommitsSince returns the commits reachable from HEAD but not from
// upstreamRef, oldest first.
func (r *Repository) CommitsSince(ctx context.Context, upstreamRef string) ([]LogEntry, error) {
	hashes, err := r.runner.RunLines(ctx, "rev-list", "--reverse", "--topo-order", upstreamRef+"..HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to list commits since %s: %w", upstreamRef, err)
	}

	entries := make([]LogEntry, 0, len(hashes))
	for _, hash := range hashes {
		entry, err := r.ReadCommit(hash)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Abbrev returns git's unique abbreviation of hash, or "" if git cannot produce one
func (r *Repository) Abbrev(ctx context.Context, hash string) string {
	short, err := r.runner.Run(ctx, "rev-parse", "--short", hash)
	if err != nil {
		return ""
	}
	return short
}
