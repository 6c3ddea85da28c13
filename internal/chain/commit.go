package chain

import (
	"strings"
	"sync"
)

// Commit is one local commit in the chain, oldest first.
type Commit struct {
	Hash        string
	ParentHash  string // previous commit in the chain, empty for the root
	Message     string
	ParentCount int

	// Derived by Annotate.
	Label string // destination branch, empty when unassigned
	Stop  bool   // this commit or an ancestor carries the STOP marker
}

// IsMerge reports whether the commit has more than one parent in the repository
func (c Commit) IsMerge() bool {
	return c.ParentCount > 1
}

// Labeled reports whether the commit resolved to a destination branch
func (c Commit) Labeled() bool {
	return c.Label != ""
}

// Pushable reports whether the commit ends up on a remote branch
func (c Commit) Pushable() bool {
	return c.Labeled() && !c.Stop
}

// Subject returns the first line of the commit message
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return strings.TrimSpace(subject)
}

// Describer renders a commit for user-facing messages.
type Describer interface {
	ShortDescription(c Commit) string
}

// Views memoizes derived commit views keyed by commit hash.
// Abbreviating a hash may hit the repository, so each hash is resolved once.
type Views struct {
	abbrev func(hash string) string

	mu    sync.Mutex
	short map[string]string
}

// NewViews creates a Views that abbreviates hashes with abbrev.
// A nil abbrev truncates hashes to seven characters.
func NewViews(abbrev func(hash string) string) *Views {
	if abbrev == nil {
		abbrev = truncateHash
	}
	return &Views{
		abbrev: abbrev,
		short:  make(map[string]string),
	}
}

// ShortDescription returns "<short hash> <subject>"
func (v *Views) ShortDescription(c Commit) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if desc, ok := v.short[c.Hash]; ok {
		return desc
	}
	short := v.abbrev(c.Hash)
	if short == "" {
		short = truncateHash(c.Hash)
	}
	desc := short + " " + c.Subject()
	v.short[c.Hash] = desc
	return desc
}

func truncateHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// describe falls back to plain hash truncation when d is nil
func describe(d Describer, c Commit) string {
	if d == nil {
		return truncateHash(c.Hash) + " " + c.Subject()
	}
	return d.ShortDescription(c)
}

func describeAll(d Describer, commits []Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = describe(d, c)
	}
	return out
}
