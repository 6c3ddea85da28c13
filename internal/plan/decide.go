// Package plan decides and applies the remote changes for a chain of branch groups.
//
// Every group head is force-pushed to its branch. Then each group's open pull
// request is created or retargeted, one group at a time in chain order.
package plan

import (
	"prchain.dev/prchain/internal/chain"
	"prchain.dev/prchain/internal/github"
)

// Kind is what needs to happen to a group's pull request
type Kind int

const (
	// Create opens a new pull request
	Create Kind = iota
	// UpdateBase retargets the single open pull request
	UpdateBase
	// NoOp leaves the open pull request alone
	NoOp
	// Ambiguous means several open pull requests share the head
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Create:
		return "create"
	case UpdateBase:
		return "update base"
	case NoOp:
		return "no-op"
	case Ambiguous:
		return "ambiguous"
	}
	return "unknown"
}

// Decision is the planned pull request action for one group
type Decision struct {
	Group chain.Group
	Kind  Kind
	// Pull is the existing pull request for UpdateBase and NoOp
	Pull *github.PullRequestInfo
	// Candidates are the competing pull requests for Ambiguous
	Candidates []github.PullRequestInfo
}

// Decide compares a group with the open pull requests whose head is the group's branch
func Decide(g chain.Group, open []github.PullRequestInfo) Decision {
	d := Decision{Group: g}
	switch len(open) {
	case 0:
		d.Kind = Create
	case 1:
		pr := open[0]
		d.Pull = &pr
		if pr.Base == g.Base {
			d.Kind = NoOp
		} else {
			d.Kind = UpdateBase
		}
	default:
		d.Kind = Ambiguous
		d.Candidates = append([]github.PullRequestInfo(nil), open...)
	}
	return d
}

// CandidateURLs returns the URLs of the competing pull requests
func (d Decision) CandidateURLs() []string {
	urls := make([]string, len(d.Candidates))
	for i, pr := range d.Candidates {
		urls[i] = pr.HTMLURL
	}
	return urls
}
