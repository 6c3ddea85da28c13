package testhelpers

import (
	"fmt"

	"github.com/google/go-github/v62/github"
)

// SamplePRData provides common PR data for testing
type SamplePRData struct {
	Number  int
	Title   string
	Body    string
	Head    string
	Base    string
	HTMLURL string
	Draft   bool
	State   string
}

// NewSamplePullRequest creates a github.PullRequest from sample data
func NewSamplePullRequest(data SamplePRData) *github.PullRequest {
	return &github.PullRequest{
		Number:  github.Int(data.Number),
		Title:   github.String(data.Title),
		Body:    github.String(data.Body),
		Head:    &github.PullRequestBranch{Ref: github.String(data.Head)},
		Base:    &github.PullRequestBranch{Ref: github.String(data.Base)},
		HTMLURL: github.String(data.HTMLURL),
		Draft:   github.Bool(data.Draft),
		State:   github.String(data.State),
	}
}

// OpenPRData returns data for an open PR from head into base
func OpenPRData(number int, head, base string) SamplePRData {
	return SamplePRData{
		Number:  number,
		Title:   head,
		Head:    head,
		Base:    base,
		HTMLURL: fmt.Sprintf("https://github.com/owner/repo/pull/%d", number),
		State:   "open",
	}
}

// ClosedPRData returns data for a closed PR from head into base
func ClosedPRData(number int, head, base string) SamplePRData {
	data := OpenPRData(number, head, base)
	data.State = "closed"
	return data
}
