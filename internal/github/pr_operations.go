package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
)

const listPageSize = 100

// OpenPullsWithHead returns the open pull requests whose head is branch in this repository
func (c *Client) OpenPullsWithHead(ctx context.Context, branch string) ([]PullRequestInfo, error) {
	opts := &github.PullRequestListOptions{
		Head:  fmt.Sprintf("%s:%s", c.owner, branch),
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: listPageSize,
		},
	}

	var pulls []PullRequestInfo
	for {
		prs, resp, err := c.client.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s: %w", branch, err)
		}

		for _, pr := range prs {
			// The head filter is not always honoured, so check the ref ourselves
			if pr.Head == nil || pr.Head.GetRef() != branch {
				continue
			}
			pulls = append(pulls, *toPullRequestInfo(pr))
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return pulls, nil
}

// CreatePull creates a new pull request
func (c *Client) CreatePull(ctx context.Context, opts CreatePROptions) (*PullRequestInfo, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Body:  github.String(opts.Body),
		Draft: github.Bool(opts.Draft),
	}

	createdPR, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request for %s: %w", opts.Head, err)
	}
	return toPullRequestInfo(createdPR), nil
}

// UpdatePullBase changes the base branch of an existing pull request
func (c *Client) UpdatePullBase(ctx context.Context, number int, base string) error {
	update := &github.PullRequest{
		Base: &github.PullRequestBranch{
			Ref: github.String(base),
		},
	}

	_, _, err := c.client.PullRequests.Edit(ctx, c.owner, c.repo, number, update)
	if err != nil {
		return fmt.Errorf("failed to update base of pull request #%d: %w", number, err)
	}
	return nil
}
