// Package github provides the pull-request registry backed by the GitHub API.
package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
)

// PullRequestInfo contains information about a pull request
// This is a simplified struct to avoid coupling to go-github library
type PullRequestInfo struct {
	Number  int
	HTMLURL string
	Title   string
	Body    string
	State   string
	Draft   bool
	Base    string
	Head    string
}

// CreatePROptions contains options for creating a pull request
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// Client talks to the pulls API of one repository
type Client struct {
	client *github.Client
	owner  string
	repo   string
}

// NewClient creates a Client for the repository described by info, authenticated with token
func NewClient(ctx context.Context, token string, info *RepoInfo) (*Client, error) {
	client, err := createGitHubClient(ctx, info.Hostname, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return NewClientFromGitHub(client, info.Owner, info.Repo), nil
}

// NewClientFromGitHub wraps an already configured go-github client
func NewClientFromGitHub(client *github.Client, owner, repo string) *Client {
	return &Client{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// GetOwnerRepo returns the repository owner and name
func (c *Client) GetOwnerRepo() (string, string) {
	return c.owner, c.repo
}

func toPullRequestInfo(pr *github.PullRequest) *PullRequestInfo {
	info := &PullRequestInfo{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		State:   pr.GetState(),
		Draft:   pr.GetDraft(),
	}
	if pr.Base != nil {
		info.Base = pr.Base.GetRef()
	}
	if pr.Head != nil {
		info.Head = pr.Head.GetRef()
	}
	return info
}
