package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// PRs maps head branch names to the pull requests with that head
	PRs map[string][]*github.PullRequest
	// CreatedPRs stores PRs that were created (for testing)
	CreatedPRs []*github.PullRequest
	// UpdatedPRs stores PRs that were updated, by number (for testing)
	UpdatedPRs map[int]*github.PullRequest
	// ErrorResponses maps "METHOD head-or-number" to an HTTP status to return
	ErrorResponses map[string]int
	// IgnoreHeadFilter makes list requests return every PR, as some API versions do
	IgnoreHeadFilter bool
	// Requests records "METHOD path" of every request received
	Requests []string
	// Owner and Repo for the mock server
	Owner string
	Repo  string

	mu         sync.Mutex
	nextNumber int
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		PRs:            make(map[string][]*github.PullRequest),
		CreatedPRs:     make([]*github.PullRequest, 0),
		UpdatedPRs:     make(map[int]*github.PullRequest),
		ErrorResponses: make(map[string]int),
		Owner:          "owner",
		Repo:           "repo",
	}
}

// AddPR registers an existing pull request with the server
func (c *MockGitHubServerConfig) AddPR(pr *github.PullRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	head := pr.GetHead().GetRef()
	c.PRs[head] = append(c.PRs[head], pr)
	if pr.GetNumber() > c.nextNumber {
		c.nextNumber = pr.GetNumber()
	}
}

// MutatingRequests returns the recorded requests that were not GETs
func (c *MockGitHubServerConfig) MutatingRequests() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, r := range c.Requests {
		if !strings.HasPrefix(r, http.MethodGet+" ") {
			out = append(out, r)
		}
	}
	return out
}

func (c *MockGitHubServerConfig) findPR(number int) *github.PullRequest {
	for _, prs := range c.PRs {
		for _, pr := range prs {
			if pr.GetNumber() == number {
				return pr
			}
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub pulls API
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/pulls"

	handler := func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		defer config.mu.Unlock()

		config.Requests = append(config.Requests, r.Method+" "+r.URL.Path)

		switch {
		case r.URL.Path == basePath && r.Method == http.MethodGet:
			handleList(w, r, config)
		case r.URL.Path == basePath && r.Method == http.MethodPost:
			handleCreate(w, r, config)
		case strings.HasPrefix(r.URL.Path, basePath+"/") && r.Method == http.MethodPatch:
			handleUpdate(w, r, config, strings.TrimPrefix(r.URL.Path, basePath+"/"))
		default:
			http.Error(w, fmt.Sprintf("Unhandled path: %s (method: %s)", r.URL.Path, r.Method), http.StatusNotFound)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc(basePath, handler)
	mux.HandleFunc(basePath+"/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })
	return server
}

func handleList(w http.ResponseWriter, r *http.Request, config *MockGitHubServerConfig) {
	query := r.URL.Query()
	head := strings.TrimPrefix(query.Get("head"), config.Owner+":")
	if status, ok := config.ErrorResponses[http.MethodGet+" "+head]; ok {
		http.Error(w, "mock failure", status)
		return
	}

	state := query.Get("state")
	if state == "" {
		state = "open"
	}

	var candidates []*github.PullRequest
	if head != "" && !config.IgnoreHeadFilter {
		candidates = config.PRs[head]
	} else {
		for _, prs := range config.PRs {
			candidates = append(candidates, prs...)
		}
	}

	matched := []*github.PullRequest{}
	for _, pr := range candidates {
		if state == "all" || pr.GetState() == state {
			matched = append(matched, pr)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].GetNumber() < matched[j].GetNumber() })

	perPage, _ := strconv.Atoi(query.Get("per_page"))
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	if perPage > 0 {
		start := (page - 1) * perPage
		if start > len(matched) {
			start = len(matched)
		}
		end := start + perPage
		if end < len(matched) {
			next := *r.URL
			q := next.Query()
			q.Set("page", strconv.Itoa(page+1))
			next.RawQuery = q.Encode()
			w.Header().Set("Link", fmt.Sprintf(`<http://%s%s>; rel="next"`, r.Host, next.RequestURI()))
		} else {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	writeJSON(w, http.StatusOK, matched)
}

func handleCreate(w http.ResponseWriter, r *http.Request, config *MockGitHubServerConfig) {
	var newPR github.NewPullRequest
	if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if status, ok := config.ErrorResponses[http.MethodPost+" "+newPR.GetHead()]; ok {
		http.Error(w, "mock failure", status)
		return
	}

	config.nextNumber++
	number := config.nextNumber
	pr := &github.PullRequest{
		Number:  github.Int(number),
		Title:   newPR.Title,
		Body:    newPR.Body,
		State:   github.String("open"),
		Head:    &github.PullRequestBranch{Ref: newPR.Head},
		Base:    &github.PullRequestBranch{Ref: newPR.Base},
		Draft:   newPR.Draft,
		HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d", config.Owner, config.Repo, number)),
	}

	config.CreatedPRs = append(config.CreatedPRs, pr)
	config.PRs[newPR.GetHead()] = append(config.PRs[newPR.GetHead()], pr)

	writeJSON(w, http.StatusCreated, pr)
}

func handleUpdate(w http.ResponseWriter, r *http.Request, config *MockGitHubServerConfig, numberStr string) {
	number, err := strconv.Atoi(numberStr)
	if err != nil {
		http.Error(w, "Invalid PR number", http.StatusBadRequest)
		return
	}
	if status, ok := config.ErrorResponses[http.MethodPatch+" "+numberStr]; ok {
		http.Error(w, "mock failure", status)
		return
	}

	// The API sends {"base": "branch-name"}, not {"base": {"ref": ...}}
	var update struct {
		Title *string `json:"title,omitempty"`
		Body  *string `json:"body,omitempty"`
		Base  *string `json:"base,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pr := config.findPR(number)
	if pr == nil {
		http.Error(w, "PR not found", http.StatusNotFound)
		return
	}
	if update.Title != nil {
		pr.Title = update.Title
	}
	if update.Body != nil {
		pr.Body = update.Body
	}
	if update.Base != nil {
		pr.Base = &github.PullRequestBranch{Ref: update.Base}
	}
	config.UpdatedPRs[number] = pr

	writeJSON(w, http.StatusOK, pr)
}

// NewMockGitHubClient creates a GitHub client configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*github.Client, string, string) {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, config.Owner, config.Repo
}
