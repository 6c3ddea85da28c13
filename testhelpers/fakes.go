package testhelpers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"prchain.dev/prchain/internal/github"
)

// PushCall records one force-push
type PushCall struct {
	LocalRef string
	Remote   string
	Branch   string
}

// FakePushSink records force-pushes in memory
type FakePushSink struct {
	// Errors maps branch names to the error their push returns
	Errors map[string]error
	// Delay is slept inside every push so that concurrency can be observed
	Delay time.Duration

	mu        sync.Mutex
	calls     []PushCall
	active    int32
	maxActive int32
}

// NewFakePushSink creates an empty FakePushSink
func NewFakePushSink() *FakePushSink {
	return &FakePushSink{Errors: make(map[string]error)}
}

// ForcePush records the push and returns the configured error, if any
func (f *FakePushSink) ForcePush(ctx context.Context, localRef, remote, branch string) (string, error) {
	n := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	for {
		m := atomic.LoadInt32(&f.maxActive)
		if n <= m || atomic.CompareAndSwapInt32(&f.maxActive, m, n) {
			break
		}
	}

	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, PushCall{LocalRef: localRef, Remote: remote, Branch: branch})
	err := f.Errors[branch]
	f.mu.Unlock()

	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s -> %s", localRef, branch), nil
}

// Calls returns the recorded pushes sorted by branch
func (f *FakePushSink) Calls() []PushCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]PushCall(nil), f.calls...)
	sort.Slice(out, func(i, j int) bool { return out[i].Branch < out[j].Branch })
	return out
}

// MaxConcurrent returns the highest number of pushes observed in flight at once
func (f *FakePushSink) MaxConcurrent() int {
	return int(atomic.LoadInt32(&f.maxActive))
}

// FakePullRegistry keeps open pull requests in memory
type FakePullRegistry struct {
	// ListErrors, CreateErrors and UpdateErrors map branch names to injected failures
	ListErrors   map[string]error
	CreateErrors map[string]error
	UpdateErrors map[string]error

	mu    sync.Mutex
	open  map[string][]github.PullRequestInfo
	calls []string
	next  int
}

// NewFakePullRegistry creates an empty FakePullRegistry
func NewFakePullRegistry() *FakePullRegistry {
	return &FakePullRegistry{
		ListErrors:   make(map[string]error),
		CreateErrors: make(map[string]error),
		UpdateErrors: make(map[string]error),
		open:         make(map[string][]github.PullRequestInfo),
	}
}

// AddOpen registers an open pull request from head into base and returns it
func (f *FakePullRegistry) AddOpen(head, base string) github.PullRequestInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(head, base, head)
}

func (f *FakePullRegistry) addLocked(head, base, title string) github.PullRequestInfo {
	f.next++
	pr := github.PullRequestInfo{
		Number:  f.next,
		HTMLURL: fmt.Sprintf("https://github.com/owner/repo/pull/%d", f.next),
		Title:   title,
		State:   "open",
		Base:    base,
		Head:    head,
	}
	f.open[head] = append(f.open[head], pr)
	return pr
}

// OpenPullsWithHead returns the open pull requests with the given head
func (f *FakePullRegistry) OpenPullsWithHead(_ context.Context, branch string) ([]github.PullRequestInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list "+branch)
	if err := f.ListErrors[branch]; err != nil {
		return nil, err
	}
	return append([]github.PullRequestInfo(nil), f.open[branch]...), nil
}

// CreatePull opens a new pull request
func (f *FakePullRegistry) CreatePull(_ context.Context, opts github.CreatePROptions) (*github.PullRequestInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("create %s -> %s", opts.Head, opts.Base))
	if err := f.CreateErrors[opts.Head]; err != nil {
		return nil, err
	}
	pr := f.addLocked(opts.Head, opts.Base, opts.Title)
	pr.Draft = opts.Draft
	return &pr, nil
}

// UpdatePullBase retargets an open pull request
func (f *FakePullRegistry) UpdatePullBase(_ context.Context, number int, base string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for head, prs := range f.open {
		for i := range prs {
			if prs[i].Number != number {
				continue
			}
			f.calls = append(f.calls, fmt.Sprintf("update %s -> %s", head, base))
			if err := f.UpdateErrors[head]; err != nil {
				return err
			}
			prs[i].Base = base
			return nil
		}
	}
	return fmt.Errorf("pull request #%d not found", number)
}

// Calls returns the recorded registry calls in order
func (f *FakePullRegistry) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// MutatingCalls returns the recorded create and update calls in order
func (f *FakePullRegistry) MutatingCalls() []string {
	var out []string
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, "list ") {
			continue
		}
		out = append(out, c)
	}
	return out
}
