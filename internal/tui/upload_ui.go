package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item statuses
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// UploadItem is one line of upload progress: a branch push or a pull request change
type UploadItem struct {
	BranchName string
	Action     string // "push", "pull request", "create" or "update base"
	Status     string
	Detail     string
	Err        error
}

// UploadUI displays the phases of an upload.
// UpdateItem may be called from several goroutines.
type UploadUI interface {
	// StartPhase begins a new group of items, e.g. pushes or pull requests
	StartPhase(title string, items []UploadItem)

	// UpdateItem updates the status of an item in the current phase
	UpdateItem(idx int, status, detail string, err error)

	// EndPhase finalizes the current phase and prints its summary
	EndPhase()
}

// NewUploadUI creates the appropriate UI based on TTY availability
func NewUploadUI(splog *Splog) UploadUI {
	if IsTTY() {
		return NewTTYUploadUI(splog.Writer())
	}
	return NewSimpleUploadUI(splog)
}

func actionVerb(action string, done bool) string {
	if done {
		switch action {
		case "push":
			return "pushed"
		case "create":
			return "created"
		case "update base":
			return "base updated"
		case "pull request":
			return "PR"
		}
		return action
	}
	switch action {
	case "push":
		return "Pushing"
	case "create":
		return "Creating PR"
	case "update base":
		return "Updating base"
	case "pull request":
		return "Syncing PR"
	}
	return action
}

// ============================================================================
// SimpleUploadUI - line-by-line output for non-TTY environments
// ============================================================================

// SimpleUploadUI implements UploadUI with line-by-line output
type SimpleUploadUI struct {
	splog *Splog

	mu        sync.Mutex
	items     []UploadItem
	completed int
	failed    int
}

// NewSimpleUploadUI creates a new simple upload UI
func NewSimpleUploadUI(splog *Splog) *SimpleUploadUI {
	return &SimpleUploadUI{splog: splog}
}

func (u *SimpleUploadUI) StartPhase(title string, items []UploadItem) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.items = append([]UploadItem(nil), items...)
	u.completed = 0
	u.failed = 0
	u.splog.Info("%s", title)
}

func (u *SimpleUploadUI) UpdateItem(idx int, status, detail string, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if idx < 0 || idx >= len(u.items) {
		return
	}
	item := &u.items[idx]
	item.Status = status
	item.Detail = detail
	item.Err = err

	switch status {
	case StatusRunning:
		u.splog.Debug("  ⋯ %s %s...", actionVerb(item.Action, false), item.BranchName)
	case StatusDone:
		u.completed++
		line := fmt.Sprintf("  %s %s %s", ColorGreen("✓"), item.BranchName, actionVerb(item.Action, true))
		if detail != "" {
			line += " → " + detail
		}
		u.splog.Info("%s", line)
	case StatusSkipped:
		u.splog.Info("  ▸ %s %s", item.BranchName, ColorDim("— "+detail))
	case StatusError:
		u.failed++
		u.splog.Info("  %s %s %s failed: %v", ColorRed("✗"), item.BranchName, item.Action, err)
	}
}

func (u *SimpleUploadUI) EndPhase() {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.failed > 0 {
		u.splog.Info("%s", ColorRed(fmt.Sprintf("Completed: %d, Failed: %d", u.completed, u.failed)))
	}
	u.splog.Newline()
}

// ============================================================================
// TTYUploadUI - bubbletea spinner view
// ============================================================================

type itemUpdateMsg struct {
	idx    int
	status string
	detail string
	err    error
}

type phaseDoneMsg struct{}

type uploadStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	branchStyle  lipgloss.Style
	urlStyle     lipgloss.Style
	dimStyle     lipgloss.Style
}

// UploadModel is the bubbletea model for one upload phase
type UploadModel struct {
	title   string
	items   []UploadItem
	spinner spinner.Model
	done    bool
	styles  uploadStyles
}

// NewUploadModel creates the model for one phase
func NewUploadModel(title string, items []UploadItem) UploadModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return UploadModel{
		title:   title,
		items:   append([]UploadItem(nil), items...),
		spinner: s,
		styles: uploadStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			branchStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			urlStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (m UploadModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m UploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case itemUpdateMsg:
		if msg.idx >= 0 && msg.idx < len(m.items) {
			m.items[msg.idx].Status = msg.status
			m.items[msg.idx].Detail = msg.detail
			m.items[msg.idx].Err = msg.err
		}

	case phaseDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m UploadModel) View() string {
	var b strings.Builder
	b.WriteString(m.title + "\n")

	completed, failed := 0, 0
	for _, item := range m.items {
		var icon, status string
		switch item.Status {
		case StatusRunning:
			icon = m.spinner.View()
			status = m.styles.spinnerStyle.Render(actionVerb(item.Action, false) + "...")
		case StatusDone:
			completed++
			icon = m.styles.doneStyle.Render("✓")
			status = m.styles.doneStyle.Render(actionVerb(item.Action, true))
		case StatusSkipped:
			icon = m.styles.dimStyle.Render("▸")
			status = m.styles.dimStyle.Render(item.Detail)
		case StatusError:
			failed++
			icon = m.styles.errorStyle.Render("✗")
			status = m.styles.errorStyle.Render("failed")
		default:
			icon = m.styles.dimStyle.Render("○")
			status = m.styles.dimStyle.Render(StatusPending)
		}

		line := fmt.Sprintf("  %s %s %s", icon, m.styles.branchStyle.Render(item.BranchName), status)
		if item.Status == StatusDone && item.Detail != "" {
			line += " " + m.styles.urlStyle.Render("→ "+item.Detail)
		}
		if item.Status == StatusError && item.Err != nil {
			line += " " + m.styles.errorStyle.Render(item.Err.Error())
		}
		b.WriteString(line + "\n")
	}

	if m.done && failed > 0 {
		b.WriteString(m.styles.errorStyle.Render(fmt.Sprintf("Completed: %d, Failed: %d", completed, failed)) + "\n")
	}
	return b.String()
}

// TTYUploadUI implements UploadUI by running one bubbletea program per phase
type TTYUploadUI struct {
	out     io.Writer
	program *tea.Program
	exited  chan struct{}
}

// NewTTYUploadUI creates a new TTY upload UI writing to out
func NewTTYUploadUI(out io.Writer) *TTYUploadUI {
	return &TTYUploadUI{out: out}
}

func (u *TTYUploadUI) StartPhase(title string, items []UploadItem) {
	u.EndPhase()

	u.program = tea.NewProgram(NewUploadModel(title, items), tea.WithOutput(u.out))
	u.exited = make(chan struct{})
	go func(p *tea.Program, exited chan struct{}) {
		defer close(exited)
		_, _ = p.Run()
	}(u.program, u.exited)
}

func (u *TTYUploadUI) UpdateItem(idx int, status, detail string, err error) {
	if u.program == nil {
		return
	}
	u.program.Send(itemUpdateMsg{idx: idx, status: status, detail: detail, err: err})
}

func (u *TTYUploadUI) EndPhase() {
	if u.program == nil {
		return
	}
	u.program.Send(phaseDoneMsg{})
	<-u.exited
	u.program = nil
	u.exited = nil
}
