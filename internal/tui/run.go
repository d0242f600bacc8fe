package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/rom-archiver/internal/report"
)

// maxLogLines is how many log lines the run view keeps on screen.
const maxLogLines = 10

// State represents the current run view state.
type State int

const (
	StateRunning State = iota
	StateCancelling
	StateComplete
	StateError
)

// ProgressFunc reports how many items a pipeline has finished, how many
// it has in total, and how many bytes it has moved so far.
type ProgressFunc func() (finished, total int32, bytes int64)

// WorkFunc runs a pipeline and returns a one-line summary of its outcome.
type WorkFunc func(ctx context.Context) (string, error)

// Message types
type (
	// ProgressMsg carries one pipeline event into the log pane.
	ProgressMsg struct {
		Event report.ProgressEvent
	}

	// DoneMsg is sent when the work returns.
	DoneMsg struct {
		Summary string
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// RunModel is the Bubble Tea model of a running pipeline.
type RunModel struct {
	title    string
	state    State
	spinner  spinner.Model
	progress progress.Model
	logs     []report.ProgressEvent
	verbose  bool

	ctx    context.Context
	cancel context.CancelFunc
	poll   ProgressFunc
	work   WorkFunc

	finished int32
	total    int32
	bytes    int64

	summary string
	err     error
}

// NewRunModel creates a run view for work. The work runs under a context
// derived from ctx that is cancelled when the operator presses esc or ctrl+c.
func NewRunModel(ctx context.Context, title string, verbose bool, poll ProgressFunc, work WorkFunc) RunModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(ctx)

	return RunModel{
		title:    title,
		state:    StateRunning,
		spinner:  sp,
		progress: prog,
		verbose:  verbose,
		ctx:      ctx,
		cancel:   cancel,
		poll:     poll,
		work:     work,
	}
}

// Init starts the work, the spinner and the progress ticker.
func (m RunModel) Init() tea.Cmd {
	return tea.Batch(m.runWork(), m.spinner.Tick, m.tickProgress())
}

// Update handles messages and updates the model.
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.state == StateRunning {
				m.cancel()
				m.state = StateCancelling
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level == report.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, msg.Event)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}

	case DoneMsg:
		m.cancel()
		m.pollProgress()
		m.summary = msg.Summary
		switch {
		case errors.Is(msg.Err, context.Canceled):
			m.state = StateError
			m.err = ErrCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}
		return m, tea.Quit

	case TickMsg:
		if m.state == StateRunning || m.state == StateCancelling {
			m.pollProgress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *RunModel) pollProgress() {
	if m.poll != nil {
		m.finished, m.total, m.bytes = m.poll()
	}
}

func (m RunModel) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.finished) / float64(m.total)
}

// tickProgress returns a command to tick progress updates.
func (m RunModel) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// runWork runs the pipeline in the background.
func (m RunModel) runWork() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.work(m.ctx)
		return DoneMsg{Summary: summary, Err: err}
	}
}

// View renders the UI.
func (m RunModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	switch m.state {
	case StateRunning, StateCancelling:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		if m.state == StateCancelling {
			b.WriteString(warningStyle.Render("Cancelling..."))
		} else {
			b.WriteString(subtitleStyle.Render("Working..."))
		}
		b.WriteString("\n\n")
		b.WriteString(m.progress.ViewAs(m.percent()))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(m.counters()))
		b.WriteString("\n\n")
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("esc: cancel"))

	case StateComplete:
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
		b.WriteString(boxStyle.Render("✨ Complete!\n\n" + m.counters() + "\n" + m.summary))

	case StateError:
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("❌ " + m.err.Error()))
		if m.summary != "" {
			b.WriteString("\n")
			b.WriteString(dimStyle.Render(m.summary))
		}
	}
	b.WriteString("\n")

	return b.String()
}

func (m RunModel) counters() string {
	s := fmt.Sprintf("Items: %d/%d", m.finished, m.total)
	if m.bytes > 0 {
		s += fmt.Sprintf(" | Downloaded: %.2f MB", float64(m.bytes)/1024/1024)
	}
	return s
}

func (m RunModel) renderLogs() string {
	var b strings.Builder
	for _, e := range m.logs {
		b.WriteString(report.Prefix(e.Level) + " " + e.Message)
		b.WriteString("\n")
	}
	return b.String()
}

// State returns the current state.
func (m RunModel) State() State {
	return m.state
}

// Err returns the error the work ended with, ErrCancelled if the operator
// cancelled it.
func (m RunModel) Err() error {
	return m.err
}

// RunView runs one pipeline on the terminal.
//
// Pipelines take their report.Func at construction, before the view runs, so
// a RunView is created first and its Report func handed to the pipeline:
//
//	view := tui.NewRunView("Fetching ROMs", verbose)
//	mgr := download.NewManager(cfg, view.Report())
//	err := view.Run(ctx, poll, work)
type RunView struct {
	title   string
	verbose bool
	program *tea.Program
}

// NewRunView creates a run view titled title.
func NewRunView(title string, verbose bool) *RunView {
	return &RunView{title: title, verbose: verbose}
}

// Report returns a report.Func that forwards events to the log pane. Events
// emitted while the view is not running are dropped.
func (v *RunView) Report() report.Func {
	return func(e report.ProgressEvent) {
		if p := v.program; p != nil {
			p.Send(ProgressMsg{Event: e})
		}
	}
}

// Run shows the view until work returns and returns work's error. The
// final summary stays on screen.
func (v *RunView) Run(ctx context.Context, poll ProgressFunc, work WorkFunc) error {
	model := NewRunModel(ctx, v.title, v.verbose, poll, work)
	v.program = tea.NewProgram(model)
	defer func() { v.program = nil }()

	final, err := v.program.Run()
	if err != nil {
		return err
	}
	return final.(RunModel).Err()
}
