// Package report carries operator-facing progress messages from the
// pipelines to whichever front end is running them.
//
// Pipelines never print. They call a Func with a ProgressEvent and the CLI
// hands those events to a Printer, while the TUI renders them in its log pane.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a single progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Func receives progress events. A nil Func discards them.
type Func func(ProgressEvent)

// Emit sends an event built from format and args to fn, if fn is set.
func (fn Func) Emit(level ProgressLevel, format string, args ...any) {
	if fn == nil {
		return
	}
	fn(ProgressEvent{Message: fmt.Sprintf(format, args...), Level: level})
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

// Prefix returns the styled marker printed before a message of the level.
func Prefix(level ProgressLevel) string {
	switch level {
	case LevelError:
		return errorStyle.Render("✗")
	case LevelWarning:
		return warningStyle.Render("!")
	case LevelSuccess:
		return successStyle.Render("✓")
	case LevelInfo:
		return infoStyle.Render("›")
	default:
		return dimStyle.Render("•")
	}
}

// Printer writes events as one line each. Verbose events are dropped unless
// Verbose is set. Printer is safe for concurrent use.
type Printer struct {
	Out     io.Writer
	Verbose bool

	mu sync.Mutex
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{Out: out, Verbose: verbose}
}

// Print writes a single event.
func (p *Printer) Print(event ProgressEvent) {
	if event.Level == LevelVerbose && !p.Verbose {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.Out, Prefix(event.Level)+" "+event.Message)
}

// Func returns p.Print as a Func.
func (p *Printer) Func() Func {
	return p.Print
}
