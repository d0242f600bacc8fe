package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/rom-archiver/internal/report"
)

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func press(m tea.Model, key tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: key})
}

var errNotNumber = errors.New("not a number")

func digitsOnly(s string) error {
	if s == "" || strings.Trim(s, "0123456789") != "" {
		return errNotNumber
	}
	return nil
}

func TestForm_RepromptsUntilValid(t *testing.T) {
	var m tea.Model = NewForm("Fetch", []Field{
		{Label: "Workers", Validate: digitsOnly},
		{Label: "Region", Default: "All"},
	})

	m = typeText(m, "abc")
	m, cmd := press(m, tea.KeyEnter)
	form := m.(Form)
	if !errors.Is(form.err, errNotNumber) {
		t.Fatalf("err = %v, want errNotNumber", form.err)
	}
	if form.focus != 0 || form.Done() || cmd != nil {
		t.Fatalf("invalid answer moved on: focus=%d done=%v", form.focus, form.Done())
	}
	if !strings.Contains(form.View(), "not a number") {
		t.Error("validation error not rendered")
	}

	// Clear and retype.
	for range 3 {
		m, _ = press(m, tea.KeyBackspace)
	}
	m = typeText(m, "4")
	m, _ = press(m, tea.KeyEnter)
	form = m.(Form)
	if form.err != nil || form.focus != 1 {
		t.Fatalf("valid answer rejected: err=%v focus=%d", form.err, form.focus)
	}

	m, cmd = press(m, tea.KeyEnter)
	form = m.(Form)
	if !form.Done() || cmd == nil {
		t.Fatal("form not done after last field")
	}
	if got := form.Values(); len(got) != 2 || got[0] != "4" || got[1] != "All" {
		t.Errorf("Values() = %q", got)
	}
}

func TestForm_EscAborts(t *testing.T) {
	var m tea.Model = NewForm("Convert", []Field{{Label: "Folder"}})
	m, cmd := press(m, tea.KeyEsc)
	form := m.(Form)
	if form.Done() || !form.aborted || cmd == nil {
		t.Errorf("done=%v aborted=%v", form.Done(), form.aborted)
	}
}

func TestForm_ShiftTabGoesBack(t *testing.T) {
	var m tea.Model = NewForm("Fetch", []Field{{Label: "URL"}, {Label: "Workers"}})
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyShiftTab)
	if f := m.(Form); f.focus != 0 {
		t.Errorf("focus = %d, want 0", f.focus)
	}
}

func TestForm_TrimsAnswers(t *testing.T) {
	var m tea.Model = NewForm("Convert", []Field{{Label: "Folder"}})
	m = typeText(m, "  /roms  ")
	m, _ = press(m, tea.KeyEnter)
	if got := m.(Form).Values()[0]; got != "/roms" {
		t.Errorf("value = %q", got)
	}
}

func newTestRunModel(verbose bool) RunModel {
	poll := func() (int32, int32, int64) { return 3, 4, 2048 }
	work := func(context.Context) (string, error) { return "", nil }
	return NewRunModel(context.Background(), "Test", verbose, poll, work)
}

func TestRunModel_LogPane(t *testing.T) {
	var m tea.Model = newTestRunModel(false)

	m, _ = m.Update(ProgressMsg{Event: report.ProgressEvent{Message: "debug", Level: report.LevelVerbose}})
	if n := len(m.(RunModel).logs); n != 0 {
		t.Errorf("verbose event shown without verbose: %d lines", n)
	}

	for i := range maxLogLines + 5 {
		m, _ = m.Update(ProgressMsg{Event: report.ProgressEvent{Message: fmt.Sprintf("line %d", i), Level: report.LevelInfo}})
	}
	logs := m.(RunModel).logs
	if len(logs) != maxLogLines {
		t.Fatalf("kept %d lines, want %d", len(logs), maxLogLines)
	}
	if logs[len(logs)-1].Message != fmt.Sprintf("line %d", maxLogLines+4) {
		t.Errorf("last line = %q", logs[len(logs)-1].Message)
	}
}

func TestRunModel_TickPollsProgress(t *testing.T) {
	var m tea.Model = newTestRunModel(false)
	m, cmd := m.Update(TickMsg{})
	rm := m.(RunModel)
	if rm.finished != 3 || rm.total != 4 || rm.bytes != 2048 {
		t.Errorf("counters = %d/%d %d", rm.finished, rm.total, rm.bytes)
	}
	if cmd == nil {
		t.Error("tick not rescheduled")
	}
	if rm.percent() != 0.75 {
		t.Errorf("percent = %v", rm.percent())
	}
}

func TestRunModel_Done(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantState State
		wantErr   error
	}{
		{"success", nil, StateComplete, nil},
		{"cancelled", context.Canceled, StateError, ErrCancelled},
		{"failure", errNotNumber, StateError, errNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = newTestRunModel(false)
			m, cmd := m.Update(DoneMsg{Summary: "4 file(s)", Err: tt.err})
			rm := m.(RunModel)
			if rm.State() != tt.wantState {
				t.Errorf("state = %v, want %v", rm.State(), tt.wantState)
			}
			if !errors.Is(rm.Err(), tt.wantErr) {
				t.Errorf("err = %v, want %v", rm.Err(), tt.wantErr)
			}
			if cmd == nil {
				t.Error("view did not quit")
			}
			if !strings.Contains(rm.View(), "4 file(s)") {
				t.Error("summary not rendered")
			}
		})
	}
}

func TestRunModel_EscCancelsWork(t *testing.T) {
	m := newTestRunModel(false)
	ctx := m.ctx
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if updated.(RunModel).State() != StateCancelling {
		t.Errorf("state = %v, want StateCancelling", updated.(RunModel).State())
	}
	if ctx.Err() == nil {
		t.Error("work context not cancelled")
	}
}
