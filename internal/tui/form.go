package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the operator leaves a form or run view
// before it finishes.
var ErrCancelled = errors.New("cancelled by user")

// Field is one question of a Form.
type Field struct {
	Label       string
	Placeholder string
	// Default pre-fills the input.
	Default string
	// Validate checks the trimmed answer. A nil Validate accepts anything.
	Validate func(string) error
}

// Form asks for each Field in turn. Enter submits the focused field; an
// answer its validator rejects keeps the field focused and shows the error.
type Form struct {
	title   string
	fields  []Field
	inputs  []textinput.Model
	focus   int
	err     error
	done    bool
	aborted bool
}

// NewForm creates a form with the first field focused.
func NewForm(title string, fields []Field) Form {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 500
		ti.Width = 60
		ti.SetValue(f.Default)
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return Form{
		title:  title,
		fields: fields,
		inputs: inputs,
	}
}

// Init starts the cursor blinking.
func (m Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses.
func (m Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submit()

		case tea.KeyShiftTab, tea.KeyUp:
			if m.focus > 0 {
				m.err = nil
				return m, m.setFocus(m.focus - 1)
			}
			return m, nil
		}
	}

	if m.done || len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Form) submit() (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		m.done = true
		return m, tea.Quit
	}

	value := strings.TrimSpace(m.inputs[m.focus].Value())
	if validate := m.fields[m.focus].Validate; validate != nil {
		if err := validate(value); err != nil {
			m.err = err
			return m, nil
		}
	}
	m.err = nil

	if m.focus == len(m.inputs)-1 {
		m.inputs[m.focus].Blur()
		m.done = true
		return m, tea.Quit
	}
	return m, m.setFocus(m.focus + 1)
}

func (m *Form) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// View renders the form.
func (m Form) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, f := range m.fields {
		label := dimStyle.Render(f.Label)
		if i == m.focus && !m.done {
			label = subtitleStyle.Render(f.Label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if i == m.focus && m.err != nil {
			b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString(dimStyle.Render("enter: next • shift+tab: back • esc: cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

// Done reports whether every field was accepted.
func (m Form) Done() bool {
	return m.done
}

// Values returns the trimmed answers in field order.
func (m Form) Values() []string {
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}
	return values
}

// Prompt runs a form on the terminal and returns the accepted answers in
// field order. It returns ErrCancelled if the operator leaves the form.
func Prompt(ctx context.Context, title string, fields []Field) ([]string, error) {
	final, err := tea.NewProgram(NewForm(title, fields), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	form := final.(Form)
	if !form.Done() {
		return nil, ErrCancelled
	}
	return form.Values(), nil
}
