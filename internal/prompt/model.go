package prompt

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// pastedMsg carries clipboard text read after Ctrl+V.
type pastedMsg string

// validatedMsg carries the validator outcome back into the event loop.
type validatedMsg struct {
	answer string
	err    error
}

type model struct {
	ctx      context.Context
	cfg      Config
	input    textinput.Model
	spinner  spinner.Model
	session  *Session
	readClip func() (string, error)
	result   string
	err      error
	finished bool
}

func newModel(ctx context.Context, cfg Config) *model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.EchoMode = textinput.EchoNone
	ti.Focus()
	// Ctrl+V is handled by the model so clipboard text goes through the same
	// rune path as typed input.
	ti.KeyMap.Paste.SetEnabled(false)

	return &model{
		ctx:      ctx,
		cfg:      cfg,
		input:    ti,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		session:  NewSession(),
		readClip: clipboard.ReadAll,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case validatedMsg:
		if m.session.Resolve(msg.answer, msg.err) {
			m.result = msg.answer
			m.finished = true
			return m, tea.Quit
		}
		// Put the rejected answer back so the user can keep editing it.
		m.input.SetValue(msg.answer)
		m.input.CursorEnd()
		return m, nil

	case pastedMsg:
		return m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(string(msg)), Paste: true})

	case spinner.TickMsg:
		if m.session.Status() != StatusValidating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.session.Status() != StatusIdle {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.Edit(m.input.Value())
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
		m.err = ErrInterrupted
		m.finished = true
		return m, tea.Quit
	}

	if m.session.Status() != StatusIdle {
		return m, nil
	}

	if msg.Type == tea.KeyCtrlV {
		return m, m.pasteCmd()
	}

	if msg.Type == tea.KeyEnter {
		answer, ok := m.session.Submit()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.validateCmd(answer), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.Edit(m.input.Value())
	return m, cmd
}

func (m *model) validateCmd(answer string) tea.Cmd {
	ctx, validate := m.ctx, m.cfg.Validate
	return func() tea.Msg {
		return validatedMsg{answer: answer, err: runValidator(ctx, validate, answer)}
	}
}

// pasteCmd reads the clipboard off the event loop. An unreadable or empty
// clipboard pastes nothing.
func (m *model) pasteCmd() tea.Cmd {
	read := m.readClip
	return func() tea.Msg {
		text, err := read()
		if err != nil || text == "" {
			return nil
		}
		return pastedMsg(text)
	}
}

func (m *model) View() string {
	var prefix string
	if m.session.Status() == StatusValidating {
		prefix = m.spinner.View()
	}

	line, errLine := Render(m.session, m.cfg.Label, prefix, m.cfg.MaskChar, m.cfg.Theme)
	if m.finished {
		return line + "\n"
	}
	if errLine == "" {
		return line
	}
	return line + "\n" + errLine
}

// runValidator calls validate and turns a panic into a rejection.
func runValidator(ctx context.Context, validate Validator, answer string) (err error) {
	if validate == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return validate(ctx, answer)
}
