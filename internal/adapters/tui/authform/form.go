package authform

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/authbox/authbox/internal/application"
)

var (
	ErrAborted              = errors.New("form aborted")
	ErrUnexpectedFinalModel = errors.New("unexpected final bubbletea model type")
)

// Values is what the form collects before handing off to submit.
type Values struct {
	Username string
	Password string
	Name     string
	Remember bool
}

// SubmitFunc runs the auth operation. A failed Result keeps the form open with
// the message shown next to it.
type SubmitFunc func(Values) application.Result

type Options struct {
	Title    string
	WithName bool
	Remember bool
}

const (
	fieldUsername = iota
	fieldPassword
	fieldName
)

type Model struct {
	title    string
	inputs   []textinput.Model
	remember bool
	focus    int
	submit   SubmitFunc
	styles   styles
	message  string
	done     bool
	aborted  bool
	result   application.Result
}

func New(opts Options, submit SubmitFunc) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	inputs := []textinput.Model{username, password}
	if opts.WithName {
		name := textinput.New()
		name.Placeholder = "display name (optional)"
		name.CharLimit = 64
		name.Width = 32
		inputs = append(inputs, name)
	}

	return Model{
		title:    opts.Title,
		inputs:   inputs,
		remember: opts.Remember,
		submit:   submit,
		styles:   newStyles(),
	}
}

// rememberRow is the focus index of the remember-me toggle, one past the
// last text input.
func (m Model) rememberRow() int {
	return len(m.inputs)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocusedInput(msg)
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		return m.moveFocus(1), nil

	case tea.KeyShiftTab, tea.KeyUp:
		return m.moveFocus(-1), nil

	case tea.KeySpace:
		if m.focus == m.rememberRow() {
			m.remember = !m.remember
			return m, nil
		}
		return m.updateFocusedInput(msg)

	case tea.KeyEnter:
		if m.focus < m.rememberRow() {
			return m.moveFocus(1), nil
		}
		return m.submitForm()

	default:
		return m.updateFocusedInput(msg)
	}
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	rows := m.rememberRow() + 1
	m.focus = (m.focus + delta + rows) % rows

	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}

	return m
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	m.result = m.submit(m.Values())
	if !m.result.OK {
		m.message = m.result.Message
		return m, nil
	}

	m.done = true
	return m, tea.Quit
}

// Values returns the form's current contents.
func (m Model) Values() Values {
	values := Values{
		Username: m.inputs[fieldUsername].Value(),
		Password: m.inputs[fieldPassword].Value(),
		Remember: m.remember,
	}
	if len(m.inputs) > fieldName {
		values.Name = m.inputs[fieldName].Value()
	}

	return values
}

// Result returns the outcome of the last submit.
func (m Model) Result() application.Result {
	return m.result
}

func (m Model) Aborted() bool {
	return m.aborted
}

func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}

	lines := []string{m.styles.title.Render(m.title)}

	for i := range m.inputs {
		lines = append(lines, m.inputs[i].View())
	}

	lines = append(lines, m.rememberView())

	if m.message != "" {
		lines = append(lines, m.styles.warning.Render(m.message))
	}

	lines = append(lines, m.styles.help.Render("enter to continue, space to toggle, esc to cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m Model) rememberView() string {
	checkbox := "[ ]"
	if m.remember {
		checkbox = "[x]"
	}

	label := fmt.Sprintf("%s remember me", checkbox)
	if m.focus == m.rememberRow() {
		return m.styles.focused.Render("> " + label)
	}

	return m.styles.blurred.Render("  " + label)
}

// Run drives the form on the caller's terminal and returns the result of the
// successful submit.
func Run(opts Options, submit SubmitFunc) (application.Result, error) {
	p := tea.NewProgram(New(opts, submit))

	finalModel, err := p.Run()
	if err != nil {
		return application.Result{}, err
	}

	form, ok := finalModel.(Model)
	if !ok {
		return application.Result{}, ErrUnexpectedFinalModel
	}

	if form.Aborted() {
		return application.Result{}, ErrAborted
	}

	return form.Result(), nil
}
