package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginState is the two-field sign-in form. The identifier field accepts a
// username or an email; the backend checks both.
type loginState struct {
	inputs   [2]textinput.Model
	focusIdx int
	busy     bool
	err      error
}

func newLoginState() loginState {
	identifier := textinput.New()
	identifier.Placeholder = "username or email"
	identifier.CharLimit = 120
	identifier.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginState{inputs: [2]textinput.Model{identifier, password}}
}

// handleLoginKey drives the sign-in form.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.currentView = ViewHome
		return m, nil

	case "tab", "shift+tab", "down", "up":
		// Two fields, so forward and backward are the same hop.
		m.login.inputs[m.login.focusIdx].Blur()
		m.login.focusIdx = (m.login.focusIdx + 1) % 2
		m.login.inputs[m.login.focusIdx].Focus()
		return m, textinput.Blink

	case "enter":
		identifier := strings.TrimSpace(m.login.inputs[0].Value())
		password := m.login.inputs[1].Value()
		if identifier == "" || password == "" {
			m.login.err = fmt.Errorf("both fields are required")
			return m, nil
		}
		m.login.busy = true
		m.login.err = nil
		return m, m.loginCmd(identifier, password)
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focusIdx], cmd = m.login.inputs[m.login.focusIdx].Update(msg)
	return m, cmd
}

// renderLogin renders the sign-in form.
func (m Model) renderLogin() string {
	s := m.theme.Styles()
	var b strings.Builder

	b.WriteString(s.Title.Render("Sign in to VidTube"))
	b.WriteString("\n\n")
	b.WriteString(s.MutedText.Render("Identifier"))
	b.WriteString("\n")
	b.WriteString(m.login.inputs[0].View())
	b.WriteString("\n\n")
	b.WriteString(s.MutedText.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.login.inputs[1].View())
	b.WriteString("\n\n")

	switch {
	case m.login.busy:
		b.WriteString(s.InfoText.Render("signing in…"))
	case m.login.err != nil:
		b.WriteString(s.DangerText.Render(fmt.Sprintf("✗ %v", m.login.err)))
	default:
		b.WriteString(s.FaintText.Render("enter to submit · tab to switch fields · esc to cancel"))
	}
	b.WriteString("\n")

	return s.Box.Render(b.String())
}
