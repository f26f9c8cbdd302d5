// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptModel is a single-line Bubble Tea input. With secret set the value
// is echoed as asterisks.
type promptModel struct {
	label    string
	input    textinput.Model
	required bool

	errMsg    string
	submitted bool
	cancelled bool
}

func newPromptModel(label string, secret, required bool) promptModel {
	input := textinput.New()
	input.Placeholder = strings.ToLower(label)
	input.CharLimit = 256
	input.Width = 40
	if secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '*'
	}
	input.Focus()

	return promptModel{label: label, input: input, required: required}
}

// Init implements [tea.Model].
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. enter submits, esc and ctrl+c cancel.
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.required && m.input.Value() == "" {
				m.errMsg = m.label + " is required"
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m promptModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: confirm │ esc: cancel"))
	return appStyle.Render(b.String())
}

// Value returns the entered text.
func (m promptModel) Value() string {
	return m.input.Value()
}
