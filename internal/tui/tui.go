package tui

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI asks the user for input on a terminal. The master password is only
// ever read here; it is never taken from flags or the environment.
type TUI struct {
	in  io.Reader
	out io.Writer
}

func New() *TUI {
	return &TUI{in: os.Stdin, out: os.Stderr}
}

// NewWithIO is used by tests and non-interactive callers.
func NewWithIO(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

// Prompt reads one visible line.
func (t *TUI) Prompt(label string, required bool) (string, error) {
	return t.run(newPromptModel(label, false, required))
}

// PromptSecret reads one masked line. Empty input is rejected.
func (t *TUI) PromptSecret(label string) (string, error) {
	return t.run(newPromptModel(label, true, true))
}

func (t *TUI) run(model promptModel) (string, error) {
	finalModel, err := tea.NewProgram(model, tea.WithInput(t.in), tea.WithOutput(t.out)).Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(promptModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.cancelled {
		return "", ErrUserQuit
	}
	if result.required && result.Value() == "" {
		return "", ErrEmptyInput
	}
	return result.Value(), nil
}
