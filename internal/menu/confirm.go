package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmForm asks a yes/no question about deleting one product.
type ConfirmForm struct {
	prompt DeletePrompt
}

func NewConfirmForm(prompt DeletePrompt) *ConfirmForm {
	return &ConfirmForm{prompt: prompt}
}

func (f *ConfirmForm) TargetID() int64 { return f.prompt.ID }
func (f *ConfirmForm) Help() string    { return "y/enter to delete · n/esc to keep" }

func (f *ConfirmForm) Question() string {
	return fmt.Sprintf("Delete %q?", f.prompt.Title)
}

// Update reports done on confirmation and cancel on refusal. Other keys are
// ignored so a stray press cannot delete anything.
func (f *ConfirmForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false, false
	}
	switch m.String() {
	case "y", "Y", "enter":
		return nil, true, false
	case "n", "N", "esc":
		return nil, false, true
	}
	return nil, false, false
}
