package ui

import (
	"fmt"

	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/atomicstack/product-catalog/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt centralises the common prompt flow: reset transient state and
// execute the provided action. The action can return a promptResult to
// control follow-up behaviour (command to run, informational message, or
// error).
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.loading = false
	m.pendingID = ""
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

func (m *Model) handleProductPromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.ProductPrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		if err := m.startProductForm(prompt); err != nil {
			return promptResult{Err: err}
		}
		return promptResult{}
	})
}

func (m *Model) handleDeletePromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.DeletePrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		if err := m.startConfirmForm(prompt); err != nil {
			return promptResult{Err: err}
		}
		return promptResult{}
	})
}

func (m *Model) handleSortPromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.SortPrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		m.store.SetSortMode(prompt.Mode)
		events.Filter.Sort(prompt.Mode.String())
		m.refreshProducts()
		return promptResult{Cmd: m.ensurePreview(), Info: "Sort: " + prompt.Mode.Label()}
	})
}

func (m *Model) handleReloadPromptMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(menu.ReloadPrompt); !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		if err := m.store.ApplyStaged(); err != nil {
			return promptResult{Err: err}
		}
		// a reload discards open dialogs along with the old records
		m.productForm = nil
		m.confirmForm = nil
		m.setMode(ModeMenu)
		m.backendLastErr = ""
		events.Seed.Applied(m.store.Len())
		m.refreshProducts()
		m.setInfo(fmt.Sprintf("Reloaded %d products", m.store.Len()))
		return promptResult{Cmd: m.ensurePreview()}
	})
}

func (m *Model) handleClearCategoriesPromptMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(menu.ClearCategoriesPrompt); !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		m.store.ClearCategories()
		if lvl := m.findLevelByID(menu.ActionCategories); lvl != nil {
			lvl.ClearSelection()
		}
		events.Filter.Category("", false)
		m.refreshProducts()
		return promptResult{Cmd: m.ensurePreview(), Info: "Category filters cleared"}
	})
}
