package ui

import (
	"errors"
	"strings"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/logging"
	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/atomicstack/product-catalog/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

const formLabelWidth = 12

func (m *Model) handleProductForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.productForm == nil {
		m.setMode(ModeMenu)
		return false, nil
	}
	cmd, done, cancel := m.productForm.Update(msg)
	if cancel {
		m.closeProductForm()
		return true, cmd
	}
	if done {
		return true, m.commitProductForm()
	}
	return true, cmd
}

// commitProductForm applies the form to the store. Field errors keep the form
// open with the user's input intact.
func (m *Model) commitProductForm() tea.Cmd {
	form := m.productForm
	m.store.SetForm(form.Buffer())
	var (
		p   catalog.Product
		err error
	)
	if form.IsEdit() {
		p, err = m.store.CommitEdit()
	} else {
		p, err = m.store.AddProduct(m.store.Form())
	}
	var fieldErrs catalog.FieldErrors
	if errors.As(err, &fieldErrs) {
		events.Product.Invalid(fieldErrs)
		form.SetErrors(fieldErrs)
		return nil
	}
	if err != nil {
		logging.Error(err)
		m.closeProductForm()
		m.errMsg = err.Error()
		return nil
	}
	m.productForm = nil
	m.setMode(ModeMenu)
	m.errMsg = ""
	if form.IsEdit() {
		events.Product.Update(p.ID, p.Title)
		m.setInfo(m.store.TakeNotice())
	} else {
		events.Product.Add(p.ID, p.Title)
		if m.verbose {
			m.setInfo("Added " + p.Title)
		}
	}
	m.refreshProducts()
	m.focusProduct(p.ID)
	return m.ensurePreview()
}

func (m *Model) closeProductForm() {
	m.productForm = nil
	m.store.CloseModal()
	m.setMode(ModeMenu)
}

func (m *Model) handleConfirmForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.confirmForm == nil {
		m.setMode(ModeMenu)
		return false, nil
	}
	_, done, cancel := m.confirmForm.Update(msg)
	switch {
	case cancel:
		events.Product.CancelDelete(m.confirmForm.TargetID())
		m.store.CancelDelete()
		m.confirmForm = nil
		m.setMode(ModeMenu)
		return true, nil
	case done:
		m.confirmForm = nil
		m.setMode(ModeMenu)
		removed, err := m.store.ConfirmDelete()
		if err != nil {
			logging.Error(err)
			m.errMsg = err.Error()
			return true, nil
		}
		events.Product.Delete(removed.ID, removed.Title)
		if m.verbose {
			m.setInfo("Deleted " + removed.Title)
		}
		m.refreshProducts()
		return true, m.ensurePreview()
	}
	return true, nil
}

func (m *Model) startProductForm(prompt menu.ProductPrompt) error {
	if prompt.Action == menu.ActionEdit {
		if err := m.store.BeginEditID(prompt.ID); err != nil {
			return err
		}
		// the store's copy is authoritative in case the snapshot is stale
		if p, ok := m.store.Product(prompt.ID); ok {
			prompt.Initial = p.Buffer()
		}
	} else {
		m.store.OpenAdd()
	}
	m.productForm = menu.NewProductForm(prompt, menu.FormOptions{
		Width:        m.formInputWidth(),
		StaticCursor: m.staticCursor,
	})
	m.setMode(ModeProductForm)
	return nil
}

func (m *Model) startConfirmForm(prompt menu.DeletePrompt) error {
	if err := m.store.RequestDeleteID(prompt.ID); err != nil {
		return err
	}
	if p, ok := m.store.PendingDelete(); ok {
		prompt.Title = p.Title
	}
	m.confirmForm = menu.NewConfirmForm(prompt)
	m.setMode(ModeConfirmDelete)
	return nil
}

func (m *Model) formInputWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - formLabelWidth - 2
	if w < 10 {
		w = 10
	}
	return w
}

func (m *Model) viewProductForm(header string) string {
	form := m.productForm
	lines := []string{}
	if header != "" {
		lines = append(lines, styles.Header.Render(header))
	}
	lines = append(lines, styles.FormTitle.Render(form.Title()), "")
	for _, field := range form.Fields() {
		labelStyle := styles.FormLabel
		if field.Focused {
			labelStyle = styles.FormLabelFocused
		}
		inputLines := strings.Split(field.Input, "\n")
		lines = append(lines, labelStyle.Render(field.Label)+inputLines[0])
		pad := strings.Repeat(" ", formLabelWidth)
		for _, extra := range inputLines[1:] {
			lines = append(lines, pad+extra)
		}
		if field.Err != "" {
			lines = append(lines, pad+styles.FieldError.Render(field.Err))
		}
	}
	lines = append(lines, "", form.Help())
	if m.errMsg != "" {
		lines = append(lines, styles.Error.Render("Error: "+m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewConfirmForm(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, styles.Header.Render(header))
	}
	lines = append(lines,
		styles.Confirm.Render(m.confirmForm.Question()),
		"",
		m.confirmForm.Help(),
	)
	return strings.Join(lines, "\n")
}
