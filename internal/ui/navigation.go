package ui

import (
	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/atomicstack/product-catalog/internal/menu"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return m.quit("escape")
	}
	if len(m.stack) > 1 {
		m.popLevel()
		return m.ensurePreview()
	}
	if current.Filter != "" {
		before := current.FilterCursorPos()
		current.SetFilter("", 0)
		if before != current.FilterCursorPos() {
			m.filterCursorDirty = true
		}
		events.Filter.Cleared(current.ID)
		m.syncSearch(current)
		m.errMsg = ""
		return m.ensurePreview()
	}
	return m.quit("escape")
}

func (m *Model) quit(reason string) tea.Cmd {
	events.App.Exit(reason)
	return tea.Quit
}

// popLevel closes the category picker and returns to the product list.
func (m *Model) popLevel() {
	if len(m.stack) <= 1 {
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
	if parent := m.currentLevel(); parent != nil {
		if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
			parent.Cursor = parent.LastCursor
		}
		parent.LastCursor = -1
		m.syncViewport(parent)
	}
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) moveCursorUp() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorUp() {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorDown() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorDown() {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageUp(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageDown(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorHome(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorEnd(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeMenu {
		return nil
	}
	current := m.currentLevel()
	onCategories := current != nil && current.ID == menu.ActionCategories
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit("interrupt")
	case onCategories && key.Matches(keyMsg, m.keys.Toggle):
		return m.toggleCategory(current)
	case onCategories && (key.Matches(keyMsg, m.keys.Edit) || key.Matches(keyMsg, m.keys.Categories)):
		m.popLevel()
		return m.ensurePreview()
	case key.Matches(keyMsg, m.keys.Back):
		return m.handleEscapeKey()
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursorUp()
		return m.ensurePreview()
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursorDown()
		return m.ensurePreview()
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursorPageUp()
		return m.ensurePreview()
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursorPageDown()
		return m.ensurePreview()
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursorHome()
		return m.ensurePreview()
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursorEnd()
		return m.ensurePreview()
	}
	if id, ok := m.keys.ActionFor(keyMsg); ok {
		if onCategories && id != menu.ActionClearCategories {
			return nil
		}
		return m.runAction(id)
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	return nil
}

// toggleCategory flips the highlighted facet in the picker and in the store.
func (m *Model) toggleCategory(l *level) tea.Cmd {
	id, checked, ok := l.ToggleCurrentSelection()
	if !ok {
		return nil
	}
	m.store.ToggleCategory(id, checked)
	events.Filter.Category(id, checked)
	m.refreshProducts()
	return nil
}

func (m *Model) handleCategoryLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(categoryLoadedMsg)
	if !ok {
		return nil
	}
	if update.id != m.pendingID {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	if root := m.rootLevel(); root != nil {
		root.LastCursor = root.Cursor
	}
	node, _ := m.registry.Find(update.id)
	lvl := newLevel(update.id, update.title, update.items, node)
	m.applyNodeSettings(lvl)
	m.syncCategorySelection(lvl)
	m.syncViewport(lvl)
	m.stack = append(m.stack, lvl)
	if len(lvl.Items) == 0 {
		m.setInfo("No categories yet.")
	} else if m.info.msg != "" {
		m.clearInfo()
	}
	return nil
}

func (m *Model) syncCategorySelection(l *level) {
	l.SetSelection(m.store.SelectedCategories())
}

// refreshProducts re-derives the product list from the store and pushes it to
// every level that shows catalog data.
func (m *Model) refreshProducts() {
	root := m.rootLevel()
	if root == nil {
		return
	}
	header, items := menu.ProductTable(m.store.View())
	m.tableHeader = header
	root.UpdateItems(items)
	m.syncViewport(root)
	if lvl := m.findLevelByID(menu.ActionCategories); lvl != nil {
		lvl.UpdateItems(menu.CategoryItems(m.store.Facets(), catalog.FacetCounts(m.store.Products()), m.store.SelectedCategories()))
		m.syncCategorySelection(lvl)
		m.syncViewport(lvl)
	}
}

// focusProduct moves the product cursor onto id when it is visible.
func (m *Model) focusProduct(id int64) {
	root := m.rootLevel()
	if root == nil {
		return
	}
	if idx := root.IndexOf(menu.ProductItemID(id)); idx >= 0 {
		root.Cursor = idx
		m.syncViewport(root)
	}
}

func (m *Model) applyNodeSettings(l *level) {
	if l == nil {
		return
	}
	if l.Node == nil {
		if node, ok := m.registry.Find(l.ID); ok {
			l.Node = node
		}
	}
	if l.Node != nil {
		l.MultiSelect = l.Node.MultiSelect
	}
}

func (m *Model) findLevelByID(id string) *level {
	for _, lvl := range m.stack {
		if lvl.ID == id {
			return lvl
		}
	}
	return nil
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) rootLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[0]
}
