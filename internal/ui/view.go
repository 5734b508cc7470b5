package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/atomicstack/product-catalog/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerSeparator = " › "
	// error line and search prompt
	bottomBarRows = 2
)

// View implements tea.Model.
func (m *Model) View() string {
	header := m.menuHeader()
	switch {
	case m.mode == ModeProductForm && m.productForm != nil:
		return m.viewProductForm(header)
	case m.mode == ModeConfirmDelete && m.confirmForm != nil:
		return m.viewConfirmForm(header)
	case m.hasSidePreview():
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

// viewVertical is the single column layout used on narrow terminals and in
// the category picker.
func (m *Model) viewVertical(header string) string {
	rows := clipRows(m.contentRows(header, m.width), m.height-bottomBarRows, m.width)
	return joinRows(fitRows(rows, m.width)) + "\n" + m.bottomBar()
}

// viewSideBySide puts the product list on the left and the details panel on
// the right. Every left row is padded to the column width so the panel stays
// flush.
func (m *Model) viewSideBySide(header string) string {
	listW := m.menuColumnWidth()
	panelH := max(m.height-bottomBarRows, 3)

	rows := m.contentRows(header, listW)
	left := make([]string, panelH)
	for i := range left {
		if i < len(rows) {
			left[i] = padCell(rows[i].fit(listW).render(), listW)
		} else {
			left[i] = strings.Repeat(" ", listW)
		}
	}

	m.ensurePreview()
	panel := m.renderPreviewPanel(m.activePreview(), m.previewPanelWidth(), panelH)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(left, "\n"), panel) + "\n" + m.bottomBar()
}

// contentRows builds everything above the bottom bar for a column of the
// given width: header, list, info and status.
func (m *Model) contentRows(header string, width int) []row {
	var rows []row
	if header != "" {
		rows = append(rows, styled(header, styles.Header))
	}
	if current := m.currentLevel(); current != nil {
		rows = append(rows, m.listRows(current, width)...)
	}
	if info := m.currentInfo(); info != "" {
		rows = append(rows, row{}, styled(info, styles.Info))
	}
	rows = append(rows, m.statusRows()...)
	if m.showFooter {
		rows = append(rows, row{}, row{text: m.footerText(), raw: true})
	}
	return rows
}

// listRows renders the visible window of l, with the pinned column header on
// the product list.
func (m *Model) listRows(l *level, width int) []row {
	if len(l.Items) == 0 {
		return []row{styled(m.emptyMessage(l), styles.Info)}
	}
	var rows []row
	if l.ID == rootLevelID && m.tableHeader != "" {
		rows = append(rows, styled("  "+m.tableHeader, styles.ColumnHeader))
	}
	start, end := m.visibleWindow(l)
	for i := start; i < end; i++ {
		rows = append(rows, m.itemRow(l, i, width))
	}
	return rows
}

// visibleWindow returns the item range that fits on screen, scrolled so the
// cursor is inside it.
func (m *Model) visibleWindow(l *level) (int, int) {
	m.syncViewport(l)
	limit := m.maxVisibleItems()
	if limit <= 0 || len(l.Items) <= limit {
		return 0, len(l.Items)
	}
	start := clamp(l.ViewportOffset, 0, len(l.Items)-limit)
	l.ViewportOffset = start
	return start, start + limit
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// itemRow renders item idx of l. When width is positive the text is padded so
// the selected row's background spans the column.
func (m *Model) itemRow(l *level, idx, width int) row {
	item := l.Items[idx]
	text := " "
	if l.MultiSelect {
		mark := " "
		if l.IsSelected(item.ID) {
			mark = "✓"
		}
		text += "[" + mark + "] "
	}
	text += item.Label

	r := row{prefix: "▌", text: text, style: styles.Item, prefixStyle: styles.ItemIndicator}
	if idx == l.Cursor {
		r.style, r.prefixStyle = styles.SelectedItem, styles.SelectedItemIndicator
	}
	if gap := width - lipgloss.Width(r.prefix+r.text); width > 0 && gap > 0 {
		r.text += strings.Repeat(" ", gap)
	}
	return r
}

func (m *Model) emptyMessage(l *level) string {
	switch {
	case l.ID != rootLevelID && l.Filter != "":
		return fmt.Sprintf("No matches for %q", l.Filter)
	case l.ID != rootLevelID:
		return "(no categories)"
	case m.store.Len() == 0:
		return "No products yet. Press ctrl+n to add one."
	case l.Filter != "":
		return fmt.Sprintf("No products match %q", l.Filter)
	}
	return "No products match the active filters"
}

// statusRows report the view filters, the summary of the visible rows, and
// any pending seed change.
func (m *Model) statusRows() []row {
	filters := []string{"sort: " + m.store.SortMode().Label()}
	if cats := m.store.SelectedCategories(); len(cats) > 0 {
		filters = append(filters, "categories: "+strings.Join(cats, ", "))
	}
	filters = append(filters, fmt.Sprintf("%d/%d shown", len(m.store.View()), m.store.Len()))

	rows := []row{
		styled(strings.Join(filters, " · "), styles.Status),
		styled(m.store.Summary().String(), styles.Status),
	}
	if count, ok := m.store.Staged(); ok {
		rows = append(rows, styled(fmt.Sprintf("seed changed: %d products (ctrl+r to reload)", count), styles.Staged))
	}
	if m.backendLastErr != "" {
		rows = append(rows, styled("seed error: "+m.backendLastErr, styles.Error))
	}
	return rows
}

// statusRowCount mirrors statusRows without building them.
func (m *Model) statusRowCount() int {
	n := 2
	if _, ok := m.store.Staged(); ok {
		n++
	}
	if m.backendLastErr != "" {
		n++
	}
	return n
}

func (m *Model) footerText() string {
	if current := m.currentLevel(); current != nil && current.ID == menu.ActionCategories {
		return m.help.ShortHelpView(m.keys.CategoryHelp())
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m *Model) bottomBar() string {
	var errRow row
	if m.errMsg != "" {
		errRow = styled("Error: "+m.errMsg, styles.Error)
	}
	return joinRows(fitRows([]row{errRow, {text: m.filterPrompt(), raw: true}}, m.width))
}

func (m *Model) menuHeader() string {
	segments := []string{rootTitle}
	for _, lvl := range m.stack[min(1, len(m.stack)):] {
		if title := strings.TrimSpace(lvl.Title); title != "" {
			segments = append(segments, title)
		}
	}
	return fmt.Sprintf(headerFormat, strings.Join(segments, headerSeparator))
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
		m.help.Width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	for _, lvl := range m.stack {
		m.syncViewport(lvl)
	}
	if m.productForm != nil {
		m.productForm.SetWidth(m.formInputWidth())
	}
	return m.ensurePreview()
}

// maxVisibleItems is how many list rows fit once every other row of the
// layout is accounted for. It returns -1 when the height is unknown.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows + 1 + m.statusRowCount() // +1 for the header
	if current := m.currentLevel(); current != nil && current.ID == rootLevelID && m.tableHeader != "" {
		used++
	}
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	return max(m.height-used, 1)
}
