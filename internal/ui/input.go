package ui

import (
	"unicode"

	"github.com/atomicstack/product-catalog/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// filterEdit is one key binding of the search line. Edits that change the
// text re-derive the list; pure cursor moves only redraw the caret.
type filterEdit struct {
	apply func(l *level) bool
	trace func(l *level)
	text  bool
}

func traceCursor(l *level)     { events.Filter.Cursor(l.ID, l.FilterCursor) }
func traceCursorWord(l *level) { events.Filter.CursorWord(l.ID, l.FilterCursor) }

var filterKeyEdits = map[string]filterEdit{
	"ctrl+u": {
		apply: func(l *level) bool {
			if l.Filter == "" {
				return false
			}
			l.SetFilter("", 0)
			return true
		},
		trace: func(l *level) { events.Filter.Cleared(l.ID) },
		text:  true,
	},
	"ctrl+w": {
		apply: (*level).DeleteFilterWordBackward,
		trace: func(l *level) { events.Filter.WordBackspace(l.ID, l.Filter) },
		text:  true,
	},
	"ctrl+a":    {apply: (*level).MoveFilterCursorStart, trace: traceCursor},
	"ctrl+e":    {apply: (*level).MoveFilterCursorEnd, trace: traceCursor},
	"alt+b":     {apply: (*level).MoveFilterCursorWordBackward, trace: traceCursorWord},
	"alt+f":     {apply: (*level).MoveFilterCursorWordForward, trace: traceCursorWord},
	"left":      {apply: (*level).MoveFilterCursorRuneBackward, trace: traceCursor},
	"right":     {apply: (*level).MoveFilterCursorRuneForward, trace: traceCursor},
	"backspace": backspaceEdit,
	"ctrl+h":    backspaceEdit,
}

var backspaceEdit = filterEdit{
	apply: (*level).DeleteFilterRuneBackward,
	trace: func(l *level) { events.Filter.Backspace(l.ID, l.Filter) },
	text:  true,
}

// applyFilterEdit runs edit against the current level and reports whether
// anything changed.
func (m *Model) applyFilterEdit(edit filterEdit) bool {
	current := m.currentLevel()
	if current == nil {
		return false
	}
	before := current.FilterCursorPos()
	if !edit.apply(current) {
		return false
	}
	if before != current.FilterCursorPos() {
		m.filterCursorDirty = true
	}
	if edit.trace != nil {
		edit.trace(current)
	}
	if edit.text {
		m.forceClearInfo()
		m.errMsg = ""
		m.syncViewport(current)
		m.syncSearch(current)
	}
	return true
}

// syncSearch pushes the product list's filter text into the store so the
// visible rows are re-derived. Other levels filter their own items.
func (m *Model) syncSearch(l *level) {
	if l == nil || l.ID != rootLevelID {
		return
	}
	m.store.SetSearchTerm(l.Filter)
	m.refreshProducts()
	if l.Filter != "" {
		l.FocusBestMatch()
		m.syncViewport(l)
	}
	events.Filter.Search(l.Filter, len(l.Items), m.store.Len())
}

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.loading || m.currentLevel() == nil {
		return false, nil
	}
	// pasted text such as "left" must not be read as a key name
	if edit, ok := filterKeyEdits[msg.String()]; ok && (msg.Type != tea.KeyRunes || msg.Alt) {
		if !m.applyFilterEdit(edit) {
			return false, nil
		}
		if edit.text {
			return true, m.ensurePreview()
		}
		return true, nil
	}
	var text string
	switch msg.Type {
	case tea.KeySpace:
		text = " "
	case tea.KeyRunes:
		if msg.Alt {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		text = string(msg.Runes)
	default:
		return false, nil
	}
	if !m.appendToFilter(text) {
		return false, nil
	}
	return true, m.ensurePreview()
}

func (m *Model) appendToFilter(text string) bool {
	return m.applyFilterEdit(filterEdit{
		apply: func(l *level) bool { return l.InsertFilterText(text) },
		trace: func(l *level) { events.Filter.Append(l.ID, l.Filter) },
		text:  true,
	})
}

// filterPrompt renders the search line with its caret. An empty filter shows
// a placeholder whose first rune sits under the caret.
func (m *Model) filterPrompt() string {
	current := m.currentLevel()
	if current == nil {
		return ">"
	}
	m.filterCursor.TextStyle = lipgloss.Style{}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	prompt := paint(styles.FilterPrompt, "» ")

	if current.Filter == "" {
		placeholder := []rune("(type to filter)")
		if current.ID == rootLevelID {
			placeholder = []rune("(type to search)")
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		return prompt + m.renderFilterCursor(string(placeholder[0])) + paint(styles.FilterPlaceholder, string(placeholder[1:]))
	}

	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	caret, rest := " ", ""
	if pos < len(runes) {
		caret = string(runes[pos])
		rest = string(runes[pos+1:])
	}
	return prompt + paint(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caret) + paint(styles.Filter, rest)
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	switch {
	case m.filterCursor.Blink:
		return base.Render(char)
	case styles.Cursor != nil:
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	default:
		return base.Reverse(true).Render(char)
	}
}
