package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// row is one line of the list column before it is fitted to a width. The
// prefix (the cursor bar) is styled apart from the text so the highlight of
// the selected row starts after it.
type row struct {
	prefix      string
	text        string
	style       *lipgloss.Style
	prefixStyle *lipgloss.Style
	// raw rows already carry ANSI styling and are only truncated.
	raw bool
}

func styled(text string, style *lipgloss.Style) row {
	return row{text: text, style: style}
}

func (r row) render() string {
	if r.raw {
		return r.prefix + r.text
	}
	return paint(r.prefixStyle, r.prefix) + paint(r.style, r.text)
}

func paint(style *lipgloss.Style, s string) string {
	if style == nil || s == "" {
		return s
	}
	return style.Render(s)
}

// fit truncates the row so prefix and text together span at most width
// columns.
func (r row) fit(width int) row {
	if width <= 0 {
		return r
	}
	pw := lipgloss.Width(r.prefix)
	if pw >= width {
		r.prefix, r.text = truncateText(r.prefix, width), ""
		return r
	}
	r.text = truncateText(r.text, width-pw)
	return r
}

func fitRows(rows []row, width int) []row {
	out := make([]row, len(rows))
	for i, r := range rows {
		out[i] = r.fit(width)
	}
	return out
}

// clipRows keeps at most height rows, replacing the last kept row with an
// ellipsis when something was cut.
func clipRows(rows []row, height, width int) []row {
	if height <= 0 || len(rows) <= height {
		return rows
	}
	out := append([]row(nil), rows[:height-1]...)
	return append(out, row{text: truncateText("…", width)})
}

func joinRows(rows []row) string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.render()
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width display columns, ending in an ellipsis.
// ANSI sequences are preserved.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

// padCell truncates or space-pads s to exactly width columns.
func padCell(s string, width int) string {
	s = truncateText(s, width)
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
