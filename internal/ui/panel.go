package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	previewPanelMinWidth = 32  // below this no split
	previewPanelFraction = 0.4 // share of the terminal given to the details panel
	wheelStep            = 3
)

var (
	panelBorder     = lipgloss.RoundedBorder()
	panelEdgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelScrollHint = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// hasSidePreview reports whether the product details panel is drawn next to
// the list. Only the product list has one, and only on wide terminals.
func (m *Model) hasSidePreview() bool {
	current := m.currentLevel()
	return current != nil && current.ID == rootLevelID && m.previewPanelWidth() > 0
}

func (m *Model) previewPanelWidth() int {
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// panelBodyHeight is the number of text rows inside a panel of height rows.
func panelBodyHeight(height int) int {
	return max(height-2, 1)
}

// panelBody picks the rows to show for preview and whether they are already
// styled.
func panelBody(preview *previewData, innerH int) (body []string, scroll string, styleErr, raw bool) {
	switch {
	case preview == nil:
		return []string{"No product selected"}, "", false, false
	case preview.err != "":
		return []string{preview.err}, "", true, false
	}
	preview.clampScroll(innerH)
	end := min(preview.scrollOffset+innerH, len(preview.lines))
	body = preview.lines[preview.scrollOffset:end]
	if len(preview.lines) > innerH {
		scroll = fmt.Sprintf(" %d/%d ", end, len(preview.lines))
	}
	return body, scroll, false, preview.rawANSI
}

// panelTop draws the top border with the title on the left and the scroll
// position on the right. The scroll hint is dropped first when space is short.
func panelTop(title, scroll string, width int) string {
	room := max(width-4, 0)
	title = " " + title + " "
	if lipgloss.Width(title)+lipgloss.Width(scroll) > room {
		scroll = ""
	}
	title = truncateText(title, max(room, 1))
	fill := max(room-lipgloss.Width(title)-lipgloss.Width(scroll), 0)
	return panelEdgeStyle.Render(panelBorder.TopLeft+panelBorder.Top) +
		paint(styles.PreviewTitle, title) +
		panelEdgeStyle.Render(strings.Repeat(panelBorder.Top, fill)) +
		panelScrollHint.Render(scroll) +
		panelEdgeStyle.Render(panelBorder.Top+panelBorder.TopRight)
}

// renderPreviewPanel draws the bordered details box, exactly height rows of
// width columns.
func (m *Model) renderPreviewPanel(preview *previewData, width, height int) string {
	innerW := max(width-2, 1)
	innerH := panelBodyHeight(height)

	title := "Details"
	if preview != nil && strings.TrimSpace(preview.label) != "" {
		title = strings.TrimSpace(preview.label)
	}
	body, scroll, isErr, raw := panelBody(preview, innerH)
	bodyStyle := styles.PreviewBody
	if isErr {
		bodyStyle = styles.PreviewError
	}

	side := panelEdgeStyle.Render(panelBorder.Left)
	out := make([]string, 0, innerH+2)
	out = append(out, panelTop(title, scroll, width))
	for i := 0; i < innerH; i++ {
		text := ""
		if i < len(body) {
			text = body[i]
		}
		text = padCell(text, innerW)
		if !raw {
			text = paint(bodyStyle, text)
		}
		out = append(out, side+text+panelEdgeStyle.Render(panelBorder.Right))
	}
	out = append(out, panelEdgeStyle.Render(panelBorder.BottomLeft+strings.Repeat(panelBorder.Bottom, innerW)+panelBorder.BottomRight))
	return strings.Join(out, "\n")
}

// handleMouseMsg scrolls the details panel with the mouse wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.hasSidePreview() {
		return nil
	}
	preview := m.activePreview()
	if preview == nil {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		preview.scrollOffset -= wheelStep
	case tea.MouseButtonWheelDown:
		preview.scrollOffset += wheelStep
	default:
		return nil
	}
	preview.clampScroll(panelBodyHeight(m.height - bottomBarRows))
	return nil
}
