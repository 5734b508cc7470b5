package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/logging"
	"github.com/atomicstack/product-catalog/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

type previewData struct {
	target       string
	label        string
	lines        []string
	err          string
	scrollOffset int  // position within lines; clamped on render
	rawANSI      bool // lines carry glamour's ANSI styling
}

func (p *previewData) clampScroll(visible int) {
	maxOffset := len(p.lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.scrollOffset > maxOffset {
		p.scrollOffset = maxOffset
	}
	if p.scrollOffset < 0 {
		p.scrollOffset = 0
	}
}

type previewKey struct {
	product catalog.Product
	width   int
}

// previewCache holds the rendered details of the highlighted product. Markdown
// rendering is only redone when the product or the panel width changes.
type previewCache struct {
	key       previewKey
	data      *previewData
	renderer  *glamour.TermRenderer
	wrapWidth int
}

func newPreviewCache() *previewCache {
	return &previewCache{}
}

func (c *previewCache) reset() {
	c.key = previewKey{}
	c.data = nil
}

func (c *previewCache) markdown(text string, width int) ([]string, error) {
	if c.renderer == nil || c.wrapWidth != width {
		style := styles.MarkdownStyle
		if style == "" {
			style = "notty"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return nil, err
		}
		c.renderer = r
		c.wrapWidth = width
	}
	out, err := c.renderer.Render(text)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.Trim(out, "\n"), "\n"), nil
}

// ensurePreview renders the details of the highlighted product when the side
// panel is visible. Rendering happens inline; the returned command is always
// nil and exists so callers can batch it like any other follow-up.
func (m *Model) ensurePreview() tea.Cmd {
	if m.preview == nil {
		m.preview = newPreviewCache()
	}
	if !m.hasSidePreview() {
		return nil
	}
	root := m.rootLevel()
	item, ok := root.CurrentItem()
	if !ok {
		m.preview.reset()
		return nil
	}
	id, err := menu.ParseProductItemID(item.ID)
	if err != nil {
		m.preview.reset()
		return nil
	}
	p, ok := m.store.Product(id)
	if !ok {
		m.preview.reset()
		return nil
	}
	key := previewKey{product: p, width: m.previewPanelWidth()}
	if m.preview.data != nil && m.preview.key == key {
		return nil
	}
	m.preview.key = key
	m.preview.data = m.renderProductPreview(p, key.width-2)
	return nil
}

func (m *Model) renderProductPreview(p catalog.Product, innerW int) *previewData {
	data := &previewData{target: menu.ProductItemID(p.ID), label: p.Title, rawANSI: true}
	lines := []string{
		fmt.Sprintf("%-9s %d", "ID", p.ID),
		fmt.Sprintf("%-9s %s", "Price", p.PriceLabel()),
		fmt.Sprintf("%-9s %s", "Quantity", p.QuantityLabel()),
		fmt.Sprintf("%-9s %s", "Category", p.CategoryLabel()),
		fmt.Sprintf("%-9s %s", "Value", catalog.FormatPrice(p.StockValue())),
	}
	if strings.TrimSpace(p.Description) != "" {
		lines = append(lines, "")
		wrap := innerW
		if wrap < 10 {
			wrap = 10
		}
		body, err := m.preview.markdown(p.Description, wrap)
		if err != nil {
			logging.Error(err)
			body = strings.Split(p.Description, "\n")
		}
		lines = append(lines, body...)
	}
	data.lines = lines
	return data
}

func (m *Model) activePreview() *previewData {
	if m.preview == nil || !m.hasSidePreview() {
		return nil
	}
	return m.preview.data
}
