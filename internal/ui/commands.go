package ui

import (
	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/logging"
	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/atomicstack/product-catalog/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}

// runAction executes the registry action id against the highlighted item.
func (m *Model) runAction(id string) tea.Cmd {
	if m.loading {
		return nil
	}
	node, ok := m.registry.Find(id)
	if !ok {
		return nil
	}
	ctx := m.menuContext()
	var item menu.Item
	if root := m.rootLevel(); root != nil {
		item, _ = root.CurrentItem()
	}
	if node.Loader != nil {
		m.loading = true
		m.pendingID = node.ID
		m.errMsg = ""
		m.forceClearInfo()
		return m.loadMenuCmd(ctx, node.ID, node.ID, node.Loader)
	}
	if (id == menu.ActionEdit || id == menu.ActionDelete) && item.ID == "" {
		return nil
	}
	m.errMsg = ""
	cmd, err := m.bus.Dispatch(ctx, id, item)
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return nil
	}
	events.UI.MenuEnter(rootLevelID, item.ID, item.Label, m.store.SearchTerm())
	return cmd
}

// loadMenuCmd runs loader against a snapshot taken before the command is
// scheduled, so it never reads the store off the update loop.
func (m *Model) loadMenuCmd(ctx menu.Context, id, title string, loader menu.Loader) tea.Cmd {
	return func() tea.Msg {
		items, err := loader(ctx)
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, items: items, err: err}
	}
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	items []menu.Item
	err   error
}

func (m *Model) menuContext() menu.Context {
	products := m.store.Products()
	staged, hasStaged := m.store.Staged()
	return menu.Context{
		Products:  m.store.View(),
		Total:     len(products),
		Facets:    m.store.Facets(),
		Counts:    catalog.FacetCounts(products),
		Selected:  m.store.SelectedCategories(),
		Sort:      m.store.SortMode(),
		Search:    m.store.SearchTerm(),
		Staged:    staged,
		HasStaged: hasStaged,
	}
}
