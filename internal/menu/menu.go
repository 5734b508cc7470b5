package menu

import (
	"strconv"
	"strings"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/format/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Item represents a selectable menu entry.
type Item struct {
	ID    string
	Label string
}

// Context is a read-only snapshot of the catalog handed to loaders and
// actions. Actions never mutate the store; they answer with a prompt message
// and the UI applies the change on its update loop.
type Context struct {
	Products  []catalog.Product
	Total     int
	Facets    []string
	Counts    map[string]int
	Selected  []string
	Sort      catalog.SortMode
	Search    string
	Staged    int
	HasStaged bool
}

// Product looks up a product in the snapshot by ID.
func (c Context) Product(id int64) (catalog.Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

// ProductPrompt opens the add or edit form.
type ProductPrompt struct {
	Context Context
	Action  string
	ID      int64
	Initial catalog.FormBuffer
}

// DeletePrompt asks for confirmation before removing a product.
type DeletePrompt struct {
	Context Context
	ID      int64
	Title   string
}

// SortPrompt requests a new sort mode.
type SortPrompt struct {
	Mode catalog.SortMode
}

// ReloadPrompt requests that a staged seed reload be applied.
type ReloadPrompt struct {
	Count int
}

// ClearCategoriesPrompt requests that every category filter be dropped.
type ClearCategoriesPrompt struct{}

const (
	ActionAdd             = "product:add"
	ActionEdit            = "product:edit"
	ActionDelete          = "product:delete"
	ActionCategories      = "categories"
	ActionClearCategories = "categories:clear"
	ActionSortCycle       = "sort:cycle"
	ActionSeedReload      = "seed:reload"
)

// ActionHandlers maps registry identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		ActionAdd:             ProductAddAction,
		ActionEdit:            ProductEditAction,
		ActionDelete:          ProductDeleteAction,
		ActionClearCategories: ClearCategoriesAction,
		ActionSortCycle:       SortCycleAction,
		ActionSeedReload:      SeedReloadAction,
	}
}

// ActionLoaders enumerates loaders for submenus.
func ActionLoaders() map[string]Loader {
	return map[string]Loader{
		ActionCategories: loadCategoryMenu,
	}
}

var productAlignments = []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignLeft}

// ProductTable formats products as aligned rows. The header is returned
// separately so it can be pinned above a scrolling list.
func ProductTable(products []catalog.Product) (string, []Item) {
	rows := make([][]string, 0, len(products)+1)
	rows = append(rows, []string{"TITLE", "PRICE", "QTY", "CATEGORY"})
	for _, p := range products {
		rows = append(rows, []string{p.Title, p.PriceLabel(), p.QuantityLabel(), p.CategoryLabel()})
	}
	lines := table.Format(rows, productAlignments)
	items := make([]Item, len(products))
	for i, p := range products {
		items[i] = Item{ID: ProductItemID(p.ID), Label: lines[i+1]}
	}
	return lines[0], items
}

// ProductItems returns only the rows of ProductTable.
func ProductItems(products []catalog.Product) []Item {
	_, items := ProductTable(products)
	return items
}

// ProductItemID renders a product ID as a menu item ID.
func ProductItemID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseProductItemID is the inverse of ProductItemID.
func ParseProductItemID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
