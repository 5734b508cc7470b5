package menu

import (
	"fmt"
	"slices"

	"github.com/atomicstack/product-catalog/internal/catalog"
)

func loadCategoryMenu(ctx Context) ([]Item, error) {
	return CategoryItems(ctx.Facets, ctx.Counts, ctx.Selected), nil
}

// CategoryItems lists facets with their product counts. The item ID is the
// raw category value so it can be handed straight back to the store.
// Selected categories that no product carries any more are listed last with
// a zero count, so they can still be unchecked.
func CategoryItems(facets []string, counts map[string]int, selected []string) []Item {
	all := slices.Clone(facets)
	for _, category := range selected {
		if !slices.Contains(all, category) {
			all = append(all, category)
		}
	}
	if len(all) == 0 {
		return nil
	}
	items := make([]Item, len(all))
	for i, facet := range all {
		items[i] = Item{
			ID:    facet,
			Label: fmt.Sprintf("%s (%d)", catalog.CategoryLabel(facet), counts[facet]),
		}
	}
	return items
}
