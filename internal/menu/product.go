package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/product-catalog/internal/logging/events"
)

func ProductAddAction(ctx Context, _ Item) tea.Cmd {
	return func() tea.Msg {
		events.Product.AddPrompt(ctx.Total)
		return ProductPrompt{Context: ctx, Action: ActionAdd}
	}
}

// ProductEditAction resolves the highlighted row to a product ID now, so the
// form keeps editing the same record whatever happens to the filters.
func ProductEditAction(ctx Context, item Item) tea.Cmd {
	id, err := ParseProductItemID(item.ID)
	if err != nil {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid product selection")} }
	}
	return func() tea.Msg {
		p, ok := ctx.Product(id)
		if !ok {
			return ActionResult{Err: fmt.Errorf("product %d is no longer listed", id)}
		}
		events.Product.EditPrompt(id)
		return ProductPrompt{Context: ctx, Action: ActionEdit, ID: id, Initial: p.Buffer()}
	}
}

func ProductDeleteAction(ctx Context, item Item) tea.Cmd {
	id, err := ParseProductItemID(item.ID)
	if err != nil {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid product selection")} }
	}
	return func() tea.Msg {
		p, ok := ctx.Product(id)
		if !ok {
			return ActionResult{Err: fmt.Errorf("product %d is no longer listed", id)}
		}
		events.Product.DeletePrompt(id, p.Title)
		return DeletePrompt{Context: ctx, ID: id, Title: p.Title}
	}
}

func SortCycleAction(ctx Context, _ Item) tea.Cmd {
	next := ctx.Sort.Next()
	return func() tea.Msg { return SortPrompt{Mode: next} }
}

func SeedReloadAction(ctx Context, _ Item) tea.Cmd {
	return func() tea.Msg {
		if !ctx.HasStaged {
			return ActionResult{Info: "No seed changes to reload"}
		}
		return ReloadPrompt{Count: ctx.Staged}
	}
}

func ClearCategoriesAction(ctx Context, _ Item) tea.Cmd {
	return func() tea.Msg {
		if len(ctx.Selected) == 0 {
			return ActionResult{Info: "No category filters active"}
		}
		return ClearCategoriesPrompt{}
	}
}
