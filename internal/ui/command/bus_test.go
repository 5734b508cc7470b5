package command

import (
	"testing"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDispatchRunsRegisteredAction(t *testing.T) {
	bus := New(menu.BuildRegistry())
	ctx := menu.Context{Products: []catalog.Product{{ID: 3, Title: "Rug"}}, Total: 1}
	cmd, err := bus.Dispatch(ctx, menu.ActionDelete, menu.Item{ID: "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prompt, ok := cmd().(menu.DeletePrompt)
	if !ok || prompt.ID != 3 || prompt.Title != "Rug" {
		t.Fatalf("unexpected message %#v", prompt)
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	bus := New(menu.BuildRegistry())
	if _, err := bus.Dispatch(menu.Context{}, "categories", menu.Item{}); err == nil {
		t.Fatalf("expected error for loader-only node")
	}
	if _, err := New(nil).Dispatch(menu.Context{}, menu.ActionAdd, menu.Item{}); err == nil {
		t.Fatalf("expected error without registry")
	}
}

func TestExecuteHandlesNilHandlerAndCmd(t *testing.T) {
	bus := New(nil)
	if msg := bus.Execute(menu.Context{}, Request{ID: "x"})(); msg != nil {
		t.Fatalf("expected nil message for missing handler, got %#v", msg)
	}
	noop := func(menu.Context, menu.Item) tea.Cmd { return nil }
	if msg := bus.Execute(menu.Context{}, Request{ID: "x", Handler: noop})(); msg != nil {
		t.Fatalf("expected nil message for no-op handler, got %#v", msg)
	}
}
