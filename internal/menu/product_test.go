package menu

import (
	"testing"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/google/go-cmp/cmp"
)

func TestProductAddActionReturnsPrompt(t *testing.T) {
	msg := ProductAddAction(sampleContext(), Item{})()
	prompt, ok := msg.(ProductPrompt)
	if !ok {
		t.Fatalf("expected ProductPrompt, got %T", msg)
	}
	if prompt.Action != ActionAdd || !prompt.Initial.IsZero() || prompt.ID != 0 {
		t.Fatalf("unexpected prompt %#v", prompt)
	}
}

func TestProductEditActionResolvesID(t *testing.T) {
	msg := ProductEditAction(sampleContext(), Item{ID: "7"})()
	prompt, ok := msg.(ProductPrompt)
	if !ok {
		t.Fatalf("expected ProductPrompt, got %T", msg)
	}
	want := catalog.FormBuffer{Title: "Oak Desk", Price: "1250", Quantity: "3", Category: "furniture", Description: "Solid *oak*."}
	if prompt.ID != 7 || prompt.Action != ActionEdit {
		t.Fatalf("unexpected prompt %#v", prompt)
	}
	if diff := cmp.Diff(want, prompt.Initial); diff != "" {
		t.Fatalf("initial buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestProductEditActionRejectsUnknownRows(t *testing.T) {
	for _, id := range []string{"", "lamp", "404"} {
		msg := ProductEditAction(sampleContext(), Item{ID: id})()
		res, ok := msg.(ActionResult)
		if !ok || res.Err == nil {
			t.Fatalf("expected error result for %q, got %#v", id, msg)
		}
	}
}

func TestProductDeleteActionReturnsPrompt(t *testing.T) {
	msg := ProductDeleteAction(sampleContext(), Item{ID: "9"})()
	prompt, ok := msg.(DeletePrompt)
	if !ok {
		t.Fatalf("expected DeletePrompt, got %T", msg)
	}
	if prompt.ID != 9 || prompt.Title != "Lamp" {
		t.Fatalf("unexpected prompt %#v", prompt)
	}
	if res, ok := ProductDeleteAction(sampleContext(), Item{ID: "x"})().(ActionResult); !ok || res.Err == nil {
		t.Fatalf("expected error for invalid id")
	}
}

func TestSortCycleActionAdvancesMode(t *testing.T) {
	ctx := sampleContext()
	ctx.Sort = catalog.SortNone
	msg := SortCycleAction(ctx, Item{})()
	prompt, ok := msg.(SortPrompt)
	if !ok || prompt.Mode != catalog.SortNone.Next() {
		t.Fatalf("unexpected msg %#v", msg)
	}
}

func TestSeedReloadAction(t *testing.T) {
	ctx := sampleContext()
	if res, ok := SeedReloadAction(ctx, Item{})().(ActionResult); !ok || res.Info == "" {
		t.Fatalf("expected info when nothing staged")
	}
	ctx.HasStaged, ctx.Staged = true, 4
	prompt, ok := SeedReloadAction(ctx, Item{})().(ReloadPrompt)
	if !ok || prompt.Count != 4 {
		t.Fatalf("expected reload prompt for 4, got %#v", prompt)
	}
}

func TestClearCategoriesAction(t *testing.T) {
	ctx := sampleContext()
	if _, ok := ClearCategoriesAction(ctx, Item{})().(ActionResult); !ok {
		t.Fatalf("expected info result without active categories")
	}
	ctx.Selected = []string{"lighting"}
	if _, ok := ClearCategoriesAction(ctx, Item{})().(ClearCategoriesPrompt); !ok {
		t.Fatalf("expected clear prompt")
	}
}
