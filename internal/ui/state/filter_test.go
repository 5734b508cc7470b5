package state

import (
	"testing"

	"github.com/atomicstack/product-catalog/internal/menu"
	"github.com/google/go-cmp/cmp"
)

func productItems() []menu.Item {
	return []menu.Item{
		{ID: "1", Label: "Oak Desk"},
		{ID: "2", Label: "Desk Lamp"},
		{ID: "3", Label: "Bookshelf"},
	}
}

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	level := NewLevel("products", "Products", productItems(), nil)
	level.Cursor = 2
	level.SetFilter("lamp", len("lamp"))

	if level.Filter != "lamp" {
		t.Fatalf("expected filter persisted, got %q", level.Filter)
	}
	if level.FilterCursor != len("lamp") {
		t.Fatalf("expected cursor at end, got %d", level.FilterCursor)
	}
	if level.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", level.Cursor)
	}
	if len(level.Items) != 1 || level.Items[0].ID != "2" {
		t.Fatalf("expected only the lamp, got %#v", level.Items)
	}

	level.SetFilter("", 0)
	if level.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", level.Cursor)
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
}

func TestPassThroughKeepsItemsAndFocusesMatch(t *testing.T) {
	level := NewLevel("products", "Products", productItems(), nil)
	level.Match = PassThrough
	level.SetFilter("book", len("book"))
	if diff := cmp.Diff(productItems(), level.Items); diff != "" {
		t.Fatalf("pass-through should keep all items (-want +got):\n%s", diff)
	}
	if level.Cursor != 2 {
		t.Fatalf("expected cursor on Bookshelf, got %d", level.Cursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	level := newTestLevel("desk")

	if !level.InsertFilterText("dk") {
		t.Fatal("expected insert to succeed")
	}
	if level.Filter != "dk" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}

	level.FilterCursor = 1
	if !level.InsertFilterText("es") {
		t.Fatal("expected insert in middle to succeed")
	}
	if level.Filter != "desk" || level.FilterCursor != 3 {
		t.Fatalf("unexpected filter state after middle insert %q/%d", level.Filter, level.FilterCursor)
	}

	if !level.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if level.Filter != "dek" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state after delete %q/%d", level.Filter, level.FilterCursor)
	}

	level.SetFilter("oak desk", len("oak desk"))
	if !level.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if level.Filter != "oak " {
		t.Fatalf("expected trailing word removed, got %q", level.Filter)
	}

	level.SetFilter("oak", 0)
	if level.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
}

func TestFilterCursorNavigation(t *testing.T) {
	level := newTestLevel("oak", "desk")
	level.SetFilter("oak desk", len("oak desk"))

	if !level.MoveFilterCursorWordBackward() || level.FilterCursor != 4 {
		t.Fatalf("expected cursor at 4, got %d", level.FilterCursor)
	}
	if !level.MoveFilterCursorWordForward() || level.FilterCursor != len("oak desk") {
		t.Fatalf("expected cursor restored to end, got %d", level.FilterCursor)
	}
	if !level.MoveFilterCursorRuneBackward() || level.FilterCursor != len("oak desk")-1 {
		t.Fatalf("expected cursor len-1, got %d", level.FilterCursor)
	}
	if !level.MoveFilterCursorRuneForward() || level.FilterCursor != len("oak desk") {
		t.Fatalf("expected cursor at end, got %d", level.FilterCursor)
	}
	if level.MoveFilterCursorRuneForward() {
		t.Fatal("expected no movement past end")
	}
	if !level.MoveFilterCursorStart() || level.FilterCursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", level.FilterCursor)
	}
	if !level.MoveFilterCursorEnd() {
		t.Fatal("expected move back to end")
	}
}

func TestFilterItemsAndClone(t *testing.T) {
	items := []menu.Item{{ID: "furniture", Label: "Furniture"}, {ID: "lighting", Label: "Lighting"}}
	filtered := FilterItems(items, "furn")
	if len(filtered) != 1 || filtered[0].ID != "furniture" {
		t.Fatalf("unexpected filtered results %#v", filtered)
	}
	filtered = FilterItems(items, "ght")
	if len(filtered) != 1 || filtered[0].ID != "lighting" {
		t.Fatalf("expected match for lighting, got %#v", filtered)
	}

	clone := CloneItems(items)
	if &clone[0] == &items[0] {
		t.Fatal("expected clone to allocate new backing array")
	}
	filtered[0].Label = "changed"
	if items[1].Label != "Lighting" {
		t.Fatal("expected original slice to remain unchanged")
	}

	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := productItems()

	if idx := BestMatchIndex(items, "desk lamp"); idx != 1 {
		t.Fatalf("expected exact label match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "3"); idx != 2 {
		t.Fatalf("expected ID match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "bo"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}
