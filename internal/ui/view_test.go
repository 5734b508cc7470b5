package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/product-catalog/internal/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestViewRendersTableAndStatus(t *testing.T) {
	m := newTestModel(t, Options{Width: 70, Height: 20})
	view := ansi.Strip(m.View())
	for _, want := range []string{
		"product catalog · products",
		"TITLE",
		"Oak Desk",
		"1,250.00",
		"(none)",
		"sort: unsorted",
		"3/3 shown",
		"14 units",
		"(type to search)",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "╭") {
		t.Fatalf("expected no preview panel on a narrow terminal:\n%s", view)
	}
}

func TestViewStatusReflectsFilters(t *testing.T) {
	m := newTestModel(t, Options{Width: 70, Height: 20})
	m.store.ToggleCategory("lighting", true)
	m.store.SetSortMode(m.store.SortMode().Next())
	m.refreshProducts()
	view := ansi.Strip(m.View())
	for _, want := range []string{"categories: lighting", "1/3 shown", "price: low to high"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewEmptyCatalog(t *testing.T) {
	m := NewModel(state.New(nil), Options{Width: 70, Height: 12, StaticCursor: true})
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "No products yet. Press ctrl+n to add one.") {
		t.Fatalf("expected empty message:\n%s", view)
	}
	if !strings.Contains(view, "no products") {
		t.Fatalf("expected empty summary:\n%s", view)
	}
}

func TestViewFooterUsesKeyHelp(t *testing.T) {
	m := newTestModel(t, Options{Width: 200, Height: 20, ShowFooter: true})
	view := ansi.Strip(m.View())
	for _, want := range []string{"ctrl+n", "add", "ctrl+t", "categories"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in footer:\n%s", want, view)
		}
	}
}

func TestViewRespectsHeight(t *testing.T) {
	m := newTestModel(t, Options{Width: 70, Height: 7})
	lines := strings.Split(m.View(), "\n")
	if len(lines) > 7 {
		t.Fatalf("expected at most 7 lines, got %d", len(lines))
	}
}

func TestViewSideBySideShowsDetails(t *testing.T) {
	m := newTestModel(t, Options{Width: 100, Height: 20})
	view := ansi.Strip(m.View())
	for _, want := range []string{"╭", "Price", "1,250.00", "Category  furniture", "oak"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	rows := strings.Split(view, "\n")
	if len(rows) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(rows))
	}
}

func TestViewCategoryPicker(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{Width: 100, Height: 20}))
	h.Key(tea.KeyCtrlT)
	h.Key(tea.KeyDown)
	h.Type(" ")
	view := ansi.Strip(h.View())
	for _, want := range []string{"products › categories", "[ ] furniture (1)", "[✓] lighting (1)", "[ ] (none) (1)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "╭") {
		t.Fatalf("expected no details panel in the picker:\n%s", view)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("abcdef", 4); got != "abc…" {
		t.Fatalf("expected abc…, got %q", got)
	}
	if got := truncateText("abc", 4); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := truncateText("abc", 0); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
}

func TestInfoExpires(t *testing.T) {
	m := newTestModel(t, Options{})
	m.setInfo("hello")
	if m.currentInfo() != "hello" {
		t.Fatalf("expected info to be visible")
	}
	m.info.until = time.Now().Add(-time.Second)
	if got := m.currentInfo(); got != "" {
		t.Fatalf("expected info to expire, got %q", got)
	}
}
