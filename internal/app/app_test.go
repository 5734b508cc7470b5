package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/seed"
)

const seedYAML = `products:
  - id: 1
    title: Oak Desk
    price: 250
    quantity: 3
    category: furniture
  - id: 2
    title: Desk Lamp
    price: 39.5
    quantity: 10
    category: lighting
  - id: 3
    title: Bookshelf
    price: 120
    quantity: 2
    category: furniture
`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestNewIDSourceRejectsBadNode(t *testing.T) {
	if _, err := NewIDSource(4096); err == nil {
		t.Fatalf("expected error for out of range node")
	}
	ids, err := NewIDSource(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a, b := ids.NextID(), ids.NextID(); a == b {
		t.Fatalf("expected distinct ids, got %d twice", a)
	}
}

func TestLoadStoreWithoutSeed(t *testing.T) {
	store, err := LoadStore(Config{}, catalog.NewSequence(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d", store.Len())
	}
}

func TestLoadStoreAppliesInitialFilters(t *testing.T) {
	cfg := Config{
		SeedPath:   writeSeed(t),
		Search:     "desk",
		Categories: []string{"furniture"},
		Sort:       catalog.SortPriceDesc,
	}
	store, err := LoadStore(cfg, catalog.NewSequence(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 products, got %d", store.Len())
	}
	view := store.View()
	if len(view) != 1 || view[0].Title != "Oak Desk" {
		t.Fatalf("expected Oak Desk only, got %v", view)
	}
	if store.SortMode() != catalog.SortPriceDesc {
		t.Fatalf("expected desc sort, got %s", store.SortMode())
	}
}

func TestLoadStoreMissingSeed(t *testing.T) {
	cfg := Config{SeedPath: filepath.Join(t.TempDir(), "missing.yaml")}
	if _, err := LoadStore(cfg, catalog.NewSequence(0)); err == nil {
		t.Fatalf("expected error for missing seed file")
	}
}

func TestListWritesFilteredView(t *testing.T) {
	cfg := Config{
		SeedPath:   writeSeed(t),
		Categories: []string{"furniture"},
		Sort:       catalog.SortPriceAsc,
		Node:       1,
	}
	var buf bytes.Buffer
	if err := List(cfg, &buf, seed.FormatTable); err != nil {
		t.Fatalf("list: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Desk Lamp") {
		t.Fatalf("expected lighting filtered out:\n%s", out)
	}
	shelf := strings.Index(out, "Bookshelf")
	desk := strings.Index(out, "Oak Desk")
	if shelf < 0 || desk < 0 || shelf > desk {
		t.Fatalf("expected Bookshelf before Oak Desk:\n%s", out)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "ID") {
		t.Fatalf("expected header row first:\n%s", out)
	}
}

func TestListNumbersRowsWithoutIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	csv := "id,title,price,quantity,category,description\n" +
		"5,Oak Desk,250,3,furniture,\n" +
		",Desk Lamp,39.5,10,lighting,\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	for i := 0; i < 2; i++ {
		var buf bytes.Buffer
		if err := List(Config{SeedPath: path}, &buf, seed.FormatCSV); err != nil {
			t.Fatalf("list: %v", err)
		}
		if !strings.Contains(buf.String(), "6,Desk Lamp,") {
			t.Fatalf("expected the lamp to be numbered 6:\n%s", buf.String())
		}
	}
}
