package seed

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/google/go-cmp/cmp"
)

const yamlSeed = `products:
  - id: 10
    title: Oak Desk
    price: 250
    quantity: 3
    category: furniture
    description: Solid **oak** desk.
  - title: " Desk Lamp "
    price: 39.5
    quantity: 10
    category: lighting
`

const csvSeed = `id,title,price,quantity,category,description
,Bookshelf,120,2,furniture,
4,Rug,89.90,01,textiles,"wool, hand made"
`

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadFileYAMLAssignsMissingIDs(t *testing.T) {
	path := writeSeed(t, "catalog.yaml", yamlSeed)
	products, err := LoadFile(path, catalog.NewSequence(0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []catalog.Product{
		{ID: 10, Title: "Oak Desk", Price: 250, Quantity: 3, Category: "furniture", Description: "Solid **oak** desk."},
		{ID: 11, Title: "Desk Lamp", Price: 39.5, Quantity: 10, Category: "lighting"},
	}
	if diff := cmp.Diff(want, products); diff != "" {
		t.Fatalf("unexpected products (-want +got):\n%s", diff)
	}
}

func TestLoadFileCSVUsesFormCoercion(t *testing.T) {
	path := writeSeed(t, "catalog.csv", csvSeed)
	products, err := LoadFile(path, catalog.NewSequence(0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []catalog.Product{
		{ID: 5, Title: "Bookshelf", Price: 120, Quantity: 2, Category: "furniture"},
		{ID: 4, Title: "Rug", Price: 89.90, Quantity: 1, Category: "textiles", Description: "wool, hand made"},
	}
	if diff := cmp.Diff(want, products); diff != "" {
		t.Fatalf("unexpected products (-want +got):\n%s", diff)
	}
}

func TestLoadFileRejectsInvalidRows(t *testing.T) {
	cases := []struct {
		name, file, content string
	}{
		{"negative price", "bad.yaml", "products:\n  - title: x\n    price: -1\n"},
		{"empty title", "bad.yaml", "products:\n  - title: ' '\n    price: 1\n"},
		{"unknown field", "bad.yaml", "products:\n  - title: x\n    colour: red\n"},
		{"duplicate ids", "dup.yaml", "products:\n  - id: 1\n    title: a\n  - id: 1\n    title: b\n"},
		{"csv quantity", "bad.csv", "id,title,price,quantity\n1,x,1,lots\n"},
		{"csv id", "bad.csv", "id,title,price,quantity\nabc,x,1,1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSeed(t, tc.file, tc.content)
			if _, err := LoadFile(path, catalog.NewSequence(0)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFileDuplicateIDsWrapSentinel(t *testing.T) {
	path := writeSeed(t, "dup.yaml", "products:\n  - id: 1\n    title: a\n  - id: 1\n    title: b\n")
	_, err := LoadFile(path, nil)
	if !errors.Is(err, catalog.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestLoadFileUnknownExtension(t *testing.T) {
	path := writeSeed(t, "catalog.json", "{}")
	if _, err := LoadFile(path, nil); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := writeSeed(t, "empty.yaml", "")
	products, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected no products, got %d", len(products))
	}
}

func TestEncodeCSVDecodesBack(t *testing.T) {
	products := []catalog.Product{
		{ID: 1, Title: "Oak Desk", Price: 250, Quantity: 3, Category: "furniture", Description: "line one\nline two"},
		{ID: 2, Title: "Mug, large", Price: 7.25, Quantity: 40},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, FormatCSV, products); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "id,title,price,quantity,category,description\n") {
		t.Fatalf("unexpected header in %q", buf.String())
	}
	got, err := Decode(&buf, FormatCSV, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(products, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, FormatYAML, []catalog.Product{{ID: 3, Title: "Rug", Price: 90, Quantity: 1}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(&buf, FormatYAML, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Rug" || got[0].ID != 3 {
		t.Fatalf("unexpected products %+v", got)
	}
}

func TestEncodeTable(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, FormatTable, []catalog.Product{
		{ID: 1, Title: "Oak Desk", Price: 1250, Quantity: 3, Category: "furniture"},
		{ID: 12, Title: "Rug", Price: 90, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"ID  TITLE        PRICE  QTY  CATEGORY",
		" 1  Oak Desk  1,250.00    3  furniture",
		"12  Rug          90.00    1  (none)",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("unexpected table (-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": FormatTable, "CSV": FormatCSV, "yml": FormatYAML, "table": FormatTable} {
		got, err := ParseFormat(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: expected %s, got %s (%v)", raw, want, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
