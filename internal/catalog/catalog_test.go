package catalog

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalogAppendReplaceRemove(t *testing.T) {
	c, err := New(sampleProducts()[:2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Append(Product{ID: 1, Title: "dup"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err := c.Append(Product{ID: 7, Title: "Chair", Price: 60}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := c.Replace(Product{ID: 2, Title: "Desk Lamp XL", Price: 55}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if diff := cmp.Diff([]string{"Oak Desk", "Desk Lamp XL", "Chair"}, titles(c.Products())); diff != "" {
		t.Fatalf("replace should keep position (-want +got):\n%s", diff)
	}
	removed, err := c.Remove(1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.Title != "Oak Desk" {
		t.Fatalf("expected Oak Desk removed, got %q", removed.Title)
	}
	if _, err := c.Remove(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
	if err := c.Replace(Product{ID: 99}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on replace, got %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", c.Len())
	}
}

func TestCatalogProductsIsACopy(t *testing.T) {
	c, _ := New(sampleProducts())
	products := c.Products()
	products[0].Title = "changed"
	if got, _ := c.Get(1); got.Title != "Oak Desk" {
		t.Fatalf("catalog mutated through copy: %q", got.Title)
	}
}

func TestCatalogResetRejectsDuplicates(t *testing.T) {
	c, _ := New(sampleProducts())
	err := c.Reset([]Product{{ID: 1}, {ID: 1}})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("expected catalog untouched after failed reset, got %d", c.Len())
	}
}

func TestSequenceIsMonotonicAcrossGoroutines(t *testing.T) {
	seq := NewSequence(0)
	const workers, per = 8, 250
	ids := make(chan int64, workers*per)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < per; j++ {
				ids <- seq.NextID()
			}
		}()
	}
	wg.Wait()
	close(ids)
	seen := map[int64]struct{}{}
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != workers*per {
		t.Fatalf("expected %d ids, got %d", workers*per, len(seen))
	}
}

func TestSequenceObserve(t *testing.T) {
	seq := NewSequence(0)
	seq.Observe(41)
	seq.Observe(3)
	if got := seq.NextID(); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestSnowflakeIDsAreUniqueAndIncreasing(t *testing.T) {
	ids, err := NewSnowflakeIDs(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prev := int64(-1)
	for i := 0; i < 5000; i++ {
		id := ids.NextID()
		if id <= prev {
			t.Fatalf("expected increasing ids, got %d after %d", id, prev)
		}
		prev = id
	}
	if _, err := NewSnowflakeIDs(5000); err == nil {
		t.Fatalf("expected error for out-of-range node")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleProducts())
	if s.Count != 5 || s.Units != 21 {
		t.Fatalf("unexpected totals %+v", s)
	}
	wantValue := 250.0*3 + 40*10 + 120*2 + 40*5 + 90*1
	if s.StockValue != wantValue {
		t.Fatalf("expected stock value %v, got %v", wantValue, s.StockValue)
	}
	if s.MeanPrice != 108 {
		t.Fatalf("expected mean 108, got %v", s.MeanPrice)
	}
	if s.MedianPrice != 90 {
		t.Fatalf("expected median 90, got %v", s.MedianPrice)
	}
	if got := Summarize(nil); got != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
	if got := Summarize(nil).String(); got != "no products" {
		t.Fatalf("unexpected empty summary %q", got)
	}
}

func TestProductLabels(t *testing.T) {
	p := Product{ID: 3, Title: "Shelf", Price: 1234.5, Quantity: 12000}
	if got := p.PriceLabel(); got != "1,234.50" {
		t.Fatalf("unexpected price label %q", got)
	}
	if got := p.QuantityLabel(); got != "12,000" {
		t.Fatalf("unexpected quantity label %q", got)
	}
	if got := p.CategoryLabel(); got != "(none)" {
		t.Fatalf("unexpected category label %q", got)
	}
}

func TestFormatPriceHandlesLargeAmounts(t *testing.T) {
	cases := map[float64]string{
		0:           "0.00",
		999999.999:  "1,000,000.00",
		1e14 + 0.25: "100,000,000,000,000.25",
		1e19:        "10,000,000,000,000,000,000.00",
		math.Inf(1): "+Inf",
	}
	for v, want := range cases {
		if got := FormatPrice(v); got != want {
			t.Fatalf("FormatPrice(%v): expected %q, got %q", v, want, got)
		}
	}
}

func TestHugeStockValueStaysPositive(t *testing.T) {
	fields, err := ParseForm(FormBuffer{Title: "x", Price: "1e19", Quantity: "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := Product{ID: 1}.WithFields(fields)
	if got := p.PriceLabel(); got != "10,000,000,000,000,000,000.00" {
		t.Fatalf("unexpected price label %q", got)
	}
	if got := FormatPrice(p.StockValue()); strings.HasPrefix(got, "-") {
		t.Fatalf("expected positive stock value, got %q", got)
	}
	if got := Summarize([]Product{p}).String(); strings.Contains(got, "-9,223") {
		t.Fatalf("summary wrapped around int64: %q", got)
	}
}
