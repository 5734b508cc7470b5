package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/product-catalog/internal/backend"
	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/state"
)

func TestHandleStagesSeedReload(t *testing.T) {
	store := state.New(catalog.NewSequence(0))
	d := New(store)
	res := d.Handle(backend.Event{Kind: backend.KindSeed, Data: []catalog.Product{{ID: 1, Title: "Rug"}, {ID: 2, Title: "Mat"}}})
	if !res.SeedStaged || res.Staged != 2 || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if store.Len() != 0 {
		t.Fatalf("expected catalog untouched until applied, got %d", store.Len())
	}
	if err := store.ApplyStaged(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 products after apply, got %d", store.Len())
	}
}

func TestHandlePassesErrorsThrough(t *testing.T) {
	store := state.New(nil)
	d := New(store)
	boom := errors.New("boom")
	res := d.Handle(backend.Event{Kind: backend.KindSeed, Err: boom})
	if !errors.Is(res.Err, boom) || res.SeedStaged {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, ok := store.Staged(); ok {
		t.Fatalf("expected nothing staged on error")
	}
}

func TestHandleRejectsUnexpectedPayload(t *testing.T) {
	d := New(state.New(nil))
	res := d.Handle(backend.Event{Kind: backend.KindSeed, Data: "nope"})
	if res.Err == nil || res.SeedStaged {
		t.Fatalf("expected payload error, got %+v", res)
	}
}
