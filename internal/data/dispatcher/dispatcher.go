package dispatcher

import (
	"fmt"

	"github.com/atomicstack/product-catalog/internal/backend"
	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/atomicstack/product-catalog/internal/state"
)

type Result struct {
	SeedStaged bool
	Staged     int
	Err        error
}

type Dispatcher struct {
	seeds state.SeedStore
}

func New(s state.SeedStore) *Dispatcher {
	return &Dispatcher{seeds: s}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindSeed:
		products, ok := evt.Data.([]catalog.Product)
		if !ok {
			res.Err = fmt.Errorf("unexpected seed payload %T", evt.Data)
			return res
		}
		d.seeds.StageReload(products)
		res.Staged, res.SeedStaged = d.seeds.Staged()
		events.Seed.Staged(res.Staged)
	}
	return res
}
