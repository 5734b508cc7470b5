package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atomicstack/product-catalog/internal/backend"
	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/atomicstack/product-catalog/internal/seed"
	"github.com/atomicstack/product-catalog/internal/state"
	"github.com/atomicstack/product-catalog/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	SeedPath   string
	Watch      bool
	Search     string
	Categories []string
	Sort       catalog.SortMode
	Node       int64
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

const watchDebounce = 300 * time.Millisecond

// NewIDSource returns the generator used for products added at runtime and
// for seed rows without an id.
func NewIDSource(node int64) (catalog.IDSource, error) {
	ids, err := catalog.NewSnowflakeIDs(node)
	if err != nil {
		return nil, fmt.Errorf("id generator: %w", err)
	}
	return ids, nil
}

// LoadStore builds the session store, loads the seed file when one is
// configured and applies the initial filters.
func LoadStore(cfg Config, ids catalog.IDSource) (*state.Store, error) {
	store := state.New(ids)
	if cfg.SeedPath != "" {
		products, err := seed.LoadFile(cfg.SeedPath, ids)
		if err != nil {
			return nil, err
		}
		if err := store.Load(products); err != nil {
			return nil, fmt.Errorf("load %s: %w", cfg.SeedPath, err)
		}
		events.Seed.Load(cfg.SeedPath, len(products))
	}
	store.SetSearchTerm(cfg.Search)
	for _, category := range cfg.Categories {
		store.ToggleCategory(category, true)
	}
	store.SetSortMode(cfg.Sort)
	return store, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ids, err := NewIDSource(cfg.Node)
	if err != nil {
		return err
	}
	store, err := LoadStore(cfg, ids)
	if err != nil {
		return err
	}
	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(cfg.SeedPath, watchDebounce, func(path string) ([]catalog.Product, error) {
			return seed.LoadFile(path, ids)
		})
		if err != nil {
			return fmt.Errorf("watch %s: %w", cfg.SeedPath, err)
		}
		defer watcher.Stop()
	}
	model := ui.NewModel(store, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Watcher:    watcher,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// List writes the filtered and sorted catalog to w without starting the UI.
// Seed rows without an id are numbered after the highest id in the file, so
// the output is the same on every run.
func List(cfg Config, w io.Writer, format seed.Format) error {
	store, err := LoadStore(cfg, catalog.NewSequence(0))
	if err != nil {
		return err
	}
	return seed.Encode(w, format, store.View())
}
