package ui

import (
	"reflect"

	"github.com/atomicstack/product-catalog/internal/backend"
	"github.com/atomicstack/product-catalog/internal/data/dispatcher"
	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/atomicstack/product-catalog/internal/menu"
	"github.com/atomicstack/product-catalog/internal/state"
	"github.com/atomicstack/product-catalog/internal/theme"
	"github.com/atomicstack/product-catalog/internal/ui/command"
	uistate "github.com/atomicstack/product-catalog/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

type Mode int

const (
	ModeMenu Mode = iota
	ModeProductForm
	ModeConfirmDelete
)

func (m Mode) String() string {
	switch m {
	case ModeProductForm:
		return "product-form"
	case ModeConfirmDelete:
		return "confirm-delete"
	default:
		return "menu"
	}
}

const (
	rootLevelID  = "root"
	rootTitle    = "products"
	headerFormat = "product catalog · %s"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Watcher    *backend.Watcher
	// StaticCursor disables cursor blinking, which keeps synchronous test
	// harnesses from waiting on blink ticks.
	StaticCursor bool
}

// Model implements the Bubble Tea model for the product catalog.
type Model struct {
	store       *state.Store
	stack       []*level
	loading     bool
	pendingID   string
	errMsg      string
	info        flash
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	backend        *backend.Watcher
	backendLastErr string
	dispatcher     *dispatcher.Dispatcher

	productForm  *menu.ProductForm
	confirmForm  *menu.ConfirmForm
	tableHeader  string
	staticCursor bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	keys    menu.KeyMap
	help    help.Model
	preview *previewCache

	handlers map[reflect.Type]msgHandler

	registry *menu.Registry
	bus      *command.Bus
	mode     Mode
}

// NewModel builds the UI around store. The store's current search term seeds
// the prompt so a --search flag shows up as typed text.
func NewModel(store *state.Store, opts Options) *Model {
	if store == nil {
		store = state.New(nil)
	}
	registry := menu.BuildRegistry()
	m := &Model{
		store:        store,
		registry:     registry,
		bus:          command.New(registry),
		backend:      opts.Watcher,
		dispatcher:   dispatcher.New(store),
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		staticCursor: opts.StaticCursor,
		keys:         menu.DefaultKeyMap(),
		help:         help.New(),
		preview:      newPreviewCache(),
		mode:         ModeMenu,
	}
	header, items := menu.ProductTable(store.View())
	m.tableHeader = header
	root := newLevel(rootLevelID, rootTitle, items, registry.Root())
	root.Match = uistate.PassThrough
	if term := store.SearchTerm(); term != "" {
		root.SetFilter(term, len([]rune(term)))
	}
	m.stack = []*level{root}
	m.applyNodeSettings(root)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
		m.help.Width = opts.Width
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.syncViewport(root)
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	if opts.StaticCursor {
		c.SetMode(cursor.CursorStatic)
	}
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if m.mode == ModeMenu {
		if cmd := m.updateFilterCursorModel(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// handleActiveForm routes key presses to an open dialog. Messages that have a
// registered handler, backend events in particular, keep flowing to it; the
// rest (cursor blinks) belong to the form's inputs.
func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	_, isKey := msg.(tea.KeyMsg)
	switch m.mode {
	case ModeProductForm:
		if !isKey && m.handlerFor(msg) != nil {
			return false, nil
		}
		return m.handleProductForm(msg)
	case ModeConfirmDelete:
		if !isKey {
			return false, nil
		}
		return m.handleConfirmForm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):                 m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):          m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):               m.handleMouseMsg,
		reflect.TypeOf(categoryLoadedMsg{}):          m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}):          m.handleActionResultMsg,
		reflect.TypeOf(menu.ProductPrompt{}):         m.handleProductPromptMsg,
		reflect.TypeOf(menu.DeletePrompt{}):          m.handleDeletePromptMsg,
		reflect.TypeOf(menu.SortPrompt{}):            m.handleSortPromptMsg,
		reflect.TypeOf(menu.ReloadPrompt{}):          m.handleReloadPromptMsg,
		reflect.TypeOf(menu.ClearCategoriesPrompt{}): m.handleClearCategoriesPromptMsg,
		reflect.TypeOf(backendEventMsg{}):            m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):             m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Store exposes the catalog store backing the model.
func (m *Model) Store() *state.Store {
	return m.store
}

// Mode reports which surface currently receives key presses.
func (m *Model) Mode() Mode {
	return m.mode
}

func (m *Model) setMode(next Mode) {
	if m.mode == next {
		return
	}
	events.UI.Modal(m.mode.String(), next.String())
	m.mode = next
}
