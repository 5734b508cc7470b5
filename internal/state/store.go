package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/atomicstack/product-catalog/internal/catalog"
)

// Modal names the dialog currently routing user input.
type Modal int

const (
	ModalNone Modal = iota
	ModalAdd
	ModalEdit
	ModalConfirmDelete
)

func (m Modal) String() string {
	switch m {
	case ModalAdd:
		return "add"
	case ModalEdit:
		return "edit"
	case ModalConfirmDelete:
		return "confirm-delete"
	default:
		return "none"
	}
}

// UpdatedNotice is shown after a successful edit.
const UpdatedNotice = "Product updated successfully!"

var (
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrNoPendingEdit   = errors.New("no edit in progress")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	ErrNothingStaged   = errors.New("no staged catalog to apply")
)

// Store is the single owner of catalog view state: the products, the form
// buffer, the derived-view filters, and the modal routing. It is not safe for
// concurrent use; the UI mutates it from its update loop only.
type Store struct {
	ids     catalog.IDSource
	catalog *catalog.Catalog
	form    catalog.FormBuffer
	filters catalog.Filters
	modal   Modal

	editID    int64
	editing   bool
	deleteID  int64
	deleting  bool
	notice    string
	staged    []catalog.Product
	hasStaged bool
}

// New creates an empty store that assigns IDs from ids.
func New(ids catalog.IDSource) *Store {
	if ids == nil {
		ids = catalog.NewSequence(0)
	}
	c, _ := catalog.New(nil)
	return &Store{ids: ids, catalog: c}
}

// Load replaces the catalog contents, typically from a seed file at startup.
func (s *Store) Load(products []catalog.Product) error {
	if err := s.catalog.Reset(products); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.resetPending()
	return nil
}

// Products returns the full catalog in insertion order.
func (s *Store) Products() []catalog.Product {
	return s.catalog.Products()
}

// Len returns the catalog size.
func (s *Store) Len() int {
	return s.catalog.Len()
}

// Product looks up a product by ID.
func (s *Store) Product(id int64) (catalog.Product, bool) {
	return s.catalog.Get(id)
}

// View returns the derived list: search, category filter, then price sort.
func (s *Store) View() []catalog.Product {
	return catalog.Derive(s.catalog.Products(), s.Filters())
}

// Facets returns distinct categories across the whole catalog.
func (s *Store) Facets() []string {
	return s.catalog.Facets()
}

// Summary aggregates the derived view.
func (s *Store) Summary() catalog.Summary {
	return catalog.Summarize(s.View())
}

// Filters returns a copy of the current view filters.
func (s *Store) Filters() catalog.Filters {
	f := s.filters
	f.Categories = slices.Clone(s.filters.Categories)
	return f
}

// SearchTerm returns the current search text.
func (s *Store) SearchTerm() string { return s.filters.Search }

// SelectedCategories returns the selected categories in selection order.
func (s *Store) SelectedCategories() []string { return slices.Clone(s.filters.Categories) }

// SortMode returns the price sort mode.
func (s *Store) SortMode() catalog.SortMode { return s.filters.Sort }

// Modal returns the active modal.
func (s *Store) Modal() Modal { return s.modal }

// Form returns the current form buffer.
func (s *Store) Form() catalog.FormBuffer { return s.form }

// SetForm replaces the form buffer while composing an add or edit.
func (s *Store) SetForm(buf catalog.FormBuffer) { s.form = buf }

// SetSearchTerm sets the title search text.
func (s *Store) SetSearchTerm(term string) { s.filters.Search = term }

// SetSortMode sets the price sort.
func (s *Store) SetSortMode(mode catalog.SortMode) { s.filters.Sort = mode }

// ToggleCategory adds category to the selection when checked and removes it
// otherwise. Repeating a call with the same flag changes nothing.
func (s *Store) ToggleCategory(category string, checked bool) {
	idx := slices.Index(s.filters.Categories, category)
	switch {
	case checked && idx < 0:
		s.filters.Categories = append(s.filters.Categories, category)
	case !checked && idx >= 0:
		s.filters.Categories = slices.Delete(s.filters.Categories, idx, idx+1)
	}
}

// ClearCategories empties the category selection.
func (s *Store) ClearCategories() { s.filters.Categories = nil }

// OpenAdd clears the form and opens the add dialog.
func (s *Store) OpenAdd() {
	s.resetPending()
	s.form = catalog.FormBuffer{}
	s.modal = ModalAdd
}

// CloseModal dismisses any dialog, discarding a pending edit or delete.
func (s *Store) CloseModal() {
	s.resetPending()
	s.modal = ModalNone
}

// AddProduct coerces buf into a product with a fresh ID and appends it. On
// validation failure nothing changes and the error is catalog.FieldErrors.
func (s *Store) AddProduct(buf catalog.FormBuffer) (catalog.Product, error) {
	s.form = buf
	fields, err := catalog.ParseForm(buf)
	if err != nil {
		return catalog.Product{}, err
	}
	p := catalog.Product{ID: s.ids.NextID()}.WithFields(fields)
	if err := s.catalog.Append(p); err != nil {
		return catalog.Product{}, fmt.Errorf("add %q: %w", p.Title, err)
	}
	s.form = catalog.FormBuffer{}
	if s.modal == ModalAdd {
		s.modal = ModalNone
	}
	return p, nil
}

// BeginEdit resolves a row of the derived view to its product and loads it
// into the form.
func (s *Store) BeginEdit(index int) error {
	p, err := s.rowAt(index)
	if err != nil {
		return err
	}
	return s.BeginEditID(p.ID)
}

// BeginEditID loads the product into the form and opens the edit dialog.
func (s *Store) BeginEditID(id int64) error {
	p, ok := s.catalog.Get(id)
	if !ok {
		return fmt.Errorf("edit #%d: %w", id, catalog.ErrNotFound)
	}
	s.resetPending()
	s.editID = id
	s.editing = true
	s.form = p.Buffer()
	s.modal = ModalEdit
	return nil
}

// EditTarget returns the ID of the product being edited.
func (s *Store) EditTarget() (int64, bool) {
	return s.editID, s.editing
}

// CommitEdit replaces the product recorded by BeginEdit with the parsed form,
// keeping its ID and catalog position.
func (s *Store) CommitEdit() (catalog.Product, error) {
	if !s.editing {
		return catalog.Product{}, ErrNoPendingEdit
	}
	current, ok := s.catalog.Get(s.editID)
	if !ok {
		id := s.editID
		s.CloseModal()
		return catalog.Product{}, fmt.Errorf("update #%d: %w", id, catalog.ErrNotFound)
	}
	fields, err := catalog.ParseForm(s.form)
	if err != nil {
		return catalog.Product{}, err
	}
	updated := current.WithFields(fields)
	if err := s.catalog.Replace(updated); err != nil {
		return catalog.Product{}, fmt.Errorf("update #%d: %w", updated.ID, err)
	}
	s.CloseModal()
	s.form = catalog.FormBuffer{}
	s.notice = UpdatedNotice
	return updated, nil
}

// RequestDelete resolves a row of the derived view and asks for confirmation.
func (s *Store) RequestDelete(index int) error {
	p, err := s.rowAt(index)
	if err != nil {
		return err
	}
	return s.RequestDeleteID(p.ID)
}

// RequestDeleteID records the delete target and opens the confirmation prompt.
// The catalog is not touched until ConfirmDelete.
func (s *Store) RequestDeleteID(id int64) error {
	if _, ok := s.catalog.Get(id); !ok {
		return fmt.Errorf("delete #%d: %w", id, catalog.ErrNotFound)
	}
	s.resetPending()
	s.deleteID = id
	s.deleting = true
	s.modal = ModalConfirmDelete
	return nil
}

// PendingDelete returns the product awaiting confirmation.
func (s *Store) PendingDelete() (catalog.Product, bool) {
	if !s.deleting {
		return catalog.Product{}, false
	}
	return s.catalog.Get(s.deleteID)
}

// ConfirmDelete removes the pending product and dismisses the prompt.
func (s *Store) ConfirmDelete() (catalog.Product, error) {
	if !s.deleting {
		return catalog.Product{}, ErrNoPendingDelete
	}
	id := s.deleteID
	s.CloseModal()
	removed, err := s.catalog.Remove(id)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("delete #%d: %w", id, err)
	}
	return removed, nil
}

// CancelDelete dismisses the prompt without touching the catalog.
func (s *Store) CancelDelete() {
	if s.modal == ModalConfirmDelete {
		s.modal = ModalNone
	}
	s.deleting = false
	s.deleteID = 0
}

// Notice returns the pending user-facing confirmation message.
func (s *Store) Notice() string { return s.notice }

// TakeNotice returns and clears the pending notice.
func (s *Store) TakeNotice() string {
	n := s.notice
	s.notice = ""
	return n
}

// StageReload holds a freshly loaded catalog until the user applies it.
func (s *Store) StageReload(products []catalog.Product) {
	s.staged = catalog.CloneProducts(products)
	s.hasStaged = true
}

// Staged reports the number of products waiting to replace the catalog.
func (s *Store) Staged() (int, bool) {
	return len(s.staged), s.hasStaged
}

// ApplyStaged swaps in the staged catalog. Filters survive; pending edits,
// deletes and dialogs do not.
func (s *Store) ApplyStaged() error {
	if !s.hasStaged {
		return ErrNothingStaged
	}
	if err := s.Load(s.staged); err != nil {
		return err
	}
	s.staged = nil
	s.hasStaged = false
	s.modal = ModalNone
	s.form = catalog.FormBuffer{}
	return nil
}

func (s *Store) rowAt(index int) (catalog.Product, error) {
	view := s.View()
	if index < 0 || index >= len(view) {
		return catalog.Product{}, fmt.Errorf("row %d of %d: %w", index, len(view), ErrIndexOutOfRange)
	}
	return view[index], nil
}

func (s *Store) resetPending() {
	s.editing = false
	s.editID = 0
	s.deleting = false
	s.deleteID = 0
}

// SeedStore is the part of Store that background reloads feed into.
type SeedStore interface {
	StageReload(products []catalog.Product)
	Staged() (int, bool)
}

var _ SeedStore = (*Store)(nil)
