package menu

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/logging/events"
)

// FormOptions tunes how a ProductForm renders.
type FormOptions struct {
	Width        int
	StaticCursor bool
}

// FormField is a render-ready snapshot of one form field.
type FormField struct {
	Name    string
	Label   string
	Input   string
	Err     string
	Focused bool
}

var fieldLabels = map[string]string{
	catalog.FieldTitle:       "Title",
	catalog.FieldPrice:       "Price",
	catalog.FieldQuantity:    "Quantity",
	catalog.FieldCategory:    "Category",
	catalog.FieldDescription: "Description",
}

var fieldPlaceholders = map[string]string{
	catalog.FieldTitle:    "Oak desk",
	catalog.FieldPrice:    "0.00",
	catalog.FieldQuantity: "0",
	catalog.FieldCategory: "furniture",
}

const descriptionIndex = 4

// ProductForm edits the five product fields. Inputs stay raw strings; numbers
// are only coerced when the form is submitted.
type ProductForm struct {
	prompt ProductPrompt
	inputs []textinput.Model
	desc   textarea.Model
	focus  int
	errs   catalog.FieldErrors
	keys   FormKeyMap
	title  string
	help   string
}

func NewProductForm(prompt ProductPrompt, opts FormOptions) *ProductForm {
	width := opts.Width
	if width <= 0 {
		width = 48
	}
	inputs := make([]textinput.Model, descriptionIndex)
	for i := 0; i < descriptionIndex; i++ {
		field := catalog.FieldOrder[i]
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholders[field]
		ti.Width = width
		if opts.StaticCursor {
			ti.Cursor.SetMode(cursor.CursorStatic)
		}
		ti.SetValue(prompt.Initial.Get(field))
		inputs[i] = ti
	}
	ta := textarea.New()
	ta.Placeholder = "Markdown description"
	ta.ShowLineNumbers = false
	ta.SetWidth(width)
	ta.SetHeight(4)
	if opts.StaticCursor {
		ta.Cursor.SetMode(cursor.CursorStatic)
	}
	ta.SetValue(prompt.Initial.Description)

	title := "Add Product"
	help := "Enter to add. Ctrl+S saves from any field. Esc to cancel."
	if prompt.Action == ActionEdit {
		title = fmt.Sprintf("Edit %s", prompt.Initial.Title)
		help = "Enter to save. Ctrl+S saves from any field. Esc to cancel."
	}
	f := &ProductForm{
		prompt: prompt,
		inputs: inputs,
		desc:   ta,
		errs:   catalog.FieldErrors{},
		keys:   DefaultFormKeyMap(),
		title:  title,
		help:   help,
	}
	f.setFocus(0)
	return f
}

// SetWidth resizes every input. Non-positive widths are ignored.
func (f *ProductForm) SetWidth(width int) {
	if width <= 0 {
		return
	}
	for i := range f.inputs {
		f.inputs[i].Width = width
	}
	f.desc.SetWidth(width)
}

func (f *ProductForm) Context() Context     { return f.prompt.Context }
func (f *ProductForm) Action() string       { return f.prompt.Action }
func (f *ProductForm) TargetID() int64      { return f.prompt.ID }
func (f *ProductForm) IsEdit() bool         { return f.prompt.Action == ActionEdit }
func (f *ProductForm) Title() string        { return f.title }
func (f *ProductForm) Help() string         { return f.help }
func (f *ProductForm) Keys() FormKeyMap     { return f.keys }
func (f *ProductForm) FocusedField() string { return catalog.FieldOrder[f.focus] }

// Buffer returns the raw field values as typed so far.
func (f *ProductForm) Buffer() catalog.FormBuffer {
	var buf catalog.FormBuffer
	for i, in := range f.inputs {
		buf = buf.Set(catalog.FieldOrder[i], in.Value())
	}
	return buf.Set(catalog.FieldDescription, f.desc.Value())
}

// Errors returns a copy of the current field errors.
func (f *ProductForm) Errors() catalog.FieldErrors {
	dup := make(catalog.FieldErrors, len(f.errs))
	for k, v := range f.errs {
		dup[k] = v
	}
	return dup
}

// SetErrors replaces the field errors and focuses the first field in error.
func (f *ProductForm) SetErrors(errs catalog.FieldErrors) {
	f.errs = catalog.FieldErrors{}
	for k, v := range errs {
		f.errs[k] = v
	}
	for i, field := range catalog.FieldOrder {
		if _, ok := f.errs[field]; ok {
			f.setFocus(i)
			return
		}
	}
}

// Fields returns every field ready for rendering, in display order.
func (f *ProductForm) Fields() []FormField {
	out := make([]FormField, 0, len(catalog.FieldOrder))
	for i, field := range catalog.FieldOrder {
		var view string
		if i == descriptionIndex {
			view = f.desc.View()
		} else {
			view = f.inputs[i].View()
		}
		out = append(out, FormField{
			Name:    field,
			Label:   fieldLabels[field],
			Input:   view,
			Err:     f.errs[field],
			Focused: i == f.focus,
		})
	}
	return out
}

func (f *ProductForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if m, ok := msg.(tea.KeyMsg); ok {
		inDesc := f.focus == descriptionIndex
		switch {
		case key.Matches(m, f.keys.Cancel):
			if f.IsEdit() {
				events.Product.CancelEdit(f.prompt.ID, events.ProductReasonEscape)
			} else {
				events.Product.CancelAdd(events.ProductReasonEscape)
			}
			return nil, false, true
		case key.Matches(m, f.keys.Save):
			return nil, f.submit(), false
		case key.Matches(m, f.keys.Submit) && !inDesc:
			return nil, f.submit(), false
		case m.String() == "tab":
			return f.move(1), false, false
		case m.String() == "shift+tab":
			return f.move(-1), false, false
		case key.Matches(m, f.keys.Next) && (!inDesc || f.desc.Line() >= f.desc.LineCount()-1):
			return f.move(1), false, false
		case key.Matches(m, f.keys.Prev) && (!inDesc || f.desc.Line() == 0):
			return f.move(-1), false, false
		}
	}

	var cmd tea.Cmd
	if f.focus == descriptionIndex {
		before := f.desc.Value()
		f.desc, cmd = f.desc.Update(msg)
		if f.desc.Value() != before {
			delete(f.errs, catalog.FieldDescription)
		}
		return cmd, false, false
	}
	before := f.inputs[f.focus].Value()
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.inputs[f.focus].Value() != before {
		delete(f.errs, catalog.FieldOrder[f.focus])
	}
	return cmd, false, false
}

func (f *ProductForm) submit() bool {
	_, err := catalog.ParseForm(f.Buffer())
	if err == nil {
		f.errs = catalog.FieldErrors{}
		return true
	}
	var fieldErrs catalog.FieldErrors
	if errors.As(err, &fieldErrs) {
		events.Product.Invalid(fieldErrs)
		f.SetErrors(fieldErrs)
	}
	return false
}

// move cycles focus through the fields, wrapping at both ends.
func (f *ProductForm) move(delta int) tea.Cmd {
	n := len(catalog.FieldOrder)
	return f.setFocus(((f.focus+delta)%n + n) % n)
}

func (f *ProductForm) setFocus(idx int) tea.Cmd {
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == idx {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	if idx == descriptionIndex {
		cmd = f.desc.Focus()
	} else {
		f.desc.Blur()
	}
	return cmd
}
