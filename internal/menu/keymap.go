package menu

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the list bindings. It satisfies help.KeyMap so the footer can
// be rendered straight from it.
type KeyMap struct {
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Categories key.Binding
	Sort       key.Binding
	Reload     key.Binding
	Toggle     key.Binding
	ClearCats  key.Binding
	Back       key.Binding
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:        key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Delete:     key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Categories: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "categories")),
		Sort:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sort")),
		Reload:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload seed")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "tab"), key.WithHelp("space", "toggle")),
		ClearCats:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear categories")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back/clear")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Categories, k.Sort, k.Reload, k.Back, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Delete},
		{k.Categories, k.Toggle, k.ClearCats},
		{k.Sort, k.Reload},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Back, k.Quit},
	}
}

// CategoryHelp is the footer shown while the category picker is open.
func (k KeyMap) CategoryHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ClearCats, k.Back, k.Quit}
}

// ActionFor maps a key press on the product list to a registry action.
func (k KeyMap) ActionFor(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.Add):
		return ActionAdd, true
	case key.Matches(msg, k.Edit):
		return ActionEdit, true
	case key.Matches(msg, k.Delete):
		return ActionDelete, true
	case key.Matches(msg, k.Categories):
		return ActionCategories, true
	case key.Matches(msg, k.Sort):
		return ActionSortCycle, true
	case key.Matches(msg, k.Reload):
		return ActionSeedReload, true
	case key.Matches(msg, k.ClearCats):
		return ActionClearCategories, true
	}
	return "", false
}

// FormKeyMap holds the bindings used inside the product form.
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Save, k.Cancel}
}

func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
