package state

import "github.com/atomicstack/product-catalog/internal/menu"

// Selections are keyed by item ID and survive filtering; only IDs that
// disappear from Full are dropped.

// CleanupSelections forgets IDs that are no longer among the level's items.
func (l *Level) CleanupSelections() {
	for id := range l.Selected {
		if !l.hasFullItem(id) {
			delete(l.Selected, id)
		}
	}
}

func (l *Level) hasFullItem(id string) bool {
	for _, item := range l.Full {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (l *Level) IsSelected(id string) bool {
	_, ok := l.Selected[id]
	return ok
}

// ToggleSelection flips id and returns its new state.
func (l *Level) ToggleSelection(id string) bool {
	if l.IsSelected(id) {
		delete(l.Selected, id)
		return false
	}
	if l.Selected == nil {
		l.Selected = make(map[string]struct{})
	}
	l.Selected[id] = struct{}{}
	return true
}

// ToggleCurrentSelection flips the item under the cursor on multi-select
// levels. ok is false when nothing could be toggled.
func (l *Level) ToggleCurrentSelection() (id string, checked, ok bool) {
	if !l.MultiSelect {
		return "", false, false
	}
	item, ok := l.CurrentItem()
	if !ok {
		return "", false, false
	}
	return item.ID, l.ToggleSelection(item.ID), true
}

// SetSelection replaces the selection with ids, ignoring unknown ones.
func (l *Level) SetSelection(ids []string) {
	l.Selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if l.hasFullItem(id) {
			l.Selected[id] = struct{}{}
		}
	}
}

func (l *Level) ClearSelection() {
	clear(l.Selected)
}

// SelectedItems returns the selected items that pass the current filter, in
// display order.
func (l *Level) SelectedItems() []menu.Item {
	var out []menu.Item
	for _, item := range l.Items {
		if l.IsSelected(item.ID) {
			out = append(out, item)
		}
	}
	return out
}
