package state

import (
	"github.com/atomicstack/product-catalog/internal/menu"
)

// MatchFunc narrows a level's items for the current filter text.
type MatchFunc func(items []menu.Item, query string) []menu.Item

// PassThrough keeps every item. Levels whose items are already filtered
// upstream use it so the filter text only drives cursor placement.
func PassThrough(items []menu.Item, _ string) []menu.Item {
	return CloneItems(items)
}

// Level encapsulates list state such as cursor position, filter, and viewport.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	MultiSelect    bool
	Selected       map[string]struct{}
	Match          MatchFunc
	LastCursor     int
	Node           *menu.Node
	ViewportOffset int
}

// NewLevel constructs a Level using the provided items and menu node. The
// cursor starts on the first item.
func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
		Selected:   make(map[string]struct{}),
		Node:       node,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// CurrentItem returns the item under the cursor.
func (l *Level) CurrentItem() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems refreshes the level items while preserving selections and the
// cursor's item where possible.
func (l *Level) UpdateItems(items []menu.Item) {
	prevOffset := l.ViewportOffset
	prevID := ""
	if item, ok := l.CurrentItem(); ok {
		prevID = item.ID
	}
	l.Full = CloneItems(items)
	l.CleanupSelections()
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevID != "" {
		if idx := l.IndexOf(prevID); idx >= 0 {
			l.Cursor = idx
		}
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// FocusBestMatch moves the cursor to the item that best matches the filter.
func (l *Level) FocusBestMatch() {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return
	}
	if idx := BestMatchIndex(l.Items, l.Filter); idx >= 0 {
		l.Cursor = idx
	}
}

func (l *Level) match(items []menu.Item, query string) []menu.Item {
	if l.Match != nil {
		return l.Match(items, query)
	}
	return FilterItems(items, query)
}
