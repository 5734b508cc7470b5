package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/product-catalog/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the filter text and moves the text cursor to cursor.
// Entering a filter remembers the list cursor; clearing it puts the list
// cursor back.
func (l *Level) SetFilter(query string, cursor int) {
	wasActive := strings.TrimSpace(l.Filter) != ""
	active := strings.TrimSpace(query) != ""
	if active && !wasActive {
		l.LastCursor = l.Cursor
	}

	l.Filter = query
	l.FilterCursor = clampInt(cursor, 0, len([]rune(query)))
	if active {
		l.Cursor = 0
	}
	l.applyFilter()

	switch {
	case active:
		l.FocusBestMatch()
	case wasActive:
		l.Cursor = 0
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	l.Items = l.match(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clampInt(l.Cursor, 0, len(l.Items)-1)
	if l.ViewportOffset >= len(l.Items) {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the text cursor as a rune offset within Filter.
func (l *Level) FilterCursorPos() int {
	return clampInt(l.FilterCursor, 0, len([]rune(l.Filter)))
}

// editFilter applies fn to the filter runes. fn reports false when it made no
// change, in which case the level is left untouched.
func (l *Level) editFilter(fn func(text []rune, pos int) ([]rune, int, bool)) bool {
	text, pos, ok := fn([]rune(l.Filter), l.FilterCursorPos())
	if !ok {
		return false
	}
	l.SetFilter(string(text), pos)
	return true
}

// moveFilterCursor sets the text cursor to the position returned by fn.
func (l *Level) moveFilterCursor(fn func(text []rune, pos int) int) bool {
	pos := l.FilterCursorPos()
	next := fn([]rune(l.Filter), pos)
	if next == pos {
		return false
	}
	l.FilterCursor = next
	return true
}

// InsertFilterText inserts text at the text cursor.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if len(insert) == 0 {
			return nil, 0, false
		}
		out := make([]rune, 0, len(runes)+len(insert))
		out = append(out, runes[:pos]...)
		out = append(out, insert...)
		out = append(out, runes[pos:]...)
		return out, pos + len(insert), true
	})
}

// DeleteFilterRuneBackward removes the rune before the text cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if pos == 0 {
			return nil, 0, false
		}
		return append(runes[:pos-1:pos-1], runes[pos:]...), pos - 1, true
	})
}

// DeleteFilterWordBackward removes the word before the text cursor along with
// any spaces between it and the cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		start := wordStart(runes, pos)
		if start == pos {
			return nil, 0, false
		}
		return append(runes[:start:start], runes[pos:]...), start, true
	})
}

func (l *Level) MoveFilterCursorStart() bool {
	return l.moveFilterCursor(func([]rune, int) int { return 0 })
}

func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveFilterCursor(func(runes []rune, _ int) int { return len(runes) })
}

func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.moveFilterCursor(wordStart)
}

// MoveFilterCursorWordForward skips the rest of the current word and the
// spaces after it.
func (l *Level) MoveFilterCursorWordForward() bool {
	return l.moveFilterCursor(wordEnd)
}

func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveFilterCursor(func(_ []rune, pos int) int { return max(pos-1, 0) })
}

func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveFilterCursor(func(runes []rune, pos int) int { return min(pos+1, len(runes)) })
}

func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Match tiers, best first.
const (
	rankExact = iota
	rankLabelPrefix
	rankIDPrefix
	rankContains
	rankFuzzy
	rankNone
)

type itemRank struct {
	tier     int
	distance int
}

func (r itemRank) better(o itemRank) bool {
	if r.tier != o.tier {
		return r.tier < o.tier
	}
	return r.distance < o.distance
}

// rankItem scores item against an already trimmed query.
func rankItem(item menu.Item, query string) itemRank {
	lower := strings.ToLower(query)
	label := strings.ToLower(item.Label)
	id := strings.ToLower(item.ID)
	switch {
	case label == lower || id == lower:
		return itemRank{tier: rankExact}
	case strings.HasPrefix(label, lower):
		return itemRank{tier: rankLabelPrefix}
	case strings.HasPrefix(id, lower):
		return itemRank{tier: rankIDPrefix}
	case strings.Contains(label, lower) || strings.Contains(id, lower):
		return itemRank{tier: rankContains}
	}
	if d := fuzzy.RankMatchNormalizedFold(query, item.Label); d >= 0 {
		return itemRank{tier: rankFuzzy, distance: d}
	}
	return itemRank{tier: rankNone}
}

// FilterItems keeps the items whose label or ID matches query, in their
// original order. A blank query keeps everything.
func FilterItems(items []menu.Item, query string) []menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	out := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if rankItem(item, trimmed).tier != rankNone {
			out = append(out, item)
		}
	}
	return out
}

// BestMatchIndex picks the item that best matches query: exact matches first,
// then prefixes, substrings and finally the closest fuzzy match. Ties go to
// the earlier item. It returns 0 when nothing matches and -1 for no items.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	best, bestRank := 0, itemRank{tier: rankNone}
	for i, item := range items {
		if r := rankItem(item, trimmed); r.better(bestRank) {
			best, bestRank = i, r
		}
	}
	return best
}
