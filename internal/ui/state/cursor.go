package state

// Cursor moves report whether the highlighted row changed.

// setCursor moves to idx clamped to the item range.
func (l *Level) setCursor(idx int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	prev := l.Cursor
	l.Cursor = clampInt(idx, 0, len(l.Items)-1)
	return l.Cursor != prev
}

// MoveCursorUp wraps from the first row to the last.
func (l *Level) MoveCursorUp() bool {
	if l.Cursor <= 0 {
		return l.setCursor(len(l.Items) - 1)
	}
	return l.setCursor(l.Cursor - 1)
}

// MoveCursorDown wraps from the last row to the first.
func (l *Level) MoveCursorDown() bool {
	if l.Cursor >= len(l.Items)-1 {
		return l.setCursor(0)
	}
	return l.setCursor(l.Cursor + 1)
}

func (l *Level) MoveCursorHome() bool { return l.setCursor(0) }

func (l *Level) MoveCursorEnd() bool { return l.setCursor(len(l.Items) - 1) }

// MoveCursorPageUp jumps one screen up without wrapping.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.setCursor(max(l.Cursor, 0) - l.pageSize(maxVisible))
}

// MoveCursorPageDown jumps one screen down without wrapping.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.setCursor(max(l.Cursor, 0) + l.pageSize(maxVisible))
}

// pageSize is maxVisible, or the whole list when that is unknown or larger.
func (l *Level) pageSize(maxVisible int) int {
	if maxVisible <= 0 || maxVisible > len(l.Items) {
		return len(l.Items)
	}
	return maxVisible
}

// EnsureCursorVisible scrolls the viewport the minimum amount needed to show
// the cursor in a window of maxVisible rows.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 || maxVisible <= 0 {
		l.setCursor(l.Cursor)
		l.ViewportOffset = 0
		return
	}
	l.setCursor(l.Cursor)
	offset := clampInt(l.ViewportOffset, 0, max(len(l.Items)-maxVisible, 0))
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor >= offset+maxVisible:
		offset = l.Cursor - maxVisible + 1
	}
	l.ViewportOffset = offset
}
