package events

type (
	UITracer      struct{}
	FilterTracer  struct{}
	ActionTracer  struct{}
	CommandTracer struct{}
)

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

// UI

func (UITracer) MenuEnter(levelID, itemID, label, filter string) {
	emit("menu.enter", "level", levelID, "item", itemID, "label", label, "filter", filter)
}

func (UITracer) MenuCursor(levelID string, cursor int) {
	emit("menu.cursor", "level", levelID, "cursor", cursor)
}

func (UITracer) Modal(from, to string) { emit("ui.modal", "from", from, "to", to) }
func (UITracer) Resize(width, height int) { emit("ui.resize", "width", width, "height", height) }

// Actions

func (ActionTracer) Error(err error) {
	if err != nil {
		emit("action.error", "error", err.Error())
	}
}

func (ActionTracer) Success(info string) { emit("action.success", "info", info) }

// Search line edits. level is the ID of the list being filtered.

func (FilterTracer) Cleared(level string) { emit("filter.clear", "level", level) }

func (FilterTracer) WordBackspace(level, text string) {
	emit("filter.word-backspace", "level", level, "filter", text)
}

func (FilterTracer) Backspace(level, text string) {
	emit("filter.backspace", "level", level, "filter", text)
}

func (FilterTracer) Append(level, text string) {
	emit("filter.append", "level", level, "filter", text)
}

func (FilterTracer) Cursor(level string, pos int) {
	emit("filter.cursor", "level", level, "cursor", pos)
}

func (FilterTracer) CursorWord(level string, pos int) {
	emit("filter.cursor-word", "level", level, "cursor", pos)
}

// Catalog view filters.

func (FilterTracer) Search(term string, shown, total int) {
	emit("filter.search", "term", term, "shown", shown, "total", total)
}

func (FilterTracer) Category(category string, checked bool) {
	emit("filter.category", "category", category, "checked", checked)
}

func (FilterTracer) Sort(mode string) { emit("filter.sort", "mode", mode) }

// Commands

func (CommandTracer) Queue(id, label string) { emit("command.queue", "id", id, "label", label) }
func (CommandTracer) Skip(id, label string) { emit("command.skip", "id", id, "label", label) }
func (CommandTracer) NoOp(id, label string) { emit("command.noop", "id", id, "label", label) }

func (CommandTracer) Result(id, label, msgType string) {
	emit("command.result", "id", id, "label", label, "msg", msgType)
}
