// Package ui contains the Bubble Tea program for the product catalog
// dashboard.
//
// Message flow:
//   - Update first hands key presses to an open dialog (the product form or
//     the delete confirmation). Everything else is routed through a typed
//     handler registry so each tea.Msg lands in one focused function.
//   - Key presses on the list resolve to registry actions via menu.KeyMap.
//     Actions run on the command bus against a menu.Context snapshot and only
//     return prompt messages; the prompt handlers perform the store mutation.
//   - Typing edits the search prompt (input.go). On the product list the text
//     is pushed to the store and the rows are re-derived; the category picker
//     filters its own facets.
//
// State ownership:
//   - internal/state.Store owns the catalog, view filters, and pending dialog
//     targets. Only Update touches it.
//   - internal/ui/state.Level tracks the rows, cursor, filter text, selection,
//     and viewport of each list on the stack.
//
// Backend interactions:
//   - When --watch is set a backend.Watcher reloads the seed file on change.
//     Events are staged through the dispatcher and applied on ctrl+r.
package ui
