// Package command turns registry actions into Bubble Tea commands.
package command

import (
	"fmt"

	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/atomicstack/product-catalog/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Request is one action invocation against a list item.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Bus resolves action IDs through a registry and traces every run.
type Bus struct {
	registry *menu.Registry
}

func New(registry *menu.Registry) *Bus {
	return &Bus{registry: registry}
}

// Dispatch resolves id and returns the command that runs its action. Loader
// nodes and unknown IDs are errors.
func (b *Bus) Dispatch(ctx menu.Context, id string, item menu.Item) (tea.Cmd, error) {
	if b.registry == nil {
		return nil, fmt.Errorf("no registry for %s", id)
	}
	node, ok := b.registry.Find(id)
	if !ok || node.Action == nil {
		return nil, fmt.Errorf("no action registered for %s", id)
	}
	return b.Execute(ctx, Request{ID: id, Label: item.Label, Handler: node.Action, Item: item}), nil
}

// Execute wraps req in a command. The action runs when the command does, so
// it sees ctx as captured here.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg { return run(ctx, req) }
}

func run(ctx menu.Context, req Request) tea.Msg {
	var cmd tea.Cmd
	if req.Handler != nil {
		cmd = req.Handler(ctx, req.Item)
	}
	switch {
	case req.Handler == nil:
		events.Command.Skip(req.ID, req.Label)
	case cmd == nil:
		events.Command.NoOp(req.ID, req.Label)
	default:
		msg := cmd()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
	return nil
}
