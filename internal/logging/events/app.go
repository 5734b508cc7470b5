package events

import "github.com/atomicstack/product-catalog/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

// Start records the startup payload as is.
func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(reason string) { emit("app.exit", "reason", reason) }
