// Package events names every trace event the application emits. Each domain
// gets a tracer value so call sites read as events.Filter.Search(...).
package events

import "github.com/atomicstack/product-catalog/internal/logging"

// emit traces event with a payload built from alternating keys and values.
func emit(event string, kv ...interface{}) {
	if !logging.TraceEnabled() {
		return
	}
	payload := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			payload[key] = kv[i+1]
		}
	}
	logging.Trace(event, payload)
}
