package events

type SeedTracer struct{}

var Seed = SeedTracer{}

func (SeedTracer) Load(path string, count int) { emit("seed.load", "path", path, "count", count) }

// Change is a raw filesystem event for the watched file, before debouncing.
func (SeedTracer) Change(path, op string) { emit("seed.change", "path", path, "op", op) }

func (SeedTracer) Staged(count int) { emit("seed.staged", "count", count) }
func (SeedTracer) Applied(count int) { emit("seed.applied", "count", count) }

func (SeedTracer) Error(path string, err error) {
	if err != nil {
		emit("seed.error", "path", path, "error", err.Error())
	}
}
