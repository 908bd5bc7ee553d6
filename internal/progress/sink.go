package progress

// Sink consumes progress events. Implementations must tolerate repeated
// calls and must not block the traversal for long.
type Sink interface {
	Consume(evt Event)
}

// Emitter publishes individual events; the crawl engine only depends on this
// so it stays agnostic about where diagnostics end up.
type Emitter interface {
	Emit(evt Event)
}

// NopEmitter discards every event.
type NopEmitter struct{}

// Emit implements Emitter.
func (NopEmitter) Emit(Event) {}

// Fanout forwards each event to every registered sink in order.
type Fanout struct {
	sinks []Sink
}

// NewFanout builds an Emitter over the given sinks.
func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Emit implements Emitter.
func (f *Fanout) Emit(evt Event) {
	for _, s := range f.sinks {
		s.Consume(evt)
	}
}
