// Package observability provides the structured event sink the core
// pipeline emits into. The core packages depend only on the Sink
// interface; binding to a logging framework happens at the edges.
package observability

// Sink receives structured events from the pipeline ("bank detected",
// "transactions parsed", "limit extracted", ...). Implementations must
// be safe for concurrent use: documents are parsed in parallel.
type Sink interface {
	Event(name string, fields map[string]any)
}

// NopSink discards all events. It is the default when no sink is wired.
type NopSink struct{}

func (NopSink) Event(string, map[string]any) {}
