package class

// Metrics receives registry events. Implementations must be safe for concurrent use.
type Metrics interface {
	// ObserveCreate is called after every Create with the requested and resolved names.
	ObserveCreate(requested, resolved string, err error)
	// ObserveSingleton is called on every successful Singleton; constructed is true on the call
	// that populated the store.
	ObserveSingleton(name string, constructed bool)
	// ObserveOverride is called for every RegisterOverride outcome.
	ObserveOverride(original, replacement string, ok bool)
}

// NoopMetrics discards all events.
type NoopMetrics struct{}

func (NoopMetrics) ObserveCreate(string, string, error)  {}
func (NoopMetrics) ObserveSingleton(string, bool)        {}
func (NoopMetrics) ObserveOverride(string, string, bool) {}
