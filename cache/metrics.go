package cache

// Metrics exposes cache-level observability hooks.
// Implementations must be safe for concurrent use: Hit and Miss are called
// from every reader, Evict from inside an engine's lock.
type Metrics interface {
	Hit()
	Miss()
	Evict()
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is the default when no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()   {}
func (NoopMetrics) Miss()  {}
func (NoopMetrics) Evict() {}

var _ Metrics = NoopMetrics{}
