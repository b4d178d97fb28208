// Package prom adapts cache.Metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/evictkit/cache"
)

// Adapter implements cache.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	reg         prometheus.Registerer
	ns, sub     string
	constLabels prometheus.Labels

	hits   prometheus.Counter
	misses prometheus.Counter
	evicts prometheus.Counter
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	a := &Adapter{
		reg:         reg,
		ns:          ns,
		sub:         sub,
		constLabels: constLabels,
		hits:        counter("hits_total", "Cache hits"),
		misses:      counter("misses_total", "Cache misses"),
		evicts:      counter("evictions_total", "Entries dropped by the eviction engine"),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict increments the eviction counter.
func (a *Adapter) Evict() { a.evicts.Inc() }

// TrackSize registers a size_entries gauge that calls size on every scrape,
// typically Cache.Len. Engines take their locks inside size, so scrapes
// briefly contend with traffic.
func (a *Adapter) TrackSize(size func() int) error {
	return a.reg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   a.ns,
		Subsystem:   a.sub,
		Name:        "size_entries",
		Help:        "Number of resident entries",
		ConstLabels: a.constLabels,
	}, func() float64 { return float64(size()) }))
}

// Compile-time check: ensure Adapter implements cache.Metrics.
var _ cache.Metrics = (*Adapter)(nil)
