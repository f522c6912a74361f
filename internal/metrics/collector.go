// Package metrics exposes registry events as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sghaida/classhelper/class"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Collector implements class.Metrics on top of Prometheus counter vectors.
type Collector struct {
	creates    *prometheus.CounterVec
	singletons *prometheus.CounterVec
	overrides  *prometheus.CounterVec
}

var _ class.Metrics = (*Collector)(nil)

// New creates the counters under namespace and registers them with reg.
func New(namespace string, reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		creates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "creates_total",
			Help:      "Instances constructed through the class registry",
		}, []string{"requested", "resolved", "result"}),
		singletons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "singleton_requests_total",
			Help:      "Singleton requests, split by whether the call constructed the instance",
		}, []string{"class", "constructed"}),
		overrides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "override_registrations_total",
			Help:      "Override registration attempts by outcome",
		}, []string{"original", "replacement", "result"}),
	}

	for _, col := range []prometheus.Collector{c.creates, c.singletons, c.overrides} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveCreate counts a Create call.
func (c *Collector) ObserveCreate(requested, resolved string, err error) {
	c.creates.WithLabelValues(requested, resolved, result(err == nil)).Inc()
}

// ObserveSingleton counts a Singleton call.
func (c *Collector) ObserveSingleton(name string, constructed bool) {
	label := "false"
	if constructed {
		label = "true"
	}
	c.singletons.WithLabelValues(name, label).Inc()
}

// ObserveOverride counts a RegisterOverride outcome.
func (c *Collector) ObserveOverride(original, replacement string, ok bool) {
	c.overrides.WithLabelValues(original, replacement, result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return ResultOK
	}
	return ResultError
}
