package graphreader

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricNamespace = "graphreader"

// Stats. diagnostic counters of one import, registered on a registry owned by that import
// so several imports never share a counter.
type Stats struct {
	registry *prometheus.Registry

	edgesRejected           prometheus.Counter
	zeroDistanceEdges       prometheus.Counter
	nanDistanceEdges        prometheus.Counter
	restrictionsUnsupported prometheus.Counter
	restrictionsMissingWay  prometheus.Counter
	restrictionsUnresolved  prometheus.Counter
	restrictionsApplied     prometheus.Counter
}

func newStats() *Stats {
	s := &Stats{registry: prometheus.NewRegistry()}
	s.register()
	return s
}

func (s *Stats) register() {
	factory := promauto.With(s.registry)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      name,
			Help:      help,
		})
	}

	s.edgesRejected = counter("edges_rejected", "edges dropped because the encoder did not accept the way or derived empty flags")
	s.zeroDistanceEdges = counter("zero_distance_edges", "edges whose length was clamped to the minimum edge distance")
	s.nanDistanceEdges = counter("nan_distance_edges", "edges whose length was not a number")
	s.restrictionsUnsupported = counter("restrictions_unsupported", "restrictions skipped because of an unknown restriction value")
	s.restrictionsMissingWay = counter("restrictions_missing_way", "restrictions skipped because the from or to way produced no edge")
	s.restrictionsUnresolved = counter("restrictions_unresolved", "restrictions dropped because the ways share no endpoint")
	s.restrictionsApplied = counter("restrictions_applied", "restrictions handed to the encoder")
}

// reset zeroes every counter. the Stats and its registry stay the same, so a caller holding
// them before an import sees the counters of that import.
func (s *Stats) reset() {
	for _, c := range []prometheus.Counter{
		s.edgesRejected, s.zeroDistanceEdges, s.nanDistanceEdges,
		s.restrictionsUnsupported, s.restrictionsMissingWay, s.restrictionsUnresolved, s.restrictionsApplied,
	} {
		s.registry.Unregister(c)
	}
	s.register()
}

// Registry exposes the counters, e.g. for a push gateway or a textfile collector.
func (s *Stats) Registry() *prometheus.Registry {
	return s.registry
}

// Values returns every counter keyed by its name without namespace.
func (s *Stats) Values() (map[string]float64, error) {
	families, err := s.registry.Gather()
	if err != nil {
		return nil, err
	}
	values := make(map[string]float64, len(families))
	for _, mf := range families {
		name := strings.TrimPrefix(mf.GetName(), metricNamespace+"_")
		for _, m := range mf.GetMetric() {
			values[name] += m.GetCounter().GetValue()
		}
	}
	return values, nil
}
