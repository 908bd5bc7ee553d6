package sinks

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/webmapper-go/webmapper/internal/progress"
)

// PrometheusSink exports crawl progress counters. It owns all collectors it
// registers.
type PrometheusSink struct {
	pagesVisited prometheus.Counter
	fetchErrors  prometheus.Counter
	visitDepth   prometheus.Histogram
}

// NewPrometheusSink registers the collectors against the provided registry.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		pagesVisited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webmapper_pages_visited_total",
			Help: "Total pages for which a fetch was attempted.",
		}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webmapper_fetch_errors_total",
			Help: "Total fetches that failed and degraded to an empty page.",
		}),
		visitDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "webmapper_visit_depth",
			Help:    "Traversal depth at which pages were visited.",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 8, 13},
		}),
	}
	for _, collector := range []prometheus.Collector{
		s.pagesVisited,
		s.fetchErrors,
		s.visitDepth,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume implements progress.Sink.
func (s *PrometheusSink) Consume(evt progress.Event) {
	switch evt.Stage {
	case progress.StagePageVisited:
		s.pagesVisited.Inc()
		s.visitDepth.Observe(float64(evt.Depth))
	case progress.StageFetchError:
		s.fetchErrors.Inc()
	}
}
