package smartgraph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/request"
)

// Outcome labels of smartgraph_explorer_requests_total.
const (
	OutcomeOK        = "ok"
	OutcomeRequest   = "request_error"
	OutcomeIntegrity = "integrity_error"
	OutcomeGateway   = "gateway_error"
	OutcomeOther     = "error"
)

// Metrics holds Prometheus metrics for the explorer
type Metrics struct {
	requestsTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	graphElements *prometheus.HistogramVec
}

// NewMetrics creates the explorer metrics. Register them before serving.
func NewMetrics() *Metrics {
	return &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartgraph",
				Subsystem: "explorer",
				Name:      "requests_total",
				Help:      "Total number of graph exploration requests",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "smartgraph",
				Subsystem: "explorer",
				Name:      "duration_seconds",
				Help:      "Graph exploration latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		graphElements: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "smartgraph",
				Subsystem: "explorer",
				Name:      "graph_elements",
				Help:      "Number of nodes and edges in returned graph documents",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"operation", "element"},
		),
	}
}

// Register registers every explorer metric with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.requestsTotal, m.duration, m.graphElements} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// observe records one finished request. nodes and edges are ignored on failure.
func (m *Metrics) observe(op request.Operation, started time.Time, nodes, edges int, err error) {
	if m == nil {
		return
	}
	name := string(op)
	m.requestsTotal.WithLabelValues(name, outcome(err)).Inc()
	m.duration.WithLabelValues(name).Observe(time.Since(started).Seconds())
	if err == nil {
		m.graphElements.WithLabelValues(name, "node").Observe(float64(nodes))
		m.graphElements.WithLabelValues(name, "edge").Observe(float64(edges))
	}
}

func outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	class, ok := errs.ClassOf(err)
	if !ok {
		return OutcomeOther
	}
	switch class {
	case errs.ClassRequest:
		return OutcomeRequest
	case errs.ClassIntegrity:
		return OutcomeIntegrity
	default:
		return OutcomeGateway
	}
}
