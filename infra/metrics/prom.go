package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/naveeng/ndrsim/core/metrics"
	"github.com/naveeng/ndrsim/core/model"
)

// PromSink records pipeline activity in Prometheus metrics.
type PromSink struct {
	generated   *prometheus.CounterVec
	scored      *prometheus.CounterVec
	severity    *prometheus.HistogramVec
	allocations *prometheus.CounterVec
	response    *prometheus.HistogramVec
	pool        *prometheus.GaugeVec
	queues      *prometheus.GaugeVec
}

// NewPromSink registers the simulation metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "disaster_events_generated_total",
		Help: "Total number of events emitted by regional sources",
	}, []string{"region", "category"})
	scored := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "disaster_events_scored_total",
		Help: "Total number of events scored by the coordinator",
	}, []string{"category"})
	severity := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "disaster_severity_score",
		Help:    "Severity scores assigned by the coordinator",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"category"})
	allocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_allocations_total",
		Help: "Total number of allocation attempts by outcome",
	}, []string{"category", "allocated"})
	response := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dispatch_response_duration_seconds",
		Help:    "Simulated response duration until resources were released",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"category"})
	pool := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "resource_pool_available",
		Help: "Currently available units per resource kind",
	}, []string{"kind"})
	queues := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pipeline_queue_size",
		Help: "Number of events waiting in a pipeline queue",
	}, []string{"queue"})

	s := &PromSink{
		generated:   generated,
		scored:      scored,
		severity:    severity,
		allocations: allocations,
		response:    response,
		pool:        pool,
		queues:      queues,
	}
	for _, c := range []prometheus.Collector{generated, scored, severity, allocations, response, pool, queues} {
		if err := register(reg, c, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// register adds the collector, reusing an already-registered one when the
// process registers the sink more than once.
func register(reg prometheus.Registerer, c prometheus.Collector, s *PromSink) error {
	err := reg.Register(c)
	if err == nil {
		return nil
	}
	are, ok := err.(prometheus.AlreadyRegisteredError)
	if !ok {
		return err
	}
	switch c {
	case s.generated:
		s.generated = are.ExistingCollector.(*prometheus.CounterVec)
	case s.scored:
		s.scored = are.ExistingCollector.(*prometheus.CounterVec)
	case s.severity:
		s.severity = are.ExistingCollector.(*prometheus.HistogramVec)
	case s.allocations:
		s.allocations = are.ExistingCollector.(*prometheus.CounterVec)
	case s.response:
		s.response = are.ExistingCollector.(*prometheus.HistogramVec)
	case s.pool:
		s.pool = are.ExistingCollector.(*prometheus.GaugeVec)
	case s.queues:
		s.queues = are.ExistingCollector.(*prometheus.GaugeVec)
	}
	return nil
}

func (s *PromSink) RecordEventGenerated(region string, cat model.Category) error {
	s.generated.WithLabelValues(region, cat.String()).Inc()
	return nil
}

func (s *PromSink) RecordEventScored(cat model.Category, severity int) error {
	s.scored.WithLabelValues(cat.String()).Inc()
	s.severity.WithLabelValues(cat.String()).Observe(float64(severity))
	return nil
}

func (s *PromSink) RecordAllocation(cat model.Category, allocated bool) error {
	s.allocations.WithLabelValues(cat.String(), strconv.FormatBool(allocated)).Inc()
	return nil
}

func (s *PromSink) RecordResponse(cat model.Category, duration time.Duration) error {
	s.response.WithLabelValues(cat.String()).Observe(duration.Seconds())
	return nil
}

// RecordPool sets the availability gauge per resource kind.
func (s *PromSink) RecordPool(available map[string]int) error {
	for kind, n := range available {
		s.pool.WithLabelValues(kind).Set(float64(n))
	}
	return nil
}

// RecordQueues sets the queue depth gauges.
func (s *PromSink) RecordQueues(raw, dispatch int) error {
	s.queues.WithLabelValues("raw").Set(float64(raw))
	s.queues.WithLabelValues("dispatch").Set(float64(dispatch))
	return nil
}

var _ coremetrics.Sink = (*PromSink)(nil)
