// Package app wires the configuration into a running simulation: event
// sources, coordinator, dispatcher, reporter and the optional adapters.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/naveeng/ndrsim/config"
	"github.com/naveeng/ndrsim/core/coordinator"
	"github.com/naveeng/ndrsim/core/dispatch"
	"github.com/naveeng/ndrsim/core/events"
	coremetrics "github.com/naveeng/ndrsim/core/metrics"
	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/core/pool"
	"github.com/naveeng/ndrsim/core/report"
	"github.com/naveeng/ndrsim/core/severity"
	"github.com/naveeng/ndrsim/core/source"
	"github.com/naveeng/ndrsim/infra/feed"
	"github.com/naveeng/ndrsim/infra/logger"
	"github.com/naveeng/ndrsim/infra/metrics"
	"github.com/naveeng/ndrsim/internal/eventbus"
	"github.com/naveeng/ndrsim/internal/pqueue"
	"github.com/naveeng/ndrsim/internal/simrand"
)

// Service orchestrates the whole simulation pipeline.
type Service struct {
	cfg *config.Config
	log logger.Logger

	pool        *pool.ResourcePool
	queue       *pqueue.Queue
	raw         chan *model.DisasterEvent
	bus         *eventbus.Bus[events.Event]
	sources     []*source.Source
	coordinator *coordinator.Coordinator
	dispatcher  *dispatch.Dispatcher
	reporter    *report.Reporter
	feed        *feed.Subscriber

	stats  *runStats
	influx *metrics.InfluxSink
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	svc := &Service{
		cfg:   cfg,
		log:   logg,
		queue: pqueue.New(),
		raw:   make(chan *model.DisasterEvent, cfg.Simulation.RawBuffer),
		bus:   eventbus.New[events.Event](),
		stats: &runStats{},
	}

	sinks := []coremetrics.Sink{svc.stats}
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			svc.influx = is
		}
		sinks = append(sinks, sink)
	}
	sink := coremetrics.Sink(metrics.NewMultiSink(sinks...))

	rp, err := pool.New(cfg.Pool.Capacities)
	if err != nil {
		return nil, fmt.Errorf("resource pool: %w", err)
	}
	svc.pool = rp

	rng := simrand.New(cfg.Simulation.Seed)
	base := cfg.Simulation.BaseInterval()
	for _, rc := range cfg.Regions {
		profile, err := rc.Profile()
		if err != nil {
			return nil, err
		}
		src, err := source.New(profile, svc.raw, base, rng.Fork(),
			logger.New("source-"+profile.Code), sink, svc.bus)
		if err != nil {
			return nil, err
		}
		svc.sources = append(svc.sources, src)
	}

	engine := severity.DefaultEngine()
	svc.coordinator, err = coordinator.New(engine, svc.raw, svc.queue,
		logger.New("coordinator"), sink, svc.bus)
	if err != nil {
		return nil, err
	}

	svc.dispatcher, err = dispatch.New(svc.queue, rp, cfg.Dispatch, rng.Fork(),
		logger.New("dispatcher"), sink, svc.bus)
	if err != nil {
		return nil, err
	}

	rawLen := func() int { return len(svc.raw) }
	svc.reporter, err = report.New(rp, svc.queue, rawLen,
		cfg.Simulation.ReportInterval(), logger.New("reporter"), sink)
	if err != nil {
		return nil, err
	}

	if cfg.Feed.Enabled {
		sub, err := feed.New(cfg.Feed, svc.raw, logger.New("feed"))
		if err != nil {
			return nil, fmt.Errorf("incident feed: %w", err)
		}
		svc.feed = sub
	}
	return svc, nil
}

// Run starts every component and blocks until the context is canceled or
// the configured duration elapses, then logs the final run statistics.
func (s *Service) Run(ctx context.Context) error {
	if d := s.cfg.Simulation.Duration(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	var wg sync.WaitGroup
	for _, src := range s.sources {
		wg.Add(1)
		go func(src *source.Source) {
			defer wg.Done()
			src.Run(ctx)
		}(src)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.coordinator.Run(ctx)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.dispatcher.Run(ctx)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.reporter.Run(ctx)
	}()

	s.log.Infof("simulation started: %d regions, pool %s", len(s.sources), s.pool.Summary())
	<-ctx.Done()
	wg.Wait()
	s.logFinal()
	return nil
}

// Status returns a point-in-time view of the pipeline.
func (s *Service) Status() report.Status { return s.reporter.Status() }

// Close releases external connections held by the service.
func (s *Service) Close() error {
	if s.feed != nil {
		s.feed.Close()
	}
	if s.influx != nil {
		s.influx.Close()
	}
	s.bus.Close()
	return nil
}

func (s *Service) logFinal() {
	st := s.reporter.Status()
	s.log.Infof("simulation finished: generated=%d scored=%d responded=%d failed_allocations=%d",
		s.stats.generated.Load(), s.stats.scored.Load(), s.stats.responded.Load(), s.stats.denied.Load())
	s.log.Infof("final state: %s raw=%d dispatch=%d", s.pool.Summary(), st.RawQueue, st.DispatchQueue)
}

// runStats counts pipeline activity for the end-of-run summary. It rides
// along the metrics fan-out so the core stays free of bookkeeping.
type runStats struct {
	generated atomic.Int64
	scored    atomic.Int64
	responded atomic.Int64
	denied    atomic.Int64
}

func (r *runStats) RecordEventGenerated(string, model.Category) error {
	r.generated.Add(1)
	return nil
}

func (r *runStats) RecordEventScored(model.Category, int) error {
	r.scored.Add(1)
	return nil
}

func (r *runStats) RecordAllocation(_ model.Category, allocated bool) error {
	if !allocated {
		r.denied.Add(1)
	}
	return nil
}

func (r *runStats) RecordResponse(model.Category, time.Duration) error {
	r.responded.Add(1)
	return nil
}

var _ coremetrics.Sink = (*runStats)(nil)
