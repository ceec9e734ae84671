package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/naveeng/ndrsim/core/metrics"
	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/infra/logger"
)

// InfluxSink writes pipeline activity to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a missing database never breaks
// the simulation.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func (s *InfluxSink) writePoint(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

func (s *InfluxSink) RecordEventGenerated(region string, cat model.Category) error {
	p := write.NewPointWithMeasurement("event_generated").
		AddTag("region", region).
		AddTag("category", cat.String()).
		AddField("count", 1).
		SetTime(time.Now())
	return s.writePoint(p)
}

func (s *InfluxSink) RecordEventScored(cat model.Category, severity int) error {
	p := write.NewPointWithMeasurement("event_scored").
		AddTag("category", cat.String()).
		AddField("severity", severity).
		SetTime(time.Now())
	return s.writePoint(p)
}

func (s *InfluxSink) RecordAllocation(cat model.Category, allocated bool) error {
	p := write.NewPointWithMeasurement("allocation_attempt").
		AddTag("category", cat.String()).
		AddTag("allocated", strconv.FormatBool(allocated)).
		AddField("count", 1).
		SetTime(time.Now())
	return s.writePoint(p)
}

func (s *InfluxSink) RecordResponse(cat model.Category, duration time.Duration) error {
	p := write.NewPointWithMeasurement("response_completed").
		AddTag("category", cat.String()).
		AddField("duration_seconds", duration.Seconds()).
		SetTime(time.Now())
	return s.writePoint(p)
}

// RecordPool writes one point per resource kind.
func (s *InfluxSink) RecordPool(available map[string]int) error {
	for kind, n := range available {
		p := write.NewPointWithMeasurement("pool_available").
			AddTag("kind", kind).
			AddField("available", n).
			SetTime(time.Now())
		if err := s.writePoint(p); err != nil {
			return err
		}
	}
	return nil
}

// RecordQueues writes the queue depths.
func (s *InfluxSink) RecordQueues(raw, dispatch int) error {
	p := write.NewPointWithMeasurement("queue_size").
		AddField("raw", raw).
		AddField("dispatch", dispatch).
		SetTime(time.Now())
	return s.writePoint(p)
}

var _ coremetrics.Sink = (*InfluxSink)(nil)
