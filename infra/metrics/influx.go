package metrics

import (
	"context"
	"math"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/swiftroute/dispatch/core/metrics"
	"github.com/swiftroute/dispatch/infra/logger"
)

// InfluxSink writes planning events to an InfluxDB v2 instance.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a down metrics backend never
// blocks planning.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
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

// RecordPlan writes one point per planning pass.
func (s *InfluxSink) RecordPlan(ev coremetrics.PlanEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var total float64
	for _, d := range ev.RouteDistanceKm {
		total += d
	}
	p := write.NewPointWithMeasurement("route_plan").
		AddTag("plan_id", ev.PlanID).
		AddField("vehicles", ev.Vehicles).
		AddField("orders_assigned", ev.OrdersAssigned).
		AddField("orders_unassigned", ev.OrdersUnassigned).
		AddField("total_distance_km", round3(total)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordEstimate writes one point per stamped estimate.
func (s *InfluxSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("delivery_estimate").
		AddTag("plan_id", ev.PlanID).
		AddTag("order_id", ev.OrderID).
		AddTag("vehicle_id", ev.VehicleID).
		AddField("minutes", round3(ev.Minutes)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
