package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/swiftroute/dispatch/core/metrics"
)

// PromSink records planning events as Prometheus metrics.
type PromSink struct {
	plans      prometheus.Counter
	assigned   prometheus.Counter
	unassigned prometheus.Counter
	distance   prometheus.Histogram
	estimate   prometheus.Histogram
	fleet      prometheus.Gauge
}

// NewPromSink registers planning metrics on the default registerer. The
// exposition server is started separately via StartServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		plans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_plans_total",
			Help: "Total number of route planning passes",
		}),
		assigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_assigned_total",
			Help: "Total number of orders placed on a route",
		}),
		unassigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_unassigned_total",
			Help: "Total number of orders left unassigned after planning",
		}),
		distance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_distance_km",
			Help:    "Planned route length per vehicle in kilometers",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		estimate: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "delivery_estimate_minutes",
			Help:    "Predicted delivery duration per order in minutes",
			Buckets: prometheus.ExponentialBuckets(5, 1.6, 10),
		}),
		fleet: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleet_vehicles_total",
			Help: "Number of vehicles known to the fleet registry",
		}),
	}
	collectors := []prometheus.Collector{s.plans, s.assigned, s.unassigned, s.distance, s.estimate, s.fleet}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				switch i {
				case 0:
					s.plans = are.ExistingCollector.(prometheus.Counter)
				case 1:
					s.assigned = are.ExistingCollector.(prometheus.Counter)
				case 2:
					s.unassigned = are.ExistingCollector.(prometheus.Counter)
				case 3:
					s.distance = are.ExistingCollector.(prometheus.Histogram)
				case 4:
					s.estimate = are.ExistingCollector.(prometheus.Histogram)
				case 5:
					s.fleet = are.ExistingCollector.(prometheus.Gauge)
				}
				continue
			}
			return nil, err
		}
	}
	return s, nil
}

// RecordPlan updates the counters and route distance histogram.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.plans.Inc()
	s.assigned.Add(float64(ev.OrdersAssigned))
	s.unassigned.Add(float64(ev.OrdersUnassigned))
	for _, d := range ev.RouteDistanceKm {
		s.distance.Observe(d)
	}
	return nil
}

// RecordEstimate observes the predicted duration.
func (s *PromSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	s.estimate.Observe(ev.Minutes)
	return nil
}

// RecordFleetSize sets the fleet gauge.
func (s *PromSink) RecordFleetSize(size int) error {
	s.fleet.Set(float64(size))
	return nil
}
