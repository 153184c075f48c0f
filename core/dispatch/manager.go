package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swiftroute/dispatch/core/dispatch/logging"
	"github.com/swiftroute/dispatch/core/estimate"
	"github.com/swiftroute/dispatch/core/events"
	"github.com/swiftroute/dispatch/core/fleet"
	"github.com/swiftroute/dispatch/core/geo"
	"github.com/swiftroute/dispatch/core/logger"
	"github.com/swiftroute/dispatch/core/metrics"
	"github.com/swiftroute/dispatch/core/model"
	"github.com/swiftroute/dispatch/core/routing"
	"github.com/swiftroute/dispatch/core/traffic"
	"github.com/swiftroute/dispatch/internal/eventbus"
)

// defaultConditions stand in when the traffic provider is unreachable.
var defaultConditions = traffic.Conditions{Level: 0.5, Weather: 0.3}

// FleetSource supplies the current fleet when the caller passes no vehicles.
type FleetSource interface {
	List(f fleet.Filter) []model.Vehicle
	Size() int
}

// RoutePublisher pushes a planned route to the vehicle, typically over MQTT.
type RoutePublisher interface {
	PublishRoute(ctx context.Context, vehicleID string, orders []model.DeliveryOrder) error
}

// PlanResult is the outcome of one PlanRoutes call.
type PlanResult struct {
	PlanID    string                           `json:"plan_id"`
	PlannedAt time.Time                        `json:"planned_at"`
	Routes    map[string][]model.DeliveryOrder `json:"routes"`
	// Unassigned holds every order no available vehicle could take. This is
	// a soft condition: the caller decides whether to requeue or escalate.
	Unassigned []model.DeliveryOrder `json:"unassigned"`
	// Estimates maps order IDs to predicted delivery minutes. Orders are
	// absent when the estimator could not produce a value.
	Estimates map[string]float64 `json:"estimates"`
	// DistanceKm is the raw route length per vehicle.
	DistanceKm map[string]float64 `json:"distance_km"`
}

// PlanManager wires the planner, the duration estimator and the surrounding
// infrastructure into one planning operation.
type PlanManager struct {
	planner   routing.Planner
	estimator estimate.Estimator
	provider  traffic.Provider
	fleet     FleetSource
	publisher RoutePublisher
	logger    logger.Logger
	sink      metrics.Sink
	bus       eventbus.EventBus
	store     logging.LogStore
	now       func() time.Time

	// mu serializes estimator access: a single estimator instance is not
	// safe for concurrent Predict calls.
	mu sync.Mutex
}

// NewPlanManager creates a manager. Planner and estimator are mandatory;
// logger and sink fall back to no-ops when nil.
func NewPlanManager(planner routing.Planner, est estimate.Estimator, provider traffic.Provider, log logger.Logger, sink metrics.Sink) (*PlanManager, error) {
	if planner == nil || est == nil {
		return nil, fmt.Errorf("dispatch: nil planner or estimator")
	}
	if log == nil {
		log = logger.Nop{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &PlanManager{
		planner:   planner,
		estimator: est,
		provider:  provider,
		logger:    log,
		sink:      sink,
		now:       time.Now,
	}, nil
}

// SetFleetSource configures the registry consulted when PlanRoutes is called
// without vehicles.
func (m *PlanManager) SetFleetSource(src FleetSource) { m.fleet = src }

// SetEventBus configures the bus planning events are published on.
func (m *PlanManager) SetEventBus(bus eventbus.EventBus) { m.bus = bus }

// SetLogStore configures the store used to persist plan records.
func (m *PlanManager) SetLogStore(store logging.LogStore) { m.store = store }

// SetRoutePublisher configures the transport used to push routes to vehicles.
func (m *PlanManager) SetRoutePublisher(p RoutePublisher) { m.publisher = p }

// SetClock overrides the time source. Used in tests.
func (m *PlanManager) SetClock(now func() time.Time) { m.now = now }

// Close releases resources held by the manager.
func (m *PlanManager) Close() error {
	if m.bus != nil {
		m.bus.Close()
	}
	if m.store != nil {
		if err := m.store.Close(); err != nil {
			return err
		}
	}
	return m.estimator.Close()
}

// PlanRoutes runs one planning pass. When vehicles is nil the current
// available fleet is pulled from the configured FleetSource; when weights is
// nil the traffic provider is consulted. Input slices are never mutated.
// Estimator failures degrade to missing estimates; they never fail the plan.
func (m *PlanManager) PlanRoutes(ctx context.Context, orders []model.DeliveryOrder, vehicles []model.Vehicle, weights traffic.Weights) (PlanResult, error) {
	if err := ctx.Err(); err != nil {
		return PlanResult{}, err
	}
	planID := uuid.NewString()
	now := m.now()

	if vehicles == nil && m.fleet != nil {
		vehicles = m.fleet.List(fleet.Filter{Status: model.VehicleAvailable})
		if fr, ok := m.sink.(metrics.FleetSizeRecorder); ok {
			if err := fr.RecordFleetSize(m.fleet.Size()); err != nil {
				m.logger.Errorf("fleet size metrics error: %v", err)
			}
		}
		m.logger.Infof("pulled %d available vehicles from registry", len(vehicles))
	}

	if m.bus != nil {
		m.bus.Publish(events.PlanRequested{PlanID: planID, Orders: len(orders), Vehicles: len(vehicles), Time: now})
	}

	weights, cond := m.trafficInputs(ctx, weights)
	asn := m.planner.Plan(orders, vehicles, weights)
	m.logger.Infof("plan %s: %d orders across %d vehicles, %d unassigned",
		planID, asn.AssignedCount(), len(asn.Routes), len(asn.Unassigned))

	result := PlanResult{
		PlanID:     planID,
		PlannedAt:  now,
		Routes:     asn.Routes,
		Unassigned: asn.Unassigned,
		Estimates:  make(map[string]float64),
		DistanceKm: make(map[string]float64),
	}
	m.estimateRoutes(&result, vehicles, cond, now)

	ev := metrics.PlanEvent{
		PlanID:           planID,
		Time:             now,
		Vehicles:         len(asn.Routes),
		OrdersAssigned:   asn.AssignedCount(),
		OrdersUnassigned: len(asn.Unassigned),
		RouteDistanceKm:  result.DistanceKm,
	}
	if err := m.sink.RecordPlan(ev); err != nil {
		m.logger.Errorf("plan metrics error: %v", err)
	}

	if m.store != nil {
		if err := m.store.Append(ctx, toRecord(result)); err != nil {
			m.logger.Errorf("plan log append failed: %v", err)
		}
	}

	if m.publisher != nil {
		for id, route := range result.Routes {
			if err := m.publisher.PublishRoute(ctx, id, route); err != nil {
				m.logger.Errorf("route publish to %s failed: %v", id, err)
			}
		}
	}

	if m.bus != nil {
		m.bus.Publish(events.PlanComputed{PlanID: planID, Assigned: asn.AssignedCount(), Unassigned: len(asn.Unassigned), Time: now})
	}
	return result, nil
}

// trafficInputs fetches weights and conditions, degrading to defaults on
// provider errors: congestion data is advisory, not a hard dependency.
// Caller-supplied weights take precedence over the provider's.
func (m *PlanManager) trafficInputs(ctx context.Context, weights traffic.Weights) (traffic.Weights, traffic.Conditions) {
	if m.provider == nil {
		return weights, defaultConditions
	}
	if weights == nil {
		w, err := m.provider.Weights(ctx)
		if err != nil {
			m.logger.Warnf("traffic weights unavailable: %v", err)
		} else {
			weights = w
		}
	}
	cond, err := m.provider.Conditions(ctx)
	if err != nil {
		m.logger.Warnf("traffic conditions unavailable: %v", err)
		cond = defaultConditions
	}
	return weights, cond
}

// estimateRoutes walks each route leg by leg, accumulating raw distance and
// stamping per-order duration estimates.
func (m *PlanManager) estimateRoutes(res *PlanResult, vehicles []model.Vehicle, cond traffic.Conditions, now time.Time) {
	byID := make(map[string]model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}
	tod := timeOfDay(now)

	m.mu.Lock()
	defer m.mu.Unlock()
	for vid, route := range res.Routes {
		v, ok := byID[vid]
		if !ok {
			continue
		}
		current := v.Location
		var total float64
		for _, o := range route {
			leg := geo.Distance(current, o.Location)
			total += leg
			current = o.Location

			f := estimate.Features{
				DistanceKm:   leg,
				WeightKg:     o.WeightKg,
				TrafficLevel: cond.Level,
				Weather:      cond.Weather,
				TimeOfDay:    tod,
				Priority:     o.Priority.Feature(),
			}
			minutes, err := m.estimator.Predict(f)
			if err != nil {
				if errors.Is(err, estimate.ErrNotInitialized) {
					m.logger.Warnf("estimator not ready, skipping estimate for order %s", o.ID)
				} else {
					m.logger.Errorf("estimate for order %s failed: %v", o.ID, err)
				}
				continue
			}
			res.Estimates[o.ID] = minutes
			if er, ok := m.sink.(metrics.EstimateRecorder); ok {
				eev := metrics.EstimateEvent{PlanID: res.PlanID, OrderID: o.ID, VehicleID: vid, Minutes: minutes, Time: now}
				if err := er.RecordEstimate(eev); err != nil {
					m.logger.Errorf("estimate metrics error: %v", err)
				}
			}
		}
		res.DistanceKm[vid] = total
	}
}

func toRecord(res PlanResult) logging.PlanRecord {
	rec := logging.PlanRecord{
		Timestamp:  res.PlannedAt,
		PlanID:     res.PlanID,
		Routes:     make(map[string][]string, len(res.Routes)),
		Estimates:  res.Estimates,
		DistanceKm: res.DistanceKm,
	}
	for vid, route := range res.Routes {
		ids := make([]string, len(route))
		for i, o := range route {
			ids[i] = o.ID
		}
		rec.Routes[vid] = ids
	}
	for _, o := range res.Unassigned {
		rec.Unassigned = append(rec.Unassigned, o.ID)
	}
	return rec
}

// timeOfDay normalizes the wall clock to [0,1).
func timeOfDay(t time.Time) float64 {
	return float64(t.Hour()*3600+t.Minute()*60+t.Second()) / 86400
}
