package mqtt

import (
	"encoding/json"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/swiftroute/dispatch/core/events"
	"github.com/swiftroute/dispatch/core/fleet"
	"github.com/swiftroute/dispatch/core/metrics"
	"github.com/swiftroute/dispatch/core/model"
	"github.com/swiftroute/dispatch/infra/logger"
	"github.com/swiftroute/dispatch/internal/eventbus"
)

// subscriber is the part of Client the tracker needs.
type subscriber interface {
	Subscribe(topic string, h paho.MessageHandler) error
}

// vehicleState is the wire format vehicles publish on fleet/<id>/state.
type vehicleState struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CapacityKg float64 `json:"capacity_kg"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Status     string  `json:"status"`
}

// Tracker feeds vehicle state updates from MQTT into the fleet registry.
type Tracker struct {
	client subscriber
	store  *fleet.Store
	topic  string
	bus    eventbus.EventBus
	sink   metrics.Sink
	log    logger.Logger
}

// NewTracker creates a tracker. Bus and sink may be nil.
func NewTracker(client subscriber, store *fleet.Store, topic string, bus eventbus.EventBus, sink metrics.Sink) *Tracker {
	return &Tracker{
		client: client,
		store:  store,
		topic:  topic,
		bus:    bus,
		sink:   sink,
		log:    logger.New("fleet-tracker"),
	}
}

// Start subscribes to the state topic.
func (t *Tracker) Start() error {
	return t.client.Subscribe(t.topic, t.onState)
}

func (t *Tracker) onState(_ paho.Client, msg paho.Message) {
	var st vehicleState
	if err := json.Unmarshal(msg.Payload(), &st); err != nil {
		t.log.Warnf("discarding malformed state on %s: %v", msg.Topic(), err)
		return
	}
	v := model.Vehicle{
		ID:         st.ID,
		Name:       st.Name,
		CapacityKg: st.CapacityKg,
		Location:   model.GeoPoint{Latitude: st.Latitude, Longitude: st.Longitude},
		Status:     model.VehicleStatus(st.Status),
	}
	if v.Status == "" {
		v.Status = model.VehicleAvailable
	}
	if err := v.Validate(); err != nil {
		t.log.Warnf("discarding invalid vehicle state on %s: %v", msg.Topic(), err)
		return
	}
	t.store.Upsert(v)
	if t.bus != nil {
		t.bus.Publish(events.VehicleObserved{Vehicle: v, Time: time.Now()})
	}
	if fr, ok := t.sink.(metrics.FleetSizeRecorder); ok {
		if err := fr.RecordFleetSize(t.store.Size()); err != nil {
			t.log.Errorf("fleet size metrics error: %v", err)
		}
	}
	t.log.Debugw("vehicle state absorbed", map[string]any{
		"vehicle_id": v.ID,
		"status":     string(v.Status),
	})
}
