package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/swiftroute/dispatch/core/model"
)

// publisher is the part of Client the route publisher needs.
type publisher interface {
	Publish(topic string, payload []byte) error
}

// routeMessage is the wire format pushed to fleet/<id>/route.
type routeMessage struct {
	VehicleID string   `json:"vehicle_id"`
	OrderIDs  []string `json:"order_ids"`
	Stops     []stop   `json:"stops"`
	SentAt    string   `json:"sent_at"`
}

type stop struct {
	OrderID   string  `json:"order_id"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	WeightKg  float64 `json:"weight_kg"`
}

// RoutePublisher pushes planned routes to vehicles over MQTT. It implements
// the plan manager's RoutePublisher interface.
type RoutePublisher struct {
	client      publisher
	topicPrefix string
}

// NewRoutePublisher creates a publisher using topics <prefix>/<vehicle>/route.
func NewRoutePublisher(client publisher, topicPrefix string) *RoutePublisher {
	return &RoutePublisher{client: client, topicPrefix: topicPrefix}
}

// PublishRoute serializes the route and publishes it on the vehicle's topic.
func (p *RoutePublisher) PublishRoute(ctx context.Context, vehicleID string, orders []model.DeliveryOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := routeMessage{
		VehicleID: vehicleID,
		OrderIDs:  make([]string, len(orders)),
		Stops:     make([]stop, len(orders)),
		SentAt:    time.Now().UTC().Format(time.RFC3339),
	}
	for i, o := range orders {
		msg.OrderIDs[i] = o.ID
		msg.Stops[i] = stop{
			OrderID:   o.ID,
			Address:   o.Address,
			Latitude:  o.Location.Latitude,
			Longitude: o.Location.Longitude,
			WeightKg:  o.WeightKg,
		}
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mqtt: marshal route: %w", err)
	}
	topic := fmt.Sprintf("%s/%s/route", p.topicPrefix, vehicleID)
	return p.client.Publish(topic, payload)
}
