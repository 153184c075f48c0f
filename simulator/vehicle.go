package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// mqttClientFactory is swapped out in tests.
var mqttClientFactory = realMQTTClient

func realMQTTClient(broker, clientID string) (paho.Client, error) {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	opts.AutoReconnect = true
	cli := paho.NewClient(opts)
	token := cli.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return cli, nil
}

// state is the wire format consumed by the fleet tracker.
type state struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CapacityKg float64 `json:"capacity_kg"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Status     string  `json:"status"`
}

// SimulatedVehicle drifts around a center point and reports its state.
type SimulatedVehicle struct {
	ID          string
	Name        string
	Broker      string
	TopicPrefix string
	CapacityKg  float64
	CenterLat   float64
	CenterLon   float64
	SpreadKm    float64
	Interval    time.Duration
	BusyRate    float64

	lat, lon float64
	client   paho.Client
}

// Run connects to the broker and publishes state until ctx is cancelled.
func (v *SimulatedVehicle) Run(ctx context.Context) error {
	cli, err := mqttClientFactory(v.Broker, "sim-"+v.ID)
	if err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	v.client = cli
	defer cli.Disconnect(250)

	v.lat, v.lon = v.CenterLat, v.CenterLon
	ticker := time.NewTicker(v.Interval)
	defer ticker.Stop()

	v.tick()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			v.tick()
		}
	}
}

// tick moves the vehicle one random step and publishes the new state.
func (v *SimulatedVehicle) tick() {
	v.move()
	st := state{
		ID:         v.ID,
		Name:       v.Name,
		CapacityKg: v.CapacityKg,
		Latitude:   v.lat,
		Longitude:  v.lon,
		Status:     "available",
	}
	if v.BusyRate > 0 && rng.Float64() < v.BusyRate {
		st.Status = "busy"
	}
	payload, err := json.Marshal(st)
	if err != nil {
		log.Printf("%s: marshal state: %v", v.ID, err)
		return
	}
	topic := fmt.Sprintf("%s/%s/state", v.TopicPrefix, v.ID)
	token := v.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		log.Printf("%s: state publish timeout", v.ID)
		return
	}
	if err := token.Error(); err != nil {
		log.Printf("%s: state publish error: %v", v.ID, err)
	}
}

// move applies a random step of at most stepKm, bounded to SpreadKm around
// the center.
func (v *SimulatedVehicle) move() {
	const stepKm = 0.5
	const kmPerDegLat = 111.0

	dLat := (rng.Float64()*2 - 1) * stepKm / kmPerDegLat
	kmPerDegLon := kmPerDegLat * math.Cos(v.CenterLat*math.Pi/180)
	if kmPerDegLon < 1 {
		kmPerDegLon = 1
	}
	dLon := (rng.Float64()*2 - 1) * stepKm / kmPerDegLon

	lat, lon := v.lat+dLat, v.lon+dLon
	if math.Abs(lat-v.CenterLat)*kmPerDegLat > v.SpreadKm {
		lat = v.lat - dLat
	}
	if math.Abs(lon-v.CenterLon)*kmPerDegLon > v.SpreadKm {
		lon = v.lon - dLon
	}
	v.lat, v.lon = lat, lon
}
