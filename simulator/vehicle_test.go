package main

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type stubToken struct{ err error }

func (t *stubToken) Wait() bool                     { return true }
func (t *stubToken) WaitTimeout(time.Duration) bool { return true }
func (t *stubToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (t *stubToken) Error() error                   { return t.err }

type stubClient struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
}

func (c *stubClient) IsConnected() bool      { return true }
func (c *stubClient) IsConnectionOpen() bool { return true }
func (c *stubClient) Connect() paho.Token    { return &stubToken{} }
func (c *stubClient) Disconnect(uint)        {}
func (c *stubClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.mu.Lock()
	c.topics = append(c.topics, topic)
	c.payloads = append(c.payloads, payload.([]byte))
	c.mu.Unlock()
	return &stubToken{}
}
func (c *stubClient) Subscribe(string, byte, paho.MessageHandler) paho.Token { return &stubToken{} }
func (c *stubClient) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return &stubToken{}
}
func (c *stubClient) Unsubscribe(...string) paho.Token        { return &stubToken{} }
func (c *stubClient) AddRoute(string, paho.MessageHandler)    {}
func (c *stubClient) OptionsReader() paho.ClientOptionsReader { return paho.ClientOptionsReader{} }

func TestTickPublishesState(t *testing.T) {
	sc := &stubClient{}
	v := &SimulatedVehicle{
		ID:          "veh0001",
		Name:        "Simulated veh0001",
		TopicPrefix: "fleet",
		CapacityKg:  500,
		CenterLat:   51.5,
		CenterLon:   -0.1,
		SpreadKm:    5,
		client:      sc,
	}
	v.lat, v.lon = v.CenterLat, v.CenterLon
	v.tick()

	if len(sc.topics) != 1 {
		t.Fatalf("expected one publish, got %d", len(sc.topics))
	}
	if sc.topics[0] != "fleet/veh0001/state" {
		t.Errorf("topic = %s", sc.topics[0])
	}
	var st state
	if err := json.Unmarshal(sc.payloads[0], &st); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if st.ID != "veh0001" || st.CapacityKg != 500 || st.Status != "available" {
		t.Errorf("unexpected state %+v", st)
	}
	if st.Latitude < 51 || st.Latitude > 52 {
		t.Errorf("latitude out of range: %v", st.Latitude)
	}
}
