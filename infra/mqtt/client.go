package mqtt

import (
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/swiftroute/dispatch/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	QoS      byte   `json:"qos"`
	// StateTopic is the subscription pattern for vehicle state updates.
	StateTopic string `json:"state_topic"`
	// RouteTopicPrefix prefixes per-vehicle route topics.
	RouteTopicPrefix string `json:"route_topic_prefix"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "dispatchd"
	}
	if c.StateTopic == "" {
		c.StateTopic = "fleet/+/state"
	}
	if c.RouteTopicPrefix == "" {
		c.RouteTopicPrefix = "fleet"
	}
}

// Client is a thin connection wrapper shared by the tracker and the route
// publisher.
type Client struct {
	cli paho.Client
	qos byte
	log logger.Logger
}

// NewClientOptions builds Paho client options from Config.
func NewClientOptions(cfg Config) *paho.ClientOptions {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	opts.SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	return opts
}

// Connect dials the broker and blocks until the connection is up or fails.
func Connect(cfg Config) (*Client, error) {
	log := logger.New("mqtt-client")
	opts := NewClientOptions(cfg)
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("MQTT connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Client{cli: cli, qos: cfg.QoS, log: log}, nil
}

// Publish sends the payload on the topic.
func (c *Client) Publish(topic string, payload []byte) error {
	token := c.cli.Publish(topic, c.qos, false, payload)
	token.Wait()
	return token.Error()
}

// Subscribe registers a handler for the topic pattern.
func (c *Client) Subscribe(topic string, h paho.MessageHandler) error {
	token := c.cli.Subscribe(topic, c.qos, h)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (c *Client) Close() {
	c.cli.Disconnect(250)
}
