package dispatch

// Config defines planning-related settings.
type Config struct {
	// EstimatorTimeoutSeconds bounds estimator initialization; model
	// construction cost depends on the backend.
	EstimatorTimeoutSeconds int `json:"estimator_timeout_seconds"`
	// PublishRoutes enables pushing planned routes to vehicles over MQTT.
	PublishRoutes bool `json:"publish_routes"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.EstimatorTimeoutSeconds <= 0 {
		c.EstimatorTimeoutSeconds = 30
	}
}
