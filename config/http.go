package config

// HTTPConfig defines settings for the planning API server.
type HTTPConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
