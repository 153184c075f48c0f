package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/swiftroute/dispatch/core/dispatch"
	"github.com/swiftroute/dispatch/core/metrics"
	"github.com/swiftroute/dispatch/core/traffic"
	"github.com/swiftroute/dispatch/infra/mqtt"
)

type Config struct {
	HTTP      HTTPConfig      `json:"http"`
	MQTT      mqtt.Config     `json:"mqtt"`
	Dispatch  dispatch.Config `json:"dispatch"`
	Estimator EstimatorConfig `json:"estimator"`
	Traffic   traffic.Config  `json:"traffic"`
	Metrics   metrics.Config  `json:"metrics"`
	Logging   LoggingConfig   `json:"logging"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.HTTP.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Dispatch.SetDefaults()
	cfg.Estimator.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Estimator.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
