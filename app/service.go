package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apifleet "github.com/swiftroute/dispatch/api/fleet"
	apiplan "github.com/swiftroute/dispatch/api/plan"
	"github.com/swiftroute/dispatch/config"
	"github.com/swiftroute/dispatch/core/dispatch"
	"github.com/swiftroute/dispatch/core/dispatch/logging"
	"github.com/swiftroute/dispatch/core/fleet"
	coremetrics "github.com/swiftroute/dispatch/core/metrics"
	"github.com/swiftroute/dispatch/core/routing"
	"github.com/swiftroute/dispatch/core/traffic"
	"github.com/swiftroute/dispatch/infra/logger"
	"github.com/swiftroute/dispatch/infra/metrics"
	"github.com/swiftroute/dispatch/infra/mqtt"
	"github.com/swiftroute/dispatch/internal/eventbus"
)

// Service orchestrates the plan manager, the fleet tracker and the HTTP API.
type Service struct {
	Manager     *dispatch.PlanManager
	Fleet       *fleet.Store
	mqttClient  *mqtt.Client
	httpAddr    string
	log         logger.Logger
	promEnabled bool
	promPort    int
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	est := cfg.Estimator.Build()
	initCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Dispatch.EstimatorTimeoutSeconds)*time.Second)
	defer cancel()
	if err := est.Initialize(initCtx); err != nil {
		return nil, fmt.Errorf("estimator init: %w", err)
	}

	provider := traffic.NewStatic(cfg.Traffic)
	mgr, err := dispatch.NewPlanManager(routing.NewNearestNeighbor(), est, provider, logg, sink)
	if err != nil {
		return nil, fmt.Errorf("plan manager: %w", err)
	}

	store, err := NewLogStore(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("plan log: %w", err)
	}
	mgr.SetLogStore(store)

	bus := eventbus.New()
	mgr.SetEventBus(bus)

	registry := fleet.NewStore()
	mgr.SetFleetSource(registry)

	svc := &Service{
		Manager:     mgr,
		Fleet:       registry,
		httpAddr:    cfg.HTTP.Addr,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.Connect(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.mqttClient = client
		tracker := mqtt.NewTracker(client, registry, cfg.MQTT.StateTopic, bus, sink)
		if err := tracker.Start(); err != nil {
			return nil, fmt.Errorf("fleet tracker: %w", err)
		}
		if cfg.Dispatch.PublishRoutes {
			mgr.SetRoutePublisher(mqtt.NewRoutePublisher(client, cfg.MQTT.RouteTopicPrefix))
		}
	}
	return svc, nil
}

// NewLogStore opens the configured plan log backend.
func NewLogStore(cfg config.LoggingConfig) (logging.LogStore, error) {
	if cfg.Backend == "rotating" {
		return logging.NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	}
	return logging.NewJSONLStore(cfg.Path)
}

// Run starts the HTTP servers and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/api/plan", apiplan.NewHandler(s.Manager))
	mux.Handle("/api/fleet", apifleet.NewHandler(s.Fleet))

	srv := &http.Server{
		Addr:              s.httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("planning API listening on %s", s.httpAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	if s.promEnabled {
		go func() {
			if err := metrics.StartServer(s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.mqttClient != nil {
		s.mqttClient.Close()
	}
	return s.Manager.Close()
}
