// Command simulator publishes synthetic vehicle state over MQTT so a
// dispatch service can be exercised without real couriers. Each simulated
// vehicle drifts randomly around the configured center and reports its
// position on fleet/<id>/state at a fixed interval.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	cfg := parseFlags()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vehicles := GenerateFleet(cfg)
	var wg sync.WaitGroup
	for i := range vehicles {
		v := &vehicles[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := v.Run(ctx); err != nil {
				log.Printf("%s: %v", v.ID, err)
			}
		}()
	}
	wg.Wait()
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Broker, "broker", "tcp://localhost:1883", "MQTT broker URL")
	flag.IntVar(&cfg.FleetSize, "fleet-size", 3, "number of simulated vehicles")
	flag.Float64Var(&cfg.CenterLat, "center-lat", 51.5074, "fleet center latitude")
	flag.Float64Var(&cfg.CenterLon, "center-lon", -0.1278, "fleet center longitude")
	flag.Float64Var(&cfg.SpreadKm, "spread", 5, "max drift distance from center in km")
	flag.Float64Var(&cfg.CapacityKg, "capacity", 500, "vehicle capacity in kg")
	flag.DurationVar(&cfg.Interval, "interval", 10*time.Second, "state publish interval")
	flag.Float64Var(&cfg.BusyRate, "busy-rate", 0, "probability a tick reports the vehicle busy")
	flag.StringVar(&cfg.TopicPrefix, "topic-prefix", "fleet", "MQTT topic prefix")
	flag.Parse()
	return cfg
}
