package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/swiftroute/dispatch/config"
	"github.com/swiftroute/dispatch/core/dispatch"
	"github.com/swiftroute/dispatch/core/model"
	"github.com/swiftroute/dispatch/core/routing"
	"github.com/swiftroute/dispatch/core/traffic"
	"github.com/swiftroute/dispatch/infra/logger"
)

var planFile string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a one-shot route plan from a JSON file",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planFile, "file", "f", "", "JSON file with orders, vehicles and traffic weights")
	if err := planCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(planCmd)
}

// planInput mirrors the POST /api/plan request body.
type planInput struct {
	Orders         []model.DeliveryOrder `json:"orders"`
	Vehicles       []model.Vehicle       `json:"vehicles"`
	TrafficWeights []traffic.WeightEntry `json:"traffic_weights"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(planFile)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var in planInput
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	if len(in.Orders) == 0 {
		return fmt.Errorf("input has no orders")
	}
	for _, o := range in.Orders {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("order %s: %w", o.ID, err)
		}
	}
	for _, v := range in.Vehicles {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("vehicle %s: %w", v.ID, err)
		}
	}

	logg := logger.New("plan-command")
	est := cfg.Estimator.Build()
	initCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Dispatch.EstimatorTimeoutSeconds)*time.Second)
	defer cancel()
	if err := est.Initialize(initCtx); err != nil {
		return fmt.Errorf("estimator init: %w", err)
	}
	mgr, err := dispatch.NewPlanManager(routing.NewNearestNeighbor(), est, traffic.NewStatic(cfg.Traffic), logg, nil)
	if err != nil {
		return fmt.Errorf("plan manager: %w", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			logg.Errorf("manager close: %v", err)
		}
	}()

	var weights traffic.Weights
	if len(in.TrafficWeights) > 0 {
		weights = make(traffic.Weights, len(in.TrafficWeights))
		for _, e := range in.TrafficWeights {
			weights.Set(model.GeoPoint{Latitude: e.Latitude, Longitude: e.Longitude}, e.Multiplier)
		}
	}

	res, err := mgr.PlanRoutes(cmd.Context(), in.Orders, in.Vehicles, weights)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
