package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/swiftroute/dispatch/config"
	corefleet "github.com/swiftroute/dispatch/core/fleet"
	"github.com/swiftroute/dispatch/infra/mqtt"
)

var fleetWait time.Duration

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List vehicles currently reporting state",
	RunE:  runFleetLs,
}

func init() {
	fleetLsCmd.Flags().DurationVar(&fleetWait, "wait", 2*time.Second, "how long to listen for state reports")
	fleetCmd.AddCommand(fleetLsCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	mqttCfg := cfg.MQTT
	suffix := time.Now().UnixNano()
	if mqttCfg.ClientID != "" {
		mqttCfg.ClientID = fmt.Sprintf("%s-%d", mqttCfg.ClientID, suffix)
	} else {
		mqttCfg.ClientID = fmt.Sprintf("fleet-ls-%d", suffix)
	}
	client, err := mqtt.Connect(mqttCfg)
	if err != nil {
		return fmt.Errorf("mqtt client: %w", err)
	}
	defer client.Close()

	store := corefleet.NewStore()
	tracker := mqtt.NewTracker(client, store, mqttCfg.StateTopic, nil, nil)
	if err := tracker.Start(); err != nil {
		return fmt.Errorf("fleet tracker: %w", err)
	}

	select {
	case <-time.After(fleetWait):
	case <-cmd.Context().Done():
	}
	for _, v := range store.Snapshot() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0fkg\t%s\n", v.ID, v.Name, v.CapacityKg, v.Status)
	}
	return nil
}
