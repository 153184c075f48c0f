package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/swiftroute/dispatch/app"
	"github.com/swiftroute/dispatch/config"
	"github.com/swiftroute/dispatch/core/dispatch/logging"
	"github.com/swiftroute/dispatch/pkg/export"
)

var (
	logsFormat  string
	logsVehicle string
	logsOrder   string
	logsSince   string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Plan log commands",
}

var logsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export plan log records",
	RunE:  runLogsExport,
}

func init() {
	logsExportCmd.Flags().StringVar(&logsFormat, "format", "json", "output format: json or csv")
	logsExportCmd.Flags().StringVar(&logsVehicle, "vehicle", "", "only plans routing this vehicle")
	logsExportCmd.Flags().StringVar(&logsOrder, "order", "", "only plans containing this order")
	logsExportCmd.Flags().StringVar(&logsSince, "since", "", "only plans after this RFC3339 timestamp")
	logsCmd.AddCommand(logsExportCmd)
	rootCmd.AddCommand(logsCmd)
}

func runLogsExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := app.NewLogStore(cfg.Logging)
	if err != nil {
		return fmt.Errorf("plan log: %w", err)
	}
	defer func() { _ = store.Close() }()

	q := logging.Query{VehicleID: logsVehicle, OrderID: logsOrder}
	if logsSince != "" {
		start, err := time.Parse(time.RFC3339, logsSince)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
		q.Start = start
	}
	recs, err := store.Query(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("query plan log: %w", err)
	}

	switch logsFormat {
	case "json":
		return export.WriteJSON(cmd.OutOrStdout(), recs)
	case "csv":
		return export.WriteCSV(cmd.OutOrStdout(), recs)
	default:
		return fmt.Errorf("unknown format %s", logsFormat)
	}
}
