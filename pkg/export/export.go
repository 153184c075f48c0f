// Package export serializes plan log records for offline analysis.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/swiftroute/dispatch/core/dispatch/logging"
)

// WriteJSON writes the plan records to w in JSON format.
func WriteJSON(w io.Writer, recs []logging.PlanRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(recs)
}

// WriteCSV writes the plan records to w in CSV format, one row per route
// stop. Unassigned orders appear with an empty vehicle_id.
func WriteCSV(w io.Writer, recs []logging.PlanRecord) error {
	cw := csv.NewWriter(w)
	header := []string{"plan_id", "timestamp", "vehicle_id", "stop", "order_id", "estimated_minutes", "route_distance_km"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range recs {
		ts := rec.Timestamp.Format(time.RFC3339)
		for _, vid := range rec.VehicleIDs() {
			dist := strconv.FormatFloat(rec.DistanceKm[vid], 'f', -1, 64)
			for i, oid := range rec.Routes[vid] {
				row := []string{
					rec.PlanID,
					ts,
					vid,
					strconv.Itoa(i),
					oid,
					estimateField(rec, oid),
					dist,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		for _, oid := range rec.Unassigned {
			row := []string{rec.PlanID, ts, "", "", oid, "", ""}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func estimateField(rec logging.PlanRecord, orderID string) string {
	m, ok := rec.Estimates[orderID]
	if !ok {
		return ""
	}
	return strconv.FormatFloat(m, 'f', -1, 64)
}
