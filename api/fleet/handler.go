package fleet

import (
	"encoding/json"
	"net/http"

	corefleet "github.com/swiftroute/dispatch/core/fleet"
	"github.com/swiftroute/dispatch/core/model"
)

// NewHandler returns an HTTP handler exposing the fleet registry via
// GET /api/fleet. The status query parameter filters by vehicle status.
func NewHandler(store *corefleet.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f := corefleet.Filter{
			Status: model.VehicleStatus(r.URL.Query().Get("status")),
		}
		vehicles := store.List(f)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(vehicles); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
