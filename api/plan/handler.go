package plan

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/swiftroute/dispatch/core/dispatch"
	"github.com/swiftroute/dispatch/core/model"
	"github.com/swiftroute/dispatch/core/traffic"
)

// request is the POST /api/plan body. Vehicles and traffic weights are
// optional; missing vehicles fall back to the fleet registry and missing
// weights to the traffic provider.
type request struct {
	Orders         []model.DeliveryOrder `json:"orders"`
	Vehicles       []model.Vehicle       `json:"vehicles,omitempty"`
	TrafficWeights []traffic.WeightEntry `json:"traffic_weights,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// NewHandler returns an HTTP handler exposing POST /api/plan.
func NewHandler(mgr *dispatch.PlanManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
			return
		}
		if len(req.Orders) == 0 {
			writeError(w, http.StatusBadRequest, errorResponse{Error: "orders must not be empty", Field: "orders"})
			return
		}

		// Boundary validation: the planner and estimator assume
		// validated input and never re-validate.
		for i := range req.Orders {
			if req.Orders[i].ID == "" {
				req.Orders[i].ID = uuid.NewString()
			}
			if req.Orders[i].Status == "" {
				req.Orders[i].Status = model.OrderPending
			}
			if err := req.Orders[i].Validate(); err != nil {
				writeValidationError(w, err)
				return
			}
		}
		for _, v := range req.Vehicles {
			if err := v.Validate(); err != nil {
				writeValidationError(w, err)
				return
			}
		}

		var weights traffic.Weights
		if len(req.TrafficWeights) > 0 {
			weights = make(traffic.Weights, len(req.TrafficWeights))
			for _, e := range req.TrafficWeights {
				weights.Set(model.GeoPoint{Latitude: e.Latitude, Longitude: e.Longitude}, e.Multiplier)
			}
		}

		res, err := mgr.PlanRoutes(r.Context(), req.Orders, req.Vehicles, weights)
		if err != nil {
			writeError(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr model.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, errorResponse{Error: verr.Reason, Field: verr.Field})
		return
	}
	writeError(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func writeError(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
