package plan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/swiftroute/dispatch/core/dispatch"
	"github.com/swiftroute/dispatch/core/estimate"
	"github.com/swiftroute/dispatch/core/routing"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	est := estimate.NewHeuristic()
	if err := est.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize estimator: %v", err)
	}
	mgr, err := dispatch.NewPlanManager(routing.NewNearestNeighbor(), est, nil, nil, nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return NewHandler(mgr)
}

const validBody = `{
	"orders": [
		{"id": "o1", "customer": "Alice", "location": {"latitude": 51.51, "longitude": -0.1}, "weight_kg": 50, "priority": "high"}
	],
	"vehicles": [
		{"id": "v1", "name": "Van 1", "capacity_kg": 1000, "location": {"latitude": 51.505, "longitude": -0.09}, "status": "available"}
	]
}`

func TestHandlerPlansRoutes(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res dispatch.PlanResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(res.Routes["v1"]) != 1 || res.Routes["v1"][0].ID != "o1" {
		t.Fatalf("unexpected routes %+v", res.Routes)
	}
	if _, ok := res.Estimates["o1"]; !ok {
		t.Error("expected an estimate for o1")
	}
}

func TestHandlerGeneratesOrderIDs(t *testing.T) {
	h := newTestHandler(t)
	body := `{"orders":[{"customer":"Bob","location":{"latitude":51.51,"longitude":-0.1},"weight_kg":5,"priority":"low"}],
		"vehicles":[{"id":"v1","capacity_kg":100,"location":{"latitude":51.5,"longitude":-0.09},"status":"available"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res dispatch.PlanResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(res.Routes["v1"]) != 1 || res.Routes["v1"][0].ID == "" {
		t.Fatalf("expected a generated order ID, got %+v", res.Routes)
	}
}

func TestHandlerRejectsInvalidInput(t *testing.T) {
	h := newTestHandler(t)
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{
			"negative weight",
			`{"orders":[{"id":"o1","location":{"latitude":51.5,"longitude":-0.1},"weight_kg":-1,"priority":"low"}]}`,
			"weight_kg",
		},
		{
			"bad latitude",
			`{"orders":[{"id":"o1","location":{"latitude":120,"longitude":-0.1},"weight_kg":5,"priority":"low"}]}`,
			"location.latitude",
		},
		{
			"zero capacity vehicle",
			`{"orders":[{"id":"o1","location":{"latitude":51.5,"longitude":-0.1},"weight_kg":5,"priority":"low"}],
			  "vehicles":[{"id":"v1","capacity_kg":0,"location":{"latitude":51.5,"longitude":-0.1},"status":"available"}]}`,
			"capacity_kg",
		},
		{"empty orders", `{"orders":[]}`, "orders"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal error response: %v", err)
			}
			if resp.Field != tc.field {
				t.Errorf("field = %q, want %q", resp.Field, tc.field)
			}
		})
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
