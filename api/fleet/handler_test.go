package fleet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	corefleet "github.com/swiftroute/dispatch/core/fleet"
	"github.com/swiftroute/dispatch/core/model"
)

func seededStore() *corefleet.Store {
	s := corefleet.NewStore()
	s.Upsert(model.Vehicle{ID: "v1", Name: "Van 1", CapacityKg: 1000, Status: model.VehicleAvailable})
	s.Upsert(model.Vehicle{ID: "v2", Name: "Van 2", CapacityKg: 800, Status: model.VehicleBusy})
	return s
}

func TestHandlerListsFleet(t *testing.T) {
	h := NewHandler(seededStore())
	req := httptest.NewRequest(http.MethodGet, "/api/fleet", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []model.Vehicle
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].ID != "v1" || got[1].ID != "v2" {
		t.Fatalf("unexpected vehicles %+v", got)
	}
}

func TestHandlerFiltersByStatus(t *testing.T) {
	h := NewHandler(seededStore())
	req := httptest.NewRequest(http.MethodGet, "/api/fleet?status=available", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var got []model.Vehicle
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].ID != "v1" {
		t.Fatalf("unexpected vehicles %+v", got)
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	h := NewHandler(seededStore())
	req := httptest.NewRequest(http.MethodPost, "/api/fleet", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
