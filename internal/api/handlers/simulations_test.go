package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"queue-sim-service/internal/api/dto"
	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/ports"
)

// stubArchive is an in-memory RunArchive for handler tests.
type stubArchive struct {
	saved     []*domain.QueueRun
	nextID    int64
	saveErr   error
	runs      map[int64]*domain.QueueRun
	summaries []domain.RunSummary
	listErr   error
	lastLimit int
}

func (s *stubArchive) SaveQueueRun(ctx context.Context, run *domain.QueueRun) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.saved = append(s.saved, run)
	s.nextID++
	return s.nextID, nil
}

func (s *stubArchive) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	s.lastLimit = limit
	if s.listErr != nil {
		return nil, s.listErr
	}
	if limit > len(s.summaries) {
		limit = len(s.summaries)
	}
	return s.summaries[:limit], nil
}

func (s *stubArchive) GetRun(ctx context.Context, id int64) (*domain.QueueRun, error) {
	run, ok := s.runs[id]
	if !ok {
		return nil, ports.ErrRunNotFound
	}
	return run, nil
}

func postSimulation(t *testing.T, h *SimulationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/simulations", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Run(rr, req)
	return rr
}

func TestSimulationRunCustomScenario(t *testing.T) {
	archive := &stubArchive{}
	var gotEngine, gotMode string
	h := &SimulationHandler{
		Tables:  domain.DefaultTables(),
		Archive: archive,
		RecordRun: func(engine, mode string) {
			gotEngine, gotMode = engine, mode
		},
	}

	rr := postSimulation(t, h, `{
		"customer_count": 3,
		"use_custom_rn": true,
		"custom_iat_rns": "550, 300, 900",
		"custom_st_rns": "60,80,30"
	}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	var res dto.SimulationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.RunID != 1 {
		t.Errorf("run_id: got %d, want 1", res.RunID)
	}
	if res.Mode != domain.RunModeCustom {
		t.Errorf("mode: got %q", res.Mode)
	}
	if len(res.Records) != 3 {
		t.Fatalf("records: got %d, want 3", len(res.Records))
	}
	if res.Records[1].WaitTime != 1 || res.Records[1].ServiceStart != 9 {
		t.Errorf("customer 2: got wait=%d start=%d, want wait=1 start=9", res.Records[1].WaitTime, res.Records[1].ServiceStart)
	}
	if res.Summary.TotalIdle != 6 || res.Summary.HorizonEnd != 18 {
		t.Errorf("summary: got idle=%d horizon=%d, want idle=6 horizon=18", res.Summary.TotalIdle, res.Summary.HorizonEnd)
	}
	if math.Abs(res.Summary.Utilization-12.0/18.0) > 1e-9 {
		t.Errorf("utilization: got %f", res.Summary.Utilization)
	}

	if len(archive.saved) != 1 {
		t.Fatalf("expected one archived run, got %d", len(archive.saved))
	}
	if archive.saved[0].Mode != domain.RunModeCustom {
		t.Errorf("archived mode: got %q", archive.saved[0].Mode)
	}
	if gotEngine != "queue" || gotMode != domain.RunModeCustom {
		t.Errorf("metrics callback: got engine=%q mode=%q", gotEngine, gotMode)
	}
}

func TestSimulationRunGeneratedEchoesSeed(t *testing.T) {
	h := &SimulationHandler{Tables: domain.DefaultTables(), Archive: &stubArchive{}}

	rr := postSimulation(t, h, `{"customer_count": 5, "seed": 42}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	var res dto.SimulationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Mode != domain.RunModeGenerated {
		t.Errorf("mode: got %q", res.Mode)
	}
	if res.Seed == nil || *res.Seed != 42 {
		t.Errorf("seed echo: got %v", res.Seed)
	}
	if len(res.Records) != 5 {
		t.Errorf("records: got %d, want 5", len(res.Records))
	}
}

func TestSimulationRunBroadcastsEvent(t *testing.T) {
	var payload []byte
	h := &SimulationHandler{
		Tables:    domain.DefaultTables(),
		Archive:   &stubArchive{},
		Broadcast: func(p []byte) { payload = p },
	}

	rr := postSimulation(t, h, `{"customer_count": 2, "seed": 1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if payload == nil {
		t.Fatal("expected a broadcast payload")
	}

	var event dto.WatchEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.Event != "run_completed" {
		t.Errorf("event: got %q", event.Event)
	}
	if event.RunID != 1 || event.Customers != 2 {
		t.Errorf("event fields: got run_id=%d customers=%d", event.RunID, event.Customers)
	}
}

func TestSimulationRunArchiveFailureStillResponds(t *testing.T) {
	h := &SimulationHandler{
		Tables:  domain.DefaultTables(),
		Archive: &stubArchive{saveErr: errors.New("disk full")},
	}

	rr := postSimulation(t, h, `{"customer_count": 2, "seed": 1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 despite archive failure", rr.Code)
	}

	var raw map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := raw["run_id"]; ok {
		t.Error("run_id must be omitted when archiving failed")
	}
	if _, ok := raw["records"]; !ok {
		t.Error("records missing from response")
	}
}

func TestSimulationRunRejectsBadRequests(t *testing.T) {
	h := &SimulationHandler{Tables: domain.DefaultTables(), Archive: &stubArchive{}}

	cases := []struct {
		name     string
		body     string
		wantPart string
	}{
		{"invalid json", `{`, "invalid json body"},
		{"unknown field", `{"customer_count": 1, "bogus": true}`, "invalid json body"},
		{"trailing data", `{"customer_count": 1}{"again": true}`, "only one JSON object"},
		{"zero count", `{"customer_count": 0}`, "customer_count must be between 1 and 100000"},
		{"oversized count", `{"customer_count": 100001}`, "customer_count must be between 1 and 100000"},
		{"bad token", `{"customer_count": 2, "use_custom_rn": true, "custom_iat_rns": "5,x", "custom_st_rns": "10,20"}`, `token "x"`},
		{"short stream", `{"customer_count": 3, "use_custom_rn": true, "custom_iat_rns": "5,6", "custom_st_rns": "10,20,30"}`, "expected 3 random numbers, got 2"},
		{"out of range", `{"customer_count": 2, "use_custom_rn": true, "custom_iat_rns": "0,500", "custom_st_rns": "10,20"}`, "outside [1, 1000]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postSimulation(t, h, tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tc.wantPart) {
				t.Errorf("body %q does not mention %q", rr.Body.String(), tc.wantPart)
			}
		})
	}
}

func TestSimulationRunRejectsBadMethod(t *testing.T) {
	h := &SimulationHandler{Tables: domain.DefaultTables(), Archive: &stubArchive{}}

	req := httptest.NewRequest(http.MethodGet, "/simulations", nil)
	rr := httptest.NewRecorder()
	h.Run(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want 405", rr.Code)
	}
	if got := rr.Header().Get("Allow"); got != http.MethodPost {
		t.Errorf("Allow header: got %q", got)
	}
}
