package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"queue-sim-service/internal/api/dto"
	"queue-sim-service/internal/domain"
)

func archivedRun(id int64) *domain.QueueRun {
	seed := int64(42)
	return &domain.QueueRun{
		ID:        id,
		CreatedAt: time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC),
		Customers: 3,
		Seed:      &seed,
		Mode:      domain.RunModeCustom,
		Records: []domain.CustomerRecord{
			{Index: 1, RNIAT: 550, RNST: 60, IAT: 5, ST: 4, ArrivalTime: 5, ServiceStart: 5, ServiceEnd: 9, TimeInSystem: 4, IdleBefore: 5},
			{Index: 2, RNIAT: 300, RNST: 80, IAT: 3, ST: 6, ArrivalTime: 8, ServiceStart: 9, ServiceEnd: 15, WaitTime: 1, TimeInSystem: 7},
			{Index: 3, RNIAT: 900, RNST: 30, IAT: 8, ST: 2, ArrivalTime: 16, ServiceStart: 16, ServiceEnd: 18, TimeInSystem: 2, IdleBefore: 1},
		},
		Summary: domain.SummaryKPIs{AvgWait: 1.0 / 3.0, MaxWait: 1, TotalIdle: 6, Utilization: 12.0 / 18.0, HorizonEnd: 18},
	}
}

func TestListRunsDefaultLimit(t *testing.T) {
	archive := &stubArchive{
		summaries: []domain.RunSummary{
			{ID: 2, CreatedAt: time.Now().UTC(), Customers: 5, Mode: domain.RunModeGenerated},
			{ID: 1, CreatedAt: time.Now().UTC(), Customers: 3, Mode: domain.RunModeCustom},
		},
	}
	h := &RunsHandler{Archive: archive}

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if archive.lastLimit != 20 {
		t.Errorf("default limit: got %d, want 20", archive.lastLimit)
	}

	var res dto.ListRunsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Runs) != 2 {
		t.Fatalf("runs: got %d, want 2", len(res.Runs))
	}
	if res.Runs[0].ID != 2 || res.Runs[1].ID != 1 {
		t.Errorf("order: got %d, %d", res.Runs[0].ID, res.Runs[1].ID)
	}
}

func TestListRunsCustomLimit(t *testing.T) {
	archive := &stubArchive{}
	h := &RunsHandler{Archive: archive}

	req := httptest.NewRequest(http.MethodGet, "/runs?limit=5", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if archive.lastLimit != 5 {
		t.Errorf("limit: got %d, want 5", archive.lastLimit)
	}
}

func TestListRunsRejectsBadLimit(t *testing.T) {
	h := &RunsHandler{Archive: &stubArchive{}}

	for _, limit := range []string{"abc", "0", "-3", "101"} {
		t.Run(limit, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/runs?limit="+limit, nil)
			rr := httptest.NewRecorder()
			h.List(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), "limit must be between 1 and 100") {
				t.Errorf("body: %q", rr.Body.String())
			}
		})
	}
}

func TestGetRunByID(t *testing.T) {
	archive := &stubArchive{runs: map[int64]*domain.QueueRun{7: archivedRun(7)}}
	h := &RunsHandler{Archive: archive}

	req := httptest.NewRequest(http.MethodGet, "/runs/7", nil)
	rr := httptest.NewRecorder()
	h.Item(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	var res dto.RunResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ID != 7 || res.Mode != domain.RunModeCustom {
		t.Errorf("identity: got id=%d mode=%q", res.ID, res.Mode)
	}
	if res.Seed == nil || *res.Seed != 42 {
		t.Errorf("seed: got %v", res.Seed)
	}
	if len(res.Records) != 3 {
		t.Errorf("records: got %d, want 3", len(res.Records))
	}
	if res.Summary.HorizonEnd != 18 {
		t.Errorf("summary horizon: got %d", res.Summary.HorizonEnd)
	}
}

func TestGetRunNotFound(t *testing.T) {
	h := &RunsHandler{Archive: &stubArchive{runs: map[int64]*domain.QueueRun{}}}

	req := httptest.NewRequest(http.MethodGet, "/runs/99", nil)
	rr := httptest.NewRecorder()
	h.Item(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "run not found") {
		t.Errorf("body: %q", rr.Body.String())
	}
}

func TestGetRunInvalidID(t *testing.T) {
	h := &RunsHandler{Archive: &stubArchive{}}

	for _, path := range []string{"/runs/abc", "/runs/", "/runs/0"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := httptest.NewRecorder()
			h.Item(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rr.Code)
			}
		})
	}
}

func TestExportRunRecordsCSV(t *testing.T) {
	archive := &stubArchive{runs: map[int64]*domain.QueueRun{7: archivedRun(7)}}
	h := &RunsHandler{Archive: archive}

	req := httptest.NewRequest(http.MethodGet, "/runs/7/export?kind=records", nil)
	rr := httptest.NewRecorder()
	h.Item(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Errorf("content type: got %q", got)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "run_7_records.csv") {
		t.Errorf("disposition: got %q", got)
	}

	lines := strings.Split(rr.Body.String(), "\n")
	if lines[0] != "Cust,RN_IAT,IAT,Arrival,RN_ST,ST,TSB,Wait,TSE,TimeInSystem,ServerIdle" {
		t.Errorf("header line: got %q", lines[0])
	}
	if len(lines) < 4 {
		t.Fatalf("expected 3 data rows, got %d lines", len(lines))
	}
	if lines[1] != "1,550,5,5,60,4,5,0,9,4,5" {
		t.Errorf("first row: got %q", lines[1])
	}
}

func TestExportRunSummaryCSV(t *testing.T) {
	archive := &stubArchive{runs: map[int64]*domain.QueueRun{7: archivedRun(7)}}
	h := &RunsHandler{Archive: archive}

	req := httptest.NewRequest(http.MethodGet, "/runs/7/export?kind=summary", nil)
	rr := httptest.NewRecorder()
	h.Item(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.HasPrefix(body, "Metric,Value\n") {
		t.Errorf("summary csv: got %q", body)
	}
	if !strings.Contains(body, "Server utilization (%),66.67%") {
		t.Errorf("summary csv missing utilization row: %q", body)
	}
}

func TestExportRunDefaultsToRecords(t *testing.T) {
	archive := &stubArchive{runs: map[int64]*domain.QueueRun{7: archivedRun(7)}}
	h := &RunsHandler{Archive: archive}

	req := httptest.NewRequest(http.MethodGet, "/runs/7/export", nil)
	rr := httptest.NewRecorder()
	h.Item(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.HasPrefix(rr.Body.String(), "Cust,") {
		t.Errorf("expected records csv, got %q", rr.Body.String())
	}
}

func TestExportRunRejectsBadKind(t *testing.T) {
	h := &RunsHandler{Archive: &stubArchive{runs: map[int64]*domain.QueueRun{7: archivedRun(7)}}}

	req := httptest.NewRequest(http.MethodGet, "/runs/7/export?kind=pdf", nil)
	rr := httptest.NewRecorder()
	h.Item(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "kind must be records or summary") {
		t.Errorf("body: %q", rr.Body.String())
	}
}

func TestRunsItemUnknownSubpath(t *testing.T) {
	h := &RunsHandler{Archive: &stubArchive{runs: map[int64]*domain.QueueRun{7: archivedRun(7)}}}

	req := httptest.NewRequest(http.MethodGet, "/runs/7/bogus", nil)
	rr := httptest.NewRecorder()
	h.Item(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
}

func TestRunsRejectBadMethod(t *testing.T) {
	h := &RunsHandler{Archive: &stubArchive{}}

	req := httptest.NewRequest(http.MethodPost, "/runs", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("list status: got %d, want 405", rr.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/runs/7", nil)
	rr = httptest.NewRecorder()
	h.Item(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("item status: got %d, want 405", rr.Code)
	}
}
