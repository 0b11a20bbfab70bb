package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"queue-sim-service/internal/api/dto"
	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/export"
	"queue-sim-service/internal/ports"
)

const (
	defaultRunListLimit = 20
	maxRunListLimit     = 100
)

// RunsHandler exposes the archived run history.
type RunsHandler struct {
	Archive ports.RunArchive
}

// List returns the most recent runs without their records.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := defaultRunListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRunListLimit {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxRunListLimit))
			return
		}
		limit = n
	}

	summaries, err := h.Archive.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("list runs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{
		Runs: make([]dto.RunSummaryResponse, 0, len(summaries)),
	}
	for _, rs := range summaries {
		res.Runs = append(res.Runs, dto.RunSummaryResponse{
			ID:        rs.ID,
			CreatedAt: rs.CreatedAt,
			Customers: rs.Customers,
			Mode:      rs.Mode,
			Summary:   toSummaryResponse(rs.Summary),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Item dispatches /runs/{id} and /runs/{id}/export.
func (h *RunsHandler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/runs/"), "/")
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, "invalid run id")
		return
	}

	switch {
	case len(parts) == 1:
		h.get(w, r, id)
	case len(parts) == 2 && parts[1] == "export":
		h.export(w, r, id)
	default:
		writeError(w, r, http.StatusNotFound, "not found")
	}
}

func (h *RunsHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	run, err := h.fetch(w, r, id)
	if run == nil || err != nil {
		return
	}

	res := dto.RunResponse{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Customers: run.Customers,
		Seed:      run.Seed,
		Mode:      run.Mode,
		Records:   toRecordResponses(run.Records),
		Summary:   toSummaryResponse(run.Summary),
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *RunsHandler) export(w http.ResponseWriter, r *http.Request, id int64) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "records"
	}
	if kind != "records" && kind != "summary" {
		writeError(w, r, http.StatusBadRequest, "kind must be records or summary")
		return
	}

	run, err := h.fetch(w, r, id)
	if run == nil || err != nil {
		return
	}

	filename := fmt.Sprintf("run_%d_%s.csv", id, kind)
	if kind == "records" {
		writeCSV(w, r, filename, func(out io.Writer) error {
			return export.WriteRecordsCSV(out, run.Records)
		})
		return
	}
	writeCSV(w, r, filename, func(out io.Writer) error {
		return export.WriteSummaryCSV(out, run.Summary)
	})
}

// fetch loads a run and writes the error response itself when the
// load fails.
func (h *RunsHandler) fetch(w http.ResponseWriter, r *http.Request, id int64) (*domain.QueueRun, error) {
	run, err := h.Archive.GetRun(r.Context(), id)
	if errors.Is(err, ports.ErrRunNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return nil, err
	}
	if err != nil {
		log.Printf("get run failed: id=%d err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, err
	}
	return run, nil
}
