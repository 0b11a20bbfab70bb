package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"queue-sim-service/internal/api/dto"
	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/ports"
	"queue-sim-service/internal/services"
)

// Upper bound on one run's size; large enough for any classroom or
// load-test scenario, small enough that a single request cannot pin
// the process.
const maxCustomers = 100000

type SimulationHandler struct {
	Tables    domain.TablePair
	Archive   ports.RunArchive
	Broadcast func(payload []byte)
	RecordRun func(engine, mode string)
}

// Run executes one queue simulation: validate the request, run the
// engine, archive the result, notify watchers, and return the full
// table. Archiving is best-effort; a storage fault costs the run_id,
// not the response.
func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SimulationRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.CustomerCount < 1 || req.CustomerCount > maxCustomers {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("customer_count must be between 1 and %d", maxCustomers))
		return
	}

	in := services.QueueInput{
		Customers:   req.CustomerCount,
		Seed:        req.Seed,
		UseCustomRN: req.UseCustomRN,
	}
	if req.UseCustomRN {
		iat, err := services.ParseRNList("iat", req.CustomIATRNs)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		st, err := services.ParseRNList("st", req.CustomSTRNs)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		in.CustomIAT, in.CustomST = iat, st
	}

	records, summary, err := services.SimulateQueue(in, h.Tables)
	if err != nil {
		var verr *domain.ValidationError
		var perr *domain.ParseError
		if errors.As(err, &verr) || errors.As(err, &perr) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		// Anything else means the server-side tables are broken.
		log.Printf("simulate queue failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	run := &domain.QueueRun{
		CreatedAt: time.Now().UTC(),
		Customers: req.CustomerCount,
		Mode:      in.Mode(),
		Records:   records,
		Summary:   summary,
	}
	if !req.UseCustomRN {
		run.Seed = req.Seed
	}

	var runID int64
	if h.Archive != nil {
		id, err := h.Archive.SaveQueueRun(r.Context(), run)
		if err != nil {
			log.Printf("archive queue run failed: %v", err)
		} else {
			runID = id
		}
	}

	if h.RecordRun != nil {
		h.RecordRun("queue", in.Mode())
	}

	res := dto.SimulationResponse{
		RunID:         runID,
		CustomerCount: req.CustomerCount,
		Mode:          in.Mode(),
		Seed:          run.Seed,
		Records:       toRecordResponses(records),
		Summary:       toSummaryResponse(summary),
	}

	if h.Broadcast != nil {
		event := dto.WatchEvent{
			Event:     "run_completed",
			RunID:     runID,
			Customers: req.CustomerCount,
			Mode:      in.Mode(),
			Summary:   res.Summary,
			CreatedAt: run.CreatedAt,
		}
		if payload, err := json.Marshal(event); err == nil {
			h.Broadcast(payload)
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toRecordResponses(records []domain.CustomerRecord) []dto.CustomerRecordResponse {
	out := make([]dto.CustomerRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.CustomerRecordResponse{
			Index:        rec.Index,
			RNIAT:        rec.RNIAT,
			IAT:          rec.IAT,
			ArrivalTime:  rec.ArrivalTime,
			RNST:         rec.RNST,
			ST:           rec.ST,
			ServiceStart: rec.ServiceStart,
			ServiceEnd:   rec.ServiceEnd,
			WaitTime:     rec.WaitTime,
			TimeInSystem: rec.TimeInSystem,
			IdleBefore:   rec.IdleBefore,
		})
	}
	return out
}

func toSummaryResponse(s domain.SummaryKPIs) dto.SummaryResponse {
	return dto.SummaryResponse{
		AvgWait:     s.AvgWait,
		MaxWait:     s.MaxWait,
		TotalIdle:   s.TotalIdle,
		Utilization: s.Utilization,
		HorizonEnd:  s.HorizonEnd,
	}
}
