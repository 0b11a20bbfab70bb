package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"queue-sim-service/internal/api/dto"
	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/services"
)

const maxDays = 100000

type NewsvendorHandler struct {
	RecordRun func(engine, mode string)
}

// Run executes one newsvendor simulation. The request patches the
// default problem: absent fields keep their defaults, and supplying
// day_types or demand swaps in a custom demand model.
func (h *NewsvendorHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.NewsvendorRequest

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

	p := domain.DefaultNewsvendorProblem()
	mode := "default"

	if req.Days != nil {
		p.Days = *req.Days
	}
	if req.OrderQuantity != nil {
		p.OrderQuantity = *req.OrderQuantity
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.SalvagePrice != nil {
		p.SalvagePrice = *req.SalvagePrice
	}
	if req.IncludeLostProfit != nil {
		p.IncludeLostProfit = *req.IncludeLostProfit
	}

	if len(req.DayTypes) > 0 {
		mode = "custom"
		p.DayTypes = make([]domain.DayTypeProb, 0, len(req.DayTypes))
		for _, dt := range req.DayTypes {
			p.DayTypes = append(p.DayTypes, domain.DayTypeProb{Type: domain.DayType(dt.Type), Prob: dt.Prob})
		}
	}
	if len(req.Demand) > 0 {
		mode = "custom"
		p.Demand = make(map[domain.DayType][]domain.DemandProb, len(req.Demand))
		for typ, dist := range req.Demand {
			levels := make([]domain.DemandProb, 0, len(dist))
			for _, d := range dist {
				levels = append(levels, domain.DemandProb{Demand: d.Demand, Prob: d.Prob})
			}
			p.Demand[domain.DayType(typ)] = levels
		}
	}

	if p.Days < 1 || p.Days > maxDays {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("days must be between 1 and %d", maxDays))
		return
	}

	records, summary, err := services.SimulateNewsvendor(p, req.Seed)
	if err != nil {
		// The problem definition came from the request, so a
		// configuration failure is the caller's to fix.
		var cerr *domain.ConfigurationError
		if errors.As(err, &cerr) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("simulate newsvendor failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.RecordRun != nil {
		h.RecordRun("newsvendor", mode)
	}

	res := dto.NewsvendorResponse{
		Days:    p.Days,
		Seed:    req.Seed,
		Records: toDayResponses(records),
		Summary: toNewsvendorSummaryResponse(summary),
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toDayResponses(days []domain.DayRecord) []dto.DayRecordResponse {
	out := make([]dto.DayRecordResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DayRecordResponse{
			Day:              d.Day,
			RNType:           d.RNType,
			Type:             string(d.Type),
			RNDemand:         d.RNDemand,
			Demand:           d.Demand,
			Ordered:          d.Ordered,
			Sold:             d.Sold,
			Unsold:           d.Unsold,
			Unmet:            d.Unmet,
			Revenue:          d.Revenue,
			Cost:             d.Cost,
			Salvage:          d.Salvage,
			LostProfit:       d.LostProfit,
			DailyProfit:      d.DailyProfit,
			CumulativeProfit: d.CumulativeProfit,
		})
	}
	return out
}

func toNewsvendorSummaryResponse(s domain.NewsvendorSummary) dto.NewsvendorSummaryResponse {
	return dto.NewsvendorSummaryResponse{
		AvgDailyProfit:    s.AvgDailyProfit,
		StdDevDailyProfit: s.StdDevDailyProfit,
		TotalProfit:       s.TotalProfit,
		AvgDemand:         s.AvgDemand,
		StockoutRate:      s.StockoutRate,
		ScrapRate:         s.ScrapRate,
	}
}
