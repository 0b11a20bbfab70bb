package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"queue-sim-service/internal/api/handlers"
	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/ports"
	"queue-sim-service/internal/ws"
)

// RouterDeps carries everything the API surface needs. Hub and
// Limiter may be nil; the matching features degrade to no-ops.
type RouterDeps struct {
	Archive            ports.RunArchive
	Tables             domain.TablePair
	Hub                *ws.Hub
	Limiter            RateLimiter
	RateLimitPerMinute int
	WatchBuffer        int
}

// Router owns the route table and the API metrics.
type Router struct {
	deps RouterDeps

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
	simulationRuns     *prometheus.CounterVec
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	r := &Router{deps: deps}
	r.initMetrics()

	var broadcast func([]byte)
	if deps.Hub != nil {
		broadcast = deps.Hub.Broadcast
	}

	simHandler := &handlers.SimulationHandler{
		Tables:    deps.Tables,
		Archive:   deps.Archive,
		Broadcast: broadcast,
		RecordRun: r.recordSimulationRun,
	}
	nvHandler := &handlers.NewsvendorHandler{
		RecordRun: r.recordSimulationRun,
	}
	runsHandler := &handlers.RunsHandler{Archive: deps.Archive}
	watchHandler := &handlers.WatchHandler{Hub: deps.Hub, Buffer: deps.WatchBuffer}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", r.instrument("/health", handlers.Health))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/simulations", r.instrument("/simulations", r.withRateLimit("/simulations", simHandler.Run)))
	mux.HandleFunc("/newsvendor", r.instrument("/newsvendor", r.withRateLimit("/newsvendor", nvHandler.Run)))
	mux.HandleFunc("/runs", r.instrument("/runs", runsHandler.List))
	mux.HandleFunc("/runs/", r.instrument("/runs/{id}", runsHandler.Item))
	mux.HandleFunc("/watch", watchHandler.Watch)

	return loggingMiddleware(mux)
}

// instrument records request count and latency under a fixed route
// label, keeping path parameters out of the metric cardinality.
func (r *Router) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}
		next(sw, req)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		r.recordRequestMetrics(req.Method, route, status, time.Since(start))
	}
}
