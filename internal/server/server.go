package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Proton-105/telegram-payments/internal/health"
	"github.com/Proton-105/telegram-payments/internal/middleware"
	"github.com/Proton-105/telegram-payments/pkg/logger"
)

// ReadinessChecker reports per-component readiness. *health.Checker satisfies it.
type ReadinessChecker interface {
	Check(ctx context.Context) map[string]string
}

const readHeaderTimeout = 5 * time.Second

type statusResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// NewRouter builds the operations router serving metrics and probes.
func NewRouter(log *slog.Logger, checker ReadinessChecker) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	r := mux.NewRouter()
	r.Use(logger.Middleware, middleware.New(log))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, log, http.StatusOK, statusResponse{Status: "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if checker == nil {
			respondJSON(w, log, http.StatusOK, statusResponse{Status: "ok"})
			return
		}

		results := checker.Check(req.Context())
		if !health.Healthy(results) {
			respondJSON(w, log, http.StatusServiceUnavailable, statusResponse{Status: "unavailable", Components: results})
			return
		}
		respondJSON(w, log, http.StatusOK, statusResponse{Status: "ok", Components: results})
	}).Methods(http.MethodGet)

	return r
}

// New builds the operations HTTP server listening on addr.
func New(addr string, log *slog.Logger, checker ReadinessChecker) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(log, checker),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func respondJSON(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to write response", slog.Any("error", err))
	}
}
