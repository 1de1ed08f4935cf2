package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/database"
	"github.com/osse101/RewardEngine_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

// HealthStatus is returned by the liveness and readiness probes
type HealthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HandleHealthz returns a liveness probe handler
// @Summary Liveness probe
// @Description Reports that the process is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthStatus{Status: "ok"})
	}
}

// HandleReadyz returns a readiness probe handler that pings storage
// @Summary Readiness probe
// @Description Reports whether storage is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /readyz [get]
func HandleReadyz(db database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Warn("Readiness check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthStatus{
				Status: "unavailable",
				Error:  "storage unreachable",
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthStatus{Status: "ready"})
	}
}
