package handler

import (
	"net/http"

	"github.com/osse101/RewardEngine_Go/internal/jackpot"
)

// HandleGetJackpot returns the jackpot pool and outcome table
// @Summary Current jackpot
// @Tags jackpot
// @Produce json
// @Success 200 {object} domain.JackpotConfig
// @Router /api/v1/jackpot [get]
func HandleGetJackpot(svc jackpot.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.Current(r.Context())
		if err != nil {
			respondServiceError(w, r, ActionGetJackpot, err)
			return
		}
		respondJSON(w, http.StatusOK, cfg)
	}
}
