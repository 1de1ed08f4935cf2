package handler

import (
	"net/http"

	"github.com/osse101/RewardEngine_Go/internal/daily"
)

// DailyClaimRequest is the body of POST /daily/claim
type DailyClaimRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
}

// HandleDailyClaim advances the daily streak and queues the streak reward
// @Summary Daily check-in
// @Description Claimed is false when the player already checked in today
// @Tags daily
// @Accept json
// @Produce json
// @Param request body DailyClaimRequest true "Player"
// @Success 200 {object} daily.CheckIn
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/daily/claim [post]
func HandleDailyClaim(svc daily.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DailyClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, ActionDailyClaim); err != nil {
			return
		}

		checkIn, err := svc.AdvanceStreak(r.Context(), req.UserID)
		if err != nil {
			respondServiceError(w, r, ActionDailyClaim, err)
			return
		}
		respondJSON(w, http.StatusOK, checkIn)
	}
}
