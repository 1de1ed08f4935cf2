package handler

import (
	"net/http"

	"github.com/osse101/RewardEngine_Go/internal/slots"
)

// PlayRequest is the body of POST /slots/play
type PlayRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
	Bet    int    `json:"bet" validate:"min=1,max=100"`
}

// SlotsHandler handles slot machine requests
type SlotsHandler struct {
	service slots.Service
}

// NewSlotsHandler creates a new SlotsHandler
func NewSlotsHandler(service slots.Service) *SlotsHandler {
	return &SlotsHandler{service: service}
}

// HandlePlay runs one slot machine session
// @Summary Play slots
// @Description Debits bet energy and plays a full session, bonus spins and jackpots included
// @Tags slots
// @Accept json
// @Produce json
// @Param request body PlayRequest true "Play request"
// @Success 200 {object} domain.PlayResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/slots/play [post]
func (h *SlotsHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionPlaySlots); err != nil {
		return
	}

	result, err := h.service.Play(r.Context(), req.UserID, req.Bet)
	if err != nil {
		respondServiceError(w, r, ActionPlaySlots, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleConfig returns the active slot machine configuration
// @Summary Slot machine configuration
// @Tags slots
// @Produce json
// @Success 200 {object} domain.SlotMachineConfig
// @Router /api/v1/slots/config [get]
func (h *SlotsHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Config(r.Context())
	if err != nil {
		respondServiceError(w, r, ActionGetSlotsConfig, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}
