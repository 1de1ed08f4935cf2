package handler

import (
	"net/http"

	"github.com/osse101/RewardEngine_Go/internal/logger"
	"github.com/osse101/RewardEngine_Go/internal/user"
)

// RegisterRequest is the body of POST /users/register
type RegisterRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
}

// UserHandler serves player account endpoints
type UserHandler struct {
	service user.Service
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// HandleRegister creates a player with starting resources
// @Summary Register player
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Player"
// @Success 201 {object} domain.UserResources
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/users/register [post]
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionRegister); err != nil {
		return
	}

	res, err := h.service.Register(r.Context(), req.UserID)
	if err != nil {
		respondServiceError(w, r, ActionRegister, err)
		return
	}

	logger.FromContext(r.Context()).Info("Player registered", "user_id", req.UserID)
	respondJSON(w, http.StatusCreated, res)
}

// HandleGetResources returns a player's resources and items
// @Summary Get player resources
// @Tags users
// @Produce json
// @Param userID path string true "Player ID"
// @Success 200 {object} user.Profile
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{userID}/resources [get]
func (h *UserHandler) HandleGetResources(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ActionGetResources, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// HandleClaimEnergy credits regenerated energy
// @Summary Claim regenerated energy
// @Tags users
// @Produce json
// @Param userID path string true "Player ID"
// @Success 200 {object} user.EnergyClaim
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/{userID}/energy/claim [post]
func (h *UserHandler) HandleClaimEnergy(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	claim, err := h.service.ClaimEnergy(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ActionClaimEnergy, err)
		return
	}
	respondJSON(w, http.StatusOK, claim)
}
