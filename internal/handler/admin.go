package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
)

// ConfigAdmin updates and reloads the game configuration
type ConfigAdmin interface {
	UpdateSlotMachine(ctx context.Context, cfg domain.SlotMachineConfig) (*domain.SlotMachineConfig, error)
	UpdateJackpot(ctx context.Context, cfg domain.JackpotConfig) (*domain.JackpotConfig, error)
	Refresh(ctx context.Context) error
}

// RewardGranter appends rewards to a player's ledger
type RewardGranter interface {
	Append(ctx context.Context, userID string, spec domain.RewardSpec, reason domain.RewardReason, reasonContext int) (*domain.LedgerEntry, error)
}

// GrantRewardRequest is the body of POST /admin/rewards/grant
type GrantRewardRequest struct {
	UserID  string            `json:"user_id" validate:"required,userid"`
	Reward  domain.RewardSpec `json:"reward"`
	Reason  string            `json:"reason" validate:"required,reason"`
	Context int               `json:"context" validate:"gte=0"`
}

// AdminHandler serves configuration and grant endpoints
type AdminHandler struct {
	config ConfigAdmin
	ledger RewardGranter
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(config ConfigAdmin, ledger RewardGranter) *AdminHandler {
	return &AdminHandler{config: config, ledger: ledger}
}

// HandleUpdateSlotMachine replaces the slot machine configuration
// @Summary Update slot machine
// @Tags admin
// @Accept json
// @Produce json
// @Param request body domain.SlotMachineConfig true "Configuration"
// @Success 200 {object} domain.SlotMachineConfig
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/slots/config [put]
func (h *AdminHandler) HandleUpdateSlotMachine(w http.ResponseWriter, r *http.Request) {
	var req domain.SlotMachineConfig
	if err := DecodeAndValidateRequest(r, w, &req, ActionUpdateSlots); err != nil {
		return
	}

	cfg, err := h.config.UpdateSlotMachine(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, ActionUpdateSlots, err)
		return
	}

	logger.FromContext(r.Context()).Info("Slot machine updated", "name", cfg.Name)
	respondJSON(w, http.StatusOK, cfg)
}

// HandleUpdateJackpot replaces the jackpot pool and outcome table
// @Summary Update jackpot
// @Tags admin
// @Accept json
// @Produce json
// @Param request body domain.JackpotConfig true "Configuration"
// @Success 200 {object} domain.JackpotConfig
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/jackpot [put]
func (h *AdminHandler) HandleUpdateJackpot(w http.ResponseWriter, r *http.Request) {
	var req domain.JackpotConfig
	if err := DecodeAndValidateRequest(r, w, &req, ActionUpdateJackpot); err != nil {
		return
	}

	cfg, err := h.config.UpdateJackpot(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, ActionUpdateJackpot, err)
		return
	}

	logger.FromContext(r.Context()).Info("Jackpot updated", "name", cfg.Name, "pool", cfg.Pool)
	respondJSON(w, http.StatusOK, cfg)
}

// HandleGrantReward appends a reward to a player's ledger
// @Summary Grant reward
// @Description Used for task completion and manual grants
// @Tags admin
// @Accept json
// @Produce json
// @Param request body GrantRewardRequest true "Grant"
// @Success 201 {object} domain.LedgerEntry
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/rewards/grant [post]
func (h *AdminHandler) HandleGrantReward(w http.ResponseWriter, r *http.Request) {
	var req GrantRewardRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionGrantReward); err != nil {
		return
	}

	reason := domain.RewardReason(strings.ToUpper(req.Reason))
	entry, err := h.ledger.Append(r.Context(), req.UserID, req.Reward, reason, req.Context)
	if err != nil {
		respondServiceError(w, r, ActionGrantReward, err)
		return
	}

	logger.FromContext(r.Context()).Info("Reward granted",
		"user_id", req.UserID, "kind", req.Reward.Kind, "reason", reason, "entry_id", entry.ID)
	respondJSON(w, http.StatusCreated, entry)
}

// HandleReloadConfig reloads the game configuration from storage
// @Summary Reload configuration
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/config/reload [post]
func (h *AdminHandler) HandleReloadConfig(w http.ResponseWriter, r *http.Request) {
	if err := h.config.Refresh(r.Context()); err != nil {
		respondServiceError(w, r, ActionReloadConfig, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgConfigReloadedSuccess})
}
