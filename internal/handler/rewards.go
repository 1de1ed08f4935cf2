package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/ledger"
)

// Reward history paging
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// ClaimRequest is the body of POST /rewards/claim
type ClaimRequest struct {
	UserID  string `json:"user_id" validate:"required,userid"`
	EntryID string `json:"entry_id" validate:"required,uuid"`
}

// ClaimManyRequest is the body of POST /rewards/claim-many
type ClaimManyRequest struct {
	UserID   string   `json:"user_id" validate:"required,userid"`
	EntryIDs []string `json:"entry_ids" validate:"required,min=1,max=100,dive,uuid"`
}

// RewardsHandler serves the reward ledger
type RewardsHandler struct {
	ledger ledger.Service
}

// NewRewardsHandler creates a new RewardsHandler
func NewRewardsHandler(ledger ledger.Service) *RewardsHandler {
	return &RewardsHandler{ledger: ledger}
}

// HandleList returns the player's unclaimed rewards
// @Summary List unclaimed rewards
// @Tags rewards
// @Produce json
// @Param userID path string true "Player ID"
// @Param reason query string false "Filter by reason" Enums(REFERRAL, TASK, DAILY, SLOT_MACHINE, ADMIN)
// @Success 200 {array} domain.LedgerEntry
// @Router /api/v1/rewards/{userID} [get]
func (h *RewardsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var (
		entries []domain.LedgerEntry
		err     error
	)
	if raw := r.URL.Query().Get("reason"); raw != "" {
		reason := domain.RewardReason(strings.ToUpper(raw))
		if !ValidReasons[reason] {
			respondError(w, http.StatusBadRequest, "Invalid reason query parameter")
			return
		}
		entries, err = h.ledger.ListUnclaimedByReason(r.Context(), userID, reason)
	} else {
		entries, err = h.ledger.ListUnclaimed(r.Context(), userID)
	}
	if err != nil {
		respondServiceError(w, r, ActionListRewards, err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// HandleClaim claims one reward
// @Summary Claim reward
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body ClaimRequest true "Claim"
// @Success 200 {object} domain.ClaimResult
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/rewards/claim [post]
func (h *RewardsHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionClaimReward); err != nil {
		return
	}

	result, err := h.ledger.ClaimOne(r.Context(), req.UserID, uuid.MustParse(req.EntryID))
	if err != nil {
		respondServiceError(w, r, ActionClaimReward, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleClaimMany claims a batch of rewards, skipping the ones that cannot
// be paid out
// @Summary Claim rewards
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body ClaimManyRequest true "Claims"
// @Success 200 {object} domain.ClaimResult
// @Router /api/v1/rewards/claim-many [post]
func (h *RewardsHandler) HandleClaimMany(w http.ResponseWriter, r *http.Request) {
	var req ClaimManyRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionClaimRewards); err != nil {
		return
	}

	ids := make([]uuid.UUID, 0, len(req.EntryIDs))
	for _, raw := range req.EntryIDs {
		ids = append(ids, uuid.MustParse(raw))
	}

	result, err := h.ledger.ClaimMany(r.Context(), req.UserID, ids)
	if err != nil {
		respondServiceError(w, r, ActionClaimRewards, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleHistory returns the player's most recent claims
// @Summary Claim history
// @Tags rewards
// @Produce json
// @Param userID path string true "Player ID"
// @Param limit query int false "Maximum records" default(50)
// @Success 200 {array} domain.ClaimAudit
// @Router /api/v1/rewards/{userID}/history [get]
func (h *RewardsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	limit, ok := intQueryParam(w, r, "limit", DefaultHistoryLimit, 1, MaxHistoryLimit)
	if !ok {
		return
	}

	history, err := h.ledger.History(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, ActionRewardHistory, err)
		return
	}
	if history == nil {
		history = []domain.ClaimAudit{}
	}
	respondJSON(w, http.StatusOK, history)
}
