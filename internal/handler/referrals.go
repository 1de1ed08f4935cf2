package handler

import (
	"net/http"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/referral"
)

// MaxReferralCount bounds the preview query
const MaxReferralCount = 1_000_000

// CreateReferralRequest is the body of POST /referrals
type CreateReferralRequest struct {
	ReferrerID string `json:"referrer_id" validate:"required,userid"`
	ReferredID string `json:"referred_id" validate:"required,userid,nefield=ReferrerID"`
}

// OnboardRequest is the body of POST /referrals/onboard
type OnboardRequest struct {
	ReferredID string `json:"referred_id" validate:"required,userid"`
}

// OnboardResponse lists the rewards queued for the referrer
type OnboardResponse struct {
	Entries []domain.LedgerEntry `json:"entries"`
}

// ReferralHandler serves referral endpoints
type ReferralHandler struct {
	service referral.Service
}

// NewReferralHandler creates a new ReferralHandler
func NewReferralHandler(service referral.Service) *ReferralHandler {
	return &ReferralHandler{service: service}
}

// HandleCreate links a referred player to their referrer
// @Summary Create referral
// @Tags referrals
// @Accept json
// @Produce json
// @Param request body CreateReferralRequest true "Referral"
// @Success 201 {object} domain.Referral
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/referrals [post]
func (h *ReferralHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateReferralRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionCreateReferral); err != nil {
		return
	}

	ref, err := h.service.CreateReferral(r.Context(), req.ReferrerID, req.ReferredID)
	if err != nil {
		respondServiceError(w, r, ActionCreateReferral, err)
		return
	}
	respondJSON(w, http.StatusCreated, ref)
}

// HandleOnboard rewards the referrer once the referred player is onboarded
// @Summary Onboard referred player
// @Tags referrals
// @Accept json
// @Produce json
// @Param request body OnboardRequest true "Referred player"
// @Success 200 {object} OnboardResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/referrals/onboard [post]
func (h *ReferralHandler) HandleOnboard(w http.ResponseWriter, r *http.Request) {
	var req OnboardRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionOnboardReferral); err != nil {
		return
	}

	entries, err := h.service.Onboard(r.Context(), req.ReferredID)
	if err != nil {
		respondServiceError(w, r, ActionOnboardReferral, err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	respondJSON(w, http.StatusOK, OnboardResponse{Entries: entries})
}

// HandleRewardsForCount previews the rewards for the n-th referral
// @Summary Referral rewards preview
// @Tags referrals
// @Produce json
// @Param count query int true "Referral count"
// @Success 200 {array} domain.RewardSpec
// @Router /api/v1/referrals/rewards [get]
func (h *ReferralHandler) HandleRewardsForCount(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("count") == "" {
		respondError(w, http.StatusBadRequest, fmtMissing("count"))
		return
	}
	n, ok := intQueryParam(w, r, "count", 0, 0, MaxReferralCount)
	if !ok {
		return
	}

	rewards := h.service.RewardsForCount(n)
	if rewards == nil {
		rewards = []domain.RewardSpec{}
	}
	respondJSON(w, http.StatusOK, rewards)
}
