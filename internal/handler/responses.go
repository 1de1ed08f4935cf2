package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// bufferPool reuses encode buffers across responses
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and responds with the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(action+" failed", "error", err)
	} else {
		log.Warn(action+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"

	ErrMsgUserNotFoundError       = "User not found"
	ErrMsgUserExistsError         = "User is already registered"
	ErrMsgInvalidInputError       = "Invalid request. Please check your inputs."
	ErrMsgInsufficientResourceErr = "Not enough resources"
	ErrMsgEntryNotFoundError      = "Reward not found"
	ErrMsgAlreadyClaimedError     = "Reward has already been claimed"
	ErrMsgRewardPendingError      = "Reward cannot be claimed yet"
	ErrMsgPoolInsufficientError   = "Jackpot pool is too small to pay this reward"
	ErrMsgInvalidConfigError      = "Invalid game configuration"
	ErrMsgConfigNotFoundError     = "Game configuration not found"
	ErrMsgReferralExistsError     = "User has already been referred"
	ErrMsgSelfReferralError       = "Users cannot refer themselves"
	ErrMsgReferralNotFoundError   = "Referral not found"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages safe to show to callers
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, ErrMsgUserExistsError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrInsufficientResource):
		return http.StatusUnprocessableEntity, ErrMsgInsufficientResourceErr
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound, ErrMsgEntryNotFoundError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrDeferredResolutionFailed),
		errors.Is(err, domain.ErrPoolSettlementRequired):
		return http.StatusConflict, ErrMsgRewardPendingError
	case errors.Is(err, domain.ErrJackpotPoolInsufficient):
		return http.StatusConflict, ErrMsgPoolInsufficientError
	case errors.Is(err, domain.ErrInvalidConfiguration):
		return http.StatusBadRequest, ErrMsgInvalidConfigError
	case errors.Is(err, domain.ErrGameConfigurationNotFound):
		return http.StatusServiceUnavailable, ErrMsgConfigNotFoundError
	case errors.Is(err, domain.ErrReferralExists):
		return http.StatusConflict, ErrMsgReferralExistsError
	case errors.Is(err, domain.ErrSelfReferral):
		return http.StatusBadRequest, ErrMsgSelfReferralError
	case errors.Is(err, domain.ErrReferralNotFound):
		return http.StatusNotFound, ErrMsgReferralNotFoundError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
