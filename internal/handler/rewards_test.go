package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

func TestRewardsHandler_HandleList(t *testing.T) {
	entry := domain.LedgerEntry{ID: uuid.New(), UserID: "u1", Reward: rewardGold(30), Reason: domain.ReasonDaily}

	t.Run("all reasons", func(t *testing.T) {
		svc := new(MockLedgerService)
		svc.On("ListUnclaimed", mock.Anything, "u1").Return([]domain.LedgerEntry{entry}, nil)

		h := NewRewardsHandler(svc)
		rec := serve(t, http.MethodGet, "/rewards/{userID}", "/rewards/u1", h.HandleList, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody[[]domain.LedgerEntry](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, entry.ID, got[0].ID)
	})

	t.Run("filtered by reason", func(t *testing.T) {
		svc := new(MockLedgerService)
		svc.On("ListUnclaimedByReason", mock.Anything, "u1", domain.ReasonSlotMachine).Return(nil, nil)

		h := NewRewardsHandler(svc)
		rec := serve(t, http.MethodGet, "/rewards/{userID}", "/rewards/u1?reason=slot_machine", h.HandleList, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("unknown reason", func(t *testing.T) {
		h := NewRewardsHandler(new(MockLedgerService))
		rec := serve(t, http.MethodGet, "/rewards/{userID}", "/rewards/u1?reason=LOTTERY", h.HandleList, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRewardsHandler_HandleClaim(t *testing.T) {
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := new(MockLedgerService)
		svc.On("ClaimOne", mock.Anything, "u1", id).Return(&domain.ClaimResult{
			Claimed:   []domain.LedgerEntry{{ID: id, Claimed: true}},
			Resources: domain.UserResources{UserID: "u1", Gold: 30},
		}, nil)

		h := NewRewardsHandler(svc)
		body := fmt.Sprintf(`{"user_id":"u1","entry_id":%q}`, id)
		rec := serve(t, http.MethodPost, "/rewards/claim", "/rewards/claim", h.HandleClaim, body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(30), decodeBody[domain.ClaimResult](t, rec).Resources.Gold)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := new(MockLedgerService)
		h := NewRewardsHandler(svc)
		rec := serve(t, http.MethodPost, "/rewards/claim", "/rewards/claim", h.HandleClaim, `{"user_id":"u1","entry_id":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody[ValidationErrorResponse](t, rec).Fields, "entryid")
		svc.AssertNotCalled(t, "ClaimOne", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already claimed", func(t *testing.T) {
		svc := new(MockLedgerService)
		svc.On("ClaimOne", mock.Anything, "u1", id).Return(nil, domain.ErrAlreadyClaimed)

		h := NewRewardsHandler(svc)
		body := fmt.Sprintf(`{"user_id":"u1","entry_id":%q}`, id)
		rec := serve(t, http.MethodPost, "/rewards/claim", "/rewards/claim", h.HandleClaim, body)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRewardsHandler_HandleClaimMany(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc := new(MockLedgerService)
	svc.On("ClaimMany", mock.Anything, "u1", []uuid.UUID{a, b}).Return(&domain.ClaimResult{
		Claimed: []domain.LedgerEntry{{ID: a, Claimed: true}},
		Skipped: []domain.ClaimSkip{{EntryID: b, Reason: "already claimed"}},
	}, nil)

	h := NewRewardsHandler(svc)
	body := fmt.Sprintf(`{"user_id":"u1","entry_ids":[%q,%q]}`, a, b)
	rec := serve(t, http.MethodPost, "/rewards/claim-many", "/rewards/claim-many", h.HandleClaimMany, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.ClaimResult](t, rec)
	assert.Len(t, got.Claimed, 1)
	require.Len(t, got.Skipped, 1)
	assert.Equal(t, b, got.Skipped[0].EntryID)

	empty := serve(t, http.MethodPost, "/rewards/claim-many", "/rewards/claim-many", h.HandleClaimMany, `{"user_id":"u1","entry_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, empty.Code)
}

func TestRewardsHandler_HandleHistory(t *testing.T) {
	svc := new(MockLedgerService)
	svc.On("History", mock.Anything, "u1", DefaultHistoryLimit).Return(nil, nil)
	svc.On("History", mock.Anything, "u1", 5).Return([]domain.ClaimAudit{{UserID: "u1"}}, nil)

	h := NewRewardsHandler(svc)
	pattern := "/rewards/{userID}/history"

	rec := serve(t, http.MethodGet, pattern, "/rewards/u1/history", h.HandleHistory, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = serve(t, http.MethodGet, pattern, "/rewards/u1/history?limit=5", h.HandleHistory, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.ClaimAudit](t, rec), 1)

	rec = serve(t, http.MethodGet, pattern, "/rewards/u1/history?limit=0", h.HandleHistory, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
