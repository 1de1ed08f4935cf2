package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

func TestAdminHandler_HandleGrantReward(t *testing.T) {
	t.Run("task reward", func(t *testing.T) {
		led := new(MockLedgerService)
		spec := rewardGold(250)
		entry := &domain.LedgerEntry{ID: uuid.New(), UserID: "u1", Reward: spec, Reason: domain.ReasonTask, Context: 7}
		led.On("Append", mock.Anything, "u1", spec, domain.ReasonTask, 7).Return(entry, nil)

		h := NewAdminHandler(new(MockConfigAdmin), led)
		body := `{"user_id":"u1","reward":{"type":"GOLD","value":250,"sumable":true},"reason":"task","context":7}`
		rec := serve(t, http.MethodPost, "/admin/rewards/grant", "/admin/rewards/grant", h.HandleGrantReward, body)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, entry.ID, decodeBody[domain.LedgerEntry](t, rec).ID)
		led.AssertExpectations(t)
	})

	t.Run("invalid reward kind", func(t *testing.T) {
		led := new(MockLedgerService)
		h := NewAdminHandler(new(MockConfigAdmin), led)
		body := `{"user_id":"u1","reward":{"type":"DIAMOND","value":1},"reason":"ADMIN"}`
		rec := serve(t, http.MethodPost, "/admin/rewards/grant", "/admin/rewards/grant", h.HandleGrantReward, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		led.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown player", func(t *testing.T) {
		led := new(MockLedgerService)
		led.On("Append", mock.Anything, "ghost", mock.Anything, domain.ReasonAdmin, 0).Return(nil, domain.ErrUserNotFound)

		h := NewAdminHandler(new(MockConfigAdmin), led)
		body := `{"user_id":"ghost","reward":{"type":"TOKEN","value":1},"reason":"ADMIN"}`
		rec := serve(t, http.MethodPost, "/admin/rewards/grant", "/admin/rewards/grant", h.HandleGrantReward, body)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminHandler_HandleUpdateJackpot(t *testing.T) {
	body := `{"name":"default","pool":5000,"entries":[{"description":"gold","reward":{"type":"GOLD","value":100},"weight":1}]}`

	t.Run("updated", func(t *testing.T) {
		cfgAdmin := new(MockConfigAdmin)
		cfgAdmin.On("UpdateJackpot", mock.Anything, mock.MatchedBy(func(c domain.JackpotConfig) bool {
			return c.Name == "default" && c.Pool == 5000 && len(c.Entries) == 1
		})).Return(&domain.JackpotConfig{Name: "default", Pool: 5000}, nil)

		h := NewAdminHandler(cfgAdmin, new(MockLedgerService))
		rec := serve(t, http.MethodPut, "/admin/jackpot", "/admin/jackpot", h.HandleUpdateJackpot, body)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 5000.0, decodeBody[domain.JackpotConfig](t, rec).Pool)
	})

	t.Run("rejected by schema", func(t *testing.T) {
		cfgAdmin := new(MockConfigAdmin)
		cfgAdmin.On("UpdateJackpot", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: weights sum to zero", domain.ErrInvalidConfiguration))

		h := NewAdminHandler(cfgAdmin, new(MockLedgerService))
		rec := serve(t, http.MethodPut, "/admin/jackpot", "/admin/jackpot", h.HandleUpdateJackpot, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrMsgInvalidConfigError, decodeBody[ErrorResponse](t, rec).Error)
	})

	t.Run("no entries", func(t *testing.T) {
		h := NewAdminHandler(new(MockConfigAdmin), new(MockLedgerService))
		rec := serve(t, http.MethodPut, "/admin/jackpot", "/admin/jackpot", h.HandleUpdateJackpot, `{"name":"default","pool":1,"entries":[]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminHandler_HandleUpdateSlotMachine_WrongReelCount(t *testing.T) {
	cfgAdmin := new(MockConfigAdmin)
	h := NewAdminHandler(cfgAdmin, new(MockLedgerService))

	rec := serve(t, http.MethodPut, "/admin/slots/config", "/admin/slots/config", h.HandleUpdateSlotMachine,
		`{"name":"default","reels":[],"combinations":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	cfgAdmin.AssertNotCalled(t, "UpdateSlotMachine", mock.Anything, mock.Anything)
}

func TestAdminHandler_HandleReloadConfig(t *testing.T) {
	cfgAdmin := new(MockConfigAdmin)
	cfgAdmin.On("Refresh", mock.Anything).Return(nil).Once()
	cfgAdmin.On("Refresh", mock.Anything).Return(domain.ErrGameConfigurationNotFound).Once()

	h := NewAdminHandler(cfgAdmin, new(MockLedgerService))

	rec := serve(t, http.MethodPost, "/admin/config/reload", "/admin/config/reload", h.HandleReloadConfig, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MsgConfigReloadedSuccess, decodeBody[SuccessResponse](t, rec).Message)

	rec = serve(t, http.MethodPost, "/admin/config/reload", "/admin/config/reload", h.HandleReloadConfig, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
