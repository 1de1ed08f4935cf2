package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

func TestSlotsHandler_HandlePlay(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockSlotsService)
		result := &domain.PlayResult{
			Script: []domain.PlayTurn{{
				No: 1, Type: domain.TurnSlotMachine, Symbols: []string{"X", "X", "O", "F"},
				Rewards: []domain.RewardSpec{rewardGold(20)}, BetMultiplier: 2,
			}},
			Resources: domain.UserResources{UserID: "u1", Energy: 48, Gold: 40},
		}
		svc.On("Play", mock.Anything, "u1", 2).Return(result, nil)

		h := NewSlotsHandler(svc)
		rec := serve(t, http.MethodPost, "/slots/play", "/slots/play", h.HandlePlay, `{"user_id":"u1","bet":2}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody[domain.PlayResult](t, rec)
		assert.Len(t, got.Script, 1)
		assert.Equal(t, 48, got.Resources.Energy)
		svc.AssertExpectations(t)
	})

	t.Run("bet out of range", func(t *testing.T) {
		svc := new(MockSlotsService)
		h := NewSlotsHandler(svc)

		for _, bet := range []int{0, 101} {
			body := fmt.Sprintf(`{"user_id":"u1","bet":%d}`, bet)
			rec := serve(t, http.MethodPost, "/slots/play", "/slots/play", h.HandlePlay, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeBody[ValidationErrorResponse](t, rec)
			assert.Contains(t, resp.Fields, "bet")
		}
		svc.AssertNotCalled(t, "Play", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown field", func(t *testing.T) {
		h := NewSlotsHandler(new(MockSlotsService))
		rec := serve(t, http.MethodPost, "/slots/play", "/slots/play", h.HandlePlay, `{"user_id":"u1","bet":1,"free":true}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrMsgInvalidRequest, decodeBody[ErrorResponse](t, rec).Error)
	})

	t.Run("insufficient energy", func(t *testing.T) {
		svc := new(MockSlotsService)
		svc.On("Play", mock.Anything, "u1", 5).
			Return(nil, fmt.Errorf("%w: energy 3, bet 5", domain.ErrInsufficientResource))

		h := NewSlotsHandler(svc)
		rec := serve(t, http.MethodPost, "/slots/play", "/slots/play", h.HandlePlay, `{"user_id":"u1","bet":5}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, ErrMsgInsufficientResourceErr, decodeBody[ErrorResponse](t, rec).Error)
	})
}

func TestSlotsHandler_HandleConfig(t *testing.T) {
	svc := new(MockSlotsService)
	svc.On("Config", mock.Anything).Return(&domain.SlotMachineConfig{Name: "default"}, nil)

	h := NewSlotsHandler(svc)
	rec := serve(t, http.MethodGet, "/slots/config", "/slots/config", h.HandleConfig, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "default", decodeBody[domain.SlotMachineConfig](t, rec).Name)
}

func rewardGold(amount float64) domain.RewardSpec {
	return domain.RewardSpec{Kind: domain.RewardGold, Amount: amount, Sumable: true}
}
