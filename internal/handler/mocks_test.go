package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/repository"
	"github.com/osse101/RewardEngine_Go/internal/user"
)

type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

type MockSlotsService struct {
	mock.Mock
}

func (m *MockSlotsService) Play(ctx context.Context, userID string, bet int) (*domain.PlayResult, error) {
	args := m.Called(ctx, userID, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayResult), args.Error(1)
}

func (m *MockSlotsService) Config(ctx context.Context) (*domain.SlotMachineConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlotMachineConfig), args.Error(1)
}

func (m *MockSlotsService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, userID string) (*domain.UserResources, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserResources), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUserService) ClaimEnergy(ctx context.Context, userID string) (*user.EnergyClaim, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.EnergyClaim), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Append(ctx context.Context, userID string, spec domain.RewardSpec, reason domain.RewardReason, reasonContext int) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, spec, reason, reasonContext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) AppendTx(ctx context.Context, tx repository.PlayerTx, userID string, spec domain.RewardSpec, reason domain.RewardReason, reasonContext int) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, userID, spec, reason, reasonContext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListUnclaimed(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListUnclaimedByReason(ctx context.Context, userID string, reason domain.RewardReason) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ClaimOne(ctx context.Context, userID string, entryID uuid.UUID) (*domain.ClaimResult, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimResult), args.Error(1)
}

func (m *MockLedgerService) ClaimMany(ctx context.Context, userID string, entryIDs []uuid.UUID) (*domain.ClaimResult, error) {
	args := m.Called(ctx, userID, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimResult), args.Error(1)
}

func (m *MockLedgerService) History(ctx context.Context, userID string, limit int) ([]domain.ClaimAudit, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClaimAudit), args.Error(1)
}

type MockConfigAdmin struct {
	mock.Mock
}

func (m *MockConfigAdmin) UpdateSlotMachine(ctx context.Context, cfg domain.SlotMachineConfig) (*domain.SlotMachineConfig, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlotMachineConfig), args.Error(1)
}

func (m *MockConfigAdmin) UpdateJackpot(ctx context.Context, cfg domain.JackpotConfig) (*domain.JackpotConfig, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JackpotConfig), args.Error(1)
}

func (m *MockConfigAdmin) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
