package reward

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemPicker struct {
	mock.Mock
}

func (m *MockItemPicker) RandomItem(ctx context.Context, rarity domain.Rarity, rnd func() float64) (*domain.Item, error) {
	args := m.Called(ctx, rarity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

type recordingWriter struct {
	items []domain.OwnedItem
	err   error
}

func (w *recordingWriter) InsertOwnedItem(_ context.Context, item domain.OwnedItem) error {
	if w.err != nil {
		return w.err
	}
	w.items = append(w.items, item)
	return nil
}

func newResources() *domain.UserResources {
	res := domain.NewUserResources("user-1", time.Now())
	return &res
}

func TestApply_CountersScaleByBet(t *testing.T) {
	a := NewApplier(new(MockItemPicker))
	res := newResources()

	tests := []struct {
		kind domain.RewardKind
		get  func() int64
	}{
		{domain.RewardGold, func() int64 { return res.Gold }},
		{domain.RewardToken, func() int64 { return res.Token }},
		{domain.RewardFood, func() int64 { return res.Food }},
		{domain.RewardEnergy, func() int64 { return int64(res.Energy) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			before := tt.get()
			result, err := a.Apply(context.Background(), &recordingWriter{}, res, domain.RewardSpec{Kind: tt.kind, Amount: 40}, 3)
			require.NoError(t, err)
			assert.False(t, result.Deferred)
			assert.InDelta(t, 120.0, result.Reward.Amount, 1e-9)
			assert.Equal(t, before+120, tt.get())
		})
	}
}

func TestApply_ItemMaterialised(t *testing.T) {
	ctx := context.Background()
	picker := new(MockItemPicker)
	picker.On("RandomItem", ctx, domain.RarityRare).Return(&domain.Item{ID: "sword"}, nil)
	w := &recordingWriter{}
	a := NewApplier(picker)

	spec := domain.RewardSpec{Kind: domain.RewardItem, Amount: 1, Item: &domain.ItemDescriptor{Rarity: domain.RarityRare}}
	result, err := a.Apply(ctx, w, newResources(), spec, 2)

	require.NoError(t, err)
	assert.False(t, result.Deferred)
	require.NotNil(t, result.Item)
	require.Len(t, w.items, 1)
	assert.Equal(t, "sword", w.items[0].ItemID)
	assert.Equal(t, 2, w.items[0].Level, "level follows the bet multiplier")
	assert.Equal(t, domain.RarityRare, w.items[0].Rarity)
	assert.Equal(t, 0, spec.Item.Level, "input spec is not mutated")
}

func TestApply_ItemWithoutCatalogMatchIsDeferred(t *testing.T) {
	ctx := context.Background()
	picker := new(MockItemPicker)
	picker.On("RandomItem", ctx, domain.RarityMythic).Return(nil, nil)
	w := &recordingWriter{}
	res := newResources()
	a := NewApplier(picker)

	spec := domain.RewardSpec{Kind: domain.RewardItem, Amount: 1, Item: &domain.ItemDescriptor{Rarity: domain.RarityMythic}}
	result, err := a.Apply(ctx, w, res, spec, 3)

	require.NoError(t, err)
	assert.True(t, result.Deferred)
	assert.ErrorIs(t, result.DeferReason, domain.ErrDeferredResolutionFailed)
	assert.Equal(t, 3, result.Reward.Item.Level)
	assert.Empty(t, w.items)
}

func TestApply_StoredLevelWins(t *testing.T) {
	ctx := context.Background()
	picker := new(MockItemPicker)
	picker.On("RandomItem", ctx, domain.RarityEpic).Return(&domain.Item{ID: "fox"}, nil)
	w := &recordingWriter{}

	spec := domain.RewardSpec{Kind: domain.RewardItem, Item: &domain.ItemDescriptor{Rarity: domain.RarityEpic, Level: 3}}
	_, err := NewApplier(picker).Apply(ctx, w, newResources(), spec, 1)

	require.NoError(t, err)
	require.Len(t, w.items, 1)
	assert.Equal(t, 3, w.items[0].Level)
}

func TestApply_PoolPercentageAndNFTDeferred(t *testing.T) {
	a := NewApplier(new(MockItemPicker))
	res := newResources()

	result, err := a.Apply(context.Background(), &recordingWriter{}, res, domain.RewardSpec{Kind: domain.RewardPoolPercentage, Amount: 0.01, Pool: 1000}, 2)
	require.NoError(t, err)
	assert.True(t, result.Deferred)
	assert.ErrorIs(t, result.DeferReason, domain.ErrPoolSettlementRequired)
	assert.InDelta(t, 0.02, result.Reward.Amount, 1e-12)

	result, err = a.Apply(context.Background(), &recordingWriter{}, res, domain.RewardSpec{Kind: domain.RewardNFT, Amount: 1}, 1)
	require.NoError(t, err)
	assert.True(t, result.Deferred)
	assert.ErrorIs(t, result.DeferReason, domain.ErrDeferredResolutionFailed)

	assert.Zero(t, res.Gold)
}

func TestApply_SpinAndJackpotAreNoOps(t *testing.T) {
	a := NewApplier(new(MockItemPicker))
	res := newResources()
	snapshot := *res

	for _, kind := range []domain.RewardKind{domain.RewardSpin, domain.RewardJackpot} {
		result, err := a.Apply(context.Background(), &recordingWriter{}, res, domain.RewardSpec{Kind: kind, Amount: 5}, 1)
		require.NoError(t, err)
		assert.False(t, result.Deferred)
	}
	assert.Equal(t, snapshot, *res)
}

func TestApply_Errors(t *testing.T) {
	ctx := context.Background()
	a := NewApplier(new(MockItemPicker))

	_, err := a.Apply(ctx, &recordingWriter{}, newResources(), domain.RewardSpec{Kind: domain.RewardGold, Amount: 1}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = a.Apply(ctx, &recordingWriter{}, newResources(), domain.RewardSpec{Kind: "DIAMOND", Amount: 1}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = a.Apply(ctx, &recordingWriter{}, newResources(), domain.RewardSpec{Kind: domain.RewardItem}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	picker := new(MockItemPicker)
	picker.On("RandomItem", ctx, domain.RarityRare).Return(&domain.Item{ID: "x"}, nil)
	_, err = NewApplier(picker).Apply(ctx, &recordingWriter{err: errors.New("db down")}, newResources(),
		domain.RewardSpec{Kind: domain.RewardItem, Item: &domain.ItemDescriptor{Rarity: domain.RarityRare}}, 1)
	assert.Error(t, err)
}
