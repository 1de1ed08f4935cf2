package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/RewardEngine_Go/internal/catalog"
	"github.com/osse101/RewardEngine_Go/internal/concurrency"
	"github.com/osse101/RewardEngine_Go/internal/database"
	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/ledger"
	"github.com/osse101/RewardEngine_Go/internal/repository"
	"github.com/osse101/RewardEngine_Go/internal/reward"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testPool, terminate = setupDatabase(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupDatabase(ctx context.Context) (*pgxpool.Pool, func()) {
	// testcontainers panics when no docker daemon is reachable
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupDatabase: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, nil
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return nil, terminate
	}
	pool, err := database.NewPool(ctx, connStr, database.PoolOptions{
		MaxConns:        10,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: 5 * time.Minute,
	})
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return nil, terminate
	}
	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return nil, terminate
	}
	return pool, terminate
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	return NewStore(testPool)
}

// createUser registers a fresh player and returns its id
func createUser(t *testing.T, s *Store) string {
	t.Helper()
	ctx := context.Background()
	userID := "user-" + uuid.NewString()

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	require.NoError(t, tx.CreateResources(ctx, domain.NewUserResources(userID, time.Now().UTC())))
	require.NoError(t, tx.Commit(ctx))
	return userID
}

func TestStore_Resources(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s)

	res, err := s.GetResources(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEnergy, res.Energy)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	assert.ErrorIs(t, tx.CreateResources(ctx, domain.NewUserResources(userID, time.Now())), domain.ErrUserExists)
	require.NoError(t, tx.Rollback(ctx))

	tx, err = s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	locked, err := tx.GetResourcesForUpdate(ctx, userID)
	require.NoError(t, err)
	locked.Gold = 75
	locked.SlotMachinePlays = 3
	require.NoError(t, tx.UpdateResources(ctx, *locked))
	require.NoError(t, tx.Commit(ctx))

	res, err = s.GetResources(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(75), res.Gold)
	assert.Equal(t, 3, res.SlotMachinePlays)

	_, err = s.GetResources(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_LedgerThroughService(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s)

	items := catalog.NewService(s, 16, time.Minute)
	require.NoError(t, items.UpsertItem(ctx, domain.Item{
		ID: "pg-sword", Name: "Sword", Category: domain.CategoryWeapon, Rarities: []domain.Rarity{domain.RarityRare},
	}))
	svc := ledger.NewService(s, concurrency.NewLockManager(), reward.NewApplier(items), ledger.Options{Audit: true})

	gold := domain.RewardSpec{Kind: domain.RewardGold, Amount: 10, Sumable: true}
	first, err := svc.Append(ctx, userID, gold, domain.ReasonReferral, 1)
	require.NoError(t, err)
	second, err := svc.Append(ctx, userID, gold, domain.ReasonReferral, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "sumable appends merge")

	_, err = svc.Append(ctx, userID, domain.RewardSpec{
		Kind: domain.RewardItem, Amount: 1, Item: &domain.ItemDescriptor{Rarity: domain.RarityRare, Level: 2},
	}, domain.ReasonDaily, 1)
	require.NoError(t, err)

	entries, err := svc.ListUnclaimed(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.InDelta(t, 20.0, entries[0].Reward.Amount, 1e-9)
	assert.Equal(t, 2, entries[0].Context)

	result, err := svc.ClaimMany(ctx, userID, []uuid.UUID{entries[0].ID, entries[1].ID})
	require.NoError(t, err)
	assert.Len(t, result.Claimed, 2)
	assert.Equal(t, int64(20), result.Resources.Gold)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "pg-sword", result.Items[0].ItemID)

	owned, err := s.ListOwnedItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, 2, owned[0].Level)

	history, err := svc.History(ctx, userID, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	remaining, err := s.ListEntries(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestStore_ConcurrentAppendsMerge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s)

	svc := ledger.NewService(s, concurrency.NewLockManager(), reward.NewApplier(catalog.NewService(s, 16, time.Minute)), ledger.Options{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Append(ctx, userID, domain.RewardSpec{Kind: domain.RewardToken, Amount: 1, Sumable: true}, domain.ReasonTask, 0)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries, err := s.ListEntries(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.InDelta(t, 20.0, entries[0].Reward.Amount, 1e-9)
}

func TestStore_DebitJackpotPool(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	name := "pool-" + uuid.NewString()

	require.NoError(t, s.SaveJackpot(ctx, domain.JackpotConfig{
		Name: name, Pool: 1_000_000, UpdatedAt: time.Now(),
		Entries: []domain.JackpotEntry{{Description: "gold", Weight: 1, Reward: domain.RewardSpec{Kind: domain.RewardGold, Amount: 5}}},
	}))

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	settlement, err := tx.DebitJackpotPool(ctx, name, 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, int64(10_000), settlement.Payout)
	assert.InDelta(t, 990_000.0, settlement.PoolAfter, 1e-6)

	cfg, err := s.GetJackpot(ctx, name)
	require.NoError(t, err)
	assert.InDelta(t, 990_000.0, cfg.Pool, 1e-6)
	require.Len(t, cfg.Entries, 1)
	assert.Equal(t, domain.RewardGold, cfg.Entries[0].Reward.Kind)

	tx, err = s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	_, err = tx.DebitJackpotPool(ctx, "missing-"+name, 1)
	assert.ErrorIs(t, err, domain.ErrGameConfigurationNotFound)
}

func TestStore_DebitJackpotPool_NeverOverdraws(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	name := "pool-" + uuid.NewString()
	require.NoError(t, s.SaveJackpot(ctx, domain.JackpotConfig{Name: name, Pool: 1000, UpdatedAt: time.Now()}))

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	spec := domain.RewardSpec{Kind: domain.RewardPoolPercentage, Amount: 50}.Scaled(5)
	settlement, err := tx.DebitJackpotPool(ctx, name, spec.Amount)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), settlement.Payout)
	assert.InDelta(t, 0.0, settlement.PoolAfter, 1e-9)

	_, err = tx.DebitJackpotPool(ctx, name, 10)
	assert.ErrorIs(t, err, domain.ErrJackpotPoolInsufficient)
	require.NoError(t, tx.Commit(ctx))
}

func TestStore_DebitJackpotPool_ConcurrentDebitsCompound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	name := "pool-" + uuid.NewString()
	require.NoError(t, s.SaveJackpot(ctx, domain.JackpotConfig{Name: name, Pool: 1_000_000, UpdatedAt: time.Now()}))

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := s.BeginTx(ctx)
			if !assert.NoError(t, err) {
				return
			}
			defer repository.SafeRollback(ctx, tx)
			_, err = tx.DebitJackpotPool(ctx, name, 50)
			if assert.NoError(t, err) {
				assert.NoError(t, tx.Commit(ctx))
			}
		}()
	}
	wg.Wait()

	cfg, err := s.GetJackpot(ctx, name)
	require.NoError(t, err)
	assert.InDelta(t, 62_500.0, cfg.Pool, 1e-6, "each debit halves the pool left by the previous one")
}

func TestStore_SlotMachineRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	name := "machine-" + uuid.NewString()

	_, err := s.GetSlotMachine(ctx, name)
	assert.ErrorIs(t, err, domain.ErrGameConfigurationNotFound)

	cfg := domain.SlotMachineConfig{
		Name:  name,
		Reels: []domain.Reel{{Symbols: []domain.SlotSymbol{{Symbol: "X", Weight: 3}}}},
		Combinations: []domain.Combination{
			{Symbols: []string{"X", "X"}, Reward: domain.RewardSpec{Kind: domain.RewardSpin, Amount: 2}},
		},
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, s.SaveSlotMachine(ctx, cfg))

	got, err := s.GetSlotMachine(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, cfg.Reels, got.Reels)
	assert.Equal(t, cfg.Combinations, got.Combinations)
	assert.True(t, cfg.UpdatedAt.Equal(got.UpdatedAt))
}

func TestStore_Referrals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	referrer := createUser(t, s)
	referred := createUser(t, s)

	require.NoError(t, s.CreateReferral(ctx, domain.Referral{ReferrerID: referrer, ReferredID: referred, CreatedAt: time.Now()}))
	assert.ErrorIs(t, s.CreateReferral(ctx, domain.Referral{ReferrerID: referrer, ReferredID: referred, CreatedAt: time.Now()}),
		domain.ErrReferralExists)
	assert.ErrorIs(t, s.CreateReferral(ctx, domain.Referral{ReferrerID: "ghost", ReferredID: referrer, CreatedAt: time.Now()}),
		domain.ErrUserNotFound)

	onboard := func() (bool, int) {
		tx, err := s.BeginTx(ctx)
		require.NoError(t, err)
		defer repository.SafeRollback(ctx, tx)
		ref, changed, err := tx.MarkReferralOnboarded(ctx, referred, time.Now())
		require.NoError(t, err)
		assert.True(t, ref.Onboarded)
		n, err := tx.CountOnboardedReferrals(ctx, referrer)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))
		return changed, n
	}

	changed, n := onboard()
	assert.True(t, changed)
	assert.Equal(t, 1, n)

	changed, n = onboard()
	assert.False(t, changed, "second onboarding is a no-op")
	assert.Equal(t, 1, n)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	_, _, err = tx.MarkReferralOnboarded(ctx, "never-referred", time.Now())
	assert.ErrorIs(t, err, domain.ErrReferralNotFound)
}

func TestStore_Streaks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	streak, err := tx.GetStreakForUpdate(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, streak)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, tx.UpsertStreak(ctx, domain.DailyStreak{UserID: userID, Streak: 1, LastClaimedAt: at}))
	require.NoError(t, tx.UpsertStreak(ctx, domain.DailyStreak{UserID: userID, Streak: 2, LastClaimedAt: at.Add(24 * time.Hour)}))

	streak, err = tx.GetStreakForUpdate(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, streak)
	assert.Equal(t, 2, streak.Streak)
	assert.True(t, at.Add(24*time.Hour).Equal(streak.LastClaimedAt))
	require.NoError(t, tx.Commit(ctx))
}

func TestStore_CatalogByRarity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := "pg-amulet-" + uuid.NewString()

	require.NoError(t, s.UpsertItem(ctx, domain.Item{
		ID: id, Name: "Amulet", Category: domain.CategoryAccessory,
		Rarities: []domain.Rarity{domain.RarityEpic, domain.RarityLegendary},
	}))

	epic, err := s.ListItemsByRarity(ctx, domain.RarityEpic)
	require.NoError(t, err)
	var found bool
	for _, item := range epic {
		if item.ID == id {
			found = true
			assert.Equal(t, []domain.Rarity{domain.RarityEpic, domain.RarityLegendary}, item.Rarities)
		}
	}
	assert.True(t, found)

	mythic, err := s.ListItemsByRarity(ctx, domain.RarityMythic)
	require.NoError(t, err)
	for _, item := range mythic {
		assert.NotEqual(t, id, item.ID)
	}
}
