package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenSim_Go/internal/catalog"
	"github.com/osse101/GardenSim_Go/internal/clock"
	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/event"
	"github.com/osse101/GardenSim_Go/internal/repository"
)

const (
	bee     = "Bee Event"
	thunder = "Thunder Event"
	lucky   = "Lucky Event"
)

var startTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

var testProfile = domain.UserProfile{FirstName: "Dan", LastName: "Reyes", Age: 12, Gender: domain.GenderBoy}

// recorder collects published event types
type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, 0, len(r.events))
	for _, evt := range r.events {
		out = append(out, evt.Type)
	}
	return out
}

type fixture struct {
	svc   *Service
	clock *clock.FakeClock
	repo  *repository.Memory
	rec   *recorder
}

func newFixture(t *testing.T, cfg Config, saved *domain.GameState) *fixture {
	t.Helper()
	repo := repository.NewMemory()
	if saved != nil {
		require.NoError(t, repo.Save(context.Background(), *saved))
	}

	bus := event.NewMemoryBus()
	rec := &recorder{}
	for _, typ := range event.AllTypes {
		bus.Subscribe(typ, rec.handle)
	}

	fake := clock.NewFakeClock(startTime)
	svc := NewService(cfg, catalog.MustDefault(), fake, func() float64 { return 0.99 }, repo, bus)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = svc.Shutdown(ctx)
	})
	return &fixture{svc: svc, clock: fake, repo: repo, rec: rec}
}

func withProfile() *domain.GameState {
	state := domain.NewGameState()
	p := testProfile
	state.Profile = &p
	return &state
}

func TestService_GameplayRequiresProfile(t *testing.T) {
	f := newFixture(t, Config{}, nil)
	ctx := context.Background()
	require.NoError(t, f.svc.Start(ctx))

	_, err := f.svc.BuySeed(ctx, "Carrot")
	assert.ErrorIs(t, err, domain.ErrProfileRequired)
	_, err = f.svc.Redeem(ctx, "dansdev")
	assert.ErrorIs(t, err, domain.ErrProfileRequired)
	assert.Equal(t, int64(domain.StartingCoins), f.svc.State().Coins)
}

func TestService_CompleteProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid profile", func(t *testing.T) {
		f := newFixture(t, Config{}, nil)
		bad := testProfile
		bad.Age = 0
		bad.Gender = "other"

		err := f.svc.CompleteProfile(ctx, bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.False(t, f.svc.State().HasProfile())
	})

	t.Run("only once", func(t *testing.T) {
		f := newFixture(t, Config{}, nil)
		require.NoError(t, f.svc.CompleteProfile(ctx, testProfile))

		err := f.svc.CompleteProfile(ctx, testProfile)
		assert.ErrorIs(t, err, domain.ErrProfileExists)

		saved, err := f.repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Dan", saved.Profile.FirstName)
	})
}

func TestService_PlantGrowHarvestSell(t *testing.T) {
	f := newFixture(t, Config{TickInterval: time.Hour}, withProfile())
	ctx := context.Background()
	require.NoError(t, f.svc.Start(ctx))

	_, err := f.svc.BuySeed(ctx, "Carrot")
	require.NoError(t, err)
	_, err = f.svc.Plant(ctx, 0, "Carrot")
	require.NoError(t, err)

	_, err = f.svc.Harvest(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAction, "not mature yet")

	f.clock.Advance(15 * time.Second)
	result, err := f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, 50.0, f.svc.State().Plots[0].GrowthPercent)

	f.clock.Advance(15 * time.Second)
	result, err = f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, result.Matured)

	harvest, err := f.svc.Harvest(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Carrot Fruit", harvest.FruitName)

	sale, err := f.svc.SellAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(15), sale.Total)

	state := f.svc.State()
	assert.Equal(t, int64(1005), state.Coins)
	assert.Empty(t, state.Inventory)
	assert.Nil(t, state.Plots[0])

	assert.Equal(t, []event.Type{
		event.SeedBought, event.PlotPlanted, event.PlotMatured, event.PlotHarvested, event.FruitSold,
	}, f.rec.types())

	saved, err := f.repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1005), saved.Coins, "every mutation is persisted")
}

func TestService_UnchangedTickIsNotSaved(t *testing.T) {
	f := newFixture(t, Config{TickInterval: time.Hour}, withProfile())
	ctx := context.Background()

	before := f.repo.Saves()
	result, err := f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, before, f.repo.Saves())
}

func TestService_FailedOperationLeavesSnapshot(t *testing.T) {
	f := newFixture(t, Config{TickInterval: time.Hour}, withProfile())
	ctx := context.Background()
	require.NoError(t, f.svc.Start(ctx))
	before := f.svc.State()

	_, err := f.svc.Plant(ctx, 0, "Mango")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
	assert.Equal(t, before, f.svc.State())
	assert.Empty(t, f.rec.types())
}

func TestService_RedeemAndQuote(t *testing.T) {
	f := newFixture(t, Config{TickInterval: time.Hour}, withProfile())
	ctx := context.Background()
	require.NoError(t, f.svc.Start(ctx))

	result, err := f.svc.Redeem(ctx, " dansdev ")
	require.NoError(t, err)
	assert.Equal(t, "dansdev", result.Code)

	_, err = f.svc.Redeem(ctx, "dansdev")
	assert.ErrorIs(t, err, domain.ErrAlreadyRedeemed)

	_, err = f.svc.BuyGear(ctx, "Sprinkler")
	require.NoError(t, err)
	_, err = f.svc.BuyGear(ctx, "Sprinkler")
	assert.ErrorIs(t, err, domain.ErrAlreadyOwned)

	require.NoError(t, f.svc.ActivateEvent(ctx, bee))
	quote, err := f.svc.QuoteValue(ctx, "Carrot Fruit", 2)
	require.NoError(t, err)
	assert.Equal(t, 1.5, quote.GearMultiplier)
	assert.Equal(t, 5.0, quote.EventMultiplier)
	assert.Equal(t, int64(112), quote.UnitValue)
	assert.Equal(t, int64(224), quote.Total)
}

func TestService_OperationsBeforeStartKeepSavedGame(t *testing.T) {
	ctx := context.Background()
	saved := func() *domain.GameState {
		state := withProfile()
		state.Coins = 77_777
		return state
	}

	tests := []struct {
		name  string
		call  func(svc *Service) error
		coins int64
	}{
		{"activate event", func(svc *Service) error { return svc.ActivateEvent(ctx, bee) }, 77_777},
		{"tick", func(svc *Service) error { _, err := svc.Tick(ctx); return err }, 77_777},
		{"buy seed", func(svc *Service) error { _, err := svc.BuySeed(ctx, "Carrot"); return err }, 77_767},
		{"quote", func(svc *Service) error { _, err := svc.QuoteValue(ctx, "Carrot Fruit", 1); return err }, 77_777},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Config{TickInterval: time.Hour}, saved())

			require.NoError(t, tt.call(f.svc))

			persisted, err := f.repo.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, persisted)
			assert.Equal(t, tt.coins, persisted.Coins)
			assert.True(t, persisted.HasProfile())
		})
	}

	t.Run("profile cannot be completed twice", func(t *testing.T) {
		f := newFixture(t, Config{}, saved())

		err := f.svc.CompleteProfile(ctx, domain.UserProfile{FirstName: "New", LastName: "Player", Age: 30, Gender: domain.GenderGirl})
		assert.ErrorIs(t, err, domain.ErrProfileExists)

		persisted, err := f.repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Dan", persisted.Profile.FirstName)
		assert.Equal(t, int64(77_777), persisted.Coins)
	})
}

func TestService_EventToggleIsIdempotent(t *testing.T) {
	f := newFixture(t, Config{}, withProfile())
	ctx := context.Background()

	require.NoError(t, f.svc.ActivateEvent(ctx, bee))
	require.NoError(t, f.svc.ActivateEvent(ctx, bee))
	assert.Equal(t, domain.NameSet{bee}, f.svc.State().ActiveEvents)

	require.NoError(t, f.svc.DeactivateEvent(ctx, bee))
	require.NoError(t, f.svc.DeactivateEvent(ctx, bee))
	assert.Empty(t, f.svc.State().ActiveEvents)

	assert.Equal(t, []event.Type{event.BoostActivated, event.BoostDeactivated}, f.rec.types())
}

func TestService_BoostCycle(t *testing.T) {
	f := newFixture(t, Config{TickInterval: time.Hour}, withProfile())
	require.NoError(t, f.svc.Start(context.Background()))

	// bee: first at 50s, lasts 60s, rests 50s; lucky: first at 90s; thunder: first at 120s
	steps := []struct {
		at   time.Duration
		want domain.NameSet
	}{
		{49 * time.Second, domain.NameSet{}},
		{50 * time.Second, domain.NameSet{bee}},
		{90 * time.Second, domain.NameSet{bee, lucky}},
		{110 * time.Second, domain.NameSet{lucky}},
		{120 * time.Second, domain.NameSet{lucky, thunder}},
		{160 * time.Second, domain.NameSet{lucky, thunder, bee}},
	}

	for _, step := range steps {
		f.clock.Advance(startTime.Add(step.at).Sub(f.clock.Now()))
		assert.Equal(t, step.want, f.svc.State().ActiveEvents, "at %s", step.at)
	}
}

func TestService_BoostCycleWaitsForProfile(t *testing.T) {
	f := newFixture(t, Config{TickInterval: time.Hour}, nil)
	ctx := context.Background()
	require.NoError(t, f.svc.Start(ctx))

	f.clock.Advance(time.Minute)
	assert.Empty(t, f.svc.State().ActiveEvents, "no cycle before onboarding")

	require.NoError(t, f.svc.CompleteProfile(ctx, testProfile))
	f.clock.Advance(50 * time.Second)
	assert.Equal(t, domain.NameSet{bee}, f.svc.State().ActiveEvents)
}

func TestService_StaleEventsOnStart(t *testing.T) {
	stale := func() *domain.GameState {
		state := withProfile()
		state.ActiveEvents = domain.NameSet{thunder}
		return state
	}

	t.Run("kept by default and cycle stays off", func(t *testing.T) {
		f := newFixture(t, Config{TickInterval: time.Hour}, stale())
		require.NoError(t, f.svc.Start(context.Background()))

		f.clock.Advance(10 * time.Minute)
		assert.Equal(t, domain.NameSet{thunder}, f.svc.State().ActiveEvents)
	})

	t.Run("cleared when reset is enabled", func(t *testing.T) {
		f := newFixture(t, Config{TickInterval: time.Hour, ResetStaleEvents: true}, stale())
		require.NoError(t, f.svc.Start(context.Background()))
		assert.Empty(t, f.svc.State().ActiveEvents)

		f.clock.Advance(50 * time.Second)
		assert.Equal(t, domain.NameSet{bee}, f.svc.State().ActiveEvents)
	})
}

func TestService_StartCatchesUpOfflineGrowth(t *testing.T) {
	saved := withProfile()
	saved.Plots[2] = &domain.PlotState{SeedName: "Carrot", Value: 15, PlantedAt: startTime.Add(-time.Hour).UnixMilli()}

	f := newFixture(t, Config{TickInterval: time.Hour}, saved)
	require.NoError(t, f.svc.Start(context.Background()))

	plot := f.svc.State().Plots[2]
	require.NotNil(t, plot)
	assert.True(t, plot.IsMature)
	assert.Contains(t, f.rec.types(), event.PlotMatured)
}

func TestService_ScheduledTickRunsOnPool(t *testing.T) {
	f := newFixture(t, Config{TickInterval: time.Second}, withProfile())
	ctx := context.Background()
	require.NoError(t, f.svc.Start(ctx))

	_, err := f.svc.BuySeed(ctx, "Carrot")
	require.NoError(t, err)
	_, err = f.svc.Plant(ctx, 5, "Carrot")
	require.NoError(t, err)

	f.clock.Advance(30 * time.Second)
	assert.Eventually(t, func() bool {
		plot := f.svc.State().Plots[5]
		return plot != nil && plot.IsMature
	}, 2*time.Second, 10*time.Millisecond)
}

func TestService_ShutdownCancelsTimers(t *testing.T) {
	f := newFixture(t, Config{}, withProfile())
	require.NoError(t, f.svc.Start(context.Background()))
	require.Positive(t, f.clock.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.svc.Shutdown(ctx))
	assert.Equal(t, 0, f.clock.Pending())

	f.clock.Advance(time.Hour)
	assert.Empty(t, f.svc.State().ActiveEvents)
}
