// Package game wires the garden, gear and economy engines to the session
// store, the event bus and the timed workers.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/GardenSim_Go/internal/catalog"
	"github.com/osse101/GardenSim_Go/internal/clock"
	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/economy"
	"github.com/osse101/GardenSim_Go/internal/event"
	"github.com/osse101/GardenSim_Go/internal/garden"
	"github.com/osse101/GardenSim_Go/internal/gear"
	"github.com/osse101/GardenSim_Go/internal/logger"
	"github.com/osse101/GardenSim_Go/internal/repository"
	"github.com/osse101/GardenSim_Go/internal/scheduler"
	"github.com/osse101/GardenSim_Go/internal/session"
	"github.com/osse101/GardenSim_Go/internal/validation"
	"github.com/osse101/GardenSim_Go/internal/worker"
)

// Config tunes the background work of a Service
type Config struct {
	TickInterval     time.Duration
	ResetStaleEvents bool
	Workers          int
	QueueSize        int
}

func (c Config) withDefaults() Config {
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	return c
}

// Service is the single entry point used by presentation layers
type Service struct {
	cfg     Config
	catalog *catalog.Catalog
	clock   clock.Clock
	store   *session.Store
	garden  *garden.Engine
	economy *economy.Engine

	pool      *worker.Pool
	scheduler *scheduler.Scheduler
	events    *worker.EventWorker

	startMu sync.Mutex
	started bool
}

// NewService creates a service. rnd drives gear chance effects and must
// return values in [0,1).
func NewService(cfg Config, c *catalog.Catalog, clk clock.Clock, rnd func() float64, repo repository.Snapshot, bus event.Bus) *Service {
	cfg = cfg.withDefaults()
	gearEngine := gear.NewEngine(c, rnd)
	pool := worker.NewPool(cfg.Workers, cfg.QueueSize)

	s := &Service{
		cfg:       cfg,
		catalog:   c,
		clock:     clk,
		store:     session.NewStore(repo, bus),
		garden:    garden.NewEngine(c, gearEngine),
		economy:   economy.NewEngine(c, gearEngine),
		pool:      pool,
		scheduler: scheduler.New(clk, pool),
	}
	s.events = worker.NewEventWorker(clk, c.Events(), s)
	return s
}

// Start loads the saved game, begins the growth tick and, when a profile
// exists and no boost is active, the boost cycle. A saved game that still
// lists active boosts keeps them and the cycle stays off unless
// ResetStaleEvents is set.
func (s *Service) Start(ctx context.Context) error {
	ctx = withRequest(ctx)
	log := logger.FromContext(ctx)

	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.started {
		log.Warn(LogMsgServiceAlreadyStart)
		return nil
	}

	state, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	if s.cfg.ResetStaleEvents && len(state.ActiveEvents) > 0 {
		stale := state.ActiveEvents
		state, err = s.store.Apply(ctx, OpResetEvents, func(st domain.GameState) (domain.GameState, error) {
			st.ActiveEvents = domain.NameSet{}
			return st, nil
		})
		if err != nil {
			return err
		}
		log.Info(LogMsgStaleEventsCleared, "events", []string(stale))
	}

	// catch up on growth that happened while the game was closed
	if _, err := s.Tick(ctx); err != nil {
		return err
	}

	s.pool.Start()
	s.scheduler.Schedule(s.cfg.TickInterval, worker.JobFunc(func(ctx context.Context) error {
		_, err := s.Tick(ctx)
		return err
	}))
	s.startEvents(ctx, state)
	s.started = true

	log.Info(LogMsgServiceStarted, "tick_interval", s.cfg.TickInterval, "profile", state.HasProfile())
	return nil
}

// Shutdown stops the boost cycle, the growth tick and the worker pool
func (s *Service) Shutdown(ctx context.Context) error {
	pending := s.events.Pending() + s.scheduler.Pending()
	var errs []error
	if err := s.events.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.scheduler.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	s.pool.Stop()

	logger.FromContext(ctx).Info(LogMsgServiceStopped, "cancelled_timers", pending)
	return errors.Join(errs...)
}

func (s *Service) startEvents(ctx context.Context, state domain.GameState) {
	log := logger.FromContext(ctx)
	switch {
	case !state.HasProfile():
		log.Info(LogMsgProfileMissing)
	case len(state.ActiveEvents) > 0:
		log.Info(LogMsgStaleEventsKept, "events", []string(state.ActiveEvents))
	default:
		s.events.Start(ctx)
	}
}

// State returns a copy of the live snapshot. Before Start or the first
// operation it is the first-run state.
func (s *Service) State() domain.GameState {
	return s.store.Snapshot()
}

// Catalog returns the static game tables
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Fruits lists the fruit items currently held
func (s *Service) Fruits() []string {
	return s.economy.Fruits(s.store.Snapshot())
}

// CompleteProfile stores the onboarding profile and starts the boost cycle
func (s *Service) CompleteProfile(ctx context.Context, profile domain.UserProfile) error {
	ctx = withRequest(ctx)
	if err := validation.GetValidator().ValidateStruct(profile); err != nil {
		return err
	}

	state, err := s.store.Apply(ctx, OpCompleteProfile, func(st domain.GameState) (domain.GameState, error) {
		if st.HasProfile() {
			return st, fmt.Errorf("%w: %s", domain.ErrProfileExists, st.Profile.DisplayName())
		}
		p := profile
		st.Profile = &p
		return st, nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgProfileCompleted, "name", profile.DisplayName())
	s.startEvents(ctx, state)
	return nil
}

// Plant puts a seed from the inventory into an empty plot
func (s *Service) Plant(ctx context.Context, plotIndex int, seedName string) (garden.PlantResult, error) {
	ctx = withRequest(ctx)
	var result garden.PlantResult
	_, err := s.store.Apply(ctx, OpPlant, func(st domain.GameState) (domain.GameState, error) {
		if err := requireProfile(st); err != nil {
			return st, err
		}
		next, res, err := s.garden.Plant(st, plotIndex, seedName, s.clock.Now())
		result = res
		return next, err
	})
	if err != nil {
		return garden.PlantResult{}, err
	}

	logger.FromContext(ctx).Info(LogMsgPlanted, "plot", plotIndex, "seed", result.Plot.SeedName, "instant", result.Instant)
	s.store.Publish(ctx, event.NewPlotPlantedEvent(plotIndex, result.Plot.SeedName, result.Instant, result.Plot.PlantedAt))
	if result.Instant {
		s.store.Publish(ctx, event.NewPlotMaturedEvent(plotIndex, result.Plot.SeedName))
	}
	return result, nil
}

// Harvest collects the fruit of a mature plot
func (s *Service) Harvest(ctx context.Context, plotIndex int) (garden.HarvestResult, error) {
	ctx = withRequest(ctx)
	var result garden.HarvestResult
	_, err := s.store.Apply(ctx, OpHarvest, func(st domain.GameState) (domain.GameState, error) {
		if err := requireProfile(st); err != nil {
			return st, err
		}
		next, res, err := s.garden.Harvest(st, plotIndex)
		result = res
		return next, err
	})
	if err != nil {
		return garden.HarvestResult{}, err
	}

	logger.FromContext(ctx).Info(LogMsgHarvested, "plot", plotIndex, "fruit", result.FruitName)
	s.store.Publish(ctx, event.NewPlotHarvestedEvent(plotIndex, result.SeedName, result.FruitName))
	return result, nil
}

// ApplyGear uses owned gear on a plot
func (s *Service) ApplyGear(ctx context.Context, plotIndex int, gearName string) (gear.Application, error) {
	ctx = withRequest(ctx)
	var (
		result     gear.Application
		wasGrowing bool
	)
	_, err := s.store.Apply(ctx, OpApplyGear, func(st domain.GameState) (domain.GameState, error) {
		if err := requireProfile(st); err != nil {
			return st, err
		}
		if plot, ok := st.Plot(plotIndex); ok && plot != nil {
			wasGrowing = !plot.IsMature
		}
		next, res, err := s.garden.ApplyGear(st, plotIndex, gearName)
		result = res
		return next, err
	})
	if err != nil {
		return gear.Application{}, err
	}

	logger.FromContext(ctx).Info(LogMsgGearApplied, "plot", plotIndex, "gear", result.Gear, "effect", result.Effect)
	s.store.Publish(ctx, event.NewGearAppliedEvent(plotIndex, result.Gear, string(result.Effect), result.Plot.Value, result.Plot.GrowthPercent))
	if wasGrowing && result.Plot.IsMature {
		s.store.Publish(ctx, event.NewPlotMaturedEvent(plotIndex, result.Plot.SeedName))
	}
	return result, nil
}

// BuySeed buys one seed
func (s *Service) BuySeed(ctx context.Context, seedName string) (economy.Purchase, error) {
	ctx = withRequest(ctx)
	var result economy.Purchase
	_, err := s.store.Apply(ctx, OpBuySeed, func(st domain.GameState) (domain.GameState, error) {
		if err := requireProfile(st); err != nil {
			return st, err
		}
		next, res, err := s.economy.BuySeed(st, seedName)
		result = res
		return next, err
	})
	if err != nil {
		return economy.Purchase{}, err
	}

	logger.FromContext(ctx).Info(LogMsgSeedBought, "seed", result.Item, "price", result.Price, "balance", result.Balance)
	s.store.Publish(ctx, event.NewSeedBoughtEvent(result.Item, result.Price, result.Balance))
	return result, nil
}

// BuyGear buys a piece of gear once
func (s *Service) BuyGear(ctx context.Context, gearName string) (economy.Purchase, error) {
	ctx = withRequest(ctx)
	var result economy.Purchase
	_, err := s.store.Apply(ctx, OpBuyGear, func(st domain.GameState) (domain.GameState, error) {
		if err := requireProfile(st); err != nil {
			return st, err
		}
		next, res, err := s.economy.BuyGear(st, gearName)
		result = res
		return next, err
	})
	if err != nil {
		return economy.Purchase{}, err
	}

	logger.FromContext(ctx).Info(LogMsgGearBought, "gear", result.Item, "price", result.Price, "balance", result.Balance)
	s.store.Publish(ctx, event.NewGearBoughtEvent(result.Item, result.Price, result.Balance))
	return result, nil
}

// SellOne sells a single fruit
func (s *Service) SellOne(ctx context.Context, fruitName string) (economy.SaleResult, error) {
	return s.sell(ctx, OpSellOne, func(st domain.GameState) (domain.GameState, economy.SaleResult, error) {
		return s.economy.SellOne(st, fruitName)
	})
}

// SellAll sells every fruit in the inventory
func (s *Service) SellAll(ctx context.Context) (economy.SaleResult, error) {
	return s.sell(ctx, OpSellAll, s.economy.SellAll)
}

func (s *Service) sell(ctx context.Context, op string, fn func(domain.GameState) (domain.GameState, economy.SaleResult, error)) (economy.SaleResult, error) {
	ctx = withRequest(ctx)
	var result economy.SaleResult
	_, err := s.store.Apply(ctx, op, func(st domain.GameState) (domain.GameState, error) {
		if err := requireProfile(st); err != nil {
			return st, err
		}
		next, res, err := fn(st)
		result = res
		return next, err
	})
	if err != nil {
		return economy.SaleResult{}, err
	}

	logger.FromContext(ctx).Info(LogMsgFruitSold, "operation", op, "quantity", result.Quantity, "total", result.Total)
	s.store.Publish(ctx, event.NewFruitSoldEvent(result.Items, result.Quantity, result.Total))
	return result, nil
}

// QuoteValue prices fruit at the current multipliers without selling it
func (s *Service) QuoteValue(ctx context.Context, fruitName string, quantity int) (economy.Quote, error) {
	state, err := s.store.Current(withRequest(ctx))
	if err != nil {
		return economy.Quote{}, err
	}
	return s.economy.QuoteValue(state, fruitName, quantity)
}

// Redeem applies a promotional code
func (s *Service) Redeem(ctx context.Context, code string) (economy.RedeemResult, error) {
	ctx = withRequest(ctx)
	var result economy.RedeemResult
	_, err := s.store.Apply(ctx, OpRedeem, func(st domain.GameState) (domain.GameState, error) {
		if err := requireProfile(st); err != nil {
			return st, err
		}
		next, res, err := s.economy.Redeem(st, code)
		result = res
		return next, err
	})
	if err != nil {
		return economy.RedeemResult{}, err
	}

	logger.FromContext(ctx).Info(LogMsgCodeRedeemed, "code", result.Code, "reward", result.Kind, "amount", result.Amount)
	s.store.Publish(ctx, event.NewCodeRedeemedEvent(result.Code, string(result.Kind), result.Amount, result.Seed))
	return result, nil
}

// Tick advances plot growth to the current clock time. Ticks that change
// nothing are not saved.
func (s *Service) Tick(ctx context.Context) (garden.TickResult, error) {
	ctx = withRequest(ctx)
	var result garden.TickResult
	state, err := s.store.Apply(ctx, OpTick, func(st domain.GameState) (domain.GameState, error) {
		next, res := s.garden.Tick(st, s.clock.Now())
		result = res
		if !res.Changed {
			return st, session.ErrUnchanged
		}
		return next, nil
	})
	if err != nil {
		return garden.TickResult{}, err
	}

	if len(result.Matured) > 0 {
		logger.FromContext(ctx).Info(LogMsgPlotsMatured, "plots", result.Matured)
	}
	for _, i := range result.Matured {
		if plot, ok := state.Plot(i); ok && plot != nil {
			s.store.Publish(ctx, event.NewPlotMaturedEvent(i, plot.SeedName))
		}
	}
	return result, nil
}

// ActivateEvent marks a boost active. Activating an active boost is a no-op.
func (s *Service) ActivateEvent(ctx context.Context, name string) error {
	return s.toggleEvent(ctx, name, true)
}

// DeactivateEvent ends a boost. Ending an inactive boost is a no-op.
func (s *Service) DeactivateEvent(ctx context.Context, name string) error {
	return s.toggleEvent(ctx, name, false)
}

func (s *Service) toggleEvent(ctx context.Context, name string, active bool) error {
	ctx = withRequest(ctx)
	op := OpDeactivateEvent
	if active {
		op = OpActivateEvent
	}

	changed := false
	state, err := s.store.Apply(ctx, op, func(st domain.GameState) (domain.GameState, error) {
		if st.ActiveEvents.Contains(name) == active {
			return st, session.ErrUnchanged
		}
		if active {
			st.ActiveEvents = st.ActiveEvents.With(name)
		} else {
			st.ActiveEvents = st.ActiveEvents.Without(name)
		}
		changed = true
		return st, nil
	})
	if err != nil || !changed {
		return err
	}

	var multiplier float64
	if ev, ok := s.catalog.Event(name); ok {
		multiplier = ev.Multiplier
	}
	log := logger.FromContext(ctx)
	if active {
		log.Info(LogMsgBoostActivated, "event", name, "multiplier", multiplier)
		s.store.Publish(ctx, event.NewBoostActivatedEvent(name, multiplier, state.ActiveEvents))
	} else {
		log.Info(LogMsgBoostDeactivated, "event", name)
		s.store.Publish(ctx, event.NewBoostDeactivatedEvent(name, multiplier, state.ActiveEvents))
	}
	return nil
}

func requireProfile(state domain.GameState) error {
	if !state.HasProfile() {
		return domain.ErrProfileRequired
	}
	return nil
}

// withRequest gives ctx a request id unless the caller already set one
func withRequest(ctx context.Context) context.Context {
	if _, ok := logger.RequestIDFromContext(ctx); ok {
		return ctx
	}
	return logger.NewRequestContext(ctx)
}

var _ worker.EventSink = (*Service)(nil)
