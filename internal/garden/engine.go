package garden

import (
	"fmt"
	"time"

	"github.com/osse101/GardenSim_Go/internal/catalog"
	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/gear"
	"github.com/osse101/GardenSim_Go/internal/utils"
)

// Engine provides the pure plot lifecycle: empty -> growing -> mature -> empty
type Engine struct {
	catalog *catalog.Catalog
	gear    *gear.Engine
}

// NewEngine creates a new garden engine
func NewEngine(c *catalog.Catalog, g *gear.Engine) *Engine {
	return &Engine{catalog: c, gear: g}
}

// PlantResult reports the plot created by Plant
type PlantResult struct {
	PlotIndex int
	Plot      domain.PlotState
	Instant   bool
}

// TickResult reports what a growth tick changed
type TickResult struct {
	Changed bool
	Matured []int
}

// HarvestResult reports the fruit produced by Harvest
type HarvestResult struct {
	PlotIndex int
	SeedName  string
	FruitName string
}

// Plant puts one seed from the inventory into an empty plot
func (e *Engine) Plant(state domain.GameState, plotIndex int, seedName string, now time.Time) (domain.GameState, PlantResult, error) {
	seed, ok := e.catalog.Seed(seedName)
	if !ok {
		return state, PlantResult{}, e.unknownSeed(seedName)
	}

	plot, ok := state.Plot(plotIndex)
	if !ok {
		return state, PlantResult{}, fmt.Errorf("%w: %s (%d)", domain.ErrInvalidAction, domain.ErrMsgPlotOutOfRange, plotIndex)
	}
	if plot != nil {
		return state, PlantResult{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, domain.ErrMsgPlotOccupied)
	}
	if state.Inventory.Count(seed.Name) < 1 {
		return state, PlantResult{}, fmt.Errorf("%w: %s (%s)", domain.ErrInvalidAction, domain.ErrMsgNoSeedsLeft, seed.Name)
	}

	next := state.Clone()
	next.Inventory.Take(seed.Name, 1)

	planted := &domain.PlotState{
		SeedName:  seed.Name,
		Icon:      seed.Icon,
		Value:     seed.BaseValue,
		PlantedAt: now.UnixMilli(),
	}
	planted.SetGrowth(domain.GrowthEmpty)
	instant := e.gear.RollPlantEffects(next.OwnedGear, planted)
	next.Plots[plotIndex] = planted

	return next, PlantResult{PlotIndex: plotIndex, Plot: *planted, Instant: instant}, nil
}

// Progress returns the growth percent of a plot at now, clamped to [0,100]
func (e *Engine) Progress(plot *domain.PlotState, now time.Time) float64 {
	seed, ok := e.catalog.Seed(plot.SeedName)
	if !ok || seed.GrowDurationMs <= 0 {
		return plot.GrowthPercent
	}
	elapsed := now.Sub(plot.PlantedTime()).Milliseconds()
	percent := domain.GrowthMature * float64(elapsed) / float64(seed.GrowDurationMs)
	return utils.Clamp(percent, domain.GrowthEmpty, domain.GrowthMature)
}

// Tick recomputes growth for every growing plot. Mature plots are left alone
// and growth never moves backwards. When nothing changed the input snapshot
// is returned as is.
func (e *Engine) Tick(state domain.GameState, now time.Time) (domain.GameState, TickResult) {
	var result TickResult
	next := state

	for i, plot := range state.Plots {
		if plot == nil || plot.IsMature {
			continue
		}
		progress := e.Progress(plot, now)
		if progress <= plot.GrowthPercent {
			continue
		}
		if !result.Changed {
			next = state.Clone()
			result.Changed = true
		}
		target := next.Plots[i]
		target.SetGrowth(progress)
		if target.IsMature {
			result.Matured = append(result.Matured, i)
		}
	}

	return next, result
}

// Harvest collects the fruit of a mature plot and empties it
func (e *Engine) Harvest(state domain.GameState, plotIndex int) (domain.GameState, HarvestResult, error) {
	plot, ok := state.Plot(plotIndex)
	if !ok {
		return state, HarvestResult{}, fmt.Errorf("%w: %s (%d)", domain.ErrInvalidAction, domain.ErrMsgPlotOutOfRange, plotIndex)
	}
	if plot == nil {
		return state, HarvestResult{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, domain.ErrMsgPlotEmpty)
	}
	if !plot.IsMature {
		return state, HarvestResult{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, domain.ErrMsgNotReady)
	}

	// plots of seeds dropped from the catalog stay inert
	seed, ok := e.catalog.Seed(plot.SeedName)
	if !ok {
		return state, HarvestResult{}, fmt.Errorf("%w: %s '%s'", domain.ErrInvalidAction, domain.ErrMsgUnknownSeed, plot.SeedName)
	}
	fruit := seed.FruitName

	next := state.Clone()
	next.Inventory.Add(fruit, 1)
	next.Plots[plotIndex] = nil

	return next, HarvestResult{PlotIndex: plotIndex, SeedName: plot.SeedName, FruitName: fruit}, nil
}

// ApplyGear uses owned gear on a plot
func (e *Engine) ApplyGear(state domain.GameState, plotIndex int, gearName string) (domain.GameState, gear.Application, error) {
	return e.gear.Apply(state, plotIndex, gearName)
}

func (e *Engine) unknownSeed(name string) error {
	if suggestion, ok := e.catalog.SuggestSeed(name); ok {
		return fmt.Errorf("%w: %s '%s' (did you mean '%s'?)", domain.ErrInvalidAction, domain.ErrMsgUnknownSeed, name, suggestion)
	}
	return fmt.Errorf("%w: %s '%s'", domain.ErrInvalidAction, domain.ErrMsgUnknownSeed, name)
}
