package gear

import (
	"fmt"
	"math"

	"github.com/osse101/GardenSim_Go/internal/catalog"
	"github.com/osse101/GardenSim_Go/internal/domain"
)

// Engine applies owned gear effects to plots and sale values.
// All methods are pure: they never mutate the snapshot they are given.
type Engine struct {
	catalog *catalog.Catalog
	rnd     func() float64
}

// NewEngine creates a gear engine. rnd returns values in [0,1).
func NewEngine(c *catalog.Catalog, rnd func() float64) *Engine {
	return &Engine{catalog: c, rnd: rnd}
}

// Application describes what applying gear did to a plot
type Application struct {
	Gear      string
	Effect    domain.EffectKind
	PlotIndex int
	Plot      domain.PlotState
}

// RollPlantEffects applies plant-time effects of owned gear to a freshly
// planted plot. Each owned chance effect is rolled exactly once.
// It returns true when the plot matured instantly.
func (e *Engine) RollPlantEffects(owned domain.NameSet, plot *domain.PlotState) bool {
	for _, name := range owned {
		g, ok := e.catalog.GearItem(name)
		if !ok {
			continue
		}
		effect, ok := g.Effect(domain.EffectInstantGrowChance)
		if !ok {
			continue
		}
		if e.rnd() < effect.Chance {
			plot.SetGrowth(domain.GrowthMature)
			return true
		}
	}
	return false
}

// SaleMultiplier is the product of every owned passive sale multiplier
func (e *Engine) SaleMultiplier(owned domain.NameSet) float64 {
	mult := 1.0
	for _, name := range owned {
		g, ok := e.catalog.GearItem(name)
		if !ok {
			continue
		}
		for _, effect := range g.Effects {
			if effect.Kind == domain.EffectSaleMultiplier {
				mult *= effect.Multiplier
			}
		}
	}
	return mult
}

// Apply uses owned gear on the plot at plotIndex and returns the new snapshot
func (e *Engine) Apply(state domain.GameState, plotIndex int, gearName string) (domain.GameState, Application, error) {
	g, ok := e.catalog.GearItem(gearName)
	if !ok {
		return state, Application{}, e.unknownGear(gearName)
	}
	if !state.OwnedGear.Contains(g.Name) {
		return state, Application{}, fmt.Errorf("%w: %s %s", domain.ErrInvalidAction, domain.ErrMsgGearNotOwned, g.Name)
	}

	effect, ok := manualEffect(g)
	if !ok {
		return state, Application{}, fmt.Errorf("%w: %s %s", domain.ErrInvalidAction, g.Name, domain.ErrMsgGearNotApplicable)
	}

	plot, ok := state.Plot(plotIndex)
	if !ok {
		return state, Application{}, fmt.Errorf("%w: %s (%d)", domain.ErrInvalidAction, domain.ErrMsgPlotOutOfRange, plotIndex)
	}
	if plot == nil {
		return state, Application{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, domain.ErrMsgPlotEmpty)
	}

	next := state.Clone()
	target := next.Plots[plotIndex]

	switch effect.Kind {
	case domain.EffectAccelerateGrowth:
		if target.IsMature {
			return state, Application{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, domain.ErrMsgNoWateringNeeded)
		}
		e.accelerate(target, effect.Points)
	case domain.EffectPlotValueBoost:
		if !target.IsMature {
			return state, Application{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, domain.ErrMsgNotReady)
		}
		target.Value = int64(math.Floor(float64(target.Value) * effect.Multiplier))
	}

	return next, Application{Gear: g.Name, Effect: effect.Kind, PlotIndex: plotIndex, Plot: *target}, nil
}

// accelerate adds growth points and moves PlantedAt back by the same share
// of the grow duration, so later ticks keep the bonus.
func (e *Engine) accelerate(plot *domain.PlotState, points float64) {
	if seed, ok := e.catalog.Seed(plot.SeedName); ok {
		shift := int64(points / domain.GrowthMature * float64(seed.GrowDurationMs))
		plot.PlantedAt -= shift
	}
	plot.SetGrowth(plot.GrowthPercent + points)
}

func (e *Engine) unknownGear(name string) error {
	if suggestion, ok := e.catalog.SuggestGear(name); ok {
		return fmt.Errorf("%w: %s '%s' (did you mean '%s'?)", domain.ErrInvalidAction, domain.ErrMsgUnknownGear, name, suggestion)
	}
	return fmt.Errorf("%w: %s '%s'", domain.ErrInvalidAction, domain.ErrMsgUnknownGear, name)
}

// manualEffect returns the first effect triggered by applying the gear to a plot
func manualEffect(g domain.GearDefinition) (domain.GearEffect, bool) {
	for _, effect := range g.Effects {
		if effect.Kind.IsManual() {
			return effect, true
		}
	}
	return domain.GearEffect{}, false
}
