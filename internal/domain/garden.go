package domain

import (
	"encoding/json"
	"time"
)

// PlotState is one planted garden cell. A nil *PlotState is empty soil.
type PlotState struct {
	SeedName      string  `json:"name"`
	Icon          string  `json:"emoji"`
	Value         int64   `json:"value"`
	PlantedAt     int64   `json:"plantedAt"` // epoch milliseconds
	IsMature      bool    `json:"isGrown"`
	GrowthPercent float64 `json:"growthStage"`
}

// PlantedTime returns PlantedAt as wall-clock time
func (p *PlotState) PlantedTime() time.Time {
	return time.UnixMilli(p.PlantedAt)
}

// SetGrowth stores a clamped growth percent and derives maturity from it
func (p *PlotState) SetGrowth(percent float64) {
	if percent < GrowthEmpty {
		percent = GrowthEmpty
	}
	if percent > GrowthMature {
		percent = GrowthMature
	}
	p.GrowthPercent = percent
	p.IsMature = percent >= GrowthMature
}

// UnmarshalJSON upgrades saves written before growthStage existed:
// a missing value becomes 100 for grown plots and 0 otherwise.
func (p *PlotState) UnmarshalJSON(data []byte) error {
	type plotAlias PlotState
	var aux struct {
		plotAlias
		GrowthPercent *float64 `json:"growthStage"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = PlotState(aux.plotAlias)
	switch {
	case aux.GrowthPercent != nil:
		p.GrowthPercent = *aux.GrowthPercent
	case p.IsMature:
		p.GrowthPercent = GrowthMature
	default:
		p.GrowthPercent = GrowthEmpty
	}
	return nil
}

// GameState is the complete persisted game snapshot
type GameState struct {
	Profile       *UserProfile `json:"user"`
	Coins         int64        `json:"money"`
	Inventory     Inventory    `json:"inventory"`
	Plots         []*PlotState `json:"garden"`
	OwnedGear     NameSet      `json:"gear"`
	ActiveEvents  NameSet      `json:"activeEvents"`
	RedeemedCodes NameSet      `json:"usedCodes"`
}

// NewGameState returns the first-run snapshot
func NewGameState() GameState {
	return GameState{
		Coins:         StartingCoins,
		Inventory:     Inventory{},
		Plots:         make([]*PlotState, PlotCount),
		OwnedGear:     NameSet{},
		ActiveEvents:  NameSet{},
		RedeemedCodes: NameSet{},
	}
}

// Clone returns a deep copy that shares no memory with s
func (s GameState) Clone() GameState {
	out := GameState{
		Coins:         s.Coins,
		Inventory:     s.Inventory.Clone(),
		Plots:         make([]*PlotState, len(s.Plots)),
		OwnedGear:     s.OwnedGear.Clone(),
		ActiveEvents:  s.ActiveEvents.Clone(),
		RedeemedCodes: s.RedeemedCodes.Clone(),
	}
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	for i, plot := range s.Plots {
		if plot != nil {
			cp := *plot
			out.Plots[i] = &cp
		}
	}
	return out
}

// Normalize repairs a decoded snapshot so every invariant holds
func (s GameState) Normalize() GameState {
	out := s.Clone()
	if out.Coins < 0 {
		out.Coins = 0
	}
	out.Inventory.prune()

	plots := make([]*PlotState, PlotCount)
	copy(plots, out.Plots)
	for _, plot := range plots {
		if plot != nil {
			plot.SetGrowth(plot.GrowthPercent)
		}
	}
	out.Plots = plots

	out.OwnedGear = out.OwnedGear.dedupe()
	out.ActiveEvents = out.ActiveEvents.dedupe()
	out.RedeemedCodes = out.RedeemedCodes.dedupe()
	return out
}

// Plot returns the plot at index and whether the index is valid
func (s GameState) Plot(index int) (*PlotState, bool) {
	if index < 0 || index >= len(s.Plots) {
		return nil, false
	}
	return s.Plots[index], true
}

// HasProfile reports whether onboarding has been completed
func (s GameState) HasProfile() bool {
	return s.Profile != nil
}
