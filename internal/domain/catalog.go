package domain

import "time"

// SeedDefinition is an immutable catalog entry for a plantable seed
type SeedDefinition struct {
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	Icon           string `json:"emoji"`
	GrowDurationMs int64  `json:"growTime"`
	BaseValue      int64  `json:"value"`
	FruitName      string `json:"fruitName,omitempty"`
}

// GrowDuration returns the total time needed to reach maturity
func (s SeedDefinition) GrowDuration() time.Duration {
	return time.Duration(s.GrowDurationMs) * time.Millisecond
}

// EffectKind tags what a gear effect does
type EffectKind string

const (
	// EffectInstantGrowChance rolls once at plant time for instant maturity
	EffectInstantGrowChance EffectKind = "instant_grow_chance"
	// EffectAccelerateGrowth adds growth points to a growing plot when applied
	EffectAccelerateGrowth EffectKind = "accelerate_growth"
	// EffectPlotValueBoost multiplies a mature plot's value when applied
	EffectPlotValueBoost EffectKind = "plot_value_boost"
	// EffectSaleMultiplier passively multiplies fruit sale value while owned
	EffectSaleMultiplier EffectKind = "sale_multiplier"
)

// IsManual reports whether the effect is triggered by applying gear to a plot
func (k EffectKind) IsManual() bool {
	return k == EffectAccelerateGrowth || k == EffectPlotValueBoost
}

// GearEffect is a single tagged effect with its numeric parameter
type GearEffect struct {
	Kind       EffectKind `json:"kind"`
	Chance     float64    `json:"chance,omitempty"`
	Points     float64    `json:"points,omitempty"`
	Multiplier float64    `json:"multiplier,omitempty"`
}

// GearDefinition is an immutable catalog entry for purchasable gear
type GearDefinition struct {
	Name        string       `json:"name"`
	Price       int64        `json:"price"`
	Icon        string       `json:"emoji"`
	Description string       `json:"description"`
	Effects     []GearEffect `json:"effects"`
}

// Effect returns the gear's effect of the given kind, if any
func (g GearDefinition) Effect(kind EffectKind) (GearEffect, bool) {
	for _, e := range g.Effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return GearEffect{}, false
}

// EventDefinition is an immutable catalog entry for a timed sale boost
type EventDefinition struct {
	Name        string  `json:"name"`
	Icon        string  `json:"emoji"`
	Multiplier  float64 `json:"multiplier"`
	DurationMs  int64   `json:"duration"`
	CooldownMs  int64   `json:"cooldown"`
	Description string  `json:"description"`
}

// Duration returns how long the event stays active
func (e EventDefinition) Duration() time.Duration {
	return time.Duration(e.DurationMs) * time.Millisecond
}

// Cooldown returns the pause between two activations
func (e EventDefinition) Cooldown() time.Duration {
	return time.Duration(e.CooldownMs) * time.Millisecond
}

// RewardKind identifies what a redeem code grants
type RewardKind string

const (
	RewardCoins RewardKind = "coins"
	RewardSeed  RewardKind = "seed"
)

// RedeemCode is a promotional code and its reward. SeedName is set iff Kind is RewardSeed.
type RedeemCode struct {
	Code     string     `json:"code"`
	Kind     RewardKind `json:"type"`
	Amount   int64      `json:"amount"`
	SeedName string     `json:"seedName,omitempty"`
}
