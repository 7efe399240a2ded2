package catalog

import (
	"errors"
	"fmt"

	"github.com/osse101/GardenSim_Go/internal/domain"
)

// ErrInvalidCatalog is returned when catalog data breaks a catalog rule
var ErrInvalidCatalog = errors.New("invalid catalog")

// Config is the JSON document describing every catalog table
type Config struct {
	Seeds       []domain.SeedDefinition  `json:"seeds"`
	Gear        []domain.GearDefinition  `json:"gear"`
	Events      []domain.EventDefinition `json:"events"`
	RedeemCodes []domain.RedeemCode      `json:"redeemCodes"`
}

// Catalog is the immutable, indexed set of reference tables
type Catalog struct {
	seeds  []domain.SeedDefinition
	gear   []domain.GearDefinition
	events []domain.EventDefinition
	codes  []domain.RedeemCode

	seedIndex  map[string]int
	fruitIndex map[string]int
	gearIndex  map[string]int
	eventIndex map[string]int
	codeIndex  map[string]int
}

// New validates cfg and builds the lookup indexes.
// Seeds without an explicit fruit name get "<seed> Fruit".
func New(cfg Config) (*Catalog, error) {
	if len(cfg.Seeds) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, ErrMsgNoSeedsDefined)
	}

	c := &Catalog{
		seeds:      make([]domain.SeedDefinition, len(cfg.Seeds)),
		gear:       make([]domain.GearDefinition, len(cfg.Gear)),
		events:     make([]domain.EventDefinition, len(cfg.Events)),
		codes:      make([]domain.RedeemCode, len(cfg.RedeemCodes)),
		seedIndex:  make(map[string]int, len(cfg.Seeds)),
		fruitIndex: make(map[string]int, len(cfg.Seeds)),
		gearIndex:  make(map[string]int, len(cfg.Gear)),
		eventIndex: make(map[string]int, len(cfg.Events)),
		codeIndex:  make(map[string]int, len(cfg.RedeemCodes)),
	}
	copy(c.events, cfg.Events)
	copy(c.codes, cfg.RedeemCodes)

	for i, seed := range cfg.Seeds {
		if seed.FruitName == "" {
			seed.FruitName = seed.Name + domain.FruitSuffix
		}
		if _, dup := c.seedIndex[seed.Name]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateName, ErrInvalidCatalog, labelSeed, seed.Name)
		}
		if _, dup := c.fruitIndex[seed.FruitName]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateFruit, ErrInvalidCatalog, seed.FruitName)
		}
		c.seeds[i] = seed
		c.seedIndex[seed.Name] = i
		c.fruitIndex[seed.FruitName] = i
	}

	for i, g := range cfg.Gear {
		if _, dup := c.gearIndex[g.Name]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateName, ErrInvalidCatalog, labelGear, g.Name)
		}
		if err := validateEffects(g); err != nil {
			return nil, err
		}
		g.Effects = append([]domain.GearEffect(nil), g.Effects...)
		c.gear[i] = g
		c.gearIndex[g.Name] = i
	}

	for i, e := range c.events {
		if _, dup := c.eventIndex[e.Name]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateName, ErrInvalidCatalog, labelEvent, e.Name)
		}
		c.eventIndex[e.Name] = i
	}

	for i, code := range c.codes {
		if _, dup := c.codeIndex[code.Code]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateName, ErrInvalidCatalog, labelCode, code.Code)
		}
		if err := c.validateCode(code); err != nil {
			return nil, err
		}
		c.codeIndex[code.Code] = i
	}

	return c, nil
}

func validateEffects(g domain.GearDefinition) error {
	for _, e := range g.Effects {
		var ok bool
		switch e.Kind {
		case domain.EffectInstantGrowChance:
			ok = e.Chance > 0
		case domain.EffectAccelerateGrowth:
			ok = e.Points > 0
		case domain.EffectPlotValueBoost, domain.EffectSaleMultiplier:
			ok = e.Multiplier > 0
		}
		if !ok {
			return fmt.Errorf(ErrFmtEffectNoParameter, ErrInvalidCatalog, g.Name, e.Kind)
		}
	}
	return nil
}

func (c *Catalog) validateCode(code domain.RedeemCode) error {
	switch code.Kind {
	case domain.RewardSeed:
		if code.SeedName == "" {
			return fmt.Errorf(ErrFmtCodeMissingSeed, ErrInvalidCatalog, code.Code)
		}
		if _, ok := c.seedIndex[code.SeedName]; !ok {
			return fmt.Errorf(ErrFmtCodeUnknownSeed, ErrInvalidCatalog, code.Code, code.SeedName)
		}
	case domain.RewardCoins:
		if code.SeedName != "" {
			return fmt.Errorf(ErrFmtCoinCodeWithSeed, ErrInvalidCatalog, code.Code)
		}
	}
	return nil
}

// Seeds returns the seed table in catalog order
func (c *Catalog) Seeds() []domain.SeedDefinition {
	return append([]domain.SeedDefinition(nil), c.seeds...)
}

// Gear returns the gear table in catalog order
func (c *Catalog) Gear() []domain.GearDefinition {
	return append([]domain.GearDefinition(nil), c.gear...)
}

// Events returns the event table in catalog order
func (c *Catalog) Events() []domain.EventDefinition {
	return append([]domain.EventDefinition(nil), c.events...)
}

// Seed looks up a seed by name
func (c *Catalog) Seed(name string) (domain.SeedDefinition, bool) {
	i, ok := c.seedIndex[name]
	if !ok {
		return domain.SeedDefinition{}, false
	}
	return c.seeds[i], true
}

// SeedForFruit returns the seed that produces the given fruit item
func (c *Catalog) SeedForFruit(fruitName string) (domain.SeedDefinition, bool) {
	i, ok := c.fruitIndex[fruitName]
	if !ok {
		return domain.SeedDefinition{}, false
	}
	return c.seeds[i], true
}

// IsFruit reports whether an inventory item is a fruit
func (c *Catalog) IsFruit(item string) bool {
	_, ok := c.fruitIndex[item]
	return ok
}

// GearItem looks up gear by name
func (c *Catalog) GearItem(name string) (domain.GearDefinition, bool) {
	i, ok := c.gearIndex[name]
	if !ok {
		return domain.GearDefinition{}, false
	}
	return c.gear[i], true
}

// Event looks up an event by name
func (c *Catalog) Event(name string) (domain.EventDefinition, bool) {
	i, ok := c.eventIndex[name]
	if !ok {
		return domain.EventDefinition{}, false
	}
	return c.events[i], true
}

// RedeemCode looks up a redeem code; matching is exact
func (c *Catalog) RedeemCode(code string) (domain.RedeemCode, bool) {
	i, ok := c.codeIndex[code]
	if !ok {
		return domain.RedeemCode{}, false
	}
	return c.codes[i], true
}
