package economy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/GardenSim_Go/internal/catalog"
	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/gear"
	"github.com/osse101/GardenSim_Go/internal/utils"
)

// Engine implements buying, selling, valuation and code redemption.
// Every operation takes a snapshot and returns a new one; on error the
// input snapshot is returned unchanged.
type Engine struct {
	catalog *catalog.Catalog
	gear    *gear.Engine
}

// NewEngine creates a new economy engine
func NewEngine(c *catalog.Catalog, g *gear.Engine) *Engine {
	return &Engine{catalog: c, gear: g}
}

// Purchase reports a completed seed or gear purchase
type Purchase struct {
	Item    string
	Price   int64
	Balance int64
}

// SaleResult reports what a sale removed from the inventory and paid out
type SaleResult struct {
	Items    map[string]int
	Quantity int
	Total    int64
	Message  string
}

// Quote is the value of a quantity of fruit under the current multipliers
type Quote struct {
	Item            string
	Quantity        int
	UnitValue       int64
	Total           int64
	GearMultiplier  float64
	EventMultiplier float64
}

// RedeemResult reports the reward granted by a code
type RedeemResult struct {
	Code    string
	Kind    domain.RewardKind
	Amount  int64
	Seed    string
	Message string
}

// BuySeed debits the seed price and adds one seed to the inventory
func (e *Engine) BuySeed(state domain.GameState, seedName string) (domain.GameState, Purchase, error) {
	seed, ok := e.catalog.Seed(seedName)
	if !ok {
		return state, Purchase{}, e.unknownItem(domain.ErrMsgUnknownSeed, seedName, e.catalog.SuggestSeed)
	}
	if state.Coins < seed.Price {
		return state, Purchase{}, fmt.Errorf("%w: "+ErrMsgNotEnoughCoinsFmt, domain.ErrInsufficientFunds, seed.Name, seed.Price, state.Coins)
	}

	next := state.Clone()
	next.Coins -= seed.Price
	next.Inventory.Add(seed.Name, 1)

	return next, Purchase{Item: seed.Name, Price: seed.Price, Balance: next.Coins}, nil
}

// BuyGear debits the gear price and records ownership. Ownership is checked
// before funds.
func (e *Engine) BuyGear(state domain.GameState, gearName string) (domain.GameState, Purchase, error) {
	g, ok := e.catalog.GearItem(gearName)
	if !ok {
		return state, Purchase{}, e.unknownItem(domain.ErrMsgUnknownGear, gearName, e.catalog.SuggestGear)
	}
	if state.OwnedGear.Contains(g.Name) {
		return state, Purchase{}, fmt.Errorf("%w: "+ErrMsgGearOwnedFmt, domain.ErrAlreadyOwned, g.Name)
	}
	if state.Coins < g.Price {
		return state, Purchase{}, fmt.Errorf("%w: "+ErrMsgNotEnoughCoinsFmt, domain.ErrInsufficientFunds, g.Name, g.Price, state.Coins)
	}

	next := state.Clone()
	next.Coins -= g.Price
	next.OwnedGear = next.OwnedGear.With(g.Name)

	return next, Purchase{Item: g.Name, Price: g.Price, Balance: next.Coins}, nil
}

// SellOne sells a single fruit at the current unit value
func (e *Engine) SellOne(state domain.GameState, fruitName string) (domain.GameState, SaleResult, error) {
	seed, err := e.fruitSeed(fruitName)
	if err != nil {
		return state, SaleResult{}, err
	}
	if state.Inventory.Count(seed.FruitName) < 1 {
		return state, SaleResult{}, fmt.Errorf("%w: "+ErrMsgNoFruitFmt, domain.ErrInvalidAction, domain.ErrMsgNoFruitInInventory, seed.FruitName)
	}

	price := unitValue(seed.BaseValue, e.currentMultipliers(state))

	next := state.Clone()
	next.Inventory.Take(seed.FruitName, 1)
	next.Coins += price

	return next, SaleResult{
		Items:    map[string]int{seed.FruitName: 1},
		Quantity: 1,
		Total:    price,
		Message:  fmt.Sprintf(MsgSoldFmt, 1, utils.FormatCoins(price)),
	}, nil
}

// SellAll sells every fruit in the inventory using one multiplier snapshot
func (e *Engine) SellAll(state domain.GameState) (domain.GameState, SaleResult, error) {
	m := e.currentMultipliers(state)
	result := SaleResult{Items: make(map[string]int)}

	for item, qty := range state.Inventory {
		seed, ok := e.catalog.SeedForFruit(item)
		if !ok || qty < 1 {
			continue
		}
		result.Items[item] = qty
		result.Quantity += qty
		result.Total += unitValue(seed.BaseValue, m) * int64(qty)
	}

	if result.Quantity == 0 {
		return state, SaleResult{}, domain.ErrNothingToSell
	}

	next := state.Clone()
	for item := range result.Items {
		delete(next.Inventory, item)
	}
	next.Coins += result.Total
	result.Message = fmt.Sprintf(MsgSoldFmt, result.Quantity, utils.FormatCoins(result.Total))

	return next, result, nil
}

// QuoteValue prices a quantity of fruit without touching the snapshot
func (e *Engine) QuoteValue(state domain.GameState, fruitName string, quantity int) (Quote, error) {
	if quantity < 1 {
		return Quote{}, fmt.Errorf("%w: "+ErrMsgQuantityFmt, domain.ErrInvalidInput, quantity)
	}
	seed, err := e.fruitSeed(fruitName)
	if err != nil {
		return Quote{}, err
	}

	m := e.currentMultipliers(state)
	unit := unitValue(seed.BaseValue, m)

	return Quote{
		Item:            seed.FruitName,
		Quantity:        quantity,
		UnitValue:       unit,
		Total:           unit * int64(quantity),
		GearMultiplier:  m.gear,
		EventMultiplier: m.event,
	}, nil
}

// Redeem grants the reward of a promotional code exactly once.
// Matching is exact after trimming surrounding whitespace.
func (e *Engine) Redeem(state domain.GameState, code string) (domain.GameState, RedeemResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return state, RedeemResult{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.ErrMsgEmptyCode)
	}
	if state.RedeemedCodes.Contains(code) {
		return state, RedeemResult{}, fmt.Errorf("%w: "+ErrMsgCodeUsedFmt, domain.ErrAlreadyRedeemed, code)
	}
	reward, ok := e.catalog.RedeemCode(code)
	if !ok {
		return state, RedeemResult{}, fmt.Errorf("%w: "+ErrMsgCodeUnknownFmt, domain.ErrInvalidCode, code)
	}

	next := state.Clone()
	result := RedeemResult{Code: reward.Code, Kind: reward.Kind, Amount: reward.Amount}

	switch reward.Kind {
	case domain.RewardSeed:
		next.Inventory.Add(reward.SeedName, int(reward.Amount))
		result.Seed = reward.SeedName
		result.Message = fmt.Sprintf(MsgRedeemedSeedsFmt, reward.Amount, reward.SeedName)
	default:
		next.Coins += reward.Amount
		result.Message = fmt.Sprintf(MsgRedeemedCoinsFmt, utils.FormatCoins(reward.Amount))
	}
	next.RedeemedCodes = next.RedeemedCodes.With(reward.Code)

	return next, result, nil
}

// Fruits lists the fruit items held in the inventory, sorted by name
func (e *Engine) Fruits(state domain.GameState) []string {
	var fruits []string
	for item := range state.Inventory {
		if e.catalog.IsFruit(item) {
			fruits = append(fruits, item)
		}
	}
	sort.Strings(fruits)
	return fruits
}

func (e *Engine) fruitSeed(fruitName string) (domain.SeedDefinition, error) {
	seed, ok := e.catalog.SeedForFruit(fruitName)
	if !ok {
		return domain.SeedDefinition{}, e.unknownItem(domain.ErrMsgUnknownFruit, fruitName, e.catalog.SuggestFruit)
	}
	return seed, nil
}

func (e *Engine) unknownItem(msg, name string, suggest func(string) (string, bool)) error {
	if suggestion, ok := suggest(name); ok {
		return fmt.Errorf("%w: "+ErrMsgUnknownItemHintFmt, domain.ErrInvalidAction, msg, name, suggestion)
	}
	return fmt.Errorf("%w: "+ErrMsgUnknownItemFmt, domain.ErrInvalidAction, msg, name)
}
