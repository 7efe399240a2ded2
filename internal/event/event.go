package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// WithMetadata returns a copy of the event with key set in its metadata map
func (e Event) WithMetadata(key string, value interface{}) Event {
	m := make(map[string]interface{})
	if existing, ok := e.Metadata.(map[string]interface{}); ok {
		for k, v := range existing {
			m[k] = v
		}
	}
	m[key] = value
	e.Metadata = m
	return e
}

// Garden event types
const (
	PlotPlanted        Type = "garden.plot.planted"
	PlotMatured        Type = "garden.plot.matured"
	PlotHarvested      Type = "garden.plot.harvested"
	GearApplied        Type = "garden.gear.applied"
	SeedBought         Type = "garden.seed.bought"
	GearBought         Type = "garden.gear.bought"
	FruitSold          Type = "garden.fruit.sold"
	CodeRedeemed       Type = "garden.code.redeemed"
	BoostActivated     Type = "garden.boost.activated"
	BoostDeactivated   Type = "garden.boost.deactivated"
	SnapshotSaveFailed Type = "garden.snapshot.save_failed"
)

// AllTypes lists every garden event type
var AllTypes = []Type{
	PlotPlanted, PlotMatured, PlotHarvested, GearApplied,
	SeedBought, GearBought, FruitSold, CodeRedeemed,
	BoostActivated, BoostDeactivated, SnapshotSaveFailed,
}

// Typed event payloads for type safety

// PlotPlantedPayloadV1 is the typed payload for planting events
type PlotPlantedPayloadV1 struct {
	PlotIndex int    `json:"plot_index"`
	Seed      string `json:"seed"`
	Instant   bool   `json:"instant"`
	PlantedAt int64  `json:"planted_at"`
}

// PlotMaturedPayloadV1 is the typed payload for maturity events
type PlotMaturedPayloadV1 struct {
	PlotIndex int    `json:"plot_index"`
	Seed      string `json:"seed"`
}

// PlotHarvestedPayloadV1 is the typed payload for harvest events
type PlotHarvestedPayloadV1 struct {
	PlotIndex int    `json:"plot_index"`
	Seed      string `json:"seed"`
	Fruit     string `json:"fruit"`
}

// GearAppliedPayloadV1 is the typed payload for gear application events
type GearAppliedPayloadV1 struct {
	PlotIndex     int     `json:"plot_index"`
	Gear          string  `json:"gear"`
	Effect        string  `json:"effect"`
	PlotValue     int64   `json:"plot_value"`
	GrowthPercent float64 `json:"growth_percent"`
}

// ItemBoughtPayloadV1 is the typed payload for seed and gear purchases
type ItemBoughtPayloadV1 struct {
	Item    string `json:"item"`
	Price   int64  `json:"price"`
	Balance int64  `json:"balance"`
}

// FruitSoldPayloadV1 is the typed payload for sale events
type FruitSoldPayloadV1 struct {
	Items    map[string]int `json:"items"`
	Quantity int            `json:"quantity"`
	Total    int64          `json:"total"`
}

// CodeRedeemedPayloadV1 is the typed payload for code redemption events
type CodeRedeemedPayloadV1 struct {
	Code   string `json:"code"`
	Reward string `json:"reward"`
	Amount int64  `json:"amount"`
	Seed   string `json:"seed,omitempty"`
}

// BoostPayloadV1 is the typed payload for timed boost activation and expiry
type BoostPayloadV1 struct {
	Name       string   `json:"name"`
	Multiplier float64  `json:"multiplier"`
	Active     []string `json:"active"`
}

// SnapshotSaveFailedPayloadV1 is the typed payload for persistence failures
type SnapshotSaveFailedPayloadV1 struct {
	Operation string `json:"operation"`
	Error     string `json:"error"`
}

// Type-safe event constructors

func newEvent(t Type, payload interface{}) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: nil,
	}
}

// NewPlotPlantedEvent creates a new planting event
func NewPlotPlantedEvent(plotIndex int, seed string, instant bool, plantedAt int64) Event {
	return newEvent(PlotPlanted, PlotPlantedPayloadV1{
		PlotIndex: plotIndex,
		Seed:      seed,
		Instant:   instant,
		PlantedAt: plantedAt,
	})
}

// NewPlotMaturedEvent creates a new maturity event
func NewPlotMaturedEvent(plotIndex int, seed string) Event {
	return newEvent(PlotMatured, PlotMaturedPayloadV1{PlotIndex: plotIndex, Seed: seed})
}

// NewPlotHarvestedEvent creates a new harvest event
func NewPlotHarvestedEvent(plotIndex int, seed, fruit string) Event {
	return newEvent(PlotHarvested, PlotHarvestedPayloadV1{PlotIndex: plotIndex, Seed: seed, Fruit: fruit})
}

// NewGearAppliedEvent creates a new gear application event
func NewGearAppliedEvent(plotIndex int, gear, effect string, plotValue int64, growth float64) Event {
	return newEvent(GearApplied, GearAppliedPayloadV1{
		PlotIndex:     plotIndex,
		Gear:          gear,
		Effect:        effect,
		PlotValue:     plotValue,
		GrowthPercent: growth,
	})
}

// NewSeedBoughtEvent creates a new seed purchase event
func NewSeedBoughtEvent(seed string, price, balance int64) Event {
	return newEvent(SeedBought, ItemBoughtPayloadV1{Item: seed, Price: price, Balance: balance})
}

// NewGearBoughtEvent creates a new gear purchase event
func NewGearBoughtEvent(gear string, price, balance int64) Event {
	return newEvent(GearBought, ItemBoughtPayloadV1{Item: gear, Price: price, Balance: balance})
}

// NewFruitSoldEvent creates a new sale event
func NewFruitSoldEvent(items map[string]int, quantity int, total int64) Event {
	return newEvent(FruitSold, FruitSoldPayloadV1{Items: items, Quantity: quantity, Total: total})
}

// NewCodeRedeemedEvent creates a new code redemption event
func NewCodeRedeemedEvent(code, reward string, amount int64, seed string) Event {
	return newEvent(CodeRedeemed, CodeRedeemedPayloadV1{Code: code, Reward: reward, Amount: amount, Seed: seed})
}

// NewBoostActivatedEvent creates a new boost activation event
func NewBoostActivatedEvent(name string, multiplier float64, active []string) Event {
	return newEvent(BoostActivated, BoostPayloadV1{Name: name, Multiplier: multiplier, Active: active})
}

// NewBoostDeactivatedEvent creates a new boost expiry event
func NewBoostDeactivatedEvent(name string, multiplier float64, active []string) Event {
	return newEvent(BoostDeactivated, BoostPayloadV1{Name: name, Multiplier: multiplier, Active: active})
}

// NewSnapshotSaveFailedEvent creates a new persistence failure event
func NewSnapshotSaveFailedEvent(operation string, err error) Event {
	return newEvent(SnapshotSaveFailed, SnapshotSaveFailedPayloadV1{Operation: operation, Error: err.Error()})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errors.Join(errs...))
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
