package metrics

import (
	"context"

	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/event"
	"github.com/osse101/GardenSim_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all garden events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.PlotPlanted:
		var p event.PlotPlantedPayloadV1
		if p, err = event.DecodePayload[event.PlotPlantedPayloadV1](evt.Payload); err == nil {
			SeedsPlanted.WithLabelValues(p.Seed).Inc()
		}

	case event.PlotHarvested:
		var p event.PlotHarvestedPayloadV1
		if p, err = event.DecodePayload[event.PlotHarvestedPayloadV1](evt.Payload); err == nil {
			FruitsHarvested.WithLabelValues(p.Seed).Inc()
		}

	case event.SeedBought, event.GearBought:
		var p event.ItemBoughtPayloadV1
		if p, err = event.DecodePayload[event.ItemBoughtPayloadV1](evt.Payload); err == nil {
			ItemsBought.WithLabelValues(p.Item).Inc()
			CoinsSpent.Add(float64(p.Price))
		}

	case event.FruitSold:
		var p event.FruitSoldPayloadV1
		if p, err = event.DecodePayload[event.FruitSoldPayloadV1](evt.Payload); err == nil {
			for item, qty := range p.Items {
				FruitsSold.WithLabelValues(item).Add(float64(qty))
			}
			CoinsEarned.Add(float64(p.Total))
		}

	case event.CodeRedeemed:
		var p event.CodeRedeemedPayloadV1
		if p, err = event.DecodePayload[event.CodeRedeemedPayloadV1](evt.Payload); err == nil {
			CodesRedeemed.Inc()
			if p.Reward == string(domain.RewardCoins) {
				CoinsEarned.Add(float64(p.Amount))
			}
		}

	case event.BoostActivated:
		var p event.BoostPayloadV1
		if p, err = event.DecodePayload[event.BoostPayloadV1](evt.Payload); err == nil {
			BoostsActivated.WithLabelValues(p.Name).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
