package economy

import (
	"math"

	"github.com/osse101/GardenSim_Go/internal/domain"
)

// multipliers is the pricing snapshot used for a whole sale
type multipliers struct {
	gear  float64
	event float64
}

func (m multipliers) total() float64 {
	return m.gear * m.event
}

// currentMultipliers reads the owned gear and active events once.
// Active events compound: two events at x5 and x15 give x75.
func (e *Engine) currentMultipliers(state domain.GameState) multipliers {
	m := multipliers{gear: e.gear.SaleMultiplier(state.OwnedGear), event: 1.0}
	for _, name := range state.ActiveEvents {
		if ev, ok := e.catalog.Event(name); ok {
			m.event *= ev.Multiplier
		}
	}
	return m
}

// unitValue floors the composed price so coins stay integral
func unitValue(baseValue int64, m multipliers) int64 {
	return int64(math.Floor(float64(baseValue) * m.total()))
}
