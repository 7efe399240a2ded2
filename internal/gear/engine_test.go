package gear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenSim_Go/internal/catalog"
	"github.com/osse101/GardenSim_Go/internal/domain"
)

const (
	wateringCan = "Watering Can"
	sprinkler   = "Sprinkler"
)

func fixedRoll(v float64) func() float64 {
	return func() float64 { return v }
}

func stateWithPlot(plot *domain.PlotState, gear ...string) domain.GameState {
	state := domain.NewGameState()
	state.Plots[0] = plot
	for _, g := range gear {
		state.OwnedGear = state.OwnedGear.With(g)
	}
	return state
}

func TestApply_WateringCan(t *testing.T) {
	engine := NewEngine(catalog.MustDefault(), fixedRoll(0.99))

	tests := []struct {
		name       string
		growth     float64
		wantGrowth float64
		wantMature bool
		wantErr    string
	}{
		{"adds 25 points", 10, 35, false, ""},
		{"caps at 100 and matures", 90, 100, true, ""},
		{"exactly reaching 100 matures", 75, 100, true, ""},
		{"mature plot needs no water", 100, 0, false, domain.ErrMsgNoWateringNeeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plot := &domain.PlotState{SeedName: "Carrot", Value: 15, PlantedAt: 1_000_000}
			plot.SetGrowth(tt.growth)
			state := stateWithPlot(plot, wateringCan)

			next, app, err := engine.Apply(state, 0, wateringCan)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidAction)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, tt.growth, state.Plots[0].GrowthPercent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.EffectAccelerateGrowth, app.Effect)
			assert.Equal(t, tt.wantGrowth, next.Plots[0].GrowthPercent)
			assert.Equal(t, tt.wantMature, next.Plots[0].IsMature)
			// Carrot grows in 30s, so 25 points move planting back 7.5s
			assert.Equal(t, int64(1_000_000-7_500), next.Plots[0].PlantedAt)
			assert.Equal(t, tt.growth, state.Plots[0].GrowthPercent, "input snapshot is untouched")
		})
	}
}

func TestApply_Sprinkler(t *testing.T) {
	engine := NewEngine(catalog.MustDefault(), fixedRoll(0.99))

	t.Run("boosts a mature plot by 1.5 floored", func(t *testing.T) {
		plot := &domain.PlotState{SeedName: "Carrot", Value: 15}
		plot.SetGrowth(100)
		state := stateWithPlot(plot, sprinkler)

		next, _, err := engine.Apply(state, 0, sprinkler)
		require.NoError(t, err)
		assert.Equal(t, int64(22), next.Plots[0].Value)
		assert.Equal(t, int64(15), state.Plots[0].Value)
	})

	t.Run("repeated application compounds", func(t *testing.T) {
		plot := &domain.PlotState{SeedName: "Mango", Value: 75}
		plot.SetGrowth(100)
		state := stateWithPlot(plot, sprinkler)

		var err error
		for i := 0; i < 3; i++ {
			state, _, err = engine.Apply(state, 0, sprinkler)
			require.NoError(t, err)
		}
		// 75 -> 112 -> 168 -> 252
		assert.Equal(t, int64(252), state.Plots[0].Value)
	})

	t.Run("growing plot must wait", func(t *testing.T) {
		plot := &domain.PlotState{SeedName: "Carrot", Value: 15}
		plot.SetGrowth(50)
		state := stateWithPlot(plot, sprinkler)

		_, _, err := engine.Apply(state, 0, sprinkler)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidAction)
		assert.Contains(t, err.Error(), domain.ErrMsgNotReady)
	})
}

func TestApply_Preconditions(t *testing.T) {
	engine := NewEngine(catalog.MustDefault(), fixedRoll(0.99))
	growing := &domain.PlotState{SeedName: "Carrot", Value: 15}

	tests := []struct {
		name    string
		state   domain.GameState
		plot    int
		gear    string
		wantMsg string
	}{
		{"gear not owned", stateWithPlot(growing), 0, wateringCan, domain.ErrMsgGearNotOwned},
		{"unknown gear with suggestion", stateWithPlot(growing, wateringCan), 0, "Watering Cam", "did you mean 'Watering Can'"},
		{"empty plot", stateWithPlot(nil, wateringCan), 0, wateringCan, domain.ErrMsgPlotEmpty},
		{"plot out of range", stateWithPlot(growing, wateringCan), domain.PlotCount, wateringCan, domain.ErrMsgPlotOutOfRange},
		{"negative plot", stateWithPlot(growing, wateringCan), -1, wateringCan, domain.ErrMsgPlotOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := engine.Apply(tt.state, tt.plot, tt.gear)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidAction)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRollPlantEffects(t *testing.T) {
	c := catalog.MustDefault()

	tests := []struct {
		name    string
		roll    float64
		owned   domain.NameSet
		matured bool
	}{
		{"roll under 5% with can matures", 0.049, domain.NameSet{wateringCan}, true},
		{"roll at 5% does not", 0.05, domain.NameSet{wateringCan}, false},
		{"no can never matures", 0.0, domain.NameSet{sprinkler}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(c, fixedRoll(tt.roll))
			plot := &domain.PlotState{SeedName: "Carrot"}

			assert.Equal(t, tt.matured, engine.RollPlantEffects(tt.owned, plot))
			assert.Equal(t, tt.matured, plot.IsMature)
		})
	}
}

func TestRollPlantEffects_RollsOncePerGear(t *testing.T) {
	calls := 0
	engine := NewEngine(catalog.MustDefault(), func() float64 {
		calls++
		return 0.5
	})

	engine.RollPlantEffects(domain.NameSet{wateringCan, sprinkler}, &domain.PlotState{})
	assert.Equal(t, 1, calls)
}

func TestSaleMultiplier(t *testing.T) {
	engine := NewEngine(catalog.MustDefault(), fixedRoll(0))

	assert.Equal(t, 1.0, engine.SaleMultiplier(nil))
	assert.Equal(t, 1.0, engine.SaleMultiplier(domain.NameSet{wateringCan}))
	assert.Equal(t, 1.5, engine.SaleMultiplier(domain.NameSet{wateringCan, sprinkler}))
	assert.Equal(t, 1.0, engine.SaleMultiplier(domain.NameSet{"Retired Gear"}))
}
