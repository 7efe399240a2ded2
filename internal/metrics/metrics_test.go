package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenSim_Go/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()

	t.Run("planted and harvested by seed", func(t *testing.T) {
		planted := testutil.ToFloat64(SeedsPlanted.WithLabelValues("Carrot"))
		harvested := testutil.ToFloat64(FruitsHarvested.WithLabelValues("Carrot"))
		published := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.PlotPlanted)))

		require.NoError(t, bus.Publish(ctx, event.NewPlotPlantedEvent(0, "Carrot", false, 0)))
		require.NoError(t, bus.Publish(ctx, event.NewPlotHarvestedEvent(0, "Carrot", "Carrot Fruit")))

		assert.Equal(t, planted+1, testutil.ToFloat64(SeedsPlanted.WithLabelValues("Carrot")))
		assert.Equal(t, harvested+1, testutil.ToFloat64(FruitsHarvested.WithLabelValues("Carrot")))
		assert.Equal(t, published+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.PlotPlanted))))
	})

	t.Run("sales add quantity and coins", func(t *testing.T) {
		sold := testutil.ToFloat64(FruitsSold.WithLabelValues("Carrot Fruit"))
		earned := testutil.ToFloat64(CoinsEarned)

		require.NoError(t, bus.Publish(ctx, event.NewFruitSoldEvent(map[string]int{"Carrot Fruit": 3}, 3, 45)))

		assert.Equal(t, sold+3, testutil.ToFloat64(FruitsSold.WithLabelValues("Carrot Fruit")))
		assert.Equal(t, earned+45, testutil.ToFloat64(CoinsEarned))
	})

	t.Run("purchases add spent coins", func(t *testing.T) {
		bought := testutil.ToFloat64(ItemsBought.WithLabelValues("Sprinkler"))
		spent := testutil.ToFloat64(CoinsSpent)

		require.NoError(t, bus.Publish(ctx, event.NewGearBoughtEvent("Sprinkler", 45000, 5000)))

		assert.Equal(t, bought+1, testutil.ToFloat64(ItemsBought.WithLabelValues("Sprinkler")))
		assert.Equal(t, spent+45000, testutil.ToFloat64(CoinsSpent))
	})

	t.Run("only coin codes count as earnings", func(t *testing.T) {
		redeemed := testutil.ToFloat64(CodesRedeemed)
		earned := testutil.ToFloat64(CoinsEarned)

		require.NoError(t, bus.Publish(ctx, event.NewCodeRedeemedEvent("dansdev", "coins", 100, "")))
		require.NoError(t, bus.Publish(ctx, event.NewCodeRedeemedEvent("free_super_seed", "seed", 1, "Super Seed")))

		assert.Equal(t, redeemed+2, testutil.ToFloat64(CodesRedeemed))
		assert.Equal(t, earned+100, testutil.ToFloat64(CoinsEarned))
	})

	t.Run("boost activations by event", func(t *testing.T) {
		before := testutil.ToFloat64(BoostsActivated.WithLabelValues("Bee Event"))

		require.NoError(t, bus.Publish(ctx, event.NewBoostActivatedEvent("Bee Event", 5, []string{"Bee Event"})))
		require.NoError(t, bus.Publish(ctx, event.NewBoostDeactivatedEvent("Bee Event", 5, nil)))

		assert.Equal(t, before+1, testutil.ToFloat64(BoostsActivated.WithLabelValues("Bee Event")))
	})

	t.Run("unexpected payload is ignored", func(t *testing.T) {
		err := bus.Publish(ctx, event.Event{Version: event.EventSchemaVersion, Type: event.FruitSold, Payload: "garbage"})
		assert.NoError(t, err)
	})
}

func TestNewHandler(t *testing.T) {
	handler := NewHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathHealth, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// promhttp lowercases the method label
	health := prometheus.Labels{LabelPath: PathHealth, LabelCode: "200", LabelMethod: "get"}
	before := testutil.ToFloat64(HTTPRequestsTotal.With(health))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, PathHealth, nil))
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.With(health)))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathMetrics, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "garden_http_requests_total")
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/plots/{index}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	tests := []struct {
		name    string
		target  string
		pattern string
		code    string
	}{
		{"route pattern instead of raw path", "/plots/7", "/plots/{index}", "202"},
		{"unknown route", "/nowhere", PathUnmatched, "404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := prometheus.Labels{LabelPath: tt.pattern, LabelCode: tt.code, LabelMethod: "get"}
			before := testutil.ToFloat64(HTTPRequestsTotal.With(labels))

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.With(labels)))
		})
	}

	raw := prometheus.Labels{LabelPath: "/plots/7", LabelCode: "202", LabelMethod: "get"}
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsTotal.With(raw)))
}
