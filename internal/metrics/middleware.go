package metrics

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware collects HTTP request metrics. The path label is the chi route
// pattern that served the request, so label cardinality stays bounded.
func Middleware(next http.Handler) http.Handler {
	byRoute := promhttp.WithLabelFromCtx(LabelPath, routePattern)

	counted := promhttp.InstrumentHandlerCounter(HTTPRequestsTotal, next, byRoute)
	timed := promhttp.InstrumentHandlerDuration(HTTPRequestDuration, counted, byRoute)
	return promhttp.InstrumentHandlerInFlight(HTTPRequestsInFlight, timed)
}

// routePattern is read after the router has matched, chi fills the route
// context in place
func routePattern(ctx context.Context) string {
	if rctx := chi.RouteContext(ctx); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return PathUnmatched
}
