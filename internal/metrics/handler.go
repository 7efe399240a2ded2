package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler serves the Prometheus scrape endpoint and a liveness check
func NewHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(Middleware)

	r.Get(PathHealth, handleHealthz)
	r.Handle(PathMetrics, promhttp.Handler())
	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(HealthzBody))
}
