package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers the API routes. limiter may be nil to disable rate
// limiting.
func NewRouter(deals *DealHandler, mortgage *MortgageHandler, limiter *RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter))
		}
		r.Post("/deals/analyze", deals.AnalyzeDeal)
		r.Post("/deals/analyze/batch", deals.AnalyzeBatch)
		r.Post("/mortgage/calculate", mortgage.CalculateMortgage)
	})

	return r
}
