package http

import (
	"encoding/json"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/pricing"
)

func NewRouter(batch BatchRunner, calc *pricing.Calculator) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler)

	fh := NewFulfillmentHandler(batch)
	ph := NewPricingHandler(calc)

	mux.HandleFunc("POST /api/fulfillment/run", fh.Run)
	mux.HandleFunc("POST /api/pricing/quote", ph.Quote)

	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "fulfillment-service",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
