package http

import (
	"context"
	"net/http"
	"time"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/fulfillment"
)

// BatchRunner is the part of the fulfillment batch the trigger endpoint
// needs; tests stub it.
type BatchRunner interface {
	ProcessAll(ctx context.Context) (fulfillment.Summary, error)
}

type runSummary struct {
	Processed int          `json:"processed"`
	Failed    []runFailure `json:"failed,omitempty"`
}

type runFailure struct {
	CartID string `json:"cartId"`
	Step   string `json:"step"`
	Error  string `json:"error"`
}

type FulfillmentHandler struct {
	batch BatchRunner
}

func NewFulfillmentHandler(batch BatchRunner) *FulfillmentHandler {
	return &FulfillmentHandler{batch: batch}
}

// Run triggers one synchronous batch run. The interval scheduler is the
// normal driver; this endpoint exists for operations and local testing.
func (h *FulfillmentHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	summary, err := h.batch.ProcessAll(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "batch run failed")
		return
	}

	out := runSummary{Processed: summary.Processed}
	for _, f := range summary.Failed {
		out.Failed = append(out.Failed, runFailure{
			CartID: f.CartID,
			Step:   f.Step,
			Error:  f.Err.Error(),
		})
	}

	writeJSON(w, http.StatusOK, out)
}
