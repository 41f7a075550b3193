package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/fulfillment"
	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/pricing"
)

type fakeBatch struct {
	summary fulfillment.Summary
	err     error
	runs    int
}

func (f *fakeBatch) ProcessAll(ctx context.Context) (fulfillment.Summary, error) {
	f.runs++
	return f.summary, f.err
}

func newTestRouter(batch BatchRunner) http.Handler {
	return NewRouter(batch, pricing.NewCalculator(pricing.DefaultRules()))
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	newTestRouter(&fakeBatch{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRunFulfillment_ReturnsSummary(t *testing.T) {
	batch := &fakeBatch{
		summary: fulfillment.Summary{
			Processed: 2,
			Failed: []fulfillment.Failure{
				{CartID: "cart-3", Step: "notify_sap", Err: errors.New("sap offline")},
			},
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/fulfillment/run", nil)

	newTestRouter(batch).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, batch.runs)

	var out struct {
		Processed int `json:"processed"`
		Failed    []struct {
			CartID string `json:"cartId"`
			Step   string `json:"step"`
			Error  string `json:"error"`
		} `json:"failed"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, 2, out.Processed)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "cart-3", out.Failed[0].CartID)
	assert.Equal(t, "notify_sap", out.Failed[0].Step)
}

func TestRunFulfillment_BatchError(t *testing.T) {
	batch := &fakeBatch{err: errors.New("db down")}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/fulfillment/run", nil)

	newTestRouter(batch).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestQuote_PricesCart(t *testing.T) {
	body := `{
		"cartId": "cart-1",
		"userId": "user-1",
		"items": [
			{"productId": "p1", "name": "Desk", "quantity": 1, "price": "120.00", "category": "normal"},
			{"productId": "p2", "name": "Lamp", "quantity": 2, "price": "15.50", "category": "normal"},
			{"productId": "p3", "name": "Keyboard", "quantity": 1, "price": "49.90", "category": "electronic"},
			{"productId": "p4", "name": "Chair", "quantity": 1, "price": "200.00", "category": "normal"}
		]
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pricing/quote", strings.NewReader(body))

	newTestRouter(&fakeBatch{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		CartID string `json:"cartId"`
		Total  string `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "cart-1", out.CartID)
	// 4 lines -> delivery 12.5, one electronic item -> 7.50
	assert.Equal(t, "20", out.Total)
}

func TestQuote_EmptyCartIsFree(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pricing/quote",
		strings.NewReader(`{"cartId": "cart-1", "userId": "user-1", "items": []}`))

	newTestRouter(&fakeBatch{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Total string `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "0", out.Total)
}

func TestQuote_RejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"malformed json":        `{"cartId": `,
		"non-positive quantity": `{"cartId":"c","items":[{"productId":"p1","quantity":0,"price":"1.00","category":"normal"}]}`,
		"negative price":        `{"cartId":"c","items":[{"productId":"p1","quantity":1,"price":"-1.00","category":"normal"}]}`,
		"unparseable price":     `{"cartId":"c","items":[{"productId":"p1","quantity":1,"price":"abc","category":"normal"}]}`,
		"unknown category":      `{"cartId":"c","items":[{"productId":"p1","quantity":1,"price":"1.00","category":"perishable"}]}`,
	}

	for name, body := range tests {
		body := body
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/pricing/quote", strings.NewReader(body))

			newTestRouter(&fakeBatch{}).ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
