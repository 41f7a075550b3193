package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/cart"
)

// Client talks to the delivery center API. It implements
// fulfillment.DeliveryEstimator.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid delivery center base url %q: %v", baseURL, err))
	}
	return &Client{baseURL: u, http: httpClient}
}

type estimateRequest struct {
	CartID        string `json:"cartId"`
	UserID        string `json:"userId"`
	NumberOfItems int    `json:"numberOfItems"`
}

type estimateResponse struct {
	EstimatedDeliveryDay int `json:"estimatedDeliveryDay"`
}

// EstimateDelivery asks when the cart will reach the customer. The answer is
// a small number whose unit is owned by the delivery center; we pass it
// through without interpreting it.
func (c *Client) EstimateDelivery(ctx context.Context, crt *cart.Cart) (int, error) {
	body, err := json.Marshal(estimateRequest{
		CartID:        crt.ID,
		UserID:        crt.UserID,
		NumberOfItems: crt.NumberOfItems(),
	})
	if err != nil {
		return 0, fmt.Errorf("marshal estimate request: %w", err)
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: "/api/delivery/estimates"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build estimate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call delivery center: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("delivery center returned %d", resp.StatusCode)
	}

	var out estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode estimate response: %w", err)
	}
	return out.EstimatedDeliveryDay, nil
}
