package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/cart"
)

// SapClient notifies the SAP integration layer. It implements
// fulfillment.ErpNotifier.
type SapClient struct {
	baseURL *url.URL
	http    *http.Client
}

func NewSapClient(baseURL string, httpClient *http.Client) *SapClient {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid sap base url %q: %v", baseURL, err))
	}
	return &SapClient{baseURL: u, http: httpClient}
}

type readyForDeliveryRequest struct {
	CartID               string `json:"cartId"`
	UserID               string `json:"userId"`
	EstimatedDeliveryDay *int   `json:"estimatedDeliveryDay,omitempty"`
}

// NotifyReadyForDelivery is fire-and-forget: SAP acknowledges with a 2xx and
// owns everything that happens after.
func (c *SapClient) NotifyReadyForDelivery(ctx context.Context, crt *cart.Cart) error {
	body, err := json.Marshal(readyForDeliveryRequest{
		CartID:               crt.ID,
		UserID:               crt.UserID,
		EstimatedDeliveryDay: crt.EstimatedDeliveryDay,
	})
	if err != nil {
		return fmt.Errorf("marshal ready-for-delivery request: %w", err)
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: "/api/sap/carts/ready-for-delivery"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build ready-for-delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call sap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sap returned %d", resp.StatusCode)
	}
	return nil
}
