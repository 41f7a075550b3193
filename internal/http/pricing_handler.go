package http

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/pricing"
)

type PricingHandler struct {
	calc *pricing.Calculator
}

func NewPricingHandler(calc *pricing.Calculator) *PricingHandler {
	return &PricingHandler{calc: calc}
}

type quoteItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Category  string `json:"category"`
}

type quoteRequest struct {
	CartID string      `json:"cartId"`
	UserID string      `json:"userId"`
	Items  []quoteItem `json:"items"`
}

type quoteResponse struct {
	CartID string `json:"cartId"`
	// Total is the aggregated charge as an exact decimal string.
	Total string `json:"total"`
}

// Quote prices a cart payload with the configured rules. Checkout calls this
// before capturing payment.
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	c := &cart.Cart{ID: req.CartID, UserID: req.UserID, Status: cart.StatusPaid}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "quantity must be positive")
			return
		}

		price, err := decimal.NewFromString(it.Price)
		if err != nil || price.IsNegative() {
			writeError(w, http.StatusBadRequest, "invalid price")
			return
		}

		category := cart.Category(it.Category)
		if category == "" {
			category = cart.CategoryNormal
		}
		if category != cart.CategoryNormal && category != cart.CategoryElectronic {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}

		c.Items = append(c.Items, cart.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     price,
			Category:  category,
		})
	}

	total := h.calc.Calculate(c)

	writeJSON(w, http.StatusOK, quoteResponse{
		CartID: req.CartID,
		Total:  total.String(),
	})
}
