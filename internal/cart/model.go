package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Prices are exact decimals, never float64: repeated additions in the pricing
// engine must not drift.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Category  Category        `json:"category"`
}

type Cart struct {
	ID     string `json:"cartId"`
	UserID string `json:"userId"`
	Items  []Item `json:"items"`
	Status Status `json:"status"`
	// EstimatedDeliveryDay is nil until the cart transitions to
	// ready_for_delivery. The value comes from the delivery center and is
	// opaque to this service; we store and forward it without interpreting it.
	EstimatedDeliveryDay *int      `json:"estimatedDeliveryDay,omitempty"`
	PaidAt               time.Time `json:"paidAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ErrNotPaid is returned when a transition is attempted on a cart that is not
// in the paid status.
var ErrNotPaid = errors.New("cart is not in paid status")

// NumberOfItems returns the number of item lines in the cart, not the summed
// quantities. Delivery pricing bands are defined over lines.
func (c *Cart) NumberOfItems() int {
	return len(c.Items)
}

// MarkReadyForDelivery moves the cart from paid to ready_for_delivery and
// records the delivery estimate. The transition is one-way: calling it on a
// cart in any other status fails and leaves the cart untouched.
func (c *Cart) MarkReadyForDelivery(estimatedDeliveryDay int) error {
	if c.Status != StatusPaid {
		return ErrNotPaid
	}
	c.Status = StatusReadyForDelivery
	c.EstimatedDeliveryDay = &estimatedDeliveryDay
	c.UpdatedAt = time.Now().UTC()
	return nil
}
