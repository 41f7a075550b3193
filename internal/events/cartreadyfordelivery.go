package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/cart"
)

const (
	cartReadyForDeliveryEventName    = "CartReadyForDelivery"
	cartReadyForDeliveryEventVersion = 1
	cartReadyForDeliverySchema       = "contracts/events/cart/CartReadyForDelivery.v1.payload.schema.json"
)

// CartItem is the cross-service item contract used inside event payloads.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
}

// CartReadyForDeliveryPayload represents the v1 payload schema. The
// notification service turns it into the payment confirmation e-mail with the
// delivery estimate.
type CartReadyForDeliveryPayload struct {
	CartID               string     `json:"cartId"`
	UserID               string     `json:"userId"`
	Items                []CartItem `json:"items"`
	EstimatedDeliveryDay *int       `json:"estimatedDeliveryDay"`
	Timestamp            time.Time  `json:"timestamp"`
}

// CartReadyForDeliveryEnvelope is the enveloped event structure.
type CartReadyForDeliveryEnvelope = EventEnvelope[CartReadyForDeliveryPayload]

// BuildCartReadyForDeliveryEnvelope builds an enveloped CartReadyForDelivery
// event, partitioned by cart ID.
func BuildCartReadyForDeliveryEnvelope(c *cart.Cart, seq int64, meta EnvelopeMetadata) CartReadyForDeliveryEnvelope {
	if meta.CorrelationID == "" {
		meta.CorrelationID = uuid.NewString()
	}

	items := make([]CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, CartItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Category:  string(it.Category),
		})
	}

	return CartReadyForDeliveryEnvelope{
		EventName:     cartReadyForDeliveryEventName,
		EventVersion:  cartReadyForDeliveryEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      fulfillmentServiceName,
		PartitionKey:  c.ID,
		Sequence:      &seq,
		OccurredAt:    time.Now().UTC(),
		Schema:        cartReadyForDeliverySchema,
		Payload: CartReadyForDeliveryPayload{
			CartID:               c.ID,
			UserID:               c.UserID,
			Items:                items,
			EstimatedDeliveryDay: c.EstimatedDeliveryDay,
			Timestamp:            c.UpdatedAt,
		},
	}
}
