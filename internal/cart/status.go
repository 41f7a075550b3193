package cart

type Status string

const (
	// StatusPaid is set by the checkout flow once payment succeeds. Carts in
	// this status are picked up by the fulfillment batch.
	StatusPaid             Status = "paid"
	StatusReadyForDelivery Status = "ready_for_delivery"
)

type Category string

const (
	CategoryNormal     Category = "normal"
	CategoryElectronic Category = "electronic"
)
