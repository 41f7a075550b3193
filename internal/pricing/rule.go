package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/cart"
)

// Rule computes one additive charge for a cart. Rules are independent: no
// rule sees another rule's output, so the calculator's total does not depend
// on rule order. New charges are added by implementing Rule, not by touching
// the calculator.
type Rule interface {
	PriceToAggregate(c *cart.Cart) decimal.Decimal
}

var (
	zero             = decimal.Zero
	deliverySmall    = decimal.RequireFromString("5.0")
	deliveryMedium   = decimal.RequireFromString("12.5")
	deliveryLarge    = decimal.RequireFromString("20.0")
	electronicsExtra = decimal.RequireFromString("7.50")
)

// DeliveryFee charges by the number of item lines in the cart:
// 1 up to 3 lines cost 5 extra, 4 up to 10 cost 12.5, more than 10 cost 20.
// An empty cart ships for free because there is nothing to ship.
type DeliveryFee struct{}

func (DeliveryFee) PriceToAggregate(c *cart.Cart) decimal.Decimal {
	switch n := c.NumberOfItems(); {
	case n == 0:
		return zero
	case n <= 3:
		return deliverySmall
	case n <= 10:
		return deliveryMedium
	default:
		return deliveryLarge
	}
}

// ElectronicsSurcharge charges a flat 7.50 when the cart contains at least
// one electronic item, regardless of how many.
type ElectronicsSurcharge struct{}

func (ElectronicsSurcharge) PriceToAggregate(c *cart.Cart) decimal.Decimal {
	for _, it := range c.Items {
		if it.Category == cart.CategoryElectronic {
			return electronicsExtra
		}
	}
	return zero
}
