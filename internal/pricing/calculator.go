package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/cart"
)

// Calculator aggregates a fixed list of rules into a total. It holds no other
// state: configure it once at startup and share it freely across goroutines.
type Calculator struct {
	rules []Rule
}

func NewCalculator(rules []Rule) *Calculator {
	// copy so a caller keeping the slice cannot mutate the configuration
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &Calculator{rules: cp}
}

// DefaultRules is the production rule set.
func DefaultRules() []Rule {
	return []Rule{DeliveryFee{}, ElectronicsSurcharge{}}
}

// Calculate sums every rule's charge for the cart. Rules run in list order,
// which only matters for log/trace determinism, never for the total.
func (pc *Calculator) Calculate(c *cart.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, r := range pc.rules {
		total = total.Add(r.PriceToAggregate(c))
	}
	return total
}
