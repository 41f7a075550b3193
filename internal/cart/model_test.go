package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadyForDelivery_FromPaid(t *testing.T) {
	c := &Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Status: StatusPaid,
		PaidAt: time.Now().UTC(),
	}

	require.NoError(t, c.MarkReadyForDelivery(3))

	assert.Equal(t, StatusReadyForDelivery, c.Status)
	require.NotNil(t, c.EstimatedDeliveryDay)
	assert.Equal(t, 3, *c.EstimatedDeliveryDay)
}

func TestMarkReadyForDelivery_AlreadyReady(t *testing.T) {
	day := 5
	c := &Cart{
		ID:                   "cart-1",
		Status:               StatusReadyForDelivery,
		EstimatedDeliveryDay: &day,
	}

	err := c.MarkReadyForDelivery(9)
	require.ErrorIs(t, err, ErrNotPaid)

	// the original estimate must survive a rejected transition
	assert.Equal(t, StatusReadyForDelivery, c.Status)
	require.NotNil(t, c.EstimatedDeliveryDay)
	assert.Equal(t, 5, *c.EstimatedDeliveryDay)
}

func TestNumberOfItems_CountsLinesNotQuantities(t *testing.T) {
	c := &Cart{
		Status: StatusPaid,
		Items: []Item{
			{ProductID: "p1", Quantity: 4, Price: decimal.RequireFromString("10.00"), Category: CategoryNormal},
			{ProductID: "p2", Quantity: 2, Price: decimal.RequireFromString("3.50"), Category: CategoryElectronic},
		},
	}

	assert.Equal(t, 2, c.NumberOfItems())
}
