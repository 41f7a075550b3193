package fulfillment

import (
	"context"
	"fmt"
	"log"

	"github.com/andreasstove999/ecommerce-system/fulfillment-service-go/internal/cart"
)

// CartStore is the slice of the cart repository the batch needs. Satisfied by
// cart.Repository.
type CartStore interface {
	GetCartsPaidToday(ctx context.Context) ([]cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
}

// DeliveryEstimator asks the delivery center when a cart will arrive. The
// returned value is opaque to this service.
type DeliveryEstimator interface {
	EstimateDelivery(ctx context.Context, c *cart.Cart) (int, error)
}

// CustomerNotifier tells the customer their payment went through, including
// the delivery estimate.
type CustomerNotifier interface {
	SendEstimatedDeliveryNotification(ctx context.Context, c *cart.Cart) error
}

// ErpNotifier tells SAP the cart is ready for delivery.
type ErpNotifier interface {
	NotifyReadyForDelivery(ctx context.Context, c *cart.Cart) error
}

// CollaboratorError marks a failure as coming from one of the four external
// collaborators rather than from this service itself.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Failure records which cart failed, in which step, and why.
type Failure struct {
	CartID string
	Step   string
	Err    error
}

// Summary reports the outcome of one batch run.
type Summary struct {
	Processed int
	Failed    []Failure
}

// Batch drives the paid to ready_for_delivery transition for all carts paid
// today. Carts are processed one at a time; the five steps per cart always
// run in the same order.
type Batch struct {
	carts    CartStore
	delivery DeliveryEstimator
	notifier CustomerNotifier
	sap      ErpNotifier
	logger   *log.Logger
}

func NewBatch(carts CartStore, delivery DeliveryEstimator, notifier CustomerNotifier, sap ErpNotifier, logger *log.Logger) *Batch {
	return &Batch{
		carts:    carts,
		delivery: delivery,
		notifier: notifier,
		sap:      sap,
		logger:   logger,
	}
}

// ProcessAll runs the workflow for every cart paid today. A step failure
// aborts the remaining steps for that cart only; the batch moves on to the
// next cart and reports the failure in the summary. Only a failure to list
// the carts aborts the whole run.
func (b *Batch) ProcessAll(ctx context.Context) (Summary, error) {
	carts, err := b.carts.GetCartsPaidToday(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list paid carts: %w", err)
	}

	var summary Summary
	for i := range carts {
		c := &carts[i]
		if step, err := b.processCart(ctx, c); err != nil {
			b.logger.Printf("cart %s failed at %s: %v", c.ID, step, err)
			summary.Failed = append(summary.Failed, Failure{CartID: c.ID, Step: step, Err: err})
			continue
		}
		b.logger.Printf("cart %s ready for delivery (estimate %d)", c.ID, *c.EstimatedDeliveryDay)
		summary.Processed++
	}
	return summary, nil
}

// processCart runs the five steps for a single cart, in order, and returns
// the step that failed.
//
// NOTE: there is no rollback. If we die between Save and the notifications,
// the cart sits in the database marked ready_for_delivery while the customer
// and SAP never hear about it. The fix would be an outbox: persist the
// transition and enqueue both notifications in one write, then deliver them
// asynchronously with retries. Until then the steps stay sequential and
// non-transactional on purpose.
func (b *Batch) processCart(ctx context.Context, c *cart.Cart) (string, error) {
	day, err := b.delivery.EstimateDelivery(ctx, c)
	if err != nil {
		return "estimate_delivery", &CollaboratorError{Collaborator: "delivery-center", Err: err}
	}

	if err := c.MarkReadyForDelivery(day); err != nil {
		return "mark_ready", err
	}

	if err := b.carts.Save(ctx, c); err != nil {
		return "save", &CollaboratorError{Collaborator: "cart-repository", Err: err}
	}

	if err := b.notifier.SendEstimatedDeliveryNotification(ctx, c); err != nil {
		return "notify_customer", &CollaboratorError{Collaborator: "customer-notifier", Err: err}
	}

	if err := b.sap.NotifyReadyForDelivery(ctx, c); err != nil {
		return "notify_sap", &CollaboratorError{Collaborator: "sap", Err: err}
	}

	return "", nil
}
