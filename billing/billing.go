// Package billing talks to the payment provider: creating customers,
// opening subscription checkouts and cancelling subscriptions.
package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
)

// A Client opens subscription purchases with the payment provider.
type Client interface {
	CreateCustomer(ctx context.Context, email, name string, accountID uuid.UUID) (string, error)
	CreateCheckoutSession(ctx context.Context, customerID, priceID string, meta map[string]string) (string, error)
}

// A Canceler ends every subscription a customer holds.
type Canceler interface {
	CancelSubscriptions(ctx context.Context, customerID string) error
}

var (
	_ Client   = (*StripeClient)(nil)
	_ Canceler = (*StripeClient)(nil)
	_ Client   = Stub{}
	_ Canceler = Stub{}
)

// upstream wraps a payment provider failure.
func upstream(op string, err error) error {
	return fmt.Errorf("%w: billing: %s: %s", ridewitus.ErrUnexpected, op, err)
}

// A Stub stands in for the payment provider, returning deterministic identifiers.
type Stub struct{}

func (Stub) CreateCustomer(_ context.Context, _, _ string, accountID uuid.UUID) (string, error) {
	return "cus_stub_" + accountID.String(), nil
}

func (Stub) CreateCheckoutSession(_ context.Context, customerID, priceID string, _ map[string]string) (string, error) {
	return "cs_stub_" + customerID + "_" + priceID, nil
}

func (Stub) CancelSubscriptions(context.Context, string) error { return nil }
