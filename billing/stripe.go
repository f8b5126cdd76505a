package billing

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const (
	successPath = "/subscription/success"
	cancelPath  = "/subscription/cancel"
)

// A StripeClient is a Client and Canceler backed by Stripe.
type StripeClient struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeClient constructs a *StripeClient authenticating with key.
// Checkout redirects back to paths under baseURL.
func NewStripeClient(key string, baseURL *url.URL) *StripeClient {
	api := &client.API{}
	api.Init(key, nil)

	return &StripeClient{
		api: api,
		// Stripe substitutes the template variable, so it must not be escaped.
		successURL: baseURL.JoinPath(successPath).String() + "?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  baseURL.JoinPath(cancelPath).String(),
	}
}

// CreateCustomer registers the account holder with Stripe, returning the customer ID.
func (sc *StripeClient) CreateCustomer(ctx context.Context, email, name string, accountID uuid.UUID) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	params.AddMetadata("account_id", accountID.String())

	c, err := sc.api.Customers.New(params)
	if err != nil {
		return "", upstream("creating customer", err)
	}

	return c.ID, nil
}

// CreateCheckoutSession opens a subscription checkout for one unit of priceID, returning the session ID.
func (sc *StripeClient) CreateCheckoutSession(ctx context.Context, customerID, priceID string, meta map[string]string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(sc.successURL),
		CancelURL:  stripe.String(sc.cancelURL),
	}
	params.Context = ctx
	for k, v := range meta {
		params.AddMetadata(k, v)
	}

	s, err := sc.api.CheckoutSessions.New(params)
	if err != nil {
		return "", upstream("creating checkout session", err)
	}

	return s.ID, nil
}

// CancelSubscriptions cancels every subscription customerID holds.
func (sc *StripeClient) CancelSubscriptions(ctx context.Context, customerID string) error {
	params := &stripe.SubscriptionListParams{Customer: stripe.String(customerID)}
	params.Context = ctx

	iter := sc.api.Subscriptions.List(params)
	for iter.Next() {
		cancel := &stripe.SubscriptionCancelParams{}
		cancel.Context = ctx
		if _, err := sc.api.Subscriptions.Cancel(iter.Subscription().ID, cancel); err != nil {
			return upstream("cancelling subscription", err)
		}
	}

	if err := iter.Err(); err != nil {
		return upstream("listing subscriptions", err)
	}

	return nil
}
