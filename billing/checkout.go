package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/logger"
)

// ErrNotPurchasable is returned when a checkout names a tier that cannot be bought.
var ErrNotPurchasable = ridewitus.NewCodedError(ridewitus.CodeInvalidInput, ridewitus.ErrNotValid, "pricing tier cannot be purchased")

// A TierGetter resolves a pricing tier by ID.
type TierGetter interface {
	Get(ctx context.Context, id string) (ridewitus.PricingTier, error)
}

// A RefSetter remembers an account's billing reference.
type RefSetter interface {
	SetBillingRef(ctx context.Context, id uuid.UUID, ref string) error
}

// A Checkout starts subscription purchases.
type Checkout struct {
	client   Client
	tiers    TierGetter
	accounts RefSetter
	logger   logger.Logger
}

// NewCheckout constructs a *Checkout.
func NewCheckout(client Client, tiers TierGetter, accounts RefSetter, l logger.Logger) *Checkout {
	return &Checkout{client: client, tiers: tiers, accounts: accounts, logger: l}
}

// Start opens a checkout session for account buying tierID, returning the session ID.
//
// An account unknown to the payment provider is registered with it first,
// and the resulting reference is saved on account.
func (c *Checkout) Start(ctx context.Context, account *ridewitus.Account, tierID string) (string, error) {
	tier, err := c.tiers.Get(ctx, tierID)
	if errors.Is(err, ridewitus.ErrNotFound) {
		return "", ErrNotPurchasable
	}

	if err != nil {
		return "", err
	}

	if !tier.IsPriced() || !tier.Offerable() {
		return "", ErrNotPurchasable
	}

	if !account.HasBillingRef() {
		ref, err := c.client.CreateCustomer(ctx, account.Email, account.Name, account.ID)
		if err != nil {
			return "", err
		}

		if err := c.accounts.SetBillingRef(ctx, account.ID, ref); err != nil {
			return "", err
		}

		account.BillingRef = &ref
		c.logger.Info("created billing customer", &logger.LogContext{User: account})
	}

	meta := map[string]string{
		"account_id": account.ID.String(),
		"tier_id":    tier.ID,
	}

	return c.client.CreateCheckoutSession(ctx, *account.BillingRef, *tier.PriceRef, meta)
}
