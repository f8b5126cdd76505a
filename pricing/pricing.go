// Package pricing manages the subscription plans offered to accounts.
package pricing

import (
	"context"
	"errors"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/logger"
)

var (
	ErrNotFound     = ridewitus.NewCodedError(ridewitus.CodeNotFound, ridewitus.ErrNotFound, "pricing tier not found")
	ErrUnauthorized = ridewitus.NewCodedError(ridewitus.CodeUnauthorized, ridewitus.ErrForbidden, "only admins may change pricing")
)

// A Store persists PricingTiers.
type Store interface {
	List(ctx context.Context) ([]ridewitus.PricingTier, error)
	Get(ctx context.Context, id string) (ridewitus.PricingTier, error)
	Count(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, tiers []ridewitus.PricingTier) error
}

// A Service reads and replaces the pricing table.
type Service struct {
	store  Store
	logger logger.Logger
}

// NewService constructs a *Service.
func NewService(store Store, l logger.Logger) *Service {
	return &Service{store: store, logger: l}
}

// List retrieves every tier in display order.
func (s *Service) List(ctx context.Context) ([]ridewitus.PricingTier, error) {
	return s.store.List(ctx)
}

// Offered retrieves the tiers that can be shown for purchase, in display order.
func (s *Service) Offered(ctx context.Context) ([]ridewitus.PricingTier, error) {
	tiers, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	offered := make([]ridewitus.PricingTier, 0, len(tiers))
	for _, pt := range tiers {
		if pt.Offerable() {
			offered = append(offered, pt)
		}
	}

	return offered, nil
}

// Get retrieves the tier identified by id.
func (s *Service) Get(ctx context.Context, id string) (ridewitus.PricingTier, error) {
	pt, err := s.store.Get(ctx, id)
	if errors.Is(err, ridewitus.ErrNotFound) {
		return ridewitus.PricingTier{}, ErrNotFound
	}

	return pt, err
}

// Replace swaps the whole pricing table for tiers on behalf of actor, who must be an admin.
// Tiers are displayed in the order given.
func (s *Service) Replace(ctx context.Context, actor ridewitus.Account, tiers []ridewitus.PricingTier) ([]ridewitus.PricingTier, error) {
	if actor.Role != ridewitus.RoleAdmin {
		return nil, ErrUnauthorized
	}

	if err := Validate(tiers); err != nil {
		return nil, err
	}

	ordered := make([]ridewitus.PricingTier, len(tiers))
	for i, pt := range tiers {
		pt.Position = i
		ordered[i] = pt
	}

	if err := s.store.ReplaceAll(ctx, ordered); err != nil {
		return nil, err
	}

	s.logger.Info("replaced pricing", &logger.LogContext{User: actor, Data: map[string]any{"tiers": len(ordered)}})

	return s.store.List(ctx)
}

// Validate checks every tier and that no two share an ID.
func Validate(tiers []ridewitus.PricingTier) error {
	seen := make(map[string]struct{}, len(tiers))
	for _, pt := range tiers {
		if err := pt.Valid(); err != nil {
			return err
		}

		if _, ok := seen[pt.ID]; ok {
			return ridewitus.ErrPricingDuplicate
		}

		seen[pt.ID] = struct{}{}
	}

	return nil
}

// Seed fills an empty pricing table with Defaults.
// It reports whether anything was written.
func (s *Service) Seed(ctx context.Context, priceRefs map[string]string) (bool, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return false, err
	}

	if n > 0 {
		return false, nil
	}

	tiers := Defaults(priceRefs)
	if err := Validate(tiers); err != nil {
		return false, err
	}

	if err := s.store.ReplaceAll(ctx, tiers); err != nil {
		return false, err
	}

	return true, nil
}
