// Package pricingtest provides an in-memory pricing.Store for tests.
package pricingtest

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/xy-planning-network/ridewitus"
)

// A Store keeps PricingTiers in a slice.
type Store struct {
	mu    sync.Mutex
	tiers []ridewitus.PricingTier

	// Err, when set, is returned from every method.
	Err error
}

// NewStore constructs a *Store holding tiers.
func NewStore(tiers ...ridewitus.PricingTier) *Store {
	return &Store{tiers: slices.Clone(tiers)}
}

func (s *Store) List(context.Context) ([]ridewitus.PricingTier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := slices.Clone(s.tiers)
	slices.SortStableFunc(out, func(a, b ridewitus.PricingTier) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.ID, b.ID))
	})

	return out, nil
}

func (s *Store) Get(_ context.Context, id string) (ridewitus.PricingTier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return ridewitus.PricingTier{}, s.Err
	}

	for _, pt := range s.tiers {
		if pt.ID == id {
			return pt, nil
		}
	}

	return ridewitus.PricingTier{}, fmt.Errorf("%w: pricing tier %s", ridewitus.ErrNotFound, id)
}

func (s *Store) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}

	return int64(len(s.tiers)), nil
}

func (s *Store) ReplaceAll(_ context.Context, tiers []ridewitus.PricingTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	s.tiers = slices.Clone(tiers)

	return nil
}
