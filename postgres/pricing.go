package postgres

import (
	"context"
	"errors"

	"github.com/xy-planning-network/ridewitus"
)

// A PricingStore persists PricingTiers.
type PricingStore struct {
	db *DB
}

// NewPricingStore constructs a *PricingStore over db.
func NewPricingStore(db *DB) *PricingStore { return &PricingStore{db: db} }

// List retrieves every tier in display order.
func (s *PricingStore) List(ctx context.Context) ([]ridewitus.PricingTier, error) {
	tiers := make([]ridewitus.PricingTier, 0)
	err := s.db.WithContext(ctx).Order(`"position", id`).Find(&tiers)
	return tiers, err
}

// Get retrieves the tier identified by id.
func (s *PricingStore) Get(ctx context.Context, id string) (ridewitus.PricingTier, error) {
	var pt ridewitus.PricingTier
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&pt)
	return pt, err
}

// Count returns the number of tiers.
func (s *PricingStore) Count(ctx context.Context) (int64, error) {
	return s.db.WithContext(ctx).Model(new(ridewitus.PricingTier)).Count()
}

// ReplaceAll removes every tier and inserts tiers in their place, atomically.
func (s *PricingStore) ReplaceAll(ctx context.Context, tiers []ridewitus.PricingTier) error {
	return s.db.WithContext(ctx).Transaction(func(tx *DB) error {
		err := tx.Exec("DELETE FROM pricing_tiers")
		if err != nil && !errors.Is(err, ridewitus.ErrNotFound) {
			return err
		}

		if len(tiers) == 0 {
			return nil
		}

		return tx.Create(&tiers)
	})
}
