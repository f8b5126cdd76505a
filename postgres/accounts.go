package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
)

// An AccountStore persists Accounts.
type AccountStore struct {
	db *DB
}

// NewAccountStore constructs an *AccountStore over db.
func NewAccountStore(db *DB) *AccountStore { return &AccountStore{db: db} }

// ByID retrieves the Account identified by id.
func (s *AccountStore) ByID(ctx context.Context, id uuid.UUID) (ridewitus.Account, error) {
	var a ridewitus.Account
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&a)
	return a, err
}

// ByEmail retrieves the Account registered with email, matched exactly.
func (s *AccountStore) ByEmail(ctx context.Context, email string) (ridewitus.Account, error) {
	var a ridewitus.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&a)
	return a, err
}

// EmailTaken asserts whether an Account other than except is registered with email.
func (s *AccountStore) EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error) {
	return s.db.
		WithContext(ctx).
		Model(new(ridewitus.Account)).
		Where("email = ?", email).
		Where("id <> ?", except).
		Exists()
}

// Create inserts a.
// A duplicate email returns ErrExists.
func (s *AccountStore) Create(ctx context.Context, a *ridewitus.Account) error {
	return s.db.WithContext(ctx).Create(a)
}

// Update writes every mutable field of a.
// A duplicate email returns ErrExists.
func (s *AccountStore) Update(ctx context.Context, a *ridewitus.Account) error {
	return s.db.
		WithContext(ctx).
		Model(a).
		Where("id = ?", a.ID).
		Update(Updates{
			"email":               a.Email,
			"name":                a.Name,
			"password":            a.Password,
			"role":                a.Role,
			"subscription_status": a.SubscriptionStatus,
			"subscription_expiry": a.SubscriptionExpiry,
			"billing_ref":         a.BillingRef,
			"preferred_unit":      a.PreferredUnit,
		})
}

// Delete removes the Account identified by id together with its activities.
func (s *AccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *DB) error {
		err := tx.Where("account_id = ?", id).Delete(new(ridewitus.Activity))
		if err != nil && !errors.Is(err, ridewitus.ErrNotFound) {
			return err
		}

		return tx.Where("id = ?", id).Delete(new(ridewitus.Account))
	})
}

// List retrieves every Account, newest first.
func (s *AccountStore) List(ctx context.Context) ([]ridewitus.Account, error) {
	accounts := make([]ridewitus.Account, 0)
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&accounts)
	return accounts, err
}

// SetBillingRef records the billing provider's reference for the Account identified by id.
func (s *AccountStore) SetBillingRef(ctx context.Context, id uuid.UUID, ref string) error {
	return s.db.
		WithContext(ctx).
		Model(new(ridewitus.Account)).
		Where("id = ?", id).
		Update(Updates{"billing_ref": ref})
}
