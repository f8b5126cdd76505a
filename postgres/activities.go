package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
)

// An ActivityStore persists Activities.
// Every method is scoped to one account.
type ActivityStore struct {
	db *DB
}

// NewActivityStore constructs an *ActivityStore over db.
func NewActivityStore(db *DB) *ActivityStore { return &ActivityStore{db: db} }

func (s *ActivityStore) scoped(ctx context.Context, accountID uuid.UUID) *DB {
	return s.db.WithContext(ctx).Where("account_id = ?", accountID)
}

// List retrieves the account's activities, newest first.
// With types, only those types are kept; with a non-zero since, only activities dated on or after it.
func (s *ActivityStore) List(
	ctx context.Context,
	accountID uuid.UUID,
	types []ridewitus.ActivityType,
	since time.Time,
) ([]ridewitus.Activity, error) {
	q := s.scoped(ctx, accountID)
	if len(types) > 0 {
		q = q.Where(`"type" IN ?`, types)
	}

	if !since.IsZero() {
		q = q.Where(`"date" >= ?`, since)
	}

	records := make([]ridewitus.Activity, 0)
	err := q.Order(`"date" DESC, id`).Find(&records)
	return records, err
}

// Get retrieves one of the account's activities.
func (s *ActivityStore) Get(ctx context.Context, accountID uuid.UUID, id string) (ridewitus.Activity, error) {
	var a ridewitus.Activity
	err := s.scoped(ctx, accountID).Where("id = ?", id).First(&a)
	return a, err
}

// Create inserts a.
// An ID the account already uses returns ErrExists.
func (s *ActivityStore) Create(ctx context.Context, a *ridewitus.Activity) error {
	return s.db.WithContext(ctx).Create(a)
}

// Update writes every mutable field of a.
func (s *ActivityStore) Update(ctx context.Context, a *ridewitus.Activity) error {
	return s.scoped(ctx, a.AccountID).
		Model(new(ridewitus.Activity)).
		Where("id = ?", a.ID).
		Update(Updates{
			"date":             a.Date,
			"type":             a.Type,
			"distance":         a.Distance,
			"duration":         a.Duration,
			"maintenance_cost": a.MaintenanceCost,
			"notes":            a.Notes,
		})
}

// Delete removes one of the account's activities.
func (s *ActivityStore) Delete(ctx context.Context, accountID uuid.UUID, id string) error {
	return s.scoped(ctx, accountID).Where("id = ?", id).Delete(new(ridewitus.Activity))
}

// Clear removes every one of the account's activities.
func (s *ActivityStore) Clear(ctx context.Context, accountID uuid.UUID) error {
	err := s.scoped(ctx, accountID).Delete(new(ridewitus.Activity))
	if errors.Is(err, ridewitus.ErrNotFound) {
		return nil
	}

	return err
}

// ReplaceAll removes the account's activities and inserts records in their place, atomically.
// It returns the number of records inserted.
func (s *ActivityStore) ReplaceAll(ctx context.Context, accountID uuid.UUID, records []ridewitus.Activity) (int, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *DB) error {
		err := tx.Where("account_id = ?", accountID).Delete(new(ridewitus.Activity))
		if err != nil && !errors.Is(err, ridewitus.ErrNotFound) {
			return err
		}

		if len(records) == 0 {
			return nil
		}

		return tx.Create(owned(accountID, records))
	})
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

// InsertMissing inserts the records whose IDs the account does not already use.
// It returns the number of records inserted.
func (s *ActivityStore) InsertMissing(ctx context.Context, accountID uuid.UUID, records []ridewitus.Activity) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	n, err := s.db.WithContext(ctx).CreateIgnoringConflicts(owned(accountID, records))
	return int(n), err
}

// owned copies records, assigning each to accountID.
func owned(accountID uuid.UUID, records []ridewitus.Activity) *[]ridewitus.Activity {
	out := make([]ridewitus.Activity, len(records))
	for i, r := range records {
		r.AccountID = accountID
		out[i] = r
	}

	return &out
}
