// Package activity records, imports and summarizes the activities an account logs.
package activity

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/activitycsv"
	"github.com/xy-planning-network/ridewitus/logger"
	"github.com/xy-planning-network/ridewitus/stats"
	"github.com/xy-planning-network/ridewitus/units"
)

var (
	ErrDuplicateID     = ridewitus.NewCodedError(ridewitus.CodeInvalidInput, ridewitus.ErrExists, "an activity with this id already exists")
	ErrInvalidInput    = ridewitus.NewCodedError(ridewitus.CodeInvalidInput, ridewitus.ErrNotValid, "invalid activity")
	ErrNotFound        = ridewitus.NewCodedError(ridewitus.CodeNotFound, ridewitus.ErrNotFound, "activity not found")
	ErrPremiumRequired = ridewitus.NewCodedError(ridewitus.CodePremiumRequired, ridewitus.ErrForbidden, "cloud sync requires a premium subscription")
)

// A Store persists Activities, scoped to their owning account.
type Store interface {
	List(ctx context.Context, accountID uuid.UUID, types []ridewitus.ActivityType, since time.Time) ([]ridewitus.Activity, error)
	Get(ctx context.Context, accountID uuid.UUID, id string) (ridewitus.Activity, error)
	Create(ctx context.Context, a *ridewitus.Activity) error
	Update(ctx context.Context, a *ridewitus.Activity) error
	Delete(ctx context.Context, accountID uuid.UUID, id string) error
	Clear(ctx context.Context, accountID uuid.UUID) error
	ReplaceAll(ctx context.Context, accountID uuid.UUID, records []ridewitus.Activity) (int, error)
	InsertMissing(ctx context.Context, accountID uuid.UUID, records []ridewitus.Activity) (int, error)
}

// A Query narrows which activities are listed or summarized.
// Zero values apply no filter.
type Query struct {
	Types []ridewitus.ActivityType
	Days  int
}

// An Input is an activity as entered by an account holder.
//
// Distance is in Unit, defaulting to the account's preferred unit.
// ID is generated when empty.
type Input struct {
	ID              string                 `json:"id"`
	Date            time.Time              `json:"date" validate:"required"`
	Type            ridewitus.ActivityType `json:"type" validate:"required"`
	Distance        float64                `json:"distance" validate:"gte=0"`
	Duration        float64                `json:"duration" validate:"gte=0"`
	MaintenanceCost *float64               `json:"maintenanceCost" validate:"omitempty,gte=0"`
	Notes           *string                `json:"notes"`
	Unit            ridewitus.Unit         `json:"unit"`
}

// An ImportResult counts what an import did.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// A Service manages an account's activities.
type Service struct {
	store  Store
	now    func() time.Time
	logger logger.Logger
}

// NewService constructs a *Service.
func NewService(store Store, l logger.Logger) *Service {
	return &Service{store: store, now: time.Now, logger: l}
}

// WithClock replaces the clock used to resolve Query.Days and to name imported activities.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) since(days int) time.Time {
	if days <= 0 {
		return time.Time{}
	}

	return stats.Cutoff(days, s.now())
}

// List retrieves the account's activities matching q, newest first.
func (s *Service) List(ctx context.Context, accountID uuid.UUID, q Query) ([]ridewitus.Activity, error) {
	for _, t := range q.Types {
		if err := t.Valid(); err != nil {
			return nil, ErrInvalidInput
		}
	}

	return s.store.List(ctx, accountID, q.Types, s.since(q.Days))
}

// apply validates in and copies it onto a, converting the distance to its canonical unit.
func apply(a *ridewitus.Activity, in Input, display ridewitus.Unit) error {
	unit := in.Unit
	if unit == "" {
		unit = display
	}

	switch {
	case in.Type.Valid() != nil,
		unit.Valid() != nil,
		in.Date.IsZero(),
		!measure(in.Distance),
		!measure(in.Duration),
		in.MaintenanceCost != nil && !measure(*in.MaintenanceCost):
		return ErrInvalidInput
	}

	a.Date = in.Date
	a.Type = in.Type
	a.Distance = units.ToCanonical(in.Distance, unit, in.Type)
	a.Duration = in.Duration
	a.MaintenanceCost = in.MaintenanceCost
	a.Notes = in.Notes

	return nil
}

// measure reports whether v is usable as a distance, duration or cost.
func measure(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Create logs a new activity for account.
func (s *Service) Create(ctx context.Context, account ridewitus.Account, in Input) (ridewitus.Activity, error) {
	a := ridewitus.Activity{AccountID: account.ID, ID: strings.TrimSpace(in.ID)}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	if err := apply(&a, in, account.DisplayUnit()); err != nil {
		return ridewitus.Activity{}, err
	}

	err := s.store.Create(ctx, &a)
	if errors.Is(err, ridewitus.ErrExists) {
		return ridewitus.Activity{}, ErrDuplicateID
	}

	if err != nil {
		return ridewitus.Activity{}, err
	}

	return a, nil
}

// Update replaces the fields of one of account's activities.
// The ID in in is ignored.
func (s *Service) Update(ctx context.Context, account ridewitus.Account, id string, in Input) (ridewitus.Activity, error) {
	a, err := s.store.Get(ctx, account.ID, id)
	if errors.Is(err, ridewitus.ErrNotFound) {
		return ridewitus.Activity{}, ErrNotFound
	}

	if err != nil {
		return ridewitus.Activity{}, err
	}

	if err := apply(&a, in, account.DisplayUnit()); err != nil {
		return ridewitus.Activity{}, err
	}

	err = s.store.Update(ctx, &a)
	if errors.Is(err, ridewitus.ErrNotFound) {
		return ridewitus.Activity{}, ErrNotFound
	}

	if err != nil {
		return ridewitus.Activity{}, err
	}

	return a, nil
}

// Delete removes one of the account's activities.
func (s *Service) Delete(ctx context.Context, accountID uuid.UUID, id string) error {
	err := s.store.Delete(ctx, accountID, id)
	if errors.Is(err, ridewitus.ErrNotFound) {
		return ErrNotFound
	}

	return err
}

// Clear removes every one of the account's activities.
func (s *Service) Clear(ctx context.Context, accountID uuid.UUID) error {
	return s.store.Clear(ctx, accountID)
}

// Import adds records to the account according to mode.
//
// ImportReplace leaves the account with exactly records.
// ImportMerge keeps existing activities and adds records whose IDs are new.
// Within records, the first occurrence of an ID wins.
func (s *Service) Import(
	ctx context.Context,
	accountID uuid.UUID,
	records []ridewitus.Activity,
	mode ridewitus.ImportMode,
) (ImportResult, error) {
	if err := mode.Valid(); err != nil {
		return ImportResult{}, ErrInvalidInput
	}

	unique := make([]ridewitus.Activity, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.ID == "" || r.Type.Valid() != nil || !measure(r.Distance) || !measure(r.Duration) || !measure(r.Cost()) {
			return ImportResult{}, ErrInvalidInput
		}

		if _, ok := seen[r.ID]; ok {
			continue
		}

		seen[r.ID] = struct{}{}
		unique = append(unique, r)
	}

	var (
		added int
		err   error
	)
	switch mode {
	case ridewitus.ImportReplace:
		added, err = s.store.ReplaceAll(ctx, accountID, unique)
	case ridewitus.ImportMerge:
		added, err = s.store.InsertMissing(ctx, accountID, unique)
	}

	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Added: added, Skipped: len(records) - added}
	s.logger.Debug("imported activities", &logger.LogContext{Data: map[string]any{
		"account": accountID.String(),
		"mode":    mode.String(),
		"added":   res.Added,
		"skipped": res.Skipped,
	}})

	return res, nil
}

// ImportCSV decodes a CSV file from r and imports its activities according to mode.
func (s *Service) ImportCSV(ctx context.Context, accountID uuid.UUID, r io.Reader, mode ridewitus.ImportMode) (ImportResult, error) {
	if err := mode.Valid(); err != nil {
		return ImportResult{}, ErrInvalidInput
	}

	records, skipped, err := activitycsv.Decode(r, s.now())
	if err != nil {
		return ImportResult{}, err
	}

	res, err := s.Import(ctx, accountID, records, mode)
	if err != nil {
		return ImportResult{}, err
	}

	res.Skipped += skipped
	return res, nil
}

// Export writes every one of the account's activities to w as CSV.
func (s *Service) Export(ctx context.Context, accountID uuid.UUID, w io.Writer) error {
	records, err := s.store.List(ctx, accountID, nil, time.Time{})
	if err != nil {
		return err
	}

	return activitycsv.Encode(w, records)
}

// Upload replaces the account's cloud copy with records.
// Only premium accounts may sync.
func (s *Service) Upload(ctx context.Context, account ridewitus.Account, records []ridewitus.Activity) (ImportResult, error) {
	if !account.IsPremium() {
		return ImportResult{}, ErrPremiumRequired
	}

	return s.Import(ctx, account.ID, records, ridewitus.ImportReplace)
}

// Download retrieves the account's cloud copy.
// Only premium accounts may sync.
func (s *Service) Download(ctx context.Context, account ridewitus.Account) ([]ridewitus.Activity, error) {
	if !account.IsPremium() {
		return nil, ErrPremiumRequired
	}

	return s.store.List(ctx, account.ID, nil, time.Time{})
}

// Summary aggregates the account's activities matching q,
// with distances in the account's preferred unit, which is also returned.
func (s *Service) Summary(ctx context.Context, account ridewitus.Account, q Query) (stats.Summary, ridewitus.Unit, error) {
	records, err := s.List(ctx, account.ID, q)
	if err != nil {
		return stats.Summary{}, "", err
	}

	unit := account.DisplayUnit()

	return stats.Summarize(units.Display(records, unit)), unit, nil
}
