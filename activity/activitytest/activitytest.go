// Package activitytest provides an in-memory activity.Store for tests.
package activitytest

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
)

type key struct {
	account uuid.UUID
	id      string
}

// A Store keeps Activities in a map keyed by owner and ID.
type Store struct {
	mu      sync.Mutex
	records map[key]ridewitus.Activity

	// Err, when set, is returned from every method.
	Err error
}

// NewStore constructs a *Store holding records.
func NewStore(records ...ridewitus.Activity) *Store {
	s := &Store{records: make(map[key]ridewitus.Activity)}
	for _, r := range records {
		s.records[key{r.AccountID, r.ID}] = r
	}

	return s
}

func (s *Store) List(_ context.Context, accountID uuid.UUID, types []ridewitus.ActivityType, since time.Time) ([]ridewitus.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]ridewitus.Activity, 0)
	for k, r := range s.records {
		switch {
		case k.account != accountID:
			continue
		case len(types) > 0 && !slices.Contains(types, r.Type):
			continue
		case !since.IsZero() && r.Date.Before(since):
			continue
		}

		out = append(out, r)
	}

	slices.SortFunc(out, func(a, b ridewitus.Activity) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return out, nil
}

func (s *Store) Get(_ context.Context, accountID uuid.UUID, id string) (ridewitus.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return ridewitus.Activity{}, s.Err
	}

	r, ok := s.records[key{accountID, id}]
	if !ok {
		return ridewitus.Activity{}, fmt.Errorf("%w: activity %s", ridewitus.ErrNotFound, id)
	}

	return r, nil
}

func (s *Store) Create(_ context.Context, a *ridewitus.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	k := key{a.AccountID, a.ID}
	if _, ok := s.records[k]; ok {
		return fmt.Errorf("%w: activity %s", ridewitus.ErrExists, a.ID)
	}

	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	s.records[k] = *a

	return nil
}

func (s *Store) Update(_ context.Context, a *ridewitus.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	k := key{a.AccountID, a.ID}
	if _, ok := s.records[k]; !ok {
		return fmt.Errorf("%w: activity %s", ridewitus.ErrNotFound, a.ID)
	}

	a.UpdatedAt = time.Now()
	s.records[k] = *a

	return nil
}

func (s *Store) Delete(_ context.Context, accountID uuid.UUID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	k := key{accountID, id}
	if _, ok := s.records[k]; !ok {
		return fmt.Errorf("%w: activity %s", ridewitus.ErrNotFound, id)
	}

	delete(s.records, k)

	return nil
}

func (s *Store) Clear(_ context.Context, accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	s.clear(accountID)

	return nil
}

func (s *Store) clear(accountID uuid.UUID) {
	for k := range s.records {
		if k.account == accountID {
			delete(s.records, k)
		}
	}
}

func (s *Store) ReplaceAll(_ context.Context, accountID uuid.UUID, records []ridewitus.Activity) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}

	s.clear(accountID)
	for _, r := range records {
		r.AccountID = accountID
		s.records[key{accountID, r.ID}] = r
	}

	return len(records), nil
}

func (s *Store) InsertMissing(_ context.Context, accountID uuid.UUID, records []ridewitus.Activity) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}

	var n int
	for _, r := range records {
		k := key{accountID, r.ID}
		if _, ok := s.records[k]; ok {
			continue
		}

		r.AccountID = accountID
		s.records[k] = r
		n++
	}

	return n, nil
}
