// Package directorytest provides an in-memory directory.Store for tests.
package directorytest

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
)

// A Store keeps Accounts in a map.
// Deleted account IDs are recorded so tests can assert cascades.
type Store struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]ridewitus.Account
	Deleted  []uuid.UUID

	// Err, when set, is returned from every method.
	Err error
}

// NewStore constructs a *Store holding accounts.
func NewStore(accounts ...ridewitus.Account) *Store {
	s := &Store{accounts: make(map[uuid.UUID]ridewitus.Account)}
	for _, a := range accounts {
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now()
		}

		s.accounts[a.ID] = a
	}

	return s
}

func (s *Store) ByID(_ context.Context, id uuid.UUID) (ridewitus.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return ridewitus.Account{}, s.Err
	}

	a, ok := s.accounts[id]
	if !ok {
		return ridewitus.Account{}, fmt.Errorf("%w: account %s", ridewitus.ErrNotFound, id)
	}

	return a, nil
}

func (s *Store) ByEmail(_ context.Context, email string) (ridewitus.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return ridewitus.Account{}, s.Err
	}

	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}

	return ridewitus.Account{}, fmt.Errorf("%w: account %s", ridewitus.ErrNotFound, email)
}

func (s *Store) EmailTaken(_ context.Context, email string, except uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return false, s.Err
	}

	return s.emailTaken(email, except), nil
}

func (s *Store) emailTaken(email string, except uuid.UUID) bool {
	for _, a := range s.accounts {
		if a.Email == email && a.ID != except {
			return true
		}
	}

	return false
}

func (s *Store) Create(_ context.Context, a *ridewitus.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.accounts[a.ID]; ok || s.emailTaken(a.Email, a.ID) {
		return fmt.Errorf("%w: account", ridewitus.ErrExists)
	}

	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	s.accounts[a.ID] = *a

	return nil
}

func (s *Store) Update(_ context.Context, a *ridewitus.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.accounts[a.ID]; !ok {
		return fmt.Errorf("%w: account %s", ridewitus.ErrNotFound, a.ID)
	}

	if s.emailTaken(a.Email, a.ID) {
		return fmt.Errorf("%w: email", ridewitus.ErrExists)
	}

	a.UpdatedAt = time.Now()
	s.accounts[a.ID] = *a

	return nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.accounts[id]; !ok {
		return fmt.Errorf("%w: account %s", ridewitus.ErrNotFound, id)
	}

	delete(s.accounts, id)
	s.Deleted = append(s.Deleted, id)

	return nil
}

func (s *Store) List(context.Context) ([]ridewitus.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]ridewitus.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}

	slices.SortFunc(out, func(a, b ridewitus.Account) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

// SetBillingRef records ref on the Account identified by id.
func (s *Store) SetBillingRef(_ context.Context, id uuid.UUID, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("%w: account %s", ridewitus.ErrNotFound, id)
	}

	a.BillingRef = &ref
	s.accounts[id] = a

	return nil
}

// Canceler records which billing customers had their subscriptions cancelled.
type Canceler struct {
	mu        sync.Mutex
	Cancelled []string

	// Err, when set, is returned from CancelSubscriptions.
	Err error
}

func (c *Canceler) CancelSubscriptions(_ context.Context, customerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Cancelled = append(c.Cancelled, customerID)

	return c.Err
}

