package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
)

// AdminCreate is the data an administrator supplies to create an Account.
type AdminCreate struct {
	Name     string
	Email    string
	Password string
	Role     ridewitus.Role
}

// AdminUpdate is the data an administrator supplies to change an Account.
// Zero-valued fields are left unchanged.
type AdminUpdate struct {
	Name               string
	Email              string
	Role               ridewitus.Role
	SubscriptionStatus ridewitus.SubscriptionStatus
}

// authorize checks actor may use administrative operations at all.
func authorize(actor ridewitus.Account) error {
	if !actor.Role.CanAdminister() {
		return ErrUnauthorized
	}

	return nil
}

// List retrieves every Account, newest first.
func (s *Service) List(ctx context.Context, actor ridewitus.Account) ([]ridewitus.Account, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}

	return s.store.List(ctx)
}

// Create adds an Account on behalf of actor.
// A manager may only create accounts with the user role.
func (s *Service) Create(ctx context.Context, actor ridewitus.Account, in AdminCreate) (ridewitus.Account, error) {
	if err := authorize(actor); err != nil {
		return ridewitus.Account{}, err
	}

	if err := in.Role.Valid(); err != nil {
		return ridewitus.Account{}, ErrInvalidInput
	}

	if actor.Role == ridewitus.RoleManager && in.Role != ridewitus.RoleUser {
		return ridewitus.Account{}, ErrUnauthorized
	}

	email := strings.TrimSpace(in.Email)
	if err := validateNew(email, in.Password, in.Name); err != nil {
		return ridewitus.Account{}, err
	}

	return s.create(ctx, email, in.Password, in.Name, in.Role)
}

// Provision creates an Account with role unless one with the same email already exists.
// It reports whether an Account was created.
func (s *Service) Provision(ctx context.Context, in AdminCreate) (ridewitus.Account, bool, error) {
	email := strings.TrimSpace(in.Email)
	if err := in.Role.Valid(); err != nil {
		return ridewitus.Account{}, false, ErrInvalidInput
	}

	if err := validateNew(email, in.Password, in.Name); err != nil {
		return ridewitus.Account{}, false, err
	}

	a, err := s.create(ctx, email, in.Password, in.Name, in.Role)
	if errors.Is(err, ErrUserExists) {
		a, err = s.store.ByEmail(ctx, email)
		return a, false, err
	}

	if err != nil {
		return ridewitus.Account{}, false, err
	}

	return a, true, nil
}

// Update changes the Account identified by id on behalf of actor.
//
// A manager may only change accounts with the user role, may not grant any other role
// and may not change subscription status.
func (s *Service) Update(ctx context.Context, actor ridewitus.Account, id uuid.UUID, in AdminUpdate) (ridewitus.Account, error) {
	if err := authorize(actor); err != nil {
		return ridewitus.Account{}, err
	}

	target, err := s.GetByID(ctx, id)
	if err != nil {
		return ridewitus.Account{}, err
	}

	if in.Role != "" && in.Role.Valid() != nil {
		return ridewitus.Account{}, ErrInvalidInput
	}

	if in.SubscriptionStatus != "" && in.SubscriptionStatus.Valid() != nil {
		return ridewitus.Account{}, ErrInvalidInput
	}

	if actor.Role == ridewitus.RoleManager {
		switch {
		case target.Role != ridewitus.RoleUser:
			return ridewitus.Account{}, ErrUnauthorized
		case in.Role != "" && in.Role != ridewitus.RoleUser:
			return ridewitus.Account{}, ErrUnauthorized
		case in.SubscriptionStatus != "" && in.SubscriptionStatus != target.SubscriptionStatus:
			return ridewitus.Account{}, ErrUnauthorized
		}
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		target.Name = name
	}

	if email := strings.TrimSpace(in.Email); email != "" && email != target.Email {
		if !strings.Contains(email, "@") {
			return ridewitus.Account{}, ErrInvalidEmail
		}

		if err := s.ensureEmailFree(ctx, email, target.ID); err != nil {
			return ridewitus.Account{}, err
		}

		target.Email = email
	}

	if in.Role != "" {
		target.Role = in.Role
	}

	if in.SubscriptionStatus != "" {
		target.SubscriptionStatus = in.SubscriptionStatus
	}

	return target, s.update(ctx, &target)
}

// Delete removes the Account identified by id on behalf of actor.
// No actor may delete itself this way; a manager may only delete accounts with the user role.
func (s *Service) Delete(ctx context.Context, actor ridewitus.Account, id uuid.UUID) error {
	if err := authorize(actor); err != nil {
		return err
	}

	if actor.ID == id {
		return ErrCannotDeleteSelf
	}

	target, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role == ridewitus.RoleManager && target.Role != ridewitus.RoleUser {
		return ErrUnauthorized
	}

	return s.delete(ctx, target)
}
