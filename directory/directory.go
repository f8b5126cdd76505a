// Package directory manages Accounts: registration, login, self-service changes
// and the role-gated administration of other accounts.
package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/auth"
	"github.com/xy-planning-network/ridewitus/billing"
	"github.com/xy-planning-network/ridewitus/logger"
)

// MinPasswordLen is the shortest password accepted.
const MinPasswordLen = 8

// A Store persists Accounts.
//
// Delete removes the account's activities along with it.
type Store interface {
	ByID(ctx context.Context, id uuid.UUID) (ridewitus.Account, error)
	ByEmail(ctx context.Context, email string) (ridewitus.Account, error)
	EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error)
	Create(ctx context.Context, a *ridewitus.Account) error
	Update(ctx context.Context, a *ridewitus.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]ridewitus.Account, error)
}

// A Service is the account directory.
type Service struct {
	store   Store
	hasher  *auth.Hasher
	tokens  auth.TokenIssuer
	billing billing.Canceler
	logger  logger.Logger
}

// NewService constructs a *Service.
func NewService(
	store Store,
	hasher *auth.Hasher,
	tokens auth.TokenIssuer,
	canceler billing.Canceler,
	l logger.Logger,
) *Service {
	return &Service{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		billing: canceler,
		logger:  l,
	}
}

// validateNew checks the fields of a new account, in order.
func validateNew(email, password, name string) error {
	switch {
	case !strings.Contains(email, "@"):
		return ErrInvalidEmail
	case len(password) < MinPasswordLen:
		return ErrInvalidPassword
	case strings.TrimSpace(name) == "":
		return ErrInvalidName
	default:
		return nil
	}
}

// Register creates an Account with the user role on the free plan
// and issues a session token for it.
func (s *Service) Register(ctx context.Context, email, password, name string) (ridewitus.Account, string, error) {
	email = strings.TrimSpace(email)
	if err := validateNew(email, password, name); err != nil {
		return ridewitus.Account{}, "", err
	}

	a, err := s.create(ctx, email, password, name, ridewitus.RoleUser)
	if err != nil {
		return ridewitus.Account{}, "", err
	}

	token, err := s.tokens.Issue(a.ID, a.Role)
	if err != nil {
		return ridewitus.Account{}, "", err
	}

	return a, token, nil
}

// create persists a new, already validated Account.
func (s *Service) create(ctx context.Context, email, password, name string, role ridewitus.Role) (ridewitus.Account, error) {
	taken, err := s.store.EmailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return ridewitus.Account{}, err
	}

	if taken {
		return ridewitus.Account{}, ErrUserExists
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return ridewitus.Account{}, err
	}

	a := ridewitus.Account{
		ID:                 uuid.New(),
		Email:              email,
		Name:               strings.TrimSpace(name),
		Password:           digest,
		Role:               role,
		SubscriptionStatus: ridewitus.SubscriptionFree,
		PreferredUnit:      ridewitus.Miles,
	}

	err = s.store.Create(ctx, &a)
	if errors.Is(err, ridewitus.ErrExists) {
		return ridewitus.Account{}, ErrUserExists
	}

	if err != nil {
		return ridewitus.Account{}, err
	}

	return a, nil
}

// Login checks email and password against the stored Account and issues a session token for it.
//
// An unknown email and a wrong password fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (ridewitus.Account, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ridewitus.Account{}, "", ErrMissingCredentials
	}

	a, err := s.store.ByEmail(ctx, email)
	if errors.Is(err, ridewitus.ErrNotFound) {
		s.hasher.VerifyNothing(password)
		return ridewitus.Account{}, "", ErrInvalidCredentials
	}

	if err != nil {
		return ridewitus.Account{}, "", err
	}

	if !s.hasher.Verify(password, a.Password) {
		return ridewitus.Account{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(a.ID, a.Role)
	if err != nil {
		return ridewitus.Account{}, "", err
	}

	return a, token, nil
}

// GetByID retrieves the Account identified by id.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (ridewitus.Account, error) {
	a, err := s.store.ByID(ctx, id)
	if errors.Is(err, ridewitus.ErrNotFound) {
		return ridewitus.Account{}, ErrUserNotFound
	}

	return a, err
}

// UpdateProfile changes the name and email of the Account identified by id,
// once currentPassword proves the caller owns it.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, name, email, currentPassword string) (ridewitus.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || currentPassword == "" {
		return ridewitus.Account{}, ErrMissingFields
	}

	if !strings.Contains(email, "@") {
		return ridewitus.Account{}, ErrInvalidEmail
	}

	a, err := s.GetByID(ctx, id)
	if err != nil {
		return ridewitus.Account{}, err
	}

	if !s.hasher.Verify(currentPassword, a.Password) {
		return ridewitus.Account{}, ErrInvalidCredentials
	}

	if err := s.ensureEmailFree(ctx, email, id); err != nil {
		return ridewitus.Account{}, err
	}

	a.Name = name
	a.Email = email

	return a, s.update(ctx, &a)
}

// ChangePassword replaces the password of the Account identified by id,
// once current proves the caller owns it.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	if current == "" || next == "" {
		return ErrMissingFields
	}

	if len(next) < MinPasswordLen {
		return ErrWeakPassword
	}

	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(current, a.Password) {
		return ErrInvalidCredentials
	}

	digest, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}

	a.Password = digest

	return s.update(ctx, &a)
}

// SetPreferredUnit changes the unit distances are displayed in for the Account identified by id.
func (s *Service) SetPreferredUnit(ctx context.Context, id uuid.UUID, unit ridewitus.Unit) (ridewitus.Account, error) {
	if err := unit.Valid(); err != nil {
		return ridewitus.Account{}, ErrInvalidInput
	}

	a, err := s.GetByID(ctx, id)
	if err != nil {
		return ridewitus.Account{}, err
	}

	a.PreferredUnit = unit

	return a, s.update(ctx, &a)
}

// DeleteAccount removes the Account identified by id and all of its activities.
//
// Subscriptions with the billing provider are cancelled first.
// A failed cancellation is logged and does not stop the deletion.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.delete(ctx, a)
}

func (s *Service) delete(ctx context.Context, a ridewitus.Account) error {
	if a.HasBillingRef() {
		if err := s.billing.CancelSubscriptions(ctx, *a.BillingRef); err != nil {
			s.logger.Warn("failed cancelling subscriptions", &logger.LogContext{Error: err, User: a})
		}
	}

	err := s.store.Delete(ctx, a.ID)
	if errors.Is(err, ridewitus.ErrNotFound) {
		return ErrUserNotFound
	}

	return err
}

// ensureEmailFree checks no Account other than id uses email.
func (s *Service) ensureEmailFree(ctx context.Context, email string, id uuid.UUID) error {
	taken, err := s.store.EmailTaken(ctx, email, id)
	if err != nil {
		return err
	}

	if taken {
		return ErrEmailInUse
	}

	return nil
}

func (s *Service) update(ctx context.Context, a *ridewitus.Account) error {
	err := s.store.Update(ctx, a)
	switch {
	case errors.Is(err, ridewitus.ErrExists):
		return ErrEmailInUse
	case errors.Is(err, ridewitus.ErrNotFound):
		return ErrUserNotFound
	default:
		return err
	}
}
