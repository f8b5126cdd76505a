package directory_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/auth"
	"github.com/xy-planning-network/ridewitus/directory"
	"github.com/xy-planning-network/ridewitus/directory/directorytest"
	"github.com/xy-planning-network/ridewitus/logger"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "a@example.com"
	testPassword = "password1"
)

var errTest = errors.New("just testing")

type fixture struct {
	svc      *directory.Service
	store    *directorytest.Store
	canceler *directorytest.Canceler
	tokens   *auth.TokenService
	hasher   *auth.Hasher
}

func newFixture(t *testing.T, accounts ...ridewitus.Account) fixture {
	t.Helper()

	f := fixture{
		store:    directorytest.NewStore(accounts...),
		canceler: new(directorytest.Canceler),
		tokens:   auth.NewTokenService("test-secret"),
		hasher:   &auth.Hasher{Cost: bcrypt.MinCost},
	}

	l := logger.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.svc = directory.NewService(f.store, f.hasher, f.tokens, f.canceler, l)

	return f
}

// account builds an Account with role whose password is testPassword.
func (f fixture) account(t *testing.T, email string, role ridewitus.Role) ridewitus.Account {
	t.Helper()

	digest, err := f.hasher.Hash(testPassword)
	require.Nil(t, err)

	a := ridewitus.Account{
		ID:                 uuid.New(),
		Email:              email,
		Name:               "Test",
		Password:           digest,
		Role:               role,
		SubscriptionStatus: ridewitus.SubscriptionFree,
	}
	require.Nil(t, f.store.Create(context.Background(), &a))

	return a
}

func TestRegisterThenLogin(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t)

	// Act
	a, token, err := f.svc.Register(ctx, testEmail, testPassword, "  Rider ")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "Rider", a.Name)
	require.Equal(t, ridewitus.RoleUser, a.Role)
	require.Equal(t, ridewitus.SubscriptionFree, a.SubscriptionStatus)
	require.NotEqual(t, []byte(testPassword), a.Password)

	id, err := f.tokens.Verify(ctx, token)
	require.Nil(t, err)
	require.Equal(t, a.ID, id.AccountID)

	// Act
	loggedIn, token, err := f.svc.Login(ctx, testEmail, testPassword)

	// Assert
	require.Nil(t, err)
	require.Equal(t, a.ID, loggedIn.ID)
	require.NotEmpty(t, token)
}

func TestRegisterValidation(t *testing.T) {
	for _, tc := range []struct {
		name     string
		email    string
		password string
		full     string
		expected error
	}{
		{"no-at", "nope", "short", "", directory.ErrInvalidEmail},
		{"short-password", testEmail, "short", "", directory.ErrInvalidPassword},
		{"seven-chars", testEmail, "1234567", "Rider", directory.ErrInvalidPassword},
		{"blank-name", testEmail, testPassword, "   ", directory.ErrInvalidName},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t)

			// Act
			_, _, err := f.svc.Register(context.Background(), tc.email, tc.password, tc.full)

			// Assert
			require.ErrorIs(t, err, tc.expected)
			require.ErrorIs(t, err, ridewitus.ErrNotValid)
			accounts, _ := f.store.List(context.Background())
			require.Empty(t, accounts)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t)
	first, _, err := f.svc.Register(ctx, testEmail, testPassword, "First")
	require.Nil(t, err)

	// Act
	_, _, err = f.svc.Register(ctx, testEmail, "different1", "Second")

	// Assert
	require.ErrorIs(t, err, directory.ErrUserExists)
	require.Equal(t, 409, ridewitus.StatusOf(err))

	actual, err := f.svc.GetByID(ctx, first.ID)
	require.Nil(t, err)
	require.Equal(t, "First", actual.Name)

	_, _, err = f.svc.Login(ctx, testEmail, testPassword)
	require.Nil(t, err)
}

func TestLoginFailuresAreIdentical(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t)
	f.account(t, testEmail, ridewitus.RoleUser)

	// Act
	_, _, wrongPassword := f.svc.Login(ctx, testEmail, "wrong-password")
	_, _, unknownEmail := f.svc.Login(ctx, "who@example.com", testPassword)

	// Assert
	require.ErrorIs(t, wrongPassword, directory.ErrInvalidCredentials)
	require.Equal(t, wrongPassword, unknownEmail)
	require.Equal(t, ridewitus.StatusOf(wrongPassword), ridewitus.StatusOf(unknownEmail))
	require.Equal(t, 401, ridewitus.StatusOf(unknownEmail))
}

func TestLoginMissingCredentials(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.Login(context.Background(), "", testPassword)
	require.ErrorIs(t, err, directory.ErrMissingCredentials)

	_, _, err = f.svc.Login(context.Background(), testEmail, "")
	require.ErrorIs(t, err, directory.ErrMissingCredentials)
}

func TestLoginStoreFailure(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.store.Err = errTest

	// Act
	_, _, err := f.svc.Login(context.Background(), testEmail, testPassword)

	// Assert
	require.ErrorIs(t, err, errTest)
}

func TestGetByIDNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), uuid.New())

	require.ErrorIs(t, err, directory.ErrUserNotFound)
	require.ErrorIs(t, err, ridewitus.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		a := f.account(t, testEmail, ridewitus.RoleUser)

		// Act
		actual, err := f.svc.UpdateProfile(ctx, a.ID, "New Name", "new@example.com", testPassword)

		// Assert
		require.Nil(t, err)
		require.Equal(t, "New Name", actual.Name)
		stored, _ := f.svc.GetByID(ctx, a.ID)
		require.Equal(t, "new@example.com", stored.Email)
	})

	t.Run("keeping-own-email", func(t *testing.T) {
		f := newFixture(t)
		a := f.account(t, testEmail, ridewitus.RoleUser)

		_, err := f.svc.UpdateProfile(ctx, a.ID, "Renamed", testEmail, testPassword)
		require.Nil(t, err)
	})

	for _, tc := range []struct {
		name     string
		full     string
		email    string
		password string
		expected error
	}{
		{"missing-name", "", "new@example.com", testPassword, directory.ErrMissingFields},
		{"missing-password", "Name", "new@example.com", "", directory.ErrMissingFields},
		{"bad-email", "Name", "new.example.com", testPassword, directory.ErrInvalidEmail},
		{"wrong-password", "Name", "new@example.com", "wrong-password", directory.ErrInvalidCredentials},
		{"email-in-use", "Name", "b@example.com", testPassword, directory.ErrEmailInUse},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t)
			a := f.account(t, testEmail, ridewitus.RoleUser)
			f.account(t, "b@example.com", ridewitus.RoleUser)

			// Act
			_, err := f.svc.UpdateProfile(ctx, a.ID, tc.full, tc.email, tc.password)

			// Assert
			require.ErrorIs(t, err, tc.expected)
			stored, _ := f.svc.GetByID(ctx, a.ID)
			require.Equal(t, testEmail, stored.Email)
			require.Equal(t, "Test", stored.Name)
		})
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name     string
		current  string
		next     string
		expected error
	}{
		{"success", testPassword, "brand-new-pw", nil},
		{"missing", "", "brand-new-pw", directory.ErrMissingFields},
		{"weak", testPassword, "short", directory.ErrWeakPassword},
		{"wrong-current", "not-my-password", "brand-new-pw", directory.ErrInvalidCredentials},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t)
			a := f.account(t, testEmail, ridewitus.RoleUser)

			// Act
			err := f.svc.ChangePassword(ctx, a.ID, tc.current, tc.next)

			// Assert
			if tc.expected != nil {
				require.ErrorIs(t, err, tc.expected)
				_, _, err = f.svc.Login(ctx, testEmail, testPassword)
				require.Nil(t, err)
				return
			}

			require.Nil(t, err)
			_, _, err = f.svc.Login(ctx, testEmail, tc.next)
			require.Nil(t, err)
			_, _, err = f.svc.Login(ctx, testEmail, testPassword)
			require.ErrorIs(t, err, directory.ErrInvalidCredentials)
		})
	}
}

func TestSetPreferredUnit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t)
	a := f.account(t, testEmail, ridewitus.RoleUser)

	// Act
	actual, err := f.svc.SetPreferredUnit(ctx, a.ID, ridewitus.Kilometers)

	// Assert
	require.Nil(t, err)
	require.Equal(t, ridewitus.Kilometers, actual.PreferredUnit)

	_, err = f.svc.SetPreferredUnit(ctx, a.ID, "leagues")
	require.ErrorIs(t, err, directory.ErrInvalidInput)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels-billing", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		a := f.account(t, testEmail, ridewitus.RoleUser)
		require.Nil(t, f.store.SetBillingRef(ctx, a.ID, "cus_1"))

		// Act
		err := f.svc.DeleteAccount(ctx, a.ID)

		// Assert
		require.Nil(t, err)
		require.Equal(t, []string{"cus_1"}, f.canceler.Cancelled)
		_, err = f.svc.GetByID(ctx, a.ID)
		require.ErrorIs(t, err, directory.ErrUserNotFound)
	})

	t.Run("billing-failure-is-ignored", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.canceler.Err = errTest
		a := f.account(t, testEmail, ridewitus.RoleUser)
		require.Nil(t, f.store.SetBillingRef(ctx, a.ID, "cus_1"))

		// Act
		err := f.svc.DeleteAccount(ctx, a.ID)

		// Assert
		require.Nil(t, err)
		require.Equal(t, []uuid.UUID{a.ID}, f.store.Deleted)
	})

	t.Run("no-billing-ref", func(t *testing.T) {
		f := newFixture(t)
		a := f.account(t, testEmail, ridewitus.RoleUser)

		require.Nil(t, f.svc.DeleteAccount(ctx, a.ID))
		require.Empty(t, f.canceler.Cancelled)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		require.ErrorIs(t, f.svc.DeleteAccount(ctx, uuid.New()), directory.ErrUserNotFound)
	})
}

func TestRegisterHashingFailure(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, _, err := f.svc.Register(context.Background(), testEmail, strings.Repeat("x", 73), "Rider")

	// Assert
	require.ErrorIs(t, err, auth.ErrHashing)
}
