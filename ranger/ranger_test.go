package ranger_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/activity/activitytest"
	"github.com/xy-planning-network/ridewitus/directory/directorytest"
	"github.com/xy-planning-network/ridewitus/http/middleware"
	"github.com/xy-planning-network/ridewitus/logger"
	"github.com/xy-planning-network/ridewitus/pricing/pricingtest"
	"github.com/xy-planning-network/ridewitus/ranger"
)

type fixture struct {
	accounts *directorytest.Store
	tiers    *pricingtest.Store
	opts     []ranger.RangerOption
}

func newFixture(t *testing.T, env ridewitus.Environment) fixture {
	t.Helper()

	t.Setenv(ranger.JWTSecretEnvVar, "test-secret")
	t.Setenv(ranger.StripeKeyEnvVar, "")
	t.Setenv("REDIS_URL", "")
	t.Setenv(ranger.BaseURLEnvVar, "")

	f := fixture{
		accounts: directorytest.NewStore(),
		tiers:    pricingtest.NewStore(),
	}

	f.opts = []ranger.RangerOption{
		ranger.WithEnv(env.String()),
		ranger.WithLogger(logger.New(slog.New(slog.NewTextHandler(io.Discard, nil)))),
		ranger.WithLogOutput(io.Discard),
		ranger.WithStores(ranger.Stores{
			Accounts:   f.accounts,
			Activities: activitytest.NewStore(),
			Pricing:    f.tiers,
		}),
	}

	return f
}

func TestNew(t *testing.T) {
	t.Run("Missing-Secret", func(t *testing.T) {
		// Arrange
		f := newFixture(t, ridewitus.Testing)
		t.Setenv(ranger.JWTSecretEnvVar, "")

		// Act
		rng, err := ranger.New(f.opts...)

		// Assert
		require.Nil(t, rng)
		require.ErrorIs(t, err, ridewitus.ErrBadConfig)
	})

	t.Run("Missing-Stripe-Key", func(t *testing.T) {
		// Arrange
		f := newFixture(t, ridewitus.Staging)

		// Act
		rng, err := ranger.New(f.opts...)

		// Assert
		require.Nil(t, rng)
		require.ErrorIs(t, err, ridewitus.ErrBadConfig)
	})

	t.Run("Incomplete-Stores", func(t *testing.T) {
		// Arrange
		f := newFixture(t, ridewitus.Testing)

		// Act
		rng, err := ranger.New(append(f.opts, ranger.WithStores(ranger.Stores{}))...)

		// Assert
		require.Nil(t, rng)
		require.ErrorIs(t, err, ridewitus.ErrBadConfig)
	})

	t.Run("Stubbed", func(t *testing.T) {
		// Arrange
		f := newFixture(t, ridewitus.Testing)

		// Act
		rng, err := ranger.New(f.opts...)

		// Assert
		require.Nil(t, err)
		require.Equal(t, ridewitus.Testing, rng.EmitEnv())
	})
}

func TestServes(t *testing.T) {
	// Arrange
	f := newFixture(t, ridewitus.Testing)
	rng, err := ranger.New(f.opts...)
	require.Nil(t, err)

	tcs := []struct {
		name string
		path string
		code int
	}{
		{"Health", "/healthz", http.StatusOK},
		{"Public", "/api/pricing", http.StatusOK},
		{"Authed", "/api/auth/me", http.StatusUnauthorized},
		{"Admin", "/api/admin/users", http.StatusUnauthorized},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.path, nil)

			// Act
			rng.ServeHTTP(rec, r)

			// Assert
			require.Equal(t, tc.code, rec.Code)
			require.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestSeed(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		// Arrange
		f := newFixture(t, ridewitus.Development)
		rng, err := ranger.New(f.opts...)
		require.Nil(t, err)

		// Act
		first, err := rng.Seed(context.Background())
		require.Nil(t, err)
		second, err := rng.Seed(context.Background())
		require.Nil(t, err)

		// Assert
		require.Equal(t, ranger.SeedReport{Pricing: true, Admin: true}, first)
		require.Equal(t, ranger.SeedReport{}, second)

		n, err := f.tiers.Count(context.Background())
		require.Nil(t, err)
		require.EqualValues(t, 3, n)

		admin, err := f.accounts.ByEmail(context.Background(), ranger.DevAdminEmail)
		require.Nil(t, err)
		require.Equal(t, ridewitus.RoleAdmin, admin.Role)
	})

	t.Run("Testing", func(t *testing.T) {
		// Arrange
		f := newFixture(t, ridewitus.Testing)
		rng, err := ranger.New(f.opts...)
		require.Nil(t, err)

		// Act
		report, err := rng.Seed(context.Background())

		// Assert
		require.Nil(t, err)
		require.Equal(t, ranger.SeedReport{Pricing: true}, report)

		_, err = f.accounts.ByEmail(context.Background(), ranger.DevAdminEmail)
		require.ErrorIs(t, err, ridewitus.ErrNotFound)
	})
}
