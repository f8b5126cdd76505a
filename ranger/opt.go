package ranger

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/billing"
	"github.com/xy-planning-network/ridewitus/logger"
	"github.com/xy-planning-network/ridewitus/postgres"
)

// A RangerOption configures a *Ranger under construction.
// Components an option supplies are used as is;
// New builds the rest from environment variables.
type RangerOption func(rng *Ranger) error

// A BillingClient is the payment provider, used for checkout and account deletion.
type BillingClient interface {
	billing.Client
	billing.Canceler
}

// WithBilling uses c instead of Stripe or the stub.
func WithBilling(c BillingClient) RangerOption {
	return func(rng *Ranger) error {
		if c == nil {
			return errors.New("nil BillingClient")
		}

		rng.billing = c
		return nil
	}
}

// WithContext exposes the provided context.Context to the app.
// Cancelling ctx stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		if ctx == nil {
			return errors.New("nil context")
		}

		rng.ctx = ctx
		return nil
	}
}

// WithDB uses db for every store.
//
// WithDB assumes a connection has already been established.
func WithDB(db *postgres.DB) RangerOption {
	return func(rng *Ranger) error {
		rng.db = db
		return nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	return func(rng *Ranger) error {
		e := ridewitus.Environment(envVar)
		if e.Valid() != nil {
			e = ridewitus.EnvVarOrEnv(EnvironmentEnvVar, ridewitus.Development)
		}

		rng.env = e
		return nil
	}
}

// WithLogger uses l as the app logger.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithLogOutput writes the logs the Ranger constructs itself to w.
func WithLogOutput(w io.Writer) RangerOption {
	return func(rng *Ranger) error {
		rng.logOut = w
		return nil
	}
}

// WithRedis uses client for token revocation and idempotent responses.
func WithRedis(client *redis.Client) RangerOption {
	return func(rng *Ranger) error {
		rng.redis = client
		return nil
	}
}

// WithServer serves the app on s.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		rng.srv = s
		return nil
	}
}

// WithStores runs the services on s instead of a Postgres connection.
func WithStores(s Stores) RangerOption {
	return func(rng *Ranger) error {
		if s.Accounts == nil || s.Activities == nil || s.Pricing == nil {
			return errors.New("incomplete Stores")
		}

		rng.stores = &s
		return nil
	}
}
