package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/activity"
	"github.com/xy-planning-network/ridewitus/auth"
	"github.com/xy-planning-network/ridewitus/billing"
	"github.com/xy-planning-network/ridewitus/directory"
	"github.com/xy-planning-network/ridewitus/http/handler"
	"github.com/xy-planning-network/ridewitus/http/req"
	"github.com/xy-planning-network/ridewitus/http/resp"
	"github.com/xy-planning-network/ridewitus/http/router"
	"github.com/xy-planning-network/ridewitus/logger"
	"github.com/xy-planning-network/ridewitus/postgres"
	"github.com/xy-planning-network/ridewitus/pricing"
)

// The development admin account provisioned by Seed.
const (
	DevAdminEmail    = "admin@example.com"
	DevAdminName     = "Admin User"
	DevAdminPassword = "admin123"
)

// An AccountStore persists Accounts along with their billing references.
type AccountStore interface {
	directory.Store
	billing.RefSetter
}

// Stores are the persistence adapters the services run on.
type Stores struct {
	Accounts   AccountStore
	Activities activity.Store
	Pricing    pricing.Store
}

// postgresStores backs every service with db.
func postgresStores(db *postgres.DB) *Stores {
	return &Stores{
		Accounts:   postgres.NewAccountStore(db),
		Activities: postgres.NewActivityStore(db),
		Pricing:    postgres.NewPricingStore(db),
	}
}

// A Ranger manages and exposes all components of the app to one another.
type Ranger struct {
	*router.Router

	Accounts   *directory.Service
	Activities *activity.Service
	Pricing    *pricing.Service

	billing BillingClient
	ctx     context.Context
	db      *postgres.DB
	env     ridewitus.Environment
	httpLog *slog.Logger
	l       logger.Logger
	logOut  io.Writer
	redis   *redis.Client
	srv     *http.Server
	stores  *Stores
	url     *url.URL
}

// New constructs a Ranger from the provided options.
// Whatever the options leave unset is configured from environment variables.
func New(opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{
		ctx:    context.Background(),
		env:    ridewitus.EnvVarOrEnv(EnvironmentEnvVar, ridewitus.Development),
		logOut: os.Stdout,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %s", ridewitus.ErrBadConfig, err)
		}
	}

	if err := r.build(); err != nil {
		if errors.Is(err, ridewitus.ErrBadConfig) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %s", ridewitus.ErrBadConfig, err)
	}

	return r, nil
}

// build fills in every component an option did not supply and wires them together.
func (r *Ranger) build() error {
	r.url = ridewitus.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL)
	if r.url == nil {
		return fmt.Errorf("%s is not a valid URL", BaseURLEnvVar)
	}

	if r.l == nil {
		r.l = NewAppLogger(r.env, r.logOut)
	}
	r.httpLog = newHTTPLogger(r.env, r.logOut)

	var err error
	if r.redis == nil {
		if r.redis, err = newRedis(r.ctx); err != nil {
			return err
		}
	}

	tokens, err := newTokenService(r.redis)
	if err != nil {
		return err
	}

	if r.stores == nil {
		if r.db == nil {
			if r.db, err = Connect(r.env, slog.Default()); err != nil {
				return err
			}
		}

		r.stores = postgresStores(r.db)
	}

	if r.billing == nil {
		if r.billing, err = newBillingClient(r.env, r.url); err != nil {
			return err
		}
	}

	r.Accounts = directory.NewService(r.stores.Accounts, auth.NewHasher(), tokens, r.billing, r.l)
	r.Activities = activity.NewService(r.stores.Activities, r.l)
	r.Pricing = pricing.NewService(r.stores.Pricing, r.l)

	h := &handler.Handler{
		Responder: resp.NewResponder(
			resp.WithEnv(r.env),
			resp.WithLogger(r.l),
			resp.WithRootUrl(r.url.String()),
		),
		Accounts:    r.Accounts,
		Activities:  r.Activities,
		Billing:     billing.NewCheckout(r.billing, r.Pricing, r.stores.Accounts, r.l),
		Env:         r.env,
		Idempotency: newIdempotencyCache(r.redis),
		Logger:      r.l,
		Parser:      req.NewParser(),
		Pricing:     r.Pricing,
		Tokens:      tokens,
	}
	if r.db != nil {
		h.Ping = r.db.Ping
	}

	r.Router = router.New(r.env, "")
	r.OnEveryRequest(defaultMiddlewares(r.env, r.url, r.httpLog, tokens, r.Accounts)...)
	h.Routes(r.Router)

	if r.srv == nil {
		r.srv = defaultServer(r.ctx)
	}
	r.srv.Handler = r.Router

	r.l.Debug(fmt.Sprintf("configured %s app at %s", r.env, r.url), nil)

	return nil
}

func (r *Ranger) EmitEnv() ridewitus.Environment { return r.env }
func (r *Ranger) EmitLogger() logger.Logger      { return r.l }

// A SeedReport tells which records Seed wrote.
type SeedReport struct {
	Pricing bool
	Admin   bool
}

// Seed fills an empty pricing table with the default tiers.
// In development, Seed also provisions the admin account.
func (r *Ranger) Seed(ctx context.Context) (SeedReport, error) {
	var report SeedReport

	seeded, err := r.Pricing.Seed(ctx, PriceRefs())
	if err != nil {
		return report, fmt.Errorf("failed seeding pricing: %w", err)
	}
	report.Pricing = seeded

	if !r.env.IsDevelopment() {
		return report, nil
	}

	_, created, err := r.Accounts.Provision(ctx, directory.AdminCreate{
		Name:     DevAdminName,
		Email:    DevAdminEmail,
		Password: DevAdminPassword,
		Role:     ridewitus.RoleAdmin,
	})
	if err != nil {
		return report, fmt.Errorf("failed provisioning admin: %w", err)
	}
	report.Admin = created

	return report, nil
}

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, cancel := signal.NotifyContext(
		r.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		r.l.Error(err.Error(), nil)
		return err
	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server and releases its connections.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.l.Warn("failed closing redis client", &logger.LogContext{Error: err})
		}
	}

	if r.db != nil {
		if sqlDB, err := r.db.DB().DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
