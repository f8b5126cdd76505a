package ranger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lmittmann/tint"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/auth"
	"github.com/xy-planning-network/ridewitus/billing"
	"github.com/xy-planning-network/ridewitus/http/middleware"
	"github.com/xy-planning-network/ridewitus/logger"
	"github.com/xy-planning-network/ridewitus/postgres"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// Environment defaults
	EnvironmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLvl   = slog.LevelInfo
	logJSONEnvVar   = "LOG_JSON"
	defaultLogJSON  = false
	sentryDsnEnvVar = "SENTRY_DSN"

	// Database defaults
	dbHostEnvVar         = "DATABASE_HOST"
	defaultDBHost        = "localhost"
	dbNameEnvVar         = "DATABASE_NAME"
	dbPassEnvVar         = "DATABASE_PASSWORD"
	dbPortEnvVar         = "DATABASE_PORT"
	defaultDBPort        = "5432"
	dbSSLModeEnvVar      = "DATABASE_SSLMODE"
	defaultDBSSLMode     = "prefer"
	dbURLEnvVar          = "DATABASE_URL"
	dbUserEnvVar         = "DATABASE_USER"
	dbMaxIdleCxnsEnvVar  = "DATABASE_MAX_IDLE_CXNS"
	defaultDBMaxIdleCxns = 1

	// Auth defaults
	JWTSecretEnvVar = "JWT_SECRET"

	// Redis defaults
	redisURLEnvVar = "REDIS_URL"

	// Billing defaults
	StripeKeyEnvVar          = "STRIPE_SECRET_KEY"
	StripePriceMonthlyEnvVar = "STRIPE_PRICE_MONTHLY"
	StripePriceAnnualEnvVar  = "STRIPE_PRICE_ANNUAL"

	// Rate limit defaults
	rateLimitRPSEnvVar   = "RATE_LIMIT_RPS"
	rateLimitBurstEnvVar = "RATE_LIMIT_BURST"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 10 * time.Second

	// Test defaults
	dbTestHostEnvVar     = "DATABASE_TEST_HOST"
	defaultDBTestHost    = "localhost"
	dbTestNameEnvVar     = "DATABASE_TEST_NAME"
	dbTestPassEnvVar     = "DATABASE_TEST_PASSWORD"
	dbTestPortEnvVar     = "DATABASE_TEST_PORT"
	defaultDBTestPort    = "5432"
	dbTestUserEnvVar     = "DATABASE_TEST_USER"
	dbTestSSLModeEnvVar  = "DATABASE_TEST_SSLMODE"
	defaultDBTestSSLMode = "prefer"
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// NewPostgresConfig constructs a *postgres.CxnConfig appropriate to the given environment.
// Confer the DATABASE env vars for usage.
func NewPostgresConfig(env ridewitus.Environment) *postgres.CxnConfig {
	var cfg *postgres.CxnConfig
	url := os.Getenv(dbURLEnvVar)
	switch {
	case env.IsTesting():
		cfg = &postgres.CxnConfig{
			Host:     ridewitus.EnvVarOrString(dbTestHostEnvVar, defaultDBTestHost),
			IsTestDB: true,
			Name:     os.Getenv(dbTestNameEnvVar),
			Password: os.Getenv(dbTestPassEnvVar),
			Port:     ridewitus.EnvVarOrString(dbTestPortEnvVar, defaultDBTestPort),
			SSLMode:  ridewitus.EnvVarOrString(dbTestSSLModeEnvVar, defaultDBTestSSLMode),
			User:     os.Getenv(dbTestUserEnvVar),
		}

	case url == "":
		cfg = &postgres.CxnConfig{
			Host:     ridewitus.EnvVarOrString(dbHostEnvVar, defaultDBHost),
			Name:     os.Getenv(dbNameEnvVar),
			Password: os.Getenv(dbPassEnvVar),
			Port:     ridewitus.EnvVarOrString(dbPortEnvVar, defaultDBPort),
			SSLMode:  ridewitus.EnvVarOrString(dbSSLModeEnvVar, defaultDBSSLMode),
			User:     os.Getenv(dbUserEnvVar),
		}

	default:
		cfg = &postgres.CxnConfig{URL: url}
	}

	cfg.MaxIdleCxns = ridewitus.EnvVarOrInt(dbMaxIdleCxnsEnvVar, defaultDBMaxIdleCxns)

	return cfg
}

// Connect opens the database configured for env and runs every migration.
func Connect(env ridewitus.Environment, l *slog.Logger) (*postgres.DB, error) {
	return postgres.Connect(NewPostgresConfig(env), postgres.Migrations, env, l)
}

// PriceRefs reads the billing price references for the premium tiers.
// Unset references are left out.
func PriceRefs() map[string]string {
	refs := make(map[string]string)
	if ref := os.Getenv(StripePriceMonthlyEnvVar); ref != "" {
		refs["monthly"] = ref
	}

	if ref := os.Getenv(StripePriceAnnualEnvVar); ref != "" {
		refs["annual"] = ref
	}

	return refs
}

// NewAppLogger constructs a [logger.Logger] configured for use in the application.
//
// When SENTRY_DSN is set, warnings and errors are also reported to Sentry.
func NewAppLogger(env ridewitus.Environment, output io.Writer) logger.Logger {
	slogger := newSlogger(ridewitus.AppLogKind, env, output)
	var l logger.Logger = logger.New(slogger)
	l.Debug("setting up app logger", nil)
	if dsn := os.Getenv(sentryDsnEnvVar); dsn != "" {
		l = logger.NewSentryLogger(env, l, dsn)
		l.Debug("using SentryLogger for app logger", nil)
	}

	slog.SetDefault(slogger)

	return l
}

// newHTTPLogger constructs a [*log/slog.Logger] for use in HTTP request logging.
func newHTTPLogger(env ridewitus.Environment, output io.Writer) *slog.Logger {
	sl := newSlogger(ridewitus.HTTPLogKind, env, output)
	sl.Debug("setting up HTTP request logger")

	return sl
}

// newSlogger toggles contructing the specific [*log/slog.Logger]
// from the given parameters.
func newSlogger(kind slog.Value, env ridewitus.Environment, out io.Writer) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(ridewitus.EnvVarOrLogLevel(logLevelEnvVar, defaultLogLvl))

	useJSON := !env.IsDevelopment() || ridewitus.EnvVarOrBool(logJSONEnvVar, defaultLogJSON)
	isHTTP := kind.String() == ridewitus.HTTPLogKind.String()

	var handler slog.Handler
	switch {
	case isHTTP:
		opts := &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		}

		if useJSON {
			handler = slog.NewJSONHandler(out, opts)
		} else {
			handler = slog.NewTextHandler(out, opts)
		}

	case useJSON:
		opts := &slog.HandlerOptions{
			AddSource:   true,
			Level:       lvl,
			ReplaceAttr: logger.TruncSourceAttr,
		}

		handler = slog.NewJSONHandler(out, opts)

	default:
		opts := &tint.Options{
			AddSource:  true,
			Level:      lvl,
			TimeFormat: "2006-01-02 15:04:05.000",
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.ColorizeLevel(groups, a)
				return logger.TruncSourceAttr(groups, a)
			},
		}
		handler = tint.NewHandler(out, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		{Key: ridewitus.LogKindKey, Value: kind},
	})

	return slog.New(handler)
}

// newRedis connects to the Redis server REDIS_URL names.
// Without REDIS_URL, newRedis returns nil.
func newRedis(ctx context.Context) (*redis.Client, error) {
	raw := os.Getenv(redisURLEnvVar)
	if raw == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ridewitus.ErrBadConfig, redisURLEnvVar, err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("%w: could not reach redis: %s", ridewitus.ErrBadConfig, err)
	}

	return client, nil
}

// newTokenService constructs the *auth.TokenService signing with JWT_SECRET.
// Revoked tokens are remembered in Redis when available, otherwise in memory.
func newTokenService(client *redis.Client) (*auth.TokenService, error) {
	secret := os.Getenv(JWTSecretEnvVar)
	if secret == "" {
		return nil, fmt.Errorf("%w: %s is required", ridewitus.ErrBadConfig, JWTSecretEnvVar)
	}

	var revoker auth.Revoker = auth.NewMemoryRevoker()
	if client != nil {
		revoker = auth.NewRedisRevoker(client)
	}

	return auth.NewTokenService(secret, auth.WithRevoker(revoker)), nil
}

// newIdempotencyCache stores idempotent responses in Redis when available, otherwise in memory.
func newIdempotencyCache(client *redis.Client) middleware.IdempotencyCacher {
	if client != nil {
		return middleware.NewRedisCache(client)
	}

	return middleware.NewIdemResMap()
}

// newBillingClient talks to Stripe when STRIPE_SECRET_KEY is set.
// Without a key, environments that allow it use billing.Stub.
func newBillingClient(env ridewitus.Environment, baseURL *url.URL) (BillingClient, error) {
	if key := os.Getenv(StripeKeyEnvVar); key != "" {
		return billing.NewStripeClient(key, baseURL), nil
	}

	if env.CanUseServiceStub() {
		return billing.Stub{}, nil
	}

	return nil, fmt.Errorf("%w: %s is required in %s", ridewitus.ErrBadConfig, StripeKeyEnvVar, env)
}

// defaultMiddlewares lists the middlewares applied to every request, in order.
func defaultMiddlewares(
	env ridewitus.Environment,
	baseURL *url.URL,
	httpLog *slog.Logger,
	tokens auth.TokenVerifier,
	accounts middleware.AccountLoader,
) []middleware.Adapter {
	visitors := middleware.NewVisitors(
		ridewitus.EnvVarOrFloat(rateLimitRPSEnvVar, middleware.DefaultRateLimit),
		ridewitus.EnvVarOrInt(rateLimitBurstEnvVar, middleware.DefaultBurst),
	)

	return []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(httpLog),
		middleware.RateLimit(visitors),
		middleware.ForceHTTPS(env),
		middleware.CORS(baseURL.String()),
		middleware.SessionGateway(tokens, accounts, env),
		middleware.RequireAuthed(middleware.DefaultPublicPaths(), baseURL.JoinPath("login").String()),
	}
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := ridewitus.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:              port,
		IdleTimeout:       ridewitus.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadHeaderTimeout: ridewitus.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		ReadTimeout:       ridewitus.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout:      ridewitus.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
