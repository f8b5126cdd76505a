/*
Package ranger initializes and manages the RideWitUS web server with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].
[New] connects to Postgres, runs [postgres.Migrations],
and wires the services, handlers and middlewares together.

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000).
Stop that web server with [*Ranger.Shutdown],
cancel the context passed with [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

The app is configured through environment variables.
Required values can be discovered by inspecting the errors [New] returns.

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - DATABASE_HOST: the host the database is running on; default: localhost
  - DATABASE_MAX_IDLE_CXNS: the number of idle database connections kept open; default: 1
  - DATABASE_NAME: the name of the database
  - DATABASE_PASSWORD: the password for authenticating a connection to the database
  - DATABASE_PORT: the port the database is listening on; default: 5432
  - DATABASE_SSLMODE: the sslmode of the database connection; default: prefer
  - DATABASE_URL: the fully-qualified connection string for connecting to the database; replaces all other DATABASE_* env vars
  - DATABASE_USER: the user for authenticating a connection to the database
  - DATABASE_TEST_*: the same as DATABASE_*, used when ENVIRONMENT is TESTING
  - ENVIRONMENT: the environment the application is running in; default: DEVELOPMENT; cf. [ridewitus.Environment]
  - JWT_SECRET: the key session tokens are signed with; required
  - LOG_JSON: whether to log JSON in DEVELOPMENT; every other environment always does
  - LOG_LEVEL: the level at which to begin logging; default: INFO
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT_BURST: the number of requests an IP address may make at once; default: 20
  - RATE_LIMIT_RPS: the number of requests per second an IP address may sustain; default: 5
  - REDIS_URL: the Redis server remembering revoked tokens and idempotent responses; default: in memory
  - SENTRY_DSN: the Sentry project warnings and errors are reported to
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 10s
  - STRIPE_PRICE_ANNUAL: the Stripe price the annual tier is seeded with
  - STRIPE_PRICE_MONTHLY: the Stripe price the monthly tier is seeded with
  - STRIPE_SECRET_KEY: the Stripe API key; required outside DEMO, DEVELOPMENT and TESTING
*/
package ranger
