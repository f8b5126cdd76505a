package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/activity"
	"github.com/xy-planning-network/ridewitus/activity/activitytest"
	"github.com/xy-planning-network/ridewitus/auth"
	"github.com/xy-planning-network/ridewitus/billing"
	"github.com/xy-planning-network/ridewitus/directory"
	"github.com/xy-planning-network/ridewitus/directory/directorytest"
	"github.com/xy-planning-network/ridewitus/http/cookie"
	"github.com/xy-planning-network/ridewitus/http/handler"
	"github.com/xy-planning-network/ridewitus/http/middleware"
	"github.com/xy-planning-network/ridewitus/http/req"
	"github.com/xy-planning-network/ridewitus/http/resp"
	"github.com/xy-planning-network/ridewitus/http/router"
	"github.com/xy-planning-network/ridewitus/logger"
	"github.com/xy-planning-network/ridewitus/pricing"
	"github.com/xy-planning-network/ridewitus/pricing/pricingtest"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "password1"

type fixture struct {
	rt         *router.Router
	accounts   *directorytest.Store
	activities *activitytest.Store
	tiers      *pricingtest.Store
	tokens     *auth.TokenService
	hasher     *auth.Hasher
}

func newFixture(t *testing.T, tiers ...ridewitus.PricingTier) fixture {
	t.Helper()

	f := fixture{
		accounts:   directorytest.NewStore(),
		activities: activitytest.NewStore(),
		tiers:      pricingtest.NewStore(tiers...),
		tokens:     auth.NewTokenService("test-secret", auth.WithRevoker(auth.NewMemoryRevoker())),
		hasher:     &auth.Hasher{Cost: bcrypt.MinCost},
	}

	l := logger.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	accounts := directory.NewService(f.accounts, f.hasher, f.tokens, billing.Stub{}, l)

	h := &handler.Handler{
		Responder:   resp.NewResponder(resp.WithEnv(ridewitus.Testing), resp.WithLogger(l)),
		Accounts:    accounts,
		Activities:  activity.NewService(f.activities, l),
		Billing:     billing.NewCheckout(billing.Stub{}, f.tiers, f.accounts, l),
		Env:         ridewitus.Testing,
		Idempotency: middleware.NewIdemResMap(),
		Logger:      l,
		Parser:      req.NewParser(),
		Pricing:     pricing.NewService(f.tiers, l),
		Tokens:      f.tokens,
	}

	f.rt = router.New(ridewitus.Testing, "")
	f.rt.OnEveryRequest(
		middleware.SessionGateway(f.tokens, accounts, ridewitus.Testing),
		middleware.RequireAuthed(middleware.DefaultPublicPaths(), "/login"),
	)
	h.Routes(f.rt)

	return f
}

// signedIn stores an Account with role and status, returning it with a session token.
func (f fixture) signedIn(t *testing.T, role ridewitus.Role, status ridewitus.SubscriptionStatus) (ridewitus.Account, string) {
	t.Helper()

	digest, err := f.hasher.Hash(testPassword)
	require.Nil(t, err)

	a := ridewitus.Account{
		ID:                 uuid.New(),
		Email:              role.String() + "-" + uuid.NewString()[:8] + "@example.com",
		Name:               "Test " + role.String(),
		Password:           digest,
		Role:               role,
		SubscriptionStatus: status,
	}
	require.Nil(t, f.accounts.Create(context.Background(), &a))

	token, err := f.tokens.Issue(a.ID, a.Role)
	require.Nil(t, err)

	return a, token
}

func (f fixture) do(t *testing.T, method, path, body, token string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		r.AddCookie(&http.Cookie{Name: cookie.Name, Value: token})
	}

	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	f.rt.ServeHTTP(rec, r)

	return rec
}

type errBody struct {
	Error     string `json:"error"`
	ErrorCode string `json:"errorCode"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.Nil(t, json.NewDecoder(rec.Body).Decode(&out))

	return out
}

func requireErrCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code ridewitus.ErrorCode) {
	t.Helper()

	require.Equal(t, status, rec.Code)
	require.Equal(t, code.String(), decode[errBody](t, rec).ErrorCode)
}
