package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/auth"
	"github.com/xy-planning-network/ridewitus/http/cookie"
)

// An AccountLoader retrieves the Account a session token names.
type AccountLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (ridewitus.Account, error)
}

// SessionGateway resolves the session cookie into the current Account.
//
// A request without a cookie continues anonymously.
// A cookie that fails verification, or names an Account that no longer exists,
// is cleared and the request continues anonymously.
// When the Account cannot be loaded for any other reason,
// the cookie is kept and the request fails with 500 and errorCode UNKNOWN_ERROR.
// Otherwise, the auth.Identity is stored under ridewitus.IdentityKey
// and the *ridewitus.Account under ridewitus.CurrentUserKey.
//
// SessionGateway authorizes nothing: RequireAuthed and RequireRole do.
func SessionGateway(tokens auth.TokenVerifier, loader AccountLoader, env ridewitus.Environment) Adapter {
	if tokens == nil || loader == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookie.Token(r)
			if token == "" {
				handler.ServeHTTP(w, r)
				return
			}

			id, err := tokens.Verify(r.Context(), token)
			if err != nil {
				cookie.Clear(w, env)
				handler.ServeHTTP(w, r)
				return
			}

			account, err := loader.GetByID(r.Context(), id.AccountID)
			if errors.Is(err, ridewitus.ErrNotFound) {
				cookie.Clear(w, env)
				handler.ServeHTTP(w, r)
				return
			}
			if err != nil {
				writeJSONErr(w, http.StatusInternalServerError, ridewitus.CodeUnknown, "Something went wrong")
				return
			}

			w.Header().Add("Cache-Control", "no-store")
			w.Header().Add("Pragma", "no-cache")

			ctx := context.WithValue(r.Context(), ridewitus.IdentityKey, id)
			ctx = ridewitus.NewAccountContext(ctx, &account)
			handler.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

// CurrentIdentity retrieves the auth.Identity SessionGateway stored in ctx.
func CurrentIdentity(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(ridewitus.IdentityKey).(auth.Identity)
	return id, ok
}
