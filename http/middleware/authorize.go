package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/http/resp"
)

// PublicPaths lists the paths reachable without a session.
type PublicPaths struct {
	// Exact paths match the request path in full.
	Exact []string

	// Prefixes match the start of the request path.
	Prefixes []string
}

// DefaultPublicPaths returns the paths anonymous agents may request.
func DefaultPublicPaths() PublicPaths {
	return PublicPaths{
		Exact: []string{
			"/",
			"/login",
			"/signup",
			"/api/auth/login",
			"/api/auth/register",
			"/api/auth/signout",
			"/api/pricing",
			"/healthz",
		},
		Prefixes: []string{"/assets/", "/favicon.ico"},
	}
}

// Allows asserts whether path is public.
func (pp PublicPaths) Allows(path string) bool {
	if slices.Contains(pp.Exact, path) {
		return true
	}

	for _, p := range pp.Prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}

// RequireAuthed returns a middleware.Adapter that requires an identity on every non-public path.
// An identity means SessionGateway verified the session cookie.
//
// When no identity is present, API callers (paths under /api/ or "Accept: application/json")
// get 401 with errorCode NOT_AUTHENTICATED.
// Other callers are redirected to loginURL, passing the requested path as the "from" query param.
func RequireAuthed(public PublicPaths, loginURL string) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public.Allows(r.URL.Path) {
				handler.ServeHTTP(w, r)
				return
			}

			if _, ok := CurrentIdentity(r.Context()); ok {
				handler.ServeHTTP(w, r)
				return
			}

			if wantsJSON(r) {
				writeJSONErr(w, http.StatusUnauthorized, ridewitus.CodeNotAuthenticated, "Not authenticated")
				return
			}

			http.Redirect(w, r, loginURL+"?from="+url.QueryEscape(r.URL.Path), http.StatusTemporaryRedirect)
		})
	}
}

// RequireRole returns a middleware.Adapter passing only those requests
// whose current Account holds one of roles.
//
// Others get 403 with errorCode UNAUTHORIZED.
func RequireRole(d *resp.Responder, roles ...ridewitus.Role) Adapter {
	forbidden := ridewitus.NewCodedError(ridewitus.CodeUnauthorized, ridewitus.ErrForbidden, "Unauthorized")

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := ridewitus.CurrentAccount(r.Context())
			if !ok {
				d.Err(w, r, ridewitus.NewCodedError(ridewitus.CodeNotAuthenticated, ridewitus.ErrNotAuthenticated, "Not authenticated"))
				return
			}

			if !slices.Contains(roles, a.Role) {
				d.Err(w, r, forbidden)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}

// writeJSONErr writes the error schema resp.Responder uses
// for those middlewares running without one.
func writeJSONErr(w http.ResponseWriter, code int, ec ridewitus.ErrorCode, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `","errorCode":"` + ec.String() + `"}`))
}
