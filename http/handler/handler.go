// Package handler answers the HTTP API.
//
// Each handler resolves the current Account from the request context,
// decodes its payload with a *req.Parser,
// calls into the domain services,
// and renders the outcome through the embedded *resp.Responder.
package handler

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/activity"
	"github.com/xy-planning-network/ridewitus/billing"
	"github.com/xy-planning-network/ridewitus/directory"
	"github.com/xy-planning-network/ridewitus/http/cookie"
	"github.com/xy-planning-network/ridewitus/http/middleware"
	"github.com/xy-planning-network/ridewitus/http/req"
	"github.com/xy-planning-network/ridewitus/http/resp"
	"github.com/xy-planning-network/ridewitus/logger"
	"github.com/xy-planning-network/ridewitus/pricing"
)

// A TokenRevoker invalidates a session token before its expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// Handler shares the initialized Responder and services across all responses.
type Handler struct {
	*resp.Responder

	Accounts    *directory.Service
	Activities  *activity.Service
	Billing     *billing.Checkout
	Env         ridewitus.Environment
	Idempotency middleware.IdempotencyCacher
	Logger      logger.Logger
	Parser      *req.Parser
	Ping        func(context.Context) error
	Pricing     *pricing.Service
	Tokens      TokenRevoker
}

var errNotAuthenticated = ridewitus.NewCodedError(ridewitus.CodeNotAuthenticated, ridewitus.ErrNotAuthenticated, "Not authenticated")

// currentAccount retrieves the Account middleware.SessionGateway resolved for r.
func (h *Handler) currentAccount(r *http.Request) (*ridewitus.Account, error) {
	a, ok := ridewitus.CurrentAccount(r.Context())
	if !ok {
		return nil, errNotAuthenticated
	}

	return a, nil
}

// parseBody decodes r's JSON body into structPtr.
func (h *Handler) parseBody(r *http.Request, structPtr any) error {
	if r.Body == nil {
		return req.ErrMalformed
	}
	defer r.Body.Close()

	return h.Parser.ParseBody(r.Body, structPtr)
}

// ok answers a mutation that has nothing else to report.
func (h *Handler) ok(w http.ResponseWriter, r *http.Request) {
	if err := h.Json(w, r, resp.Data(map[string]bool{"ok": true})); err != nil {
		h.Err(w, r, err)
	}
}

// signIn sets the session cookie and renders the account alongside its token.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, a ridewitus.Account, token string, code int) {
	cookie.SetToken(w, token, h.Env)

	data := map[string]any{"account": a, "token": token}
	if err := h.Json(w, r, resp.Code(code), resp.User(&a), resp.Data(data)); err != nil {
		h.Err(w, r, err)
	}
}

// signOut revokes the session token r carries, if any, and clears the cookie.
// Failing to revoke is logged, not returned.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if token := cookie.Token(r); token != "" && h.Tokens != nil {
		if err := h.Tokens.Revoke(r.Context(), token); err != nil {
			h.Logger.Warn("failed revoking session token", &logger.LogContext{Request: r, Error: err})
		}
	}

	cookie.Clear(w, h.Env)
}

// Health reports the server is up and, when configured, that the database answers.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if h.Ping != nil {
		if err := h.Ping(r.Context()); err != nil {
			h.Logger.Error("health check failed", &logger.LogContext{Request: r, Error: err})
			status["status"] = "unavailable"
			if err := h.Json(w, r, resp.Code(http.StatusServiceUnavailable), resp.Data(status)); err != nil {
				h.Err(w, r, err)
			}

			return
		}
	}

	if err := h.Json(w, r, resp.Data(status)); err != nil {
		h.Err(w, r, err)
	}
}
