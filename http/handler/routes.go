package handler

import (
	"net/http"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/http/middleware"
	"github.com/xy-planning-network/ridewitus/http/router"
)

// Routes registers every endpoint on rt.
//
// Authentication is enforced by the stack rt applies on every request;
// Routes layers role checks and idempotency on top.
func (h *Handler) Routes(rt *router.Router) {
	rt.HandleRoutes([]router.Route{
		{Path: "/healthz", Method: http.MethodGet, Handler: h.Health},

		{Path: "/api/auth/register", Method: http.MethodPost, Handler: h.Register},
		{Path: "/api/auth/login", Method: http.MethodPost, Handler: h.Login},
		{Path: "/api/auth/signout", Method: http.MethodPost, Handler: h.SignOut},
		{Path: "/api/auth/me", Method: http.MethodGet, Handler: h.Me},
		{Path: "/api/auth/profile", Method: http.MethodPut, Handler: h.UpdateProfile},
		{Path: "/api/auth/password", Method: http.MethodPut, Handler: h.ChangePassword},
		{Path: "/api/auth/preferences", Method: http.MethodPut, Handler: h.SetPreferences},
		{Path: "/api/auth/account", Method: http.MethodDelete, Handler: h.DeleteAccount},

		{Path: "/api/activities", Method: http.MethodGet, Handler: h.ListActivities},
		{Path: "/api/activities", Method: http.MethodPost, Handler: h.CreateActivity},
		{Path: "/api/activities", Method: http.MethodDelete, Handler: h.ClearActivities},
		{Path: "/api/activities/stats", Method: http.MethodGet, Handler: h.Stats},
		{Path: "/api/activities/export", Method: http.MethodGet, Handler: h.ExportCSV},
		{Path: "/api/activities/import", Method: http.MethodPost, Handler: h.ImportCSV},
		{Path: "/api/activities/{id}", Method: http.MethodPut, Handler: h.UpdateActivity},
		{Path: "/api/activities/{id}", Method: http.MethodDelete, Handler: h.DeleteActivity},

		{Path: "/api/sync/upload", Method: http.MethodPost, Handler: h.SyncUpload},
		{Path: "/api/sync/download", Method: http.MethodGet, Handler: h.SyncDownload},

		{Path: "/api/pricing", Method: http.MethodGet, Handler: h.ListPricing},

		{
			Path:        "/api/subscription/checkout",
			Method:      http.MethodPost,
			Handler:     h.Checkout,
			Middlewares: []middleware.Adapter{middleware.Idempotent(h.Idempotency)},
		},
	})

	admin := rt.Subrouter("/api/admin", middleware.RequireRole(h.Responder, ridewitus.RoleManager, ridewitus.RoleAdmin))
	admin.HandleRoutes([]router.Route{
		{Path: "/users", Method: http.MethodGet, Handler: h.ListAccounts},
		{Path: "/users", Method: http.MethodPost, Handler: h.CreateAccount},
		{Path: "/users/{id}", Method: http.MethodPut, Handler: h.UpdateAccount},
		{Path: "/users/{id}", Method: http.MethodDelete, Handler: h.RemoveAccount},
		{
			Path:        "/pricing",
			Method:      http.MethodPut,
			Handler:     h.ReplacePricing,
			Middlewares: []middleware.Adapter{middleware.RequireRole(h.Responder, ridewitus.RoleAdmin)},
		},
	})

	rt.HandleNotFound(h.Responder)
}
