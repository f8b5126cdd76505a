package router_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/http/middleware"
	"github.com/xy-planning-network/ridewitus/http/resp"
	"github.com/xy-planning-network/ridewitus/http/router"
)

func header(key, val string) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, val)
			h.ServeHTTP(w, r)
		})
	}
}

func teapot(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) }

func TestRouterHandleRoutes(t *testing.T) {
	// Arrange
	rt := router.New(ridewitus.Testing, "")
	rt.OnEveryRequest(header("X-Order", "every"))
	rt.HandleRoutes(
		[]router.Route{{Path: "/api/x", Method: http.MethodGet, Handler: teapot, Middlewares: []middleware.Adapter{header("X-Order", "route")}}},
		header("X-Order", "group"),
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/x", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, []string{"every", "group", "route"}, w.Header().Values("X-Order"))
}

func TestRouterSubrouter(t *testing.T) {
	// Arrange
	rt := router.New(ridewitus.Testing, "")
	rt.OnEveryRequest(header("X-Order", "every"))
	admin := rt.Subrouter("/api/admin", header("X-Order", "admin"))
	admin.Handle(router.Route{Path: "/users", Method: http.MethodGet, Handler: teapot})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, []string{"every", "admin"}, w.Header().Values("X-Order"))
}

func TestRouterHandleNotFound(t *testing.T) {
	// Arrange
	rt := router.New(ridewitus.Testing, "")
	rt.Handle(router.Route{Path: "/api/x", Method: http.MethodGet, Handler: teapot})
	rt.HandleNotFound(resp.NewResponder())

	t.Run("Not-Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), `"errorCode":"NOT_FOUND"`)
	})

	t.Run("Method-Not-Allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		rt.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/x", nil))
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestRouterAssets(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("ok"), 0o600))

	rt := router.New(ridewitus.Testing, dir)
	w := httptest.NewRecorder()

	// Act
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
	require.Equal(t, "max-age=2592000", w.Header().Get("Cache-Control"))
}
