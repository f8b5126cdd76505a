package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/http/middleware"
	"github.com/xy-planning-network/ridewitus/http/resp"
)

const assetsPath = "/assets/"

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to their handlers.
type Router struct {
	Env           ridewitus.Environment
	everyReqStack []middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
//
// When assetsDir is set, files in it are served under /assets/.
func New(env ridewitus.Environment, assetsDir string) *Router {
	r := mux.NewRouter()
	if assetsDir != "" {
		r.PathPrefix(assetsPath).Handler(middleware.Chain(
			http.StripPrefix(assetsPath, http.FileServer(http.Dir(assetsDir))),
			cacheControlMiddleware(),
		))
	}

	return &Router{Env: env, r: r}
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the [*resp.Responder] to answer requests
// no registered Route matches, or matches only by path.
func (r *Router) HandleNotFound(d *resp.Responder) {
	notFound := ridewitus.NewCodedError(ridewitus.CodeNotFound, ridewitus.ErrNotFound, "Not found")
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(func(w http.ResponseWriter, req *http.Request) {
			d.Err(w, req, notFound)
		}),
		r.everyReqStack...,
	)

	r.r.MethodNotAllowedHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(func(w http.ResponseWriter, req *http.Request) {
			_ = d.Json(w, req, resp.Code(http.StatusMethodNotAllowed))
		}),
		r.everyReqStack...,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares)+len(route.Middlewares))
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(middleware.ReportPanic(r.Env)(route.Handler), mws...)
		r.r.Handle(route.Path, handler).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Call OnEveryRequest before registering routes.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/admin") handles requests to endpoints like /api/admin/users
func (r *Router) Subrouter(prefix string, middlewares ...middleware.Adapter) *Router {
	stack := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares))
	stack = append(stack, r.everyReqStack...)
	stack = append(stack, middlewares...)

	return &Router{
		Env:           r.Env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		everyReqStack: stack,
	}
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
