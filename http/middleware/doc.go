/*
The middleware package defines what a middleware is in ridewitus and the set of middlewares
every request passes through.

The available middlewares are:
  - CORS
  - ForceHTTPS
  - Idempotent
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID
  - RequireAuthed
  - RequireRole
  - SessionGateway

ranger assembles the default chain in this order:

	vs := middleware.NewVisitors(rps, burst)
	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(httpLogger),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.CORS(baseURL),
		middleware.SessionGateway(tokens, accounts, env),
		middleware.RequireAuthed(middleware.DefaultPublicPaths(), "/login"),
	}
*/
package middleware
