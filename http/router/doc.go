/*
Package router defines how the HTTP server routes requests.

A [Router] leverages a standardized data model, a [Route],
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.HandlerFunc] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear,
after the stack applied to every request.

Every handler is wrapped by middleware.ReportPanic.
*/
package router
