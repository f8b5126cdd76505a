package middleware

import (
	"net/http"

	"github.com/xy-planning-network/ridewitus"
)

// RequestIDHeader echoes the request ID back to the client.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under ridewitus.RequestIDKey
// and echoes it in the X-Request-Id response header.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ridewitus.NewRequestIDContext(r.Context())
			w.Header().Set(RequestIDHeader, ridewitus.RequestID(ctx))
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
