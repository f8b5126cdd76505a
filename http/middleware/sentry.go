package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/ridewitus"
)

// ReportPanic encloses the env and returns a function that when called,
// wraps the passed in http.HandlerFunc in sentryhttp.HandleFunc
// in order to recover and report panics.
//
// Panics recovered this way answer 500.
// In Development, panics propagate as usual.
func ReportPanic(env ridewitus.Environment) func(http.HandlerFunc) http.HandlerFunc {
	if env.IsDevelopment() {
		return func(handler http.HandlerFunc) http.HandlerFunc { return handler }
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(handler http.HandlerFunc) http.HandlerFunc {
		return sh.HandleFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &statusWriter{ResponseWriter: w}
			defer func() {
				if rec := recover(); rec != nil {
					if rw.status == 0 {
						w.WriteHeader(http.StatusInternalServerError)
					}
					panic(rec)
				}
			}()

			handler(rw, r)
		})
	}
}
