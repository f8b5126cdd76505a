package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/ridewitus"
)

// ForceHTTPS redirects HTTP requests to HTTPS outside of Development and Testing.
//
// The "X-Forwarded-Proto" is used to check whether HTTP was requested,
// since the server runs behind a TLS-terminating proxy.
// /healthz is exempt so load balancers can probe over plain HTTP.
func ForceHTTPS(env ridewitus.Environment) Adapter {
	if env.IsDevelopment() || env.IsTesting() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Forwarded-Proto") == "https" || r.URL.Path == "/healthz" {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
