package resp

import (
	"net/url"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithEnv sets the environment the Responder runs in.
// Only in Development do error responses carry details.
func WithEnv(env ridewitus.Environment) func(*Responder) {
	return func(d *Responder) {
		d.env = env
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
func WithLogger(log logger.Logger) func(*Responder) {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for redirecting.
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes http://localhost:3000
func WithRootUrl(u string) func(*Responder) {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("http://localhost:3000")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}
