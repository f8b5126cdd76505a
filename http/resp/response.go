package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	data      any
	err       error
	url       *url.URL
	user      *ridewitus.Account
}

// Authed adds resp.user from the request context.
//
// If no account can be retrieved from the context,
// it is assumed a user is not logged in and returns ErrNoUser.
func Authed() Fn {
	return func(d Responder, r *Response) error {
		return populateUser(d, r)
	}
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Json.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code according to the kind of e and renders e in place of data.
//
// Unexpected errors are logged.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e == nil {
			return nil
		}

		r.err = e
		code := ridewitus.StatusOf(e)
		if code >= http.StatusInternalServerError {
			var u logger.LogUser
			if r.user != nil {
				u = r.user
			}
			d.logger.Error(e.Error(), newLogContext(r.r, e, nil, u))
		}

		return Code(code)(d, r)
	}
}

// Param adds they query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		if d.rootUrl == nil {
			return fmt.Errorf("%w: no root url", ErrBadConfig)
		}

		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// User stores the account in the *Response.
//
// When used with Json, the account is assigned to the "currentUser" key.
func User(u *ridewitus.Account) Fn {
	return func(d Responder, r *Response) error {
		r.user = u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}
		r.url = parsed
		return nil
	}
}
