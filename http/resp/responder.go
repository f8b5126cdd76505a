package resp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/logger"
)

// GenericErrMsg is shown to clients in place of unexpected failures.
const GenericErrMsg = "Internal server error"

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Json
//	Redirect
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	env    ridewitus.Environment
	logger logger.Logger

	// Root URL the responder is listening on, also used when in an error state
	rootUrl *url.URL
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := new(Responder)
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New(slog.Default())
	}

	if d.rootUrl == nil {
		WithRootUrl("")(d)
	}

	return d
}

// CurrentUser retrieves the account set in the context.
//
// If no account is set, ErrNoUser returns.
func (doer Responder) CurrentUser(ctx context.Context) (*ridewitus.Account, error) {
	a, ok := ridewitus.CurrentAccount(ctx)
	if !ok {
		return nil, ErrNoUser
	}

	return a, nil
}

type jsonSchema struct {
	D any `json:"data,omitempty"`
	U any `json:"currentUser,omitempty"`
}

type errSchema struct {
	Msg     string              `json:"error"`
	Code    ridewitus.ErrorCode `json:"errorCode"`
	Details string              `json:"details,omitempty"`
}

// Json responds with data in JSON format, collating it from User(), Data() and setting appropriate headers.
//
// When standard 2xx codes are supplied, the JSON schema will look like this:
//
//	{
//		"currentUser": {},
//		"data": {}
//	}
//
// When Err() was applied, the schema instead looks like this:
//
//	{
//		"error": "message",
//		"errorCode": "CODE",
//		"details": "only in development"
//	}
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	var body any
	switch {
	case rr.err != nil:
		body = doer.errBody(rr.err)
	case rr.code < http.StatusOK || rr.code >= http.StatusMultipleChoices:
		body = jsonSchema{D: rr.data}
	case rr.user != nil:
		body = jsonSchema{D: rr.data, U: rr.user}
	default:
		body = jsonSchema{D: rr.data}
	}

	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rr.code)
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}

// Err responds to err in JSON, choosing the status code from the kind of err.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	if nested := doer.Json(w, r, append(opts, Err(err))...); nested != nil {
		doer.logger.Error(nested.Error(), newLogContext(r, err, nil, nil))
		http.Error(w, GenericErrMsg, http.StatusInternalServerError)
	}
}

// errBody renders err for clients.
// Unexpected failures hide their message behind GenericErrMsg.
func (doer *Responder) errBody(err error) errSchema {
	body := errSchema{Code: ridewitus.CodeOf(err)}

	var ce *ridewitus.CodedError
	switch {
	case ridewitus.StatusOf(err) >= http.StatusInternalServerError:
		body.Msg = GenericErrMsg
	case errors.As(err, &ce):
		body.Msg = ce.Msg
	default:
		body.Msg = err.Error()
	}

	if doer.env.IsDevelopment() {
		body.Details = err.Error()
	}

	return body
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return err
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData)
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE: code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless retries options that failed until either all succeed or
// no further option succeeds.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		closeBody: true,
		w:         w,
		r:         r,
	}

	redos := make([]Fn, 0)
	for _, opt := range opts {
		if err := r.Context().Err(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDone, err)
		}

		if err := opt(*doer, resp); err != nil {
			redos = append(redos, opt)
		}
	}

	// NOTE: redo shrinks redos while it makes progress.
	for n := len(redos) + 1; len(redos) > 0 && len(redos) < n; {
		n = len(redos)
		redos = doer.redo(resp, redos...)
	}

	var err error
	for _, opt := range redos {
		if nested := opt(*doer, resp); nested != nil {
			if err == nil {
				err = nested
				continue
			}

			err = fmt.Errorf("%w: %s", err, nested)
		}
	}

	if err != nil {
		return resp, err
	}

	return resp, nil
}

// redo applies as many Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}
