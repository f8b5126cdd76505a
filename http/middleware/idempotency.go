package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"io"
	"net/http"

	"github.com/xy-planning-network/ridewitus"
)

const (
	IdempotencyHeader = "Idempotency-Key"
)

var _ http.ResponseWriter = idemReqWriter{}

// Idempotent returns a middleware.Adapter that enables features
// of idempotency on a POST endpoint,
// such as starting a checkout, which must not run twice.
//
// Idempotent pulls a key from request headers
// to base the uniqueness of a POST request around.
// Keys are scoped to the current Account, if any.
//
// If a previous request has not used that key,
// Idempotent pairs all of the following values to the key:
//   - the hash of the body of the request
//   - the body of the resulting response
//   - the status code of the resulting response
//
// If that key has been used before (and has not expired),
// Idempotent falls into one of these scenarios:
//
//   - if a status code has not been set for that key,
//     Idempotent responds with 409 since the idempotent request is still processing
//
//   - if the newly requested resource (the URI) does not match the original,
//     Idempotent responds with 422
//
//   - if the new request's body does not match the body of the original request's,
//     Idempotent responds with 422
//
//   - otherwise, Idempotent writes the status code and body set for the key
//
// A nil cache uses an in-memory IdemResMap.
//
// Idempotent implements the draft Idempotent HTTP Header Field specification:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(cache IdempotencyCacher) Adapter {
	if cache == nil {
		cache = NewIdemResMap()
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				writeJSONErr(w, http.StatusMethodNotAllowed, ridewitus.CodeInvalidInput, "Method not allowed")
				return
			}

			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				writeJSONErr(w, http.StatusBadRequest, ridewitus.CodeInvalidInput, "Missing "+IdempotencyHeader+" header")
				return
			}

			if a, ok := ridewitus.CurrentAccount(r.Context()); ok {
				key = a.GetID() + ":" + key
			}

			hasher := sha256.New()
			teeBody := bytes.NewBuffer(nil)
			if r.Body != nil {
				if _, err := io.Copy(hasher, io.TeeReader(r.Body, teeBody)); err != nil {
					writeJSONErr(w, http.StatusInternalServerError, ridewitus.CodeUnknown, "Internal server error")
					return
				}
			}

			r.Body = io.NopCloser(teeBody)
			sum := hasher.Sum(nil)

			ir, ok := cache.Get(r.Context(), key)
			if ok {
				if ir.Status == 0 {
					writeJSONErr(w, http.StatusConflict, ridewitus.CodeInvalidInput, "Request is still processing")
					return
				}

				if ir.URI != r.URL.RequestURI() || !bytes.Equal(ir.Req, sum) {
					writeJSONErr(w, http.StatusUnprocessableEntity, ridewitus.CodeInvalidInput, IdempotencyHeader+" reused for a different request")
					return
				}

				if ir.ContentType != "" {
					w.Header().Set("Content-Type", ir.ContentType)
				}
				w.WriteHeader(ir.Status)
				_, _ = w.Write(ir.Body.Bytes())
				return
			}

			ir = NewIdemRes(r.URL.RequestURI(), sum)
			cache.Set(r.Context(), key, ir)

			irw := idemReqWriter{
				ctx: r.Context(),
				c:   cache,
				i:   &ir,
				k:   key,
				w:   w,
			}
			handler.ServeHTTP(irw, r)
		})
	}
}

// An IdemRes is data from an HTTP response
// that can be reused when another request
// matches the same idempotency key.
type IdemRes struct {
	Body        *bytes.Buffer
	ContentType string
	Req         []byte
	Status      int
	URI         string
}

// An idemResGob is an intermediate representation of
// an IdemRes for the purposes of gob encoding/decoding.
//
// idemResGob is necessary as long as pkg gob cannot decode/encode
// fields in an IdemRes (e.g., Body).
type idemResGob struct {
	B []byte
	C string
	R []byte
	S int
	U string
}

// NewIdemRes constructs a new IdemRes.
func NewIdemRes(uri string, hashedBody []byte) IdemRes {
	return IdemRes{Body: bytes.NewBuffer(nil), URI: uri, Req: hashedBody}
}

// GobDecode unmarshals the gob-encoded []byte into fields of the *IdemRes.
//
// GobDecode implements gob.GobDecoder.
func (i *IdemRes) GobDecode(b []byte) error {
	g := new(idemResGob)
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(g); err != nil {
		return err
	}

	i.Body = bytes.NewBuffer(g.B)
	i.ContentType, i.Req, i.Status, i.URI = g.C, g.R, g.S, g.U
	return nil
}

// GobEncode marshals the fields of the IdemRes into a gob-encoded []byte.
//
// GobEncode implements gob.GobEncoder.
func (i IdemRes) GobEncode() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	var body []byte
	if i.Body != nil {
		body = i.Body.Bytes()
	}

	g := idemResGob{body, i.ContentType, i.Req, i.Status, i.URI}
	if err := gob.NewEncoder(buf).Encode(g); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// An idemReqWriter pairs an IdemRes with an http.ResponseWriter
// so both can be written to by an HTTP handler.
// Changes to the IdemRes in such a way are saved in the cache.
//
// An idemReqWriter implements http.ResponseWriter.
type idemReqWriter struct {
	ctx context.Context
	c   IdempotencyCacher
	i   *IdemRes
	k   string
	w   http.ResponseWriter
}

// Header returns the http.Header of the underlying http.ResponseWriter.
func (irw idemReqWriter) Header() http.Header { return irw.w.Header() }

// Write writes the bytes to all consumers the idemReqWriter is concerned with.
func (irw idemReqWriter) Write(b []byte) (int, error) {
	select {
	case <-irw.ctx.Done():
		return 0, nil
	default:
		if irw.i.Status == 0 {
			irw.WriteHeader(http.StatusOK)
		}

		n, err := irw.w.Write(b)
		if err != nil {
			return n, err
		}

		if _, err = irw.i.Body.Write(b); err != nil {
			return n, err
		}

		irw.c.Set(irw.ctx, irw.k, *irw.i)
		return n, nil
	}
}

// WriteHeader copies the status code about to be written to the *IdemRes for later reuse
// before actually writing the status code.
func (irw idemReqWriter) WriteHeader(s int) {
	select {
	case <-irw.ctx.Done():
		return
	default:
		irw.i.ContentType = irw.w.Header().Get("Content-Type")
		irw.w.WriteHeader(s)
		irw.i.Status = s
		irw.c.Set(irw.ctx, irw.k, *irw.i)
	}
}
