package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultMaxUpload caps the size of file uploads.
const DefaultMaxUpload = 10 << 20

// A Parser decodes and validates request payloads.
type Parser struct {
	queryParamDecoder queryParamDecoder
	validator
}

// NewParser constructs a *Parser with the default decoding and validation configuration.
func NewParser() *Parser {
	return &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		validator:         newValidator(),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in *http.Request.Body.
// If successful, ParseBody runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
//
// ParseBody reads the entire r.Body and can't be read from again.
// Use a [io.TeeReader] if r.Body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("%w: ParseBody called with non-pointer: %s", ErrBadCall, err)
	}

	if err != nil {
		return fmt.Errorf("%w: failed decoding request body: %s", ErrMalformed, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("%T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseQueryParams decodes into a pointer to a struct the query param data in *http.Request.URL.Query.
// If successful, ParseQueryParams runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
//
// Comma-separated values are split, so ?types=run,bike and ?types=run&types=bike decode alike.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.queryParamDecoder.decode(structPtr, splitCommas(params)); err != nil {
		return fmt.Errorf("failed decoding request query params: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("%T failed validation: %w", structPtr, err)
	}

	return nil
}

// Upload opens the file sent in r.
// A multipart/form-data request must carry it under field;
// any other request carries the file as its body.
//
// Closing the returned io.ReadCloser is the responsibility of the caller.
func Upload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (io.ReadCloser, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUpload
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if r.ContentLength == 0 {
			return nil, ErrNoFile
		}

		return r.Body, nil
	}

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, ErrTooLarge
		}

		return nil, fmt.Errorf("%w: %s", ErrMalformed, err)
	}

	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, ErrNoFile
	}

	return f, nil
}

func splitCommas(params url.Values) url.Values {
	out := make(url.Values, len(params))
	for k, vals := range params {
		for _, v := range vals {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out[k] = append(out[k], part)
				}
			}
		}
	}

	return out
}
