package ridewitus

import (
	"errors"
	"net/http"
)

// These sentinels classify every error the application surfaces.
// Wrap them with fmt.Errorf("%w: ...", ErrX) to add context.
var (
	ErrBadConfig        = errors.New("bad config")
	ErrExists           = errors.New("exists")
	ErrForbidden        = errors.New("forbidden")
	ErrMissingData      = errors.New("missing data")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrNotValid         = errors.New("invalid")
	ErrUnexpected       = errors.New("unexpected")
)

// An ErrorCode is the stable identifier an API caller branches on.
type ErrorCode string

const (
	CodeCannotDeleteSelf   ErrorCode = "CANNOT_DELETE_SELF"
	CodeEmailInUse         ErrorCode = "EMAIL_IN_USE"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidEmail       ErrorCode = "INVALID_EMAIL"
	CodeInvalidInput       ErrorCode = "INVALID_INPUT"
	CodeInvalidName        ErrorCode = "INVALID_NAME"
	CodeInvalidPassword    ErrorCode = "INVALID_PASSWORD"
	CodeInvalidPricing     ErrorCode = "INVALID_PRICING"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeMissingCredentials ErrorCode = "MISSING_CREDENTIALS"
	CodeMissingFields      ErrorCode = "MISSING_FIELDS"
	CodeNotAuthenticated   ErrorCode = "NOT_AUTHENTICATED"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodePremiumRequired    ErrorCode = "PREMIUM_REQUIRED"
	CodeRateLimited        ErrorCode = "RATE_LIMITED"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeUnknown            ErrorCode = "UNKNOWN_ERROR"
	CodeUserExists         ErrorCode = "USER_EXISTS"
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeWeakPassword       ErrorCode = "WEAK_PASSWORD"
)

func (c ErrorCode) String() string { return string(c) }

// A CodedError pairs an ErrorCode and a human-readable message with one of the sentinel kinds above.
//
// errors.Is matches a CodedError against another with the same Code,
// as well as against its Kind.
type CodedError struct {
	Code ErrorCode
	Kind error
	Msg  string
}

// NewCodedError constructs a *CodedError.
func NewCodedError(code ErrorCode, kind error, msg string) *CodedError {
	return &CodedError{Code: code, Kind: kind, Msg: msg}
}

func (e *CodedError) Error() string { return e.Msg }

func (e *CodedError) Unwrap() error { return e.Kind }

// Is reports whether target is a *CodedError carrying the same Code.
func (e *CodedError) Is(target error) bool {
	t, ok := target.(*CodedError)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// CodeOf extracts the ErrorCode carried by err, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}

	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return CodeNotAuthenticated
	case errors.Is(err, ErrForbidden):
		return CodeUnauthorized
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrNotValid), errors.Is(err, ErrMissingData):
		return CodeInvalidInput
	default:
		return CodeUnknown
	}
}

// StatusOf maps the kind of err onto an HTTP status code.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotValid), errors.Is(err, ErrMissingData):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
