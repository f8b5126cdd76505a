package logger

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/xy-planning-network/ridewitus"
)

const callerTmpl = "%s:%d"

var _ slog.LogValuer = (*LogContext)(nil)

// LogUser is the interface exposing attributes of a user to a LogContext.
type LogUser interface {
	// GetID retrieves the application's identifier for a user.
	GetID() string

	// GetEmail retrieves the email address of the user.
	GetEmail() string
}

// A LogContext provides additional information
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the caller file and line number with the provided value.
	//
	// Caller helps goroutines identify the callers of the process that spawned it.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request

	// User is the account whose session was active during the logging event.
	User LogUser
}

// LogValue groups the non-zero fields of the LogContext.
// Query string passwords are masked.
//
// LogValue implements [log/slog.LogValuer].
func (lc *LogContext) LogValue() slog.Value {
	if lc == nil {
		return slog.GroupValue()
	}

	var attrs []slog.Attr
	if len(lc.Data) > 0 {
		attrs = append(attrs, slog.Any("data", lc.Data))
	}

	if lc.Error != nil {
		attrs = append(attrs, slog.String("error", lc.Error.Error()))
	}

	if lc.Request != nil && lc.Request.URL != nil {
		u := *lc.Request.URL
		q := u.Query()
		ridewitus.Mask(q, "password")
		u.RawQuery = q.Encode()

		attrs = append(attrs, slog.Group(
			"request",
			slog.String("method", lc.Request.Method),
			slog.String("url", u.String()),
		))
	}

	if lc.User != nil {
		attrs = append(attrs, slog.Group(
			"user",
			slog.String("id", lc.User.GetID()),
			slog.String("email", lc.User.GetEmail()),
		))
	}

	return slog.GroupValue(attrs...)
}

// CurrentCaller retrieves the caller for the caller of CurrentCaller,
// formatted for using as a value in LogContext.Caller.
//
//	myFunc() {		<- returns this caller
//		go func() {
//			CurrentCaller()
//		}()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf(callerTmpl, shortPath(file), line)
}
