/*
Package logger provides leveled logging for RideWitUS on top of [log/slog].

# Overview

The [Logger] interface outputs messages at certain levels of importance.
An implementation may be configured at a certain [log/slog.Level]
and only emit messages at or above that level of importance.

[AppLogger] implements [Logger] by delegating to a [*log/slog.Logger];
the handler it is constructed with decides the output format.
In development, that is usually a [github.com/lmittmann/tint] handler with [ColorizeLevel] applied;
elsewhere, JSON.

# LogContext

A [*LogContext] carries data inessential to the message proper
but useful for reconstructing application state at the time of logging:
an error, the open *http.Request, the signed-in user, or arbitrary data.
Sensitive values, such as passwords in query strings, are masked.

# SentryLogger

[SentryLogger] decorates another [Logger], forwarding warnings and errors
that carry a [LogContext.Error] to Sentry.
*/
package logger
