package ridewitus

import (
	"context"

	"github.com/google/uuid"
)

type Key string

const (
	// CurrentUserKey stashes the *Account for an authenticated request.
	CurrentUserKey Key = "CurrentUserKey"

	// IdentityKey stashes the verified token identity for an authenticated request.
	IdentityKey Key = "IdentityKey"

	// IpAddrKey stashes the IP address of an HTTP request.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "ridewitus context key: " + string(k)
}

// CurrentAccount retrieves the *Account stashed in ctx under CurrentUserKey.
func CurrentAccount(ctx context.Context) (*Account, bool) {
	a, ok := ctx.Value(CurrentUserKey).(*Account)
	if !ok || a == nil {
		return nil, false
	}

	return a, true
}

// NewAccountContext stashes a in ctx under CurrentUserKey.
func NewAccountContext(ctx context.Context, a *Account) context.Context {
	return context.WithValue(ctx, CurrentUserKey, a)
}

// RequestID retrieves the request ID stashed in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// NewRequestIDContext stashes a fresh request ID in ctx.
func NewRequestIDContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, RequestIDKey, uuid.NewString())
}
