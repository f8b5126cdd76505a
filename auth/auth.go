package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
)

// A TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(accountID uuid.UUID, role ridewitus.Role) (string, error)
}

// A TokenVerifier turns a session token back into an Identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// A Revoker keeps a deny-list of token IDs.
//
// Entries need only be kept until the revoked token would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}

// An Identity is the verified content of a session token.
type Identity struct {
	AccountID uuid.UUID
	Role      ridewitus.Role
	TokenID   string
	ExpiresAt time.Time
}

var (
	_ TokenIssuer   = (*TokenService)(nil)
	_ TokenVerifier = (*TokenService)(nil)
	_ Revoker       = (*MemoryRevoker)(nil)
	_ Revoker       = RedisRevoker{}
)
