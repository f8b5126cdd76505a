package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
)

// DefaultTTL is how long an issued token verifies for.
const DefaultTTL = 7 * 24 * time.Hour

// claims are the JWT claims carried by a session token.
type claims struct {
	Role ridewitus.Role `json:"role"`
	jwt.RegisteredClaims
}

// A TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret  []byte
	now     func() time.Time
	parser  *jwt.Parser
	revoker Revoker
	ttl     time.Duration
}

// A TokenOpt configures a *TokenService.
type TokenOpt func(*TokenService)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) TokenOpt {
	return func(ts *TokenService) {
		if now != nil {
			ts.now = now
		}
	}
}

// WithRevoker enables revocation by consulting r on every Verify.
func WithRevoker(r Revoker) TokenOpt {
	return func(ts *TokenService) { ts.revoker = r }
}

// WithTTL sets how long issued tokens verify for.
func WithTTL(ttl time.Duration) TokenOpt {
	return func(ts *TokenService) {
		if ttl > 0 {
			ts.ttl = ttl
		}
	}
}

// NewTokenService constructs a *TokenService signing with secret.
//
// An empty secret is accepted here so wiring never panics;
// Issue and Verify both refuse to work without one.
func NewTokenService(secret string, opts ...TokenOpt) *TokenService {
	ts := &TokenService{
		secret: []byte(secret),
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		ttl: DefaultTTL,
	}

	for _, opt := range opts {
		opt(ts)
	}

	return ts
}

// Issue signs a token naming accountID and role.
func (ts *TokenService) Issue(accountID uuid.UUID, role ridewitus.Role) (string, error) {
	if len(ts.secret) == 0 {
		return "", fmt.Errorf("%w: no token secret", ridewitus.ErrBadConfig)
	}

	if err := role.Valid(); err != nil {
		return "", err
	}

	now := ts.now()
	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ridewitus.ErrUnexpected, err)
	}

	return signed, nil
}

// Verify checks token's signature, algorithm, expiry and claims,
// returning the Identity it carries.
//
// Every failure wraps ErrInvalidToken.
// A token is invalid from the instant it expires.
func (ts *TokenService) Verify(ctx context.Context, token string) (Identity, error) {
	c, err := ts.parse(token)
	if err != nil {
		return Identity{}, err
	}

	if !c.VerifyExpiresAt(ts.now(), true) {
		return Identity{}, fmt.Errorf("%w: expired", ErrInvalidToken)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: subject: %s", ErrInvalidToken, err)
	}

	if err := c.Role.Valid(); err != nil {
		return Identity{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if ts.revoker != nil {
		revoked, err := ts.revoker.Revoked(ctx, c.ID)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: checking revocation: %s", ErrInvalidToken, err)
		}

		if revoked {
			return Identity{}, fmt.Errorf("%w: revoked", ErrInvalidToken)
		}
	}

	return Identity{
		AccountID: id,
		Role:      c.Role,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// Revoke adds token's ID to the deny-list until the token would expire.
//
// An expired but otherwise authentic token is accepted.
// Without a Revoker, Revoke does nothing.
func (ts *TokenService) Revoke(ctx context.Context, token string) error {
	if ts.revoker == nil {
		return nil
	}

	c, err := ts.parse(token)
	if err != nil {
		return err
	}

	if c.ID == "" || c.ExpiresAt == nil {
		return fmt.Errorf("%w: missing jti or exp", ErrInvalidToken)
	}

	if !c.ExpiresAt.Time.After(ts.now()) {
		return nil
	}

	return ts.revoker.Revoke(ctx, c.ID, c.ExpiresAt.Time)
}

// parse checks signature and algorithm only.
func (ts *TokenService) parse(token string) (*claims, error) {
	if len(ts.secret) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, ridewitus.ErrBadConfig)
	}

	if token == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	c := new(claims)
	_, err := ts.parser.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return ts.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Inner != nil {
			err = ve.Inner
		}

		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	return c, nil
}
