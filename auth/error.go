package auth

import (
	"fmt"

	"github.com/xy-planning-network/ridewitus"
)

var (
	// ErrHashing wraps any failure to digest a password, including passwords longer than 72 bytes.
	ErrHashing = fmt.Errorf("%w: hashing password", ridewitus.ErrUnexpected)

	// ErrInvalidToken wraps every reason a token fails to verify.
	ErrInvalidToken = ridewitus.NewCodedError(ridewitus.CodeInvalidToken, ridewitus.ErrNotAuthenticated, "invalid token")
)
