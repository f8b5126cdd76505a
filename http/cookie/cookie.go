// Package cookie stores the signed session token in the auth_token cookie.
//
// The token itself is the session: no server-side session store backs it.
package cookie

import (
	"net/http"
	"time"

	"github.com/xy-planning-network/ridewitus"
)

const (
	// Name is the name of the cookie carrying the session token.
	Name = "auth_token"

	// MaxAge is the number of seconds the cookie lives, matching the token's lifetime.
	MaxAge = int(7 * 24 * time.Hour / time.Second)
)

// SetToken writes token to w as the session cookie.
//
// The cookie is only marked Secure in Production.
func SetToken(w http.ResponseWriter, token string, env ridewitus.Environment) {
	http.SetCookie(w, build(token, MaxAge, env))
}

// Clear instructs the client to delete the session cookie.
func Clear(w http.ResponseWriter, env ridewitus.Environment) {
	http.SetCookie(w, build("", -1, env))
}

// Token reads the session token from r.
// The zero-value returns when no cookie is present.
func Token(r *http.Request) string {
	c, err := r.Cookie(Name)
	if err != nil {
		return ""
	}

	return c.Value
}

func build(val string, maxAge int, env ridewitus.Environment) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    val,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   env.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	}
}
