package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/http/cookie"
)

type signInBody struct {
	Data struct {
		Account ridewitus.Account `json:"account"`
		Token   string            `json:"token"`
	} `json:"data"`
	CurrentUser *ridewitus.Account `json:"currentUser"`
}

func sessionCookie(rec interface{ Result() *http.Response }) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookie.Name {
			return c
		}
	}

	return nil
}

func TestHealth(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	rec := f.do(t, http.MethodGet, "/healthz", "", "")

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Data map[string]string `json:"data"`
	}](t, rec)
	require.Equal(t, "ok", body.Data["status"])
}

func TestRegister(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		rec := f.do(t, http.MethodPost, "/api/auth/register", `{"email":"new@example.com","password":"password1","name":"New"}`, "")

		// Assert
		require.Equal(t, http.StatusCreated, rec.Code)

		c := sessionCookie(rec)
		require.NotNil(t, c)
		require.True(t, c.HttpOnly)

		body := decode[signInBody](t, rec)
		require.Equal(t, "new@example.com", body.Data.Account.Email)
		require.Equal(t, ridewitus.RoleUser, body.Data.Account.Role)
		require.Equal(t, c.Value, body.Data.Token)
		require.NotNil(t, body.CurrentUser)
	})

	t.Run("Invalid-Email", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		rec := f.do(t, http.MethodPost, "/api/auth/register", `{"email":"nope","password":"password1","name":"New"}`, "")

		// Assert
		requireErrCode(t, rec, http.StatusBadRequest, ridewitus.CodeInvalidEmail)
		require.Nil(t, sessionCookie(rec))
	})

	t.Run("Taken", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		a, _ := f.signedIn(t, ridewitus.RoleUser, ridewitus.SubscriptionFree)

		// Act
		rec := f.do(t, http.MethodPost, "/api/auth/register", `{"email":"`+a.Email+`","password":"password1","name":"Again"}`, "")

		// Assert
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Malformed", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		rec := f.do(t, http.MethodPost, "/api/auth/register", `{"email":`, "")

		// Assert
		requireErrCode(t, rec, http.StatusBadRequest, ridewitus.CodeInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		a, _ := f.signedIn(t, ridewitus.RoleUser, ridewitus.SubscriptionFree)

		// Act
		rec := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"`+a.Email+`","password":"`+testPassword+`"}`, "")

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, sessionCookie(rec))
		require.Equal(t, a.ID, decode[signInBody](t, rec).Data.Account.ID)
	})

	t.Run("Wrong-Password", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		a, _ := f.signedIn(t, ridewitus.RoleUser, ridewitus.SubscriptionFree)

		// Act
		rec := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"`+a.Email+`","password":"wrong-password"}`, "")

		// Assert
		requireErrCode(t, rec, http.StatusUnauthorized, ridewitus.CodeInvalidCredentials)
	})
}

func TestMe(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		rec := f.do(t, http.MethodGet, "/api/auth/me", "", "")

		// Assert
		requireErrCode(t, rec, http.StatusUnauthorized, ridewitus.CodeNotAuthenticated)
	})

	t.Run("Bad-Token", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		rec := f.do(t, http.MethodGet, "/api/auth/me", "", "not-a-token")

		// Assert
		requireErrCode(t, rec, http.StatusUnauthorized, ridewitus.CodeNotAuthenticated)
		c := sessionCookie(rec)
		require.NotNil(t, c)
		require.Empty(t, c.Value)
	})

	t.Run("Signed-In", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		a, token := f.signedIn(t, ridewitus.RoleUser, ridewitus.SubscriptionFree)

		// Act
		rec := f.do(t, http.MethodGet, "/api/auth/me", "", token)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		body := decode[signInBody](t, rec)
		require.Equal(t, a.ID, body.Data.Account.ID)
		require.NotNil(t, body.CurrentUser)
		require.Equal(t, a.Email, body.CurrentUser.Email)
	})
}

func TestSignOut(t *testing.T) {
	// Arrange
	f := newFixture(t)
	_, token := f.signedIn(t, ridewitus.RoleUser, ridewitus.SubscriptionFree)

	// Act
	rec := f.do(t, http.MethodPost, "/api/auth/signout", "", token)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	c := sessionCookie(rec)
	require.NotNil(t, c)
	require.Empty(t, c.Value)

	rec = f.do(t, http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword(t *testing.T) {
	// Arrange
	f := newFixture(t)
	a, token := f.signedIn(t, ridewitus.RoleUser, ridewitus.SubscriptionFree)

	// Act
	bad := f.do(t, http.MethodPut, "/api/auth/password", `{"currentPassword":"wrong-password","newPassword":"new-password"}`, token)
	good := f.do(t, http.MethodPut, "/api/auth/password", `{"currentPassword":"`+testPassword+`","newPassword":"new-password"}`, token)

	// Assert
	require.Equal(t, http.StatusUnauthorized, bad.Code)
	require.Equal(t, http.StatusOK, good.Code)

	rec := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"`+a.Email+`","password":"new-password"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSetPreferences(t *testing.T) {
	// Arrange
	f := newFixture(t)
	_, token := f.signedIn(t, ridewitus.RoleUser, ridewitus.SubscriptionFree)

	// Act
	rec := f.do(t, http.MethodPut, "/api/auth/preferences", `{"preferredUnit":"KM"}`, token)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, ridewitus.Kilometers, decode[signInBody](t, rec).Data.Account.PreferredUnit)
}

func TestDeleteOwnAccount(t *testing.T) {
	// Arrange
	f := newFixture(t)
	a, token := f.signedIn(t, ridewitus.RoleUser, ridewitus.SubscriptionFree)

	// Act
	rec := f.do(t, http.MethodDelete, "/api/auth/account", "", token)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, f.accounts.Deleted, a.ID)

	rec = f.do(t, http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
