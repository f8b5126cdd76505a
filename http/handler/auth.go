package handler

import (
	"net/http"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/http/resp"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type profileUpdate struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
}

type passwordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type preferences struct {
	PreferredUnit ridewitus.Unit `json:"preferredUnit"`
}

// Register creates an Account and signs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	a, token, err := h.Accounts.Register(r.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	h.signIn(w, r, a, token, http.StatusCreated)
}

// Login signs in the Account matching the credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	a, token, err := h.Accounts.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	h.signIn(w, r, a, token, http.StatusOK)
}

// SignOut clears the session unconditionally.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.signOut(w, r)
	h.ok(w, r)
}

// Me renders the current Account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Authed(), resp.Data(map[string]any{"account": a})); err != nil {
		h.Err(w, r, err)
	}
}

// UpdateProfile changes the current Account's name and email.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var body profileUpdate
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	updated, err := h.Accounts.UpdateProfile(r.Context(), a.ID, body.Name, body.Email, body.CurrentPassword)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.User(&updated), resp.Data(map[string]any{"account": updated})); err != nil {
		h.Err(w, r, err)
	}
}

// ChangePassword replaces the current Account's password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var body passwordChange
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Accounts.ChangePassword(r.Context(), a.ID, body.CurrentPassword, body.NewPassword); err != nil {
		h.Err(w, r, err)
		return
	}

	h.ok(w, r)
}

// SetPreferences stores the current Account's display preferences.
func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var body preferences
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	updated, err := h.Accounts.SetPreferredUnit(r.Context(), a.ID, body.PreferredUnit)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.User(&updated), resp.Data(map[string]any{"account": updated})); err != nil {
		h.Err(w, r, err)
	}
}

// DeleteAccount removes the current Account along with its activities and signs it out.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Accounts.DeleteAccount(r.Context(), a.ID); err != nil {
		h.Err(w, r, err)
		return
	}

	h.signOut(w, r)
	h.ok(w, r)
}
