package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/directory"
	"github.com/xy-planning-network/ridewitus/http/resp"
)

type adminCreate struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Role     ridewitus.Role `json:"role"`
}

type adminUpdate struct {
	Name               string                       `json:"name"`
	Email              string                       `json:"email"`
	Role               ridewitus.Role               `json:"role"`
	SubscriptionStatus ridewitus.SubscriptionStatus `json:"subscriptionStatus"`
}

// pathID reads the {id} route variable as an Account ID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, directory.ErrUserNotFound
	}

	return id, nil
}

// ListAccounts renders every Account.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	accounts, err := h.Accounts.List(r.Context(), *actor)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(map[string]any{"users": accounts})); err != nil {
		h.Err(w, r, err)
	}
}

// CreateAccount adds an Account on behalf of an administrator.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var body adminCreate
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	created, err := h.Accounts.Create(r.Context(), *actor, directory.AdminCreate(body))
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Code(http.StatusCreated), resp.Data(map[string]any{"user": created})); err != nil {
		h.Err(w, r, err)
	}
}

// UpdateAccount changes an Account on behalf of an administrator.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var body adminUpdate
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	updated, err := h.Accounts.Update(r.Context(), *actor, id, directory.AdminUpdate(body))
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(map[string]any{"user": updated})); err != nil {
		h.Err(w, r, err)
	}
}

// RemoveAccount deletes an Account on behalf of an administrator.
func (h *Handler) RemoveAccount(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Accounts.Delete(r.Context(), *actor, id); err != nil {
		h.Err(w, r, err)
		return
	}

	h.ok(w, r)
}
