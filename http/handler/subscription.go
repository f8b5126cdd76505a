package handler

import (
	"net/http"

	"github.com/xy-planning-network/ridewitus/http/resp"
)

type checkoutReq struct {
	PlanID string `json:"planId" validate:"required"`
}

// Checkout opens a billing session for the tier named in the request.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var body checkoutReq
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	sessionID, err := h.Billing.Start(r.Context(), a, body.PlanID)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(map[string]string{"sessionId": sessionID})); err != nil {
		h.Err(w, r, err)
	}
}
