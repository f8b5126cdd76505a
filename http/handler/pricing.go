package handler

import (
	"net/http"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/http/resp"
)

type pricingReplace struct {
	Pricing []ridewitus.PricingTier `json:"pricing"`
}

// ListPricing renders the tiers currently offered for purchase.
func (h *Handler) ListPricing(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.Pricing.Offered(r.Context())
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(map[string]any{"pricing": tiers})); err != nil {
		h.Err(w, r, err)
	}
}

// ReplacePricing swaps every pricing tier for the submitted set.
func (h *Handler) ReplacePricing(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var body pricingReplace
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	tiers, err := h.Pricing.Replace(r.Context(), *a, body.Pricing)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(map[string]any{"pricing": tiers})); err != nil {
		h.Err(w, r, err)
	}
}
