package handler

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/activity"
	"github.com/xy-planning-network/ridewitus/http/req"
	"github.com/xy-planning-network/ridewitus/http/resp"
	"github.com/xy-planning-network/ridewitus/units"
)

// activityQuery is the query string accepted when listing or summarizing activities.
type activityQuery struct {
	Types []ridewitus.ActivityType `schema:"types" validate:"omitempty,enum"`
	Days  int                      `schema:"days" validate:"gte=0"`
}

type importQuery struct {
	Mode ridewitus.ImportMode `schema:"mode" validate:"required,enum"`
}

type syncUpload struct {
	Activities []ridewitus.Activity `json:"activities"`
}

func (h *Handler) query(r *http.Request) (activity.Query, error) {
	var q activityQuery
	if err := h.Parser.ParseQueryParams(r.URL.Query(), &q); err != nil {
		return activity.Query{}, err
	}

	return activity.Query{Types: q.Types, Days: q.Days}, nil
}

// displayed converts a for presentation in the account's preferred unit.
func displayed(account *ridewitus.Account, a ridewitus.Activity) ridewitus.Activity {
	return units.Display([]ridewitus.Activity{a}, account.DisplayUnit())[0]
}

// ListActivities renders the current Account's activities, newest first,
// in its preferred unit.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	q, err := h.query(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	records, err := h.Activities.List(r.Context(), a.ID, q)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	data := map[string]any{
		"activities": units.Display(records, a.DisplayUnit()),
		"unit":       a.DisplayUnit(),
	}
	if err := h.Json(w, r, resp.Data(data)); err != nil {
		h.Err(w, r, err)
	}
}

// CreateActivity records a new activity.
func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var in activity.Input
	if err := h.parseBody(r, &in); err != nil {
		h.Err(w, r, err)
		return
	}

	created, err := h.Activities.Create(r.Context(), *a, in)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	data := map[string]any{"activity": displayed(a, created)}
	if err := h.Json(w, r, resp.Code(http.StatusCreated), resp.Data(data)); err != nil {
		h.Err(w, r, err)
	}
}

// UpdateActivity overwrites one of the current Account's activities.
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var in activity.Input
	if err := h.parseBody(r, &in); err != nil {
		h.Err(w, r, err)
		return
	}

	updated, err := h.Activities.Update(r.Context(), *a, mux.Vars(r)["id"], in)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(map[string]any{"activity": displayed(a, updated)})); err != nil {
		h.Err(w, r, err)
	}
}

// DeleteActivity removes one of the current Account's activities.
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Activities.Delete(r.Context(), a.ID, mux.Vars(r)["id"]); err != nil {
		h.Err(w, r, err)
		return
	}

	h.ok(w, r)
}

// ClearActivities removes all of the current Account's activities.
func (h *Handler) ClearActivities(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Activities.Clear(r.Context(), a.ID); err != nil {
		h.Err(w, r, err)
		return
	}

	h.ok(w, r)
}

// Stats renders the summary of the current Account's activities matching the query.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	q, err := h.query(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	summary, unit, err := h.Activities.Summary(r.Context(), *a, q)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	data := map[string]any{
		"summary":       summary,
		"unit":          unit,
		"totalDistance": units.Format(summary.TotalDistance, unit),
	}
	if err := h.Json(w, r, resp.Data(data)); err != nil {
		h.Err(w, r, err)
	}
}

// ExportCSV downloads the current Account's activities as a CSV attachment.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	buf := new(bytes.Buffer)
	if err := h.Activities.Export(r.Context(), a.ID, buf); err != nil {
		h.Err(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="activities.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// ImportCSV loads activities from an uploaded CSV file,
// either replacing or merging with the existing ones according to the mode query param.
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	var q importQuery
	if err := h.Parser.ParseQueryParams(r.URL.Query(), &q); err != nil {
		h.Err(w, r, err)
		return
	}

	f, err := req.Upload(w, r, "file", req.DefaultMaxUpload)
	if err != nil {
		h.Err(w, r, err)
		return
	}
	defer f.Close()

	result, err := h.Activities.ImportCSV(r.Context(), a.ID, f, q.Mode)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(result)); err != nil {
		h.Err(w, r, err)
	}
}

// SyncUpload replaces the premium Account's cloud copy with the uploaded activities.
func (h *Handler) SyncUpload(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if !a.IsPremium() {
		h.Err(w, r, activity.ErrPremiumRequired)
		return
	}

	var body syncUpload
	if err := h.parseBody(r, &body); err != nil {
		h.Err(w, r, err)
		return
	}

	result, err := h.Activities.Upload(r.Context(), *a, body.Activities)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(result)); err != nil {
		h.Err(w, r, err)
	}
}

// SyncDownload renders the premium Account's cloud copy.
func (h *Handler) SyncDownload(w http.ResponseWriter, r *http.Request) {
	a, err := h.currentAccount(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	records, err := h.Activities.Download(r.Context(), *a)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(map[string]any{"activities": records})); err != nil {
		h.Err(w, r, err)
	}
}
