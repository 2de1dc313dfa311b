package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gemlabs/gem-platform/internal/infra/http/middleware"
	"github.com/gemlabs/gem-platform/internal/usecase"
)

// AdminLeadsHandler serves the admin lead dashboard: listing, the analytics
// rollup, and lead edits.
type AdminLeadsHandler struct {
	ManageUC *usecase.ManageLeadsUseCase
}

func NewAdminLeadsHandler(manageUC *usecase.ManageLeadsUseCase) *AdminLeadsHandler {
	return &AdminLeadsHandler{ManageUC: manageUC}
}

func (h *AdminLeadsHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	out, err := h.ManageUC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if out.Demo {
		middleware.RecordDemoFallback("admin_leads")
	}

	// Same shape whether the leads came from the database or the file
	// fallback; "demo" is the signal for the Demo Mode banner.
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"leads":   out.Leads,
		"count":   len(out.Leads),
		"demo":    out.Demo,
	})
}

func (h *AdminLeadsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	out, err := h.ManageUC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if out.Demo {
		middleware.RecordDemoFallback("admin_leads_analytics")
	}

	summary := usecase.SummarizeLeads(out.Leads, time.Now())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"analytics": summary,
		"demo":      out.Demo,
	})
}

func (h *AdminLeadsHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	lead, err := h.ManageUC.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"lead":    lead,
	})
}

func (h *AdminLeadsHandler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ManageUC.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
