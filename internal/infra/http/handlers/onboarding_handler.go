package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gemlabs/gem-platform/internal/infra/http/middleware"
	"github.com/gemlabs/gem-platform/internal/usecase"
)

type OnboardingHandler struct {
	WizardUC *usecase.OnboardingUseCase
}

func NewOnboardingHandler(wizardUC *usecase.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{WizardUC: wizardUC}
}

type onboardingRequest struct {
	Flow string                 `json:"flow"`
	Data map[string]interface{} `json:"data,omitempty"`
}

func (h *OnboardingHandler) decode(w http.ResponseWriter, r *http.Request) (string, *onboardingRequest, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return "", nil, false
	}

	// A body-less POST is a valid empty request; back and skip need no
	// payload.
	var req onboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return "", nil, false
	}
	if req.Flow == "" {
		req.Flow = "founder"
	}
	return userID, &req, true
}

func (h *OnboardingHandler) State(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}

	flow := r.URL.Query().Get("flow")
	if flow == "" {
		flow = "founder"
	}

	state, err := h.WizardUC.State(r.Context(), userID, flow)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "state": state})
}

func (h *OnboardingHandler) Next(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decode(w, r)
	if !ok {
		return
	}

	state, err := h.WizardUC.Next(r.Context(), userID, req.Flow, req.Data)
	if err != nil {
		writeError(w, err)
		return
	}

	if state.Completed {
		middleware.RecordOnboardingCompleted()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "state": state})
}

func (h *OnboardingHandler) Back(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decode(w, r)
	if !ok {
		return
	}

	state, err := h.WizardUC.Back(r.Context(), userID, req.Flow)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "state": state})
}

func (h *OnboardingHandler) Skip(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decode(w, r)
	if !ok {
		return
	}

	state, err := h.WizardUC.Skip(r.Context(), userID, req.Flow)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordOnboardingCompleted()
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "state": state})
}
