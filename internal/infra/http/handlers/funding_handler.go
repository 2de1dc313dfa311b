package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gemlabs/gem-platform/internal/usecase"
)

type FundingScoreHandler struct {
	ScoreUC *usecase.FundingScoreUseCase
}

func NewFundingScoreHandler(scoreUC *usecase.FundingScoreUseCase) *FundingScoreHandler {
	return &FundingScoreHandler{ScoreUC: scoreUC}
}

// memberID comes from the session layer in front of this service.
func memberID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func (h *FundingScoreHandler) Current(w http.ResponseWriter, r *http.Request) {
	id := memberID(r)
	if id == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}

	view, err := h.ScoreUC.Current(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"score":   view,
	})
}

func (h *FundingScoreHandler) History(w http.ResponseWriter, r *http.Request) {
	id := memberID(r)
	if id == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}

	views, err := h.ScoreUC.History(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": views,
	})
}

func (h *FundingScoreHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	id := memberID(r)
	if id == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}

	var input usecase.RecomputeScoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	view, err := h.ScoreUC.Recompute(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"score":   view,
	})
}
