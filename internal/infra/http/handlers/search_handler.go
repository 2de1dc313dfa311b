package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gemlabs/gem-platform/internal/entity"
)

type SearchHistoryHandler struct {
	Store entity.SearchHistoryStore
}

func NewSearchHistoryHandler(store entity.SearchHistoryStore) *SearchHistoryHandler {
	return &SearchHistoryHandler{Store: store}
}

func (h *SearchHistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}

	entries, err := h.Store.Get(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read search history"})
		return
	}
	if entries == nil {
		entries = []entity.SearchEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "history": entries})
}

func (h *SearchHistoryHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	if err := h.Store.Append(r.Context(), userID, req.Query); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to record search"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
