package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gemlabs/gem-platform/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError is the single error-to-status mapping for the whole API
// surface. Handlers never pick status codes for failures themselves.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch usecase.KindOf(err) {
	case usecase.KindInvalid:
		status = http.StatusBadRequest
	case usecase.KindUnauthorized:
		status = http.StatusUnauthorized
	case usecase.KindNotFound:
		status = http.StatusNotFound
	case usecase.KindConflict:
		status = http.StatusConflict
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
