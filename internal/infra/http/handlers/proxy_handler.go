package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/gemlabs/gem-platform/internal/config"
	"github.com/gemlabs/gem-platform/internal/infra/backend"
	"github.com/gemlabs/gem-platform/internal/infra/http/middleware"
)

// ProxyHandler forwards requests to the remote backend. Stats is a read
// path and may serve the canned demo payload; listing generation and
// uploads are effectful and fail loudly.
type ProxyHandler struct {
	Backend  *backend.Client
	DemoMode config.DemoMode
	Logger   *zap.Logger
}

func NewProxyHandler(client *backend.Client, demoMode config.DemoMode, logger *zap.Logger) *ProxyHandler {
	return &ProxyHandler{
		Backend:  client,
		DemoMode: demoMode,
		Logger:   logger,
	}
}

func (h *ProxyHandler) GenerateListing(w http.ResponseWriter, r *http.Request) {
	if h.Backend == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "backend not configured"})
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}
	if !json.Valid(payload) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	result, err := h.Backend.GenerateListing(r.Context(), payload)
	if err != nil {
		middleware.RecordBackendError("generate_listing")
		h.Logger.Error("listing generation failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "listing generation failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}

// Upload streams the multipart body through untouched; the Content-Type
// header travels with it so the boundary stays intact.
func (h *ProxyHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Backend == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "backend not configured"})
		return
	}

	result, status, err := h.Backend.Upload(r.Context(), r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		middleware.RecordBackendError("upload")
		h.Logger.Error("upload proxy failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upload failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(result)
}

func (h *ProxyHandler) PlatformStats(w http.ResponseWriter, r *http.Request) {
	if h.DemoMode.Forced() {
		h.serveDemoStats(w)
		return
	}

	if h.Backend == nil {
		if h.DemoMode.Fallbacks() {
			h.serveDemoStats(w)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "backend not configured"})
		return
	}

	stats, err := h.Backend.PlatformStats(r.Context())
	if err != nil {
		middleware.RecordBackendError("platform_stats")
		if h.DemoMode.Fallbacks() {
			h.Logger.Warn("platform stats unavailable, serving demo data", zap.Error(err))
			h.serveDemoStats(w)
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "platform stats unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   json.RawMessage(stats),
		"demo":    false,
	})
}

func (h *ProxyHandler) serveDemoStats(w http.ResponseWriter) {
	middleware.RecordDemoFallback("platform_stats")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   backend.DemoStatsPayload,
		"demo":    true,
	})
}
