package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gemlabs/gem-platform/internal/entity"
	"github.com/gemlabs/gem-platform/internal/usecase"
)

// ConnectionHandler owns the OAuth platform-connection surface. The
// callback is browser-facing: it answers with redirects, not JSON.
type ConnectionHandler struct {
	ConnectUC      *usecase.ConnectPlatformUseCase
	OnboardingRepo entity.OnboardingRepositoryInterface
	SiteURL        string
}

func NewConnectionHandler(
	connectUC *usecase.ConnectPlatformUseCase,
	onboardingRepo entity.OnboardingRepositoryInterface,
	siteURL string,
) *ConnectionHandler {
	return &ConnectionHandler{
		ConnectUC:      connectUC,
		OnboardingRepo: onboardingRepo,
		SiteURL:        siteURL,
	}
}

// Callback lands here after the provider redirect. The OAuth state param
// carries the user id; the code is exchanged server-side. Where the user
// goes next depends on whether onboarding has been completed.
func (h *ConnectionHandler) Callback(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")
	code := r.URL.Query().Get("code")
	userID := r.URL.Query().Get("state")

	if userID == "" {
		http.Redirect(w, r, h.SiteURL+"/login?error=missing_state", http.StatusFound)
		return
	}

	if _, err := h.ConnectUC.HandleCallback(r.Context(), userID, platform, code); err != nil {
		http.Redirect(w, r, h.SiteURL+"/settings?error=connect_failed", http.StatusFound)
		return
	}

	completed := false
	if h.OnboardingRepo != nil {
		if data, err := h.OnboardingRepo.Get(r.Context(), userID); err == nil {
			completed = data.Completed
		}
	}

	if completed {
		http.Redirect(w, r, h.SiteURL+"/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, h.SiteURL+"/onboarding", http.StatusFound)
}

func (h *ConnectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}
	platform := chi.URLParam(r, "platform")

	if h.ConnectUC.Repo == nil {
		writeError(w, usecase.NewError(usecase.KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured"))
		return
	}

	conn, err := h.ConnectUC.Repo.Get(r.Context(), userID, platform)
	if err != nil {
		if errors.Is(err, entity.ErrConnectionNotFound) {
			// Never-connected reads as disconnected, not as an error.
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success":    true,
				"connection": entity.PlatformConnection{UserID: userID, Platform: platform},
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load connection"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "connection": conn})
}

func (h *ConnectionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user id"})
		return
	}
	platform := chi.URLParam(r, "platform")

	if err := h.ConnectUC.Disconnect(r.Context(), userID, platform); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
