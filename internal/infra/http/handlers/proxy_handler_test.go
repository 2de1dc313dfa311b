package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/gemlabs/gem-platform/internal/config"
	"github.com/gemlabs/gem-platform/internal/infra/backend"
)

func TestPlatformStatsLivePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/platform/stats", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"activeListings":12}`))
	}))
	defer srv.Close()

	handler := NewProxyHandler(backend.NewClient(srv.URL, "test-key"), config.DemoAuto, zap.NewNop())

	w := httptest.NewRecorder()
	handler.PlatformStats(w, httptest.NewRequest("GET", "/api/platform/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool            `json:"success"`
		Stats   json.RawMessage `json:"stats"`
		Demo    bool            `json:"demo"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.False(t, body.Demo)
	assert.JSONEq(t, `{"activeListings":12}`, string(body.Stats))
}

func TestPlatformStatsFallsBackToDemoOnBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	handler := NewProxyHandler(backend.NewClient(srv.URL, "test-key"), config.DemoAuto, zap.NewNop())

	w := httptest.NewRecorder()
	handler.PlatformStats(w, httptest.NewRequest("GET", "/api/platform/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Demo    bool `json:"demo"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.True(t, body.Demo)
}

func TestPlatformStatsWithoutBackendServesDemo(t *testing.T) {
	handler := NewProxyHandler(nil, config.DemoAuto, zap.NewNop())

	w := httptest.NewRecorder()
	handler.PlatformStats(w, httptest.NewRequest("GET", "/api/platform/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Demo bool `json:"demo"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Demo)
}

// With demo mode off a backend failure surfaces instead of being masked.
func TestPlatformStatsDemoOffSurfacesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	handler := NewProxyHandler(backend.NewClient(srv.URL, "test-key"), config.DemoOff, zap.NewNop())

	w := httptest.NewRecorder()
	handler.PlatformStats(w, httptest.NewRequest("GET", "/api/platform/stats", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPlatformStatsDemoOnNeverTouchesBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called in forced demo mode")
	}))
	defer srv.Close()

	handler := NewProxyHandler(backend.NewClient(srv.URL, "test-key"), config.DemoOn, zap.NewNop())

	w := httptest.NewRecorder()
	handler.PlatformStats(w, httptest.NewRequest("GET", "/api/platform/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateListingRejectsInvalidJSON(t *testing.T) {
	handler := NewProxyHandler(backend.NewClient("http://127.0.0.1:1", "k"), config.DemoAuto, zap.NewNop())

	req := httptest.NewRequest("POST", "/api/generate-listing", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	handler.GenerateListing(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Listing generation is effectful, so a backend failure is a 502, never
// demo data.
func TestGenerateListingBackendFailureIs502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	handler := NewProxyHandler(backend.NewClient(srv.URL, "k"), config.DemoAuto, zap.NewNop())

	req := httptest.NewRequest("POST", "/api/generate-listing", bytes.NewReader([]byte(`{"title":"Civic"}`)))
	w := httptest.NewRecorder()
	handler.GenerateListing(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGenerateListingForwardsPayload(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"listing":"generated"}`))
	}))
	defer srv.Close()

	handler := NewProxyHandler(backend.NewClient(srv.URL, "k"), config.DemoAuto, zap.NewNop())

	req := httptest.NewRequest("POST", "/api/generate-listing", bytes.NewReader([]byte(`{"title":"Civic"}`)))
	w := httptest.NewRecorder()
	handler.GenerateListing(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"Civic"}`, string(got))
	assert.JSONEq(t, `{"listing":"generated"}`, w.Body.String())
}

func TestUploadForwardsContentTypeAndStatus(t *testing.T) {
	const contentType = "multipart/form-data; boundary=xyz"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, contentType, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"url":"https://cdn.example/x.jpg"}`))
	}))
	defer srv.Close()

	handler := NewProxyHandler(backend.NewClient(srv.URL, "k"), config.DemoAuto, zap.NewNop())

	req := httptest.NewRequest("POST", "/api/upload", bytes.NewReader([]byte("--xyz--")))
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"url":"https://cdn.example/x.jpg"}`, w.Body.String())
}
