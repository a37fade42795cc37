package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"persona-recommender/internal/core/ai/cache"
	"persona-recommender/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type brokenStore struct{ cache.Store }

func (brokenStore) Stats(ctx context.Context) (cache.Stats, error) {
	return cache.Stats{}, errors.New("connection refused")
}

func engine(h *Handler) *gin.Engine {
	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", LivenessCheck)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	store := cache.NewManager(cache.ManagerOptions{})
	defer store.Close()
	_ = store.Set(context.Background(), "k", []byte("v"), time.Hour)

	cfg := &config.Config{
		App:    config.AppConfig{Version: "1.2.3"},
		Gemini: config.GeminiConfig{Model: "gemini-2.0-flash"},
		Cache:  config.CacheConfig{Backend: config.BackendMemory},
	}
	w := get(engine(NewHandler(cfg, store)), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Version != "1.2.3" || resp.Model != "gemini-2.0-flash" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Cache == nil || resp.Cache.Stats.Total != 1 {
		t.Errorf("cache status = %+v", resp.Cache)
	}
}

func TestReadinessCheck(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		mode  string
		store cache.Store
		want  int
	}{
		{"key present", "k", config.FallbackError, cache.NewManager(cache.ManagerOptions{}), http.StatusOK},
		{"simulated without key", "", config.FallbackSimulated, nil, http.StatusOK},
		{"missing key", "", config.FallbackError, nil, http.StatusServiceUnavailable},
		{"cache down", "k", config.FallbackError, brokenStore{}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Gemini: config.GeminiConfig{APIKey: tt.key, FallbackMode: tt.mode}}
			w := get(engine(NewHandler(cfg, tt.store)), "/ready")
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestLivenessCheck(t *testing.T) {
	w := get(engine(NewHandler(&config.Config{}, nil)), "/live")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
