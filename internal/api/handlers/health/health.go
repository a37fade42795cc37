package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"persona-recommender/internal/core/ai/cache"
	"persona-recommender/internal/infrastructure/config"
	"persona-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Model     string                 `json:"model"`
	Format    string                 `json:"format"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     *CacheStatus           `json:"cache,omitempty"`
}

// CacheStatus 代理快取狀態
type CacheStatus struct {
	Backend string      `json:"backend"`
	Stats   cache.Stats `json:"stats"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg   *config.Config
	store cache.Store
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, store cache.Store) *Handler {
	return &Handler{cfg: cfg, store: store}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Model:     h.cfg.Gemini.Model,
		Format:    h.cfg.Recommendation.ResponseFormat,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.store != nil {
		stats, err := h.store.Stats(c.Request.Context())
		if err != nil {
			common.LogWarn("Health check cache stats failed", zap.Error(err))
			response.Status = "degraded"
		} else {
			response.Cache = &CacheStatus{Backend: h.cfg.Cache.Backend, Stats: stats}
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：快取後端可用，且有金鑰或允許模擬回應
func (h *Handler) ReadinessCheck(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if _, err := h.store.Stats(ctx); err != nil {
			checks["cache"] = err.Error()
			ready = false
		} else {
			checks["cache"] = "ok"
		}
	}

	switch {
	case h.cfg.Gemini.APIKey != "":
		checks["gemini_key"] = "ok"
	case h.cfg.Gemini.FallbackMode == config.FallbackSimulated:
		checks["gemini_key"] = "missing (simulated responses)"
	default:
		checks["gemini_key"] = "missing"
		ready = false
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
