// Package proxy 提供前端直接呼叫 Gemini 的轉發端點與回應快取
package proxy

import (
	"context"
	"io"
	"net/http"
	"time"

	"persona-recommender/internal/core/ai/cache"
	"persona-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Forwarder 原樣轉發 generateContent 請求
type Forwarder interface {
	Forward(ctx context.Context, body []byte) (int, []byte, error)
}

// Handler 代理處理器
type Handler struct {
	upstream Forwarder
	store    cache.Store
	ttl      time.Duration
}

// NewHandler 創建代理處理器；store 為 nil 時不快取
func NewHandler(upstream Forwarder, store cache.Store, ttl time.Duration) *Handler {
	return &Handler{upstream: upstream, store: store, ttl: ttl}
}

// Register 註冊 /api 底下的路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/gemini", h.HandleGemini)
	rg.GET("/cache-stats", h.HandleCacheStats)
	rg.POST("/cache-clear", h.HandleCacheClear)
}

// HandleGemini 轉發請求；相同內容的成功回應會被快取
func (h *Handler) HandleGemini(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		common.LogWarn("讀取代理請求失敗", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	key, err := cache.FingerprintJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	ctx := c.Request.Context()
	if h.store != nil {
		cached, ok, err := h.store.Get(ctx, key)
		if err != nil {
			common.LogWarn("讀取代理快取失敗", zap.Error(err))
		}
		if ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	status, respBody, err := h.upstream.Forward(ctx, body)
	if err != nil {
		common.LogError("轉發 Gemini 請求失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to contact Gemini API"})
		return
	}

	if status == http.StatusOK && h.store != nil {
		if err := h.store.Set(ctx, key, respBody, h.ttl); err != nil {
			common.LogWarn("寫入代理快取失敗", zap.Error(err))
		}
	}

	c.Header("X-Cache", "MISS")
	c.Data(status, "application/json", respBody)
}

// HandleCacheStats 回傳快取統計
func (h *Handler) HandleCacheStats(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, cache.Stats{})
		return
	}
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		common.LogError("讀取快取統計失敗", zap.Error(err))
		status, resp := common.NewErrorResponse(err, "en", false)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HandleCacheClear 清空快取
func (h *Handler) HandleCacheClear(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Clear(c.Request.Context()); err != nil {
			common.LogError("清空快取失敗", zap.Error(err))
			status, resp := common.NewErrorResponse(err, "en", false)
			c.JSON(status, resp)
			return
		}
	}
	common.LogInfo("快取已清空", zap.String("ip", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared successfully"})
}
