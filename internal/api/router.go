package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"persona-recommender/internal/api/handlers/health"
	"persona-recommender/internal/api/handlers/proxy"
	recommendationHandler "persona-recommender/internal/api/handlers/recommendation"
	"persona-recommender/internal/api/middleware"
	"persona-recommender/internal/core/ai/cache"
	"persona-recommender/internal/infrastructure/config"
	"persona-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	// Upstream 代理端點使用的 Gemini 客戶端
	Upstream proxy.Forwarder
	// ProxyStore 為 nil 表示代理不快取
	ProxyStore   cache.Store
	Recommender  recommendationHandler.Recommender
	Deduplicator *middleware.Deduplicator
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Upstream == nil || deps.Recommender == nil {
		return nil, errors.New("upstream and recommender are required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Accept-Language", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", "X-Cache"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(requestTimeout(cfg.Server.RequestTimeout))

	// 健康檢查與指標
	healthHandler := health.NewHandler(cfg, deps.ProxyStore)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst))
	}

	// 前端直接轉發的代理端點
	proxy.NewHandler(deps.Upstream, deps.ProxyStore, cfg.Cache.TTL).Register(api)

	v1 := api.Group("/v1")
	{
		recHandler := recommendationHandler.NewHandler(deps.Recommender, cfg.App.Debug)
		if deps.Deduplicator != nil {
			v1.POST("/recommendations", deps.Deduplicator.Middleware(), recHandler.HandleRecommend)
		} else {
			v1.POST("/recommendations", recHandler.HandleRecommend)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("proxy_cache", deps.ProxyStore != nil),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}

// requestTimeout 為請求上下文加上逾時；handler 尚未回應時回傳 504
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrorResponse{
				Error: "Request timeout",
				Code:  common.ErrCodeGatewayTimeout,
			})
		}
	}
}
