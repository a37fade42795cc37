package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"persona-recommender/internal/api"
	"persona-recommender/internal/api/middleware"
	"persona-recommender/internal/core/ai/cache"
	"persona-recommender/internal/core/ai/gemini"
	"persona-recommender/internal/core/recommendation"
	"persona-recommender/internal/infrastructure/config"
	"persona-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.App.Name); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("gemini_api_key", cfg.Gemini.APIKey),
		zap.String("gemini_model", cfg.Gemini.Model),
		zap.String("response_format", cfg.Recommendation.ResponseFormat),
		zap.String("cache_backend", cfg.Cache.Backend),
	)
	if cfg.Gemini.APIKey == "" {
		common.LogWarn("GEMINI_API_KEY 未設定",
			zap.String("fallback_mode", cfg.Gemini.FallbackMode),
		)
	}

	// 初始化代理快取
	var proxyStore cache.Store
	if cfg.Cache.Enabled {
		store, err := cache.New(cfg.Cache)
		if err != nil {
			common.LogFatal("Failed to initialize cache", zap.Error(err))
		}
		proxyStore = cache.WithMetrics("proxy", store)
		defer proxyStore.Close()
	}

	client := gemini.NewClient(cfg.Gemini, cfg.Breaker)

	svc, err := recommendation.NewService(cfg, client, nil)
	if err != nil {
		common.LogFatal("Failed to initialize recommendation service", zap.Error(err))
	}
	defer svc.Close()

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	defer dedup.Close()

	// 設置路由
	router, err := api.SetupRouter(cfg, api.Dependencies{
		Upstream:     client,
		ProxyStore:   proxyStore,
		Recommender:  svc,
		Deduplicator: dedup,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
