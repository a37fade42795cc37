package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 回應格式
const (
	FormatStructuredJSON = "structured-json"
	FormatFreeText       = "free-text"
	FormatBilingualJSON  = "bilingual-json"
)

// 缺少金鑰時的處理方式
const (
	FallbackError     = "error"
	FallbackSimulated = "simulated"
)

// 快取後端
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

// Config 應用配置
type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Server         ServerConfig         `mapstructure:"server"`
	Gemini         GeminiConfig         `mapstructure:"gemini"`
	Cache          CacheConfig          `mapstructure:"cache"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	Breaker        BreakerConfig        `mapstructure:"breaker"`
	DedupWindow    time.Duration        `mapstructure:"dedup_window"`
	LogLevel       string               `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	AllowOrigins   []string      `mapstructure:"allow_origins"`
}

// GeminiConfig Gemini 生成 API 配置
type GeminiConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base_url"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	Temperature     float64       `mapstructure:"temperature"`
	TopP            float64       `mapstructure:"top_p"`
	TopK            int           `mapstructure:"top_k"`
	Timeout         time.Duration `mapstructure:"timeout"`
	FallbackMode    string        `mapstructure:"fallback_mode"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	RedisPrefix     string        `mapstructure:"redis_prefix"`
	BadgerPath      string        `mapstructure:"badger_path"`
}

// RecommendationConfig 推薦設定
type RecommendationConfig struct {
	ResponseFormat  string `mapstructure:"response_format"`
	Count           int    `mapstructure:"count"`
	DefaultCategory string `mapstructure:"default_category"`
	Enrich          bool   `mapstructure:"enrich"`
	EnrichWorkers   int    `mapstructure:"enrich_workers"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
	Burst    int           `mapstructure:"burst"`
}

// BreakerConfig 上游熔斷設定
type BreakerConfig struct {
	MaxRequests         uint32        `mapstructure:"max_requests"`
	Interval            time.Duration `mapstructure:"interval"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時只使用環境變數與預設值
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return Load(viper.New())
}

// Load 從指定 viper 實例解析設定
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"gemini.api_key":                 "GEMINI_API_KEY",
		"gemini.model":                   "GEMINI_MODEL",
		"gemini.base_url":                "GEMINI_BASE_URL",
		"gemini.timeout":                 "GEMINI_TIMEOUT",
		"gemini.fallback_mode":           "GEMINI_FALLBACK_MODE",
		"server.port":                    "PORT",
		"cache.enabled":                  "CACHE_ENABLED",
		"cache.backend":                  "CACHE_BACKEND",
		"cache.ttl":                      "CACHE_TTL",
		"cache.redis_addr":               "REDIS_ADDR",
		"cache.redis_password":           "REDIS_PASSWORD",
		"cache.badger_path":              "BADGER_PATH",
		"recommendation.response_format": "RESPONSE_FORMAT",
		"recommendation.enrich":          "RECOMMENDATION_ENRICH",
		"rate_limit.enabled":             "RATE_LIMIT_ENABLED",
		"rate_limit.requests":            "RATE_LIMIT_REQUESTS",
		"rate_limit.window":              "RATE_LIMIT_WINDOW",
		"dedup_window":                   "DEDUP_WINDOW",
		"log_level":                      "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// 設定設定檔名稱和路徑
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// logger 尚未初始化，改用 fmt.Println
	fmt.Println("Loading configuration", "gemini_api_key:", maskAPIKey(v.GetString("gemini.api_key")), "gemini_model:", v.GetString("gemini.model"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Cache.Backend = strings.ToLower(config.Cache.Backend)
	config.Gemini.FallbackMode = strings.ToLower(config.Gemini.FallbackMode)
	config.Recommendation.ResponseFormat = strings.ToLower(config.Recommendation.ResponseFormat)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if key == "" {
		return "(empty)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "persona-recommender")

	// 伺服器設定
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "45s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.allow_origins", []string{"*"})

	// Gemini 設定
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.max_output_tokens", 15000)
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.top_p", 0.8)
	v.SetDefault("gemini.top_k", 40)
	v.SetDefault("gemini.timeout", "30s")
	v.SetDefault("gemini.fallback_mode", FallbackError)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.redis_prefix", "gemini:proxy:")
	v.SetDefault("cache.badger_path", "data/cache")

	// 推薦設定
	v.SetDefault("recommendation.response_format", FormatStructuredJSON)
	v.SetDefault("recommendation.count", 0) // 0 表示依格式決定
	v.SetDefault("recommendation.default_category", "")
	v.SetDefault("recommendation.enrich", true)
	v.SetDefault("recommendation.enrich_workers", 4)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.burst", 10)

	// 熔斷設定
	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", "60s")
	v.SetDefault("breaker.timeout", "30s")
	v.SetDefault("breaker.consecutive_failures", 5)

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", config.Server.Port)
	}

	switch config.Gemini.FallbackMode {
	case FallbackError, FallbackSimulated:
	default:
		return fmt.Errorf("invalid gemini fallback mode %q", config.Gemini.FallbackMode)
	}
	if config.Gemini.Timeout <= 0 {
		return fmt.Errorf("invalid gemini timeout")
	}
	if config.Gemini.MaxOutputTokens <= 0 {
		return fmt.Errorf("invalid gemini max output tokens")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case BackendMemory:
			if config.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
		case BackendRedis:
			if config.Cache.RedisAddr == "" {
				return fmt.Errorf("redis cache backend requires cache.redis_addr")
			}
		case BackendBadger:
			if config.Cache.BadgerPath == "" {
				return fmt.Errorf("badger cache backend requires cache.badger_path")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
		}
		if config.Cache.TTL < 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	switch config.Recommendation.ResponseFormat {
	case FormatStructuredJSON, FormatFreeText, FormatBilingualJSON:
	default:
		return fmt.Errorf("unknown response format %q", config.Recommendation.ResponseFormat)
	}
	if config.Recommendation.Count < 0 || config.Recommendation.Count > 20 {
		return fmt.Errorf("invalid recommendation count")
	}
	if config.Recommendation.EnrichWorkers <= 0 {
		return fmt.Errorf("invalid enrich workers")
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	return nil
}
