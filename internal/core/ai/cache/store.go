// Package cache 提供代理與推薦共用的鍵值快取
package cache

import (
	"context"
	"fmt"
	"time"

	"persona-recommender/internal/infrastructure/config"
	"persona-recommender/internal/pkg/common"
	"persona-recommender/internal/pkg/metrics"
)

// Stats 快取統計，由掃描現有條目計算
type Stats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
}

// Store 快取後端介面
//
// 不保證 at-most-once：兩個同時未命中的請求可能都會呼叫上游。
type Store interface {
	// Get 取得值；過期條目會被刪除並回報不存在
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set 覆寫值；ttl <= 0 表示不過期
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// New 依設定建立快取後端
func New(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewManager(ManagerOptions{
			MaxSize:         cfg.MaxSize,
			CleanupInterval: cfg.CleanupInterval,
		}), nil
	case config.BackendRedis:
		return NewRedisStore(RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case config.BackendBadger:
		return OpenBadgerStore(cfg.BadgerPath, false)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// instrumented 為任一後端加上命中率指標與日誌
type instrumented struct {
	Store
	name string
}

// WithMetrics 包裝後端以記錄命中與未命中
func WithMetrics(name string, s Store) Store {
	return &instrumented{Store: s, name: name}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok, err := i.Store.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		metrics.CacheHits.WithLabelValues(i.name).Inc()
		common.LogCacheHit(i.name, key)
	} else {
		metrics.CacheMisses.WithLabelValues(i.name).Inc()
		common.LogCacheMiss(i.name, key)
	}
	return value, ok, nil
}
