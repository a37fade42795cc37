package cache

import (
	"context"
	"sync"
	"time"

	"persona-recommender/internal/pkg/common"
	"persona-recommender/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ManagerOptions 記憶體快取選項
type ManagerOptions struct {
	// MaxSize 為 0 表示不限制容量
	MaxSize int
	// CleanupInterval 為 0 表示不啟動背景清理
	CleanupInterval time.Duration
	// Now 測試時可替換的時鐘
	Now func() time.Time
}

// Manager 記憶體快取管理器
type Manager struct {
	mu      sync.RWMutex
	store   map[string]cacheEntry
	maxSize int
	now     func() time.Time
	stats   cacheStats

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value       []byte
	expiresAt   time.Time // 零值表示不過期
	lastAccess  time.Time
	accessCount int
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager 創建新的緩存管理器
func NewManager(opts ManagerOptions) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Manager{
		store:   make(map[string]cacheEntry),
		maxSize: opts.MaxSize,
		now:     now,
		stop:    make(chan struct{}),
	}

	// 啟動清理過期緩存的協程
	if opts.CleanupInterval > 0 {
		m.wg.Add(1)
		go m.startCleanup(opts.CleanupInterval)
	}

	common.LogDebug("快取管理員已初始化",
		zap.Int("最大容量", opts.MaxSize),
		zap.Duration("清理間隔", opts.CleanupInterval),
	)

	return m
}

// Get 獲取緩存值
func (m *Manager) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		return nil, false, nil
	}

	if entry.expired(m.now()) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		return nil, false, nil
	}

	entry.lastAccess = m.now()
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++

	return entry.value, true, nil
}

// Set 設置緩存值
func (m *Manager) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, replacing := m.store[key]
	if !replacing && m.maxSize > 0 && len(m.store) >= m.maxSize {
		if evicted := m.cleanup(); evicted > 0 {
			common.LogDebug("快取清理執行", zap.Int("清理數量", evicted))
		}
		// 如果仍然超過大小限制，淘汰最少使用的條目
		for len(m.store) >= m.maxSize {
			m.evictLRU()
		}
	}

	now := m.now()
	entry := cacheEntry{
		value:      value,
		lastAccess: now,
	}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	m.store[key] = entry

	return nil
}

// Clear 清空所有條目
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	return nil
}

// Stats 掃描條目計算統計
func (m *Manager) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	s := Stats{Total: len(m.store)}
	for _, entry := range m.store {
		if entry.expired(now) {
			s.Expired++
		}
	}
	s.Active = s.Total - s.Expired
	return s, nil
}

// Len 目前條目數（含尚未清理的過期條目）
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// startCleanup 啟動清理過期緩存的協程
func (m *Manager) startCleanup(interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			count := m.cleanup()
			remaining := len(m.store)
			m.mu.Unlock()

			if count > 0 {
				common.LogDebug("Cleaned up expired cache entries",
					zap.Int("count", count),
					zap.Int("remaining_size", remaining),
				)
			}
		case <-m.stop:
			return
		}
	}
}

// cleanup 清理過期的緩存，呼叫者需持有寫鎖
func (m *Manager) cleanup() int {
	now := m.now()
	count := 0

	for key, entry := range m.store {
		if entry.expired(now) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	return count
}

// evictLRU 淘汰訪問次數最少、最久未訪問的條目
func (m *Manager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		metrics.CacheEvictions.WithLabelValues("memory").Inc()
	}
}

// Close 停止背景清理並清空緩存
func (m *Manager) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogDebug("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
