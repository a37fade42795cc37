package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-recommender/internal/core/ai/cache"
	"persona-recommender/internal/pkg/common"
)

// Deduplicator 在 window 內拒絕內容相同的重複 POST（例如連點送出）
type Deduplicator struct {
	mu       sync.Mutex
	requests map[string]time.Time
	window   time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewDeduplicator 創建去重器並啟動背景清理
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = time.Second
	}
	d := &Deduplicator{
		requests: make(map[string]time.Time),
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go d.janitor(10 * window)
	return d
}

func (d *Deduplicator) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.cleanup()
		case <-d.stop:
			return
		}
	}
}

func (d *Deduplicator) cleanup() {
	now := d.now()
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, t := range d.requests {
		if now.Sub(t) > d.window {
			delete(d.requests, k)
		}
	}
}

// Seen 記錄指紋；window 內已出現過時回傳 true
func (d *Deduplicator) Seen(fingerprint string) bool {
	now := d.now()
	d.mu.Lock()
	defer d.mu.Unlock()
	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// Close 停止背景清理
func (d *Deduplicator) Close() {
	d.stopOnce.Do(func() { close(d.stop) })
}

// requestKey 同一客戶端、同一路徑、同一內容才算重複送出
func requestKey(c *gin.Context, bodyKey string) string {
	return strings.Join([]string{c.ClientIP(), c.Request.Method, c.Request.URL.Path, bodyKey}, ":")
}

// Middleware 請求去重中間件；JSON 鍵順序不同視為同一請求
func (d *Deduplicator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.Request.Body == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			common.LogError("Failed to read request body", zap.Error(err))
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		bodyKey, err := cache.FingerprintJSON(body)
		if err != nil {
			// 非法 JSON 交給 handler 回報
			c.Next()
			return
		}

		if d.Seen(requestKey(c, bodyKey)) {
			common.LogInfo("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Request too frequent",
				"code":  common.ErrCodeTooManyRequests,
			})
			return
		}

		c.Next()
	}
}
