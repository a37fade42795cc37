package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"persona-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRateLimiter 每個 window 允許 requests 次，burst 為瞬間可用的額度
func NewRateLimiter(requests int, window time.Duration, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = requests
	}
	return rate.NewLimiter(rate.Limit(float64(requests)/window.Seconds()), burst)
}

// RateLimit 全域限流中間件
func RateLimit(requests int, window time.Duration, burst int) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window, burst)

	return func(c *gin.Context) {
		r := limiter.Reserve()
		if delay := r.Delay(); delay > 0 {
			// 不等待，直接拒絕並歸還額度
			r.Cancel()

			retryAfter := int(math.Ceil(delay.Seconds()))
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
				zap.Int("retry_after", retryAfter),
			)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"code":        common.ErrCodeTooManyRequests,
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
