package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-recommender/internal/pkg/common"
)

// BodySizeLimit 限制請求體大小；maxSize <= 0 表示不限制
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxSize <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		// 有宣告長度時直接拒絕，不讀取內容
		if c.Request.ContentLength > maxSize {
			common.LogWarn("請求內容過大",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("max_size", maxSize),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
			)
			lang := "en"
			if strings.HasPrefix(strings.ToLower(c.GetHeader("Accept-Language")), "ja") {
				lang = "ja"
			}
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorResponse{
				Error: common.Localize(common.ErrCodePayloadTooLarge, lang),
				Code:  common.ErrCodePayloadTooLarge,
			})
			return
		}

		// chunked 請求讀超過上限時由 handler 的解碼錯誤回報
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
