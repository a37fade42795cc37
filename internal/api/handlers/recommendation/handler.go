// Package recommendation 提供推薦 API 的 HTTP 處理器
package recommendation

import (
	"context"
	"net/http"
	"strings"

	"persona-recommender/internal/core/recommendation"
	"persona-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recommender 推薦服務介面
type Recommender interface {
	Recommend(ctx context.Context, prefs recommendation.UserPreferences) (*recommendation.Result, error)
}

// Handler 推薦處理器
type Handler struct {
	svc   Recommender
	debug bool
}

// NewHandler 創建推薦處理器；debug 時錯誤回應附帶技術細節
func NewHandler(svc Recommender, debug bool) *Handler {
	return &Handler{svc: svc, debug: debug}
}

// HandleRecommend 依問卷結果產生推薦
func (h *Handler) HandleRecommend(c *gin.Context) {
	var prefs recommendation.UserPreferences
	if err := common.DecodeJSON(c.Request.Body, &prefs); err != nil {
		common.LogWarn("無效的推薦請求",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		h.writeError(c, common.NewError(common.ErrCodeInvalidRequest, "invalid request body", http.StatusBadRequest, err), requestLanguage(c, ""))
		return
	}

	result, err := h.svc.Recommend(c.Request.Context(), prefs)
	if err != nil {
		common.LogError("產生推薦失敗",
			zap.Error(err),
			zap.String("language", prefs.Language),
			zap.String("request_id", requestid.Get(c)),
		)
		h.writeError(c, err, requestLanguage(c, prefs.Language))
		return
	}

	common.LogInfo("推薦完成",
		zap.String("batch_id", result.BatchID),
		zap.Int("count", len(result.Recommendations)),
		zap.Bool("cached", result.Cached),
		zap.Bool("simulated", result.Simulated),
	)
	c.JSON(http.StatusOK, result)
}

func (h *Handler) writeError(c *gin.Context, err error, language string) {
	_ = c.Error(err)
	status, resp := common.NewErrorResponse(err, language, h.debug)
	c.JSON(status, resp)
}

// requestLanguage 問卷語言優先，其次是 Accept-Language
func requestLanguage(c *gin.Context, language string) string {
	if language == "en" || language == "ja" {
		return language
	}
	if strings.HasPrefix(strings.ToLower(c.GetHeader("Accept-Language")), "ja") {
		return "ja"
	}
	return "en"
}
