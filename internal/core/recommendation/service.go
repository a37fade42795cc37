package recommendation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"persona-recommender/internal/core/ai/cache"
	"persona-recommender/internal/infrastructure/config"
	"persona-recommender/internal/pkg/common"
	"persona-recommender/internal/pkg/metrics"
	"persona-recommender/internal/pkg/validation"

	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Completer 單輪文字生成
type Completer interface {
	RequestCompletion(ctx context.Context, prompt string) (string, error)
}

// Service 推薦服務：驗證 -> 快取 -> 提示詞 -> 模型 -> 解析 -> 連結
type Service struct {
	completer     Completer
	store         cache.Store
	prompts       PromptBuilder
	parser        *Parser
	enricher      *Enricher
	enrich        bool
	enrichWorkers int
	simulate      bool
}

// NewService 創建推薦服務；store 為 nil 時使用不過期的記憶體快取
func NewService(cfg *config.Config, completer Completer, store cache.Store) (*Service, error) {
	format, err := ParseFormat(cfg.Recommendation.ResponseFormat)
	if err != nil {
		return nil, err
	}
	enricher, err := NewEnricher()
	if err != nil {
		return nil, err
	}
	if store == nil {
		store = cache.WithMetrics("recommendation", cache.NewManager(cache.ManagerOptions{}))
	}

	return &Service{
		completer:     completer,
		store:         store,
		prompts:       PromptBuilder{Format: format, Count: cfg.Recommendation.Count},
		parser:        NewParser(format, cfg.Recommendation.DefaultCategory),
		enricher:      enricher,
		enrich:        cfg.Recommendation.Enrich,
		enrichWorkers: cfg.Recommendation.EnrichWorkers,
		simulate:      cfg.Gemini.FallbackMode == config.FallbackSimulated,
	}, nil
}

// Format 目前使用的回應格式
func (s *Service) Format() Format {
	return s.prompts.Format
}

// Recommend 依問卷結果產生推薦
func (s *Service) Recommend(ctx context.Context, prefs UserPreferences) (*Result, error) {
	if err := validation.ValidateStruct(prefs); err != nil {
		return nil, common.NewError(common.ErrCodeValidation, err.Error(), http.StatusBadRequest, err)
	}

	format := s.prompts.Format
	key, err := CacheKey(prefs, format)
	if err != nil {
		return nil, fmt.Errorf("計算快取鍵失敗: %w", err)
	}

	if cached, ok := s.lookup(ctx, key); ok {
		return cached, nil
	}

	prompt := s.prompts.Build(prefs)
	common.LogDebug("推薦提示詞", zap.Int("length", len(prompt)), zap.String("format", string(format)))

	simulated := false
	start := time.Now()
	text, err := s.completer.RequestCompletion(ctx, prompt)
	if err != nil {
		var authErr *common.AuthError
		if !s.simulate || !errors.As(err, &authErr) {
			return nil, err
		}
		common.LogWarn("缺少有效的 API 金鑰，使用模擬回應",
			zap.String("reason", authErr.Reason),
			zap.String("language", prefs.Language),
		)
		metrics.SimulatedResponses.Inc()
		text = SimulatedResponse(format, prefs.Language)
		simulated = true
	} else {
		common.LogInfo("模型回應完成",
			zap.Duration("耗時", time.Since(start)),
			zap.Int("length", len(text)),
		)
	}

	recs, err := s.parser.Parse(text, prefs.Language)
	if err != nil {
		var pe *common.ParseError
		if errors.As(err, &pe) {
			common.LogError("無法解析模型回應",
				zap.Error(err),
				zap.String("raw", common.ShortText(pe.Raw, 500)),
			)
		}
		return nil, err
	}

	if s.enrich {
		if err := s.enricher.EnrichAll(ctx, recs, prefs.Language, s.enrichWorkers); err != nil {
			return nil, err
		}
	}

	result := &Result{
		BatchID:         common.GenerateUUID(),
		Recommendations: recs,
		Simulated:       simulated,
		Format:          format,
	}

	// 模擬結果不寫入快取，設定金鑰後即可取得真實推薦
	if !simulated {
		s.save(ctx, key, result)
	}
	return result, nil
}

func (s *Service) lookup(ctx context.Context, key string) (*Result, bool) {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		common.LogWarn("讀取推薦快取失敗", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var result Result
	if err := gojson.Unmarshal(data, &result); err != nil {
		common.LogWarn("推薦快取內容損毀", zap.Error(err))
		return nil, false
	}
	result.Cached = true
	return &result, true
}

func (s *Service) save(ctx context.Context, key string, result *Result) {
	data, err := gojson.Marshal(result)
	if err != nil {
		common.LogWarn("序列化推薦結果失敗", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, data, 0); err != nil {
		common.LogWarn("寫入推薦快取失敗", zap.Error(err))
	}
}

// Close 釋放快取
func (s *Service) Close() error {
	return s.store.Close()
}
