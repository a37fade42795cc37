// Package gemini 封裝 Gemini generateContent REST 呼叫
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"persona-recommender/internal/core/ai"
	"persona-recommender/internal/infrastructure/config"
	"persona-recommender/internal/pkg/common"
	"persona-recommender/internal/pkg/metrics"

	"github.com/go-resty/resty/v2"
	gojson "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const breakerName = "gemini-api"

// Client Gemini 客戶端
type Client struct {
	cfg    config.GeminiConfig
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
}

// NewClient 創建 Gemini 客戶端
func NewClient(cfg config.GeminiConfig, bcfg config.BreakerConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	client.JSONMarshal = gojson.Marshal
	client.JSONUnmarshal = gojson.Unmarshal

	trip := bcfg.ConsecutiveFailures
	if trip == 0 {
		trip = 5
	}

	metrics.BreakerState.Set(0)
	cb := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: bcfg.MaxRequests,
		Interval:    bcfg.Interval,
		Timeout:     bcfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trip
		},
		// 金鑰錯誤與限流不代表上游故障，不計入失敗
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var ae *common.AuthError
			var rl *common.RateLimitError
			return errors.As(err, &ae) || errors.As(err, &rl)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			common.LogWarn("熔斷器狀態變更",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.BreakerState.Set(stateToFloat(to))
		},
	})

	return &Client{
		cfg:    cfg,
		client: client,
		cb:     cb,
	}
}

// HasKey 是否已設定 API 金鑰
func (c *Client) HasKey() bool {
	return c.cfg.APIKey != ""
}

// Model 目前使用的模型
func (c *Client) Model() string {
	return c.cfg.Model
}

func (c *Client) path() string {
	return fmt.Sprintf("/models/%s:generateContent", c.cfg.Model)
}

func (c *Client) generationConfig() *ai.GenerationConfig {
	return &ai.GenerationConfig{
		Temperature:     c.cfg.Temperature,
		TopK:            c.cfg.TopK,
		TopP:            c.cfg.TopP,
		MaxOutputTokens: c.cfg.MaxOutputTokens,
	}
}

// RequestCompletion 送出提示詞並回傳第一個候選文字
func (c *Client) RequestCompletion(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := c.requestCompletion(ctx, prompt)
	common.LogAICall(c.cfg.Model, time.Since(start), err)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(errorKind(err)).Inc()
	}
	return text, err
}

func (c *Client) requestCompletion(ctx context.Context, prompt string) (string, error) {
	if !c.HasKey() {
		return "", &common.AuthError{Reason: "GEMINI_API_KEY is not configured"}
	}

	body := ai.NewTextRequest(prompt, c.generationConfig())

	var resp *resty.Response
	_, err := c.cb.Execute(func() (*resty.Response, error) {
		var err error
		resp, err = c.send(ctx, "completion", body)
		if err != nil {
			return nil, err
		}
		return resp, statusError(resp)
	})
	if err != nil {
		return "", wrapBreakerError(err)
	}

	var result ai.GenerateResponse
	if err := gojson.Unmarshal(resp.Body(), &result); err != nil {
		return "", &common.TransportError{Status: resp.StatusCode(), Err: fmt.Errorf("decode response: %w", err)}
	}

	text, finishReason := result.FirstText()
	if strings.TrimSpace(text) == "" {
		return "", &common.EmptyResponseError{FinishReason: finishReason}
	}

	common.LogDebug("Gemini 回應",
		zap.Int("length", len(text)),
		zap.String("finish_reason", finishReason),
	)
	return text, nil
}

// Forward 原樣轉發請求體，回傳上游狀態碼與內容；只有網路錯誤或熔斷時回傳 error
func (c *Client) Forward(ctx context.Context, body []byte) (int, []byte, error) {
	var resp *resty.Response
	_, err := c.cb.Execute(func() (*resty.Response, error) {
		var err error
		resp, err = c.send(ctx, "forward", body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return resp, &common.TransportError{Status: resp.StatusCode(), Body: common.ShortText(resp.String(), 200)}
		}
		return resp, nil
	})
	if resp != nil {
		return resp.StatusCode(), resp.Body(), nil
	}
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(errorKind(err)).Inc()
		return 0, nil, wrapBreakerError(err)
	}
	return 0, nil, &common.TransportError{Err: errors.New("no response")}
}

func (c *Client) send(ctx context.Context, operation string, body interface{}) (*resty.Response, error) {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.cfg.APIKey).
		SetBody(body).
		Post(c.path())
	if err != nil {
		metrics.RecordUpstream(operation, 0, time.Since(start))
		return nil, &common.TransportError{Err: err}
	}
	metrics.RecordUpstream(operation, resp.StatusCode(), time.Since(start))
	return resp, nil
}

// statusError 將非 2xx 狀態碼轉成型別化錯誤
func statusError(resp *resty.Response) error {
	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &common.AuthError{Status: status, Reason: common.ShortText(resp.String(), 200)}
	case status == http.StatusTooManyRequests:
		return &common.RateLimitError{
			RetryAfter: resp.Header().Get("Retry-After"),
			Body:       common.ShortText(resp.String(), 200),
		}
	default:
		return &common.TransportError{Status: status, Body: common.ShortText(resp.String(), 200)}
	}
}

func wrapBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		common.LogWarn("熔斷器拒絕請求", zap.Error(err))
		return &common.TransportError{Err: err}
	}
	return err
}

func errorKind(err error) string {
	var (
		ae *common.AuthError
		rl *common.RateLimitError
		ee *common.EmptyResponseError
	)
	switch {
	case errors.As(err, &ae):
		return "auth"
	case errors.As(err, &rl):
		return "rate_limit"
	case errors.As(err, &ee):
		return "empty"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	default:
		return "transport"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
