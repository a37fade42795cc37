package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Error   string `json:"error"`             // 使用者可讀的錯誤信息
	Code    string `json:"code"`              // 錯誤代碼
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeValidation      = "VALIDATION_ERROR"  // 400
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE" // 413

	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504

	ErrCodeAuth          = "AUTH_ERROR"
	ErrCodeRateLimit     = "RATE_LIMITED"
	ErrCodeTransport     = "UPSTREAM_ERROR"
	ErrCodeEmptyResponse = "EMPTY_RESPONSE"
	ErrCodeParse         = "PARSE_ERROR"
)

// AuthError 金鑰缺失或無效（需要重新設定）
type AuthError struct {
	Status int
	Reason string
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("auth error: %s", e.Reason)
	}
	return fmt.Sprintf("auth error (status %d): %s", e.Status, e.Reason)
}

// RateLimitError 上游限流，稍後可重試
type RateLimitError struct {
	RetryAfter string
	Body       string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("rate limited by upstream (retry after %s)", e.RetryAfter)
	}
	return "rate limited by upstream"
}

// TransportError 網路錯誤或上游非 2xx
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("transport error (status %d): %v", e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("transport error: %v", e.Err)
	default:
		return fmt.Sprintf("transport error (status %d): %s", e.Status, e.Body)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// EmptyResponseError 上游回報成功但沒有任何候選內容
type EmptyResponseError struct {
	FinishReason string
}

func (e *EmptyResponseError) Error() string {
	if e.FinishReason != "" {
		return fmt.Sprintf("empty response from upstream (finish reason %s)", e.FinishReason)
	}
	return "empty response from upstream"
}

// ParseError 所有解析策略都失敗，Raw 只用於日誌
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse model response: %s", e.Reason)
}

// ValidationError 單筆記錄缺少必要欄位，只記錄不回傳
type ValidationError struct {
	Index   int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("record %d: %s %s", e.Index, e.Field, e.Message)
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(index int, field, message string) error {
	return &ValidationError{Index: index, Field: field, Message: message}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Classify 將錯誤對應到 CustomError（代碼與 HTTP 狀態）
func Classify(err error) *CustomError {
	if err == nil {
		return nil
	}

	var (
		ce *CustomError
		ae *AuthError
		rl *RateLimitError
		te *TransportError
		ee *EmptyResponseError
		pe *ParseError
		ve *ValidationError
	)

	switch {
	case errors.As(err, &ae):
		return NewError(ErrCodeAuth, "upstream credential missing or invalid", http.StatusBadGateway, err)
	case errors.As(err, &rl):
		return NewError(ErrCodeRateLimit, "upstream rate limited", http.StatusTooManyRequests, err)
	case errors.As(err, &ee):
		return NewError(ErrCodeEmptyResponse, "upstream returned no content", http.StatusBadGateway, err)
	case errors.As(err, &te):
		return NewError(ErrCodeTransport, "upstream request failed", http.StatusBadGateway, err)
	case errors.As(err, &pe):
		return NewError(ErrCodeParse, "could not understand model response", http.StatusBadGateway, err)
	case errors.As(err, &ve):
		return NewError(ErrCodeValidation, ve.Error(), http.StatusBadRequest, err)
	case errors.As(err, &ce):
		return ce
	default:
		return NewError(ErrCodeInternalError, "internal error", http.StatusInternalServerError, err)
	}
}

var localizedMessages = map[string]map[string]string{
	ErrCodeAuth: {
		"en": "The recommendation service is not configured correctly. Please contact the administrator.",
		"ja": "推薦サービスの認証設定に問題があります。管理者に連絡してください。",
	},
	ErrCodeRateLimit: {
		"en": "Too many requests right now. Please try again in a few minutes.",
		"ja": "リクエストが集中しています。数分後にもう一度お試しください。",
	},
	ErrCodeEmptyResponse: {
		"en": "No response from the recommendation engine. Please try again.",
		"ja": "推薦エンジンから応答がありませんでした。もう一度お試しください。",
	},
	ErrCodeTransport: {
		"en": "Failed to reach the recommendation engine. Please try again.",
		"ja": "推薦エンジンに接続できませんでした。もう一度お試しください。",
	},
	ErrCodeParse: {
		"en": "We could not understand the recommendation response. Please try again.",
		"ja": "推薦結果を解析できませんでした。もう一度お試しください。",
	},
	ErrCodeValidation: {
		"en": "Some answers are missing or invalid.",
		"ja": "入力内容に不足または誤りがあります。",
	},
	ErrCodePayloadTooLarge: {
		"en": "The submitted answers are too large.",
		"ja": "送信された内容が大きすぎます。",
	},
	ErrCodeInvalidRequest: {
		"en": "Invalid request.",
		"ja": "無効なリクエストです。",
	},
	ErrCodeInternalError: {
		"en": "An error occurred.",
		"ja": "エラーが発生しました",
	},
}

// Localize 回傳給使用者看的單一訊息
func Localize(code, language string) string {
	msgs, ok := localizedMessages[code]
	if !ok {
		msgs = localizedMessages[ErrCodeInternalError]
	}
	if msg, ok := msgs[language]; ok {
		return msg
	}
	return msgs["en"]
}

// NewErrorResponse 依錯誤建立回應，debug 時附帶技術細節
func NewErrorResponse(err error, language string, debug bool) (int, ErrorResponse) {
	ce := Classify(err)
	resp := ErrorResponse{
		Error: Localize(ce.Code, language),
		Code:  ce.Code,
	}
	if debug {
		resp.Details = ce.Error()
	}
	return ce.Status, resp
}
