package recommendation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"persona-recommender/internal/core/recommendation"
	"persona-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRecommender struct {
	result *recommendation.Result
	err    error
	got    recommendation.UserPreferences
}

func (f *fakeRecommender) Recommend(ctx context.Context, prefs recommendation.UserPreferences) (*recommendation.Result, error) {
	f.got = prefs
	return f.result, f.err
}

func serve(h *Handler, body string, header map[string]string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/api/v1/recommendations", h.HandleRecommend)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{"language":"en","profile":{"traits":{"openness":5,"conscientiousness":3,"extraversion":2,"agreeableness":4,"neuroticism":2},"interests":["art"],"goals":["creative"]},"context":{"mood":"creative","timeOfDay":"evening","energyLevel":4}}`

func TestHandleRecommendSuccess(t *testing.T) {
	fake := &fakeRecommender{result: &recommendation.Result{
		BatchID:         "batch-1",
		Recommendations: []recommendation.Recommendation{{ID: "1", Title: "Sketch", Category: "creativity", Rating: 4}},
		Format:          recommendation.FormatStructuredJSON,
	}}

	w := serve(NewHandler(fake, false), validBody, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if fake.got.Profile.Traits.Openness != 5 || fake.got.Context.Mood != "creative" {
		t.Errorf("decoded preferences = %+v", fake.got)
	}

	var result recommendation.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.BatchID != "batch-1" || len(result.Recommendations) != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestHandleRecommendErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		header     map[string]string
		err        error
		debug      bool
		wantStatus int
		wantCode   string
		wantError  string
		wantDetail bool
	}{
		{
			name:       "malformed body",
			body:       `{"language":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   common.ErrCodeInvalidRequest,
			wantError:  "Invalid request.",
		},
		{
			name:       "malformed body japanese header",
			body:       `not json`,
			header:     map[string]string{"Accept-Language": "ja-JP,ja;q=0.9"},
			wantStatus: http.StatusBadRequest,
			wantCode:   common.ErrCodeInvalidRequest,
			wantError:  "無効なリクエストです。",
		},
		{
			name:       "auth error localized",
			body:       strings.Replace(validBody, `"en"`, `"ja"`, 1),
			err:        &common.AuthError{Reason: "missing key"},
			wantStatus: http.StatusBadGateway,
			wantCode:   common.ErrCodeAuth,
			wantError:  common.Localize(common.ErrCodeAuth, "ja"),
		},
		{
			name:       "rate limit",
			body:       validBody,
			err:        &common.RateLimitError{RetryAfter: "5"},
			wantStatus: http.StatusTooManyRequests,
			wantCode:   common.ErrCodeRateLimit,
			wantError:  common.Localize(common.ErrCodeRateLimit, "en"),
		},
		{
			name:       "parse error with debug details",
			body:       validBody,
			err:        &common.ParseError{Raw: "???", Reason: "no strategy produced a valid record"},
			debug:      true,
			wantStatus: http.StatusBadGateway,
			wantCode:   common.ErrCodeParse,
			wantError:  common.Localize(common.ErrCodeParse, "en"),
			wantDetail: true,
		},
		{
			name:       "validation",
			body:       validBody,
			err:        common.NewError(common.ErrCodeValidation, "language is required", http.StatusBadRequest, nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   common.ErrCodeValidation,
			wantError:  common.Localize(common.ErrCodeValidation, "en"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRecommender{err: tt.err}
			w := serve(NewHandler(fake, tt.debug), tt.body, tt.header)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			var resp common.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != tt.wantCode || resp.Error != tt.wantError {
				t.Errorf("response = %+v", resp)
			}
			if (resp.Details != "") != tt.wantDetail {
				t.Errorf("Details = %q, want present=%v", resp.Details, tt.wantDetail)
			}
		})
	}
}
