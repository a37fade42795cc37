// Package recommendation 將使用者問卷轉成推薦卡片：組提示詞、呼叫模型、修復並解析回應
package recommendation

import (
	"fmt"
	"strings"
)

// Format 回應格式，決定提示詞模板與解析策略
type Format string

const (
	FormatStructuredJSON Format = "structured-json"
	FormatFreeText       Format = "free-text"
	FormatBilingualJSON  Format = "bilingual-json"
)

// ParseFormat 解析設定中的格式字串
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatStructuredJSON, FormatFreeText, FormatBilingualJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown response format %q", s)
	}
}

// DefaultCategory 格式本身定義的預設類別；自由文字回應沒有類別欄位
func (f Format) DefaultCategory() string {
	switch f {
	case FormatFreeText:
		return "movies"
	default:
		return "entertainment"
	}
}

// DefaultCount 提示詞要求的推薦數量
func (f Format) DefaultCount() int {
	if f == FormatFreeText {
		return 10
	}
	return 6
}

// Categories 封閉的類別集合
var Categories = []string{
	"entertainment", "creativity", "wellness", "culture",
	"social", "nature", "learning", "relaxation",
	"movies", "books", "food", "music",
}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// IsCategory 是否屬於封閉類別集合（需先轉小寫）
func IsCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}

// Traits 五大人格特質分數
type Traits struct {
	Openness          int `json:"openness" validate:"gte=1,lte=5"`
	Conscientiousness int `json:"conscientiousness" validate:"gte=1,lte=5"`
	Extraversion      int `json:"extraversion" validate:"gte=1,lte=5"`
	Agreeableness     int `json:"agreeableness" validate:"gte=1,lte=5"`
	Neuroticism       int `json:"neuroticism" validate:"gte=1,lte=5"`
}

// Profile 個人檔案
type Profile struct {
	Traits    Traits   `json:"traits"`
	Interests []string `json:"interests" validate:"max=20,dive,required,max=100"`
	Values    []string `json:"values" validate:"max=20,dive,required,max=100"`
	Goals     []string `json:"goals" validate:"max=20,dive,required,max=100"`
}

// Context 當下情境；RecentActivities 與 StressLevel 不影響快取鍵
type Context struct {
	Mood             string   `json:"mood" validate:"required,oneof=energetic focused relaxed creative social"`
	TimeOfDay        string   `json:"timeOfDay" validate:"required,oneof=morning afternoon evening night"`
	EnergyLevel      int      `json:"energyLevel" validate:"gte=1,lte=5"`
	RecentActivities []string `json:"recentActivities,omitempty"`
	StressLevel      int      `json:"stressLevel" validate:"gte=0,lte=5"`
}

// Lifestyle 生活型態偏好
type Lifestyle struct {
	ActivityLevel string `json:"activityLevel" validate:"omitempty,oneof=low moderate high"`
	WorkStyle     string `json:"workStyle" validate:"omitempty,oneof=focused balanced flexible"`
	SocialStyle   string `json:"socialStyle" validate:"omitempty,oneof=introverted balanced extroverted"`
}

// UserPreferences 問卷結果，提交後不再修改
type UserPreferences struct {
	Language  string    `json:"language" validate:"required,oneof=en ja"`
	Profile   Profile   `json:"profile"`
	Context   Context   `json:"context"`
	Lifestyle Lifestyle `json:"lifestyle"`
}

// Impact 對生活的影響
type Impact struct {
	Primary   string   `json:"primary"`
	Secondary []string `json:"secondary"`
	Score     float64  `json:"score"`
}

// ContextualRelevance 適合的情境
type ContextualRelevance struct {
	Mood           []string `json:"mood"`
	TimeOfDay      []string `json:"timeOfDay"`
	EnergyRequired int      `json:"energyRequired"`
}

// PersonalizedInsights 個人化說明
type PersonalizedInsights struct {
	AlignmentReason []string `json:"alignmentReason"`
	BenefitAreas    []string `json:"benefitAreas"`
	ChallengeAreas  []string `json:"challengeAreas"`
}

// EnjoymentFactors 樂趣來源
type EnjoymentFactors struct {
	ShortTerm        string   `json:"shortTerm"`
	LongTerm         string   `json:"longTerm"`
	RelatedInterests []string `json:"relatedInterests"`
}

// WellbeingAspects 身心健康面向
type WellbeingAspects struct {
	Mindfulness      bool    `json:"mindfulness"`
	FulfillmentScore float64 `json:"fulfillmentScore"`
	PersonalGrowth   string  `json:"personalGrowth"`
}

// SocialAspect 社交面向
type SocialAspect struct {
	GroupActivity          bool   `json:"groupActivity"`
	InteractionType        string `json:"interactionType"`
	SocialInteractionLevel int    `json:"socialInteractionLevel"`
}

// Recommendation 正規化後的推薦卡片，所有子欄位都有值
type Recommendation struct {
	ID                   string               `json:"id"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	Category             string               `json:"category"`
	Rating               int                  `json:"rating"`
	Impact               Impact               `json:"impact"`
	ContextualRelevance  ContextualRelevance  `json:"contextualRelevance"`
	PersonalizedInsights PersonalizedInsights `json:"personalizedInsights"`
	EnjoymentFactors     EnjoymentFactors     `json:"enjoymentFactors"`
	WellbeingAspects     WellbeingAspects     `json:"wellbeingAspects"`
	SocialAspect         SocialAspect         `json:"socialAspect"`
	ExternalURL          string               `json:"externalUrl,omitempty"`
	SourceLabel          string               `json:"sourceLabel,omitempty"`
}

// Result 一次推薦請求的結果
type Result struct {
	BatchID         string           `json:"batchId"`
	Recommendations []Recommendation `json:"recommendations"`
	Cached          bool             `json:"cached"`
	Simulated       bool             `json:"simulated"`
	Format          Format           `json:"format"`
}
