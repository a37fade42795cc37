package recommendation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"persona-recommender/internal/pkg/common"
)

const defaultRating = 3

// 同義欄位，依序取第一個非空值
var (
	titleKeys       = []string{"title", "name"}
	descriptionKeys = []string{"description", "explanation", "reason"}
	categoryKeys    = []string{"category", "type", "genre"}
)

// normalizeRecord 驗證單筆記錄並補齊所有子欄位
func normalizeRecord(raw rawRecord, index int, defaultCategory string) (Recommendation, error) {
	title := firstString(raw, titleKeys...)
	if title == "" {
		return Recommendation{}, common.NewValidationError(index, "title", "is required")
	}
	description := firstString(raw, descriptionKeys...)
	if description == "" {
		return Recommendation{}, common.NewValidationError(index, "description", "is required")
	}

	category := strings.ToLower(firstString(raw, categoryKeys...))
	if !IsCategory(category) {
		if defaultCategory == "" {
			if category == "" {
				return Recommendation{}, common.NewValidationError(index, "category", "is required")
			}
			return Recommendation{}, common.NewValidationError(index, "category", "is not a known category: "+category)
		}
		category = defaultCategory
	}

	rating := normalizeRating(raw["rating"])
	ratio := float64(rating) / 5

	impact := objectField(raw, "impact")
	contextual := objectField(raw, "contextualRelevance")
	insights := objectField(raw, "personalizedInsights")
	enjoyment := objectField(raw, "enjoymentFactors")
	wellbeing := objectField(raw, "wellbeingAspects")
	social := objectField(raw, "socialAspect")

	primary := firstString(impact, "primary")
	if primary == "" {
		primary = category
	}
	interaction := firstString(social, "interactionType")
	if interaction == "" {
		interaction = "solo"
	}

	return Recommendation{
		Title:       title,
		Description: description,
		Category:    category,
		Rating:      rating,
		Impact: Impact{
			Primary:   primary,
			Secondary: stringList(impact["secondary"]),
			Score:     clampFloat(numberOr(impact["score"], ratio), 0, 1),
		},
		ContextualRelevance: ContextualRelevance{
			Mood:           stringList(contextual["mood"]),
			TimeOfDay:      stringList(contextual["timeOfDay"]),
			EnergyRequired: clampInt(intOr(contextual["energyRequired"], 3), 1, 5),
		},
		PersonalizedInsights: PersonalizedInsights{
			AlignmentReason: stringList(insights["alignmentReason"]),
			BenefitAreas:    stringList(insights["benefitAreas"]),
			ChallengeAreas:  stringList(insights["challengeAreas"]),
		},
		EnjoymentFactors: EnjoymentFactors{
			ShortTerm:        firstString(enjoyment, "shortTerm"),
			LongTerm:         firstString(enjoyment, "longTerm"),
			RelatedInterests: stringList(enjoyment["relatedInterests"]),
		},
		WellbeingAspects: WellbeingAspects{
			Mindfulness:      boolValue(wellbeing["mindfulness"]),
			FulfillmentScore: clampFloat(numberOr(wellbeing["fulfillmentScore"], ratio), 0, 1),
			PersonalGrowth:   firstString(wellbeing, "personalGrowth"),
		},
		SocialAspect: SocialAspect{
			GroupActivity:          boolValue(social["groupActivity"]),
			InteractionType:        interaction,
			SocialInteractionLevel: clampInt(intOr(social["socialInteractionLevel"], 1), 0, 5),
		},
	}, nil
}

// normalizeRating 四捨五入後限制在 1..5，無法解析時為 3
func normalizeRating(v interface{}) int {
	f, ok := toFloat(v)
	if !ok {
		return defaultRating
	}
	return clampInt(int(math.Round(f)), 1, 5)
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func objectField(obj map[string]interface{}, key string) map[string]interface{} {
	if m, ok := obj[key].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

// stringList 接受字串陣列或單一字串，永不回傳 nil
func stringList(v interface{}) []string {
	out := []string{}
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func toFloat(v interface{}) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case int:
		f = float64(t)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func numberOr(v interface{}, def float64) float64 {
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}

func intOr(v interface{}, def int) int {
	if f, ok := toFloat(v); ok {
		return int(math.Round(f))
	}
	return def
}

func boolValue(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
