package recommendation

import (
	"fmt"
	"sort"
	"strings"

	"persona-recommender/internal/pkg/common"

	gojson "github.com/goccy/go-json"
)

// PromptBuilder 依語言與回應格式產生提示詞；相同輸入必定產生相同字串
type PromptBuilder struct {
	Format Format
	// Count 為 0 時使用格式預設數量
	Count int
}

// BuildPrompt 使用格式預設數量產生提示詞
func BuildPrompt(prefs UserPreferences, format Format) string {
	return PromptBuilder{Format: format}.Build(prefs)
}

// promptProfile 嵌入提示詞的偏好資料，欄位順序固定
type promptProfile struct {
	Personality Traits          `json:"personality"`
	Interests   []string        `json:"interests"`
	Values      []string        `json:"values"`
	Goals       []string        `json:"goals"`
	Context     promptContext   `json:"context"`
	Lifestyle   promptLifestyle `json:"lifestyle"`
}

type promptContext struct {
	Mood        string `json:"mood"`
	TimeOfDay   string `json:"timeOfDay"`
	EnergyLevel int    `json:"energyLevel"`
}

type promptLifestyle struct {
	ActivityLevel string `json:"activityLevel"`
	WorkStyle     string `json:"workStyle"`
	SocialStyle   string `json:"socialStyle"`
}

// Build 產生提示詞
func (b PromptBuilder) Build(prefs UserPreferences) string {
	count := b.Count
	if count <= 0 {
		count = b.Format.DefaultCount()
	}
	ja := prefs.Language == "ja"

	switch b.Format {
	case FormatFreeText:
		return buildFreeTextPrompt(prefs, count, ja)
	case FormatBilingualJSON:
		return buildJSONPrompt(prefs, count, ja, true)
	default:
		return buildJSONPrompt(prefs, count, ja, false)
	}
}

// normalizeTags 去除空白與重複並排序，標籤集合的順序不具意義
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func profileJSON(prefs UserPreferences) string {
	p := promptProfile{
		Personality: prefs.Profile.Traits,
		Interests:   normalizeTags(prefs.Profile.Interests),
		Values:      normalizeTags(prefs.Profile.Values),
		Goals:       normalizeTags(prefs.Profile.Goals),
		Context: promptContext{
			Mood:        prefs.Context.Mood,
			TimeOfDay:   prefs.Context.TimeOfDay,
			EnergyLevel: prefs.Context.EnergyLevel,
		},
		Lifestyle: promptLifestyle{
			ActivityLevel: prefs.Lifestyle.ActivityLevel,
			WorkStyle:     prefs.Lifestyle.WorkStyle,
			SocialStyle:   prefs.Lifestyle.SocialStyle,
		},
	}
	data, err := gojson.MarshalIndent(p, "", "  ")
	if err != nil {
		// 只含基本型別，不會失敗
		return "{}"
	}
	return string(data)
}

func buildJSONPrompt(prefs UserPreferences, count int, ja, bilingual bool) string {
	var sb strings.Builder
	categories := strings.Join(Categories[:8], "|")
	split := splitCounts(count)

	if ja {
		sb.WriteString(jaAdvisorIntro)
		fmt.Fprintf(&sb, "\n\nプロフィール分析:\n%s\n\n", profileJSON(prefs))
		if bilingual {
			sb.WriteString(jaBilingualInstructions)
		} else {
			sb.WriteString(jaJSONInstructions)
		}
	} else {
		sb.WriteString(enAdvisorIntro)
		fmt.Fprintf(&sb, "\n\nProfile Analysis:\n%s\n\n", profileJSON(prefs))
		if bilingual {
			sb.WriteString(enBilingualInstructions)
		} else {
			sb.WriteString(enJSONInstructions)
		}
	}

	sb.WriteString("\n")
	if bilingual {
		fmt.Fprintf(&sb, bilingualSchema, categories)
	} else {
		fmt.Fprintf(&sb, recordSchema, categories)
	}
	sb.WriteString("\n")

	if ja {
		fmt.Fprintf(&sb, jaNotes, count, split[0], split[1], split[2])
	} else {
		fmt.Fprintf(&sb, enNotes, count, split[0], split[1], split[2])
	}
	sb.WriteString("\n")
	sb.WriteString(personalizationGuidelines)
	return sb.String()
}

// splitCounts 將數量分成創作、健康、社交文化三組，預設 6 件為 2/2/2
func splitCounts(count int) [3]int {
	base := count / 3
	rest := count % 3
	out := [3]int{base, base, base}
	for i := 0; i < rest; i++ {
		out[i]++
	}
	return out
}

func buildFreeTextPrompt(prefs UserPreferences, count int, ja bool) string {
	interests := common.StringSliceToString(normalizeTags(prefs.Profile.Interests), prefs.Language)
	goals := common.StringSliceToString(normalizeTags(prefs.Profile.Goals), prefs.Language)
	values := common.StringSliceToString(normalizeTags(prefs.Profile.Values), prefs.Language)
	t := prefs.Profile.Traits

	if ja {
		if interests == "" {
			interests = "指定なし"
		}
		return fmt.Sprintf(`次の好みを持つユーザーに映画を推薦してください。
- 興味: %s
- 価値観: %s
- 目標: %s
- 性格 (1-5): 開放性 %d、誠実性 %d、外向性 %d、協調性 %d、神経症傾向 %d
- 今の気分: %s / 時間帯: %s / エネルギー: %d
- 生活スタイル: 活動量 %s、仕事スタイル %s、社交スタイル %s

好みに合う映画を %d 本推薦してください。各推薦には次を含めてください:
1. 公開年を括弧で付けた映画タイトル
2. ユーザーの好みに合う理由を 1-2 文で

書式の指示:
- 番号付きの項目 (1., 2. など) で書く
- タイトルの後に公開年を括弧で付ける
- タイトルの後にコロンを置き、続けて説明を書く
- マークダウンや特殊記号は使わない

例:
1. 映画タイトル (YYYY): この映画がユーザーの好みに合う理由。
2. 別の映画 (YYYY): ジャンルに基づいておすすめする理由。`,
			interests, values, goals,
			t.Openness, t.Conscientiousness, t.Extraversion, t.Agreeableness, t.Neuroticism,
			prefs.Context.Mood, prefs.Context.TimeOfDay, prefs.Context.EnergyLevel,
			orDash(prefs.Lifestyle.ActivityLevel), orDash(prefs.Lifestyle.WorkStyle), orDash(prefs.Lifestyle.SocialStyle),
			count)
	}

	if interests == "" {
		interests = "None specified"
	}
	return fmt.Sprintf(`I need movie recommendations for a user with the following preferences:
- Interests: %s
- Values: %s
- Goals: %s
- Personality (1-5): openness %d, conscientiousness %d, extraversion %d, agreeableness %d, neuroticism %d
- Current mood: %s / Time of day: %s / Energy: %d
- Lifestyle: activity %s, work style %s, social style %s

Please provide a curated list of %d movie recommendations that match these preferences. For each recommendation, include:
1. The movie title with its release year in parentheses
2. A brief 1-2 sentence explanation of why it matches the user's taste.

IMPORTANT FORMATTING INSTRUCTIONS:
- Format each recommendation as a numbered item (1., 2., etc.)
- Include the movie title with the year in parentheses
- Follow each title with a colon and a brief explanation
- Do not use markdown formatting
- Do not use special characters or formatting

Example format:
1. Movie Title (YYYY): Brief explanation about why this movie matches the user's preferences.
2. Another Movie (YYYY): Why this movie is recommended based on the user's interests.`,
		interests, values, goals,
		t.Openness, t.Conscientiousness, t.Extraversion, t.Agreeableness, t.Neuroticism,
		prefs.Context.Mood, prefs.Context.TimeOfDay, prefs.Context.EnergyLevel,
		orDash(prefs.Lifestyle.ActivityLevel), orDash(prefs.Lifestyle.WorkStyle), orDash(prefs.Lifestyle.SocialStyle),
		count)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

const enAdvisorIntro = `As a lifestyle advisor focused on personal enrichment, analyze from these perspectives:
1. Hobbies and personal growth
2. Entertainment and creativity
3. Physical and mental wellbeing
4. Cultural activities and self-expression
5. Social connections and personal satisfaction

Important: Suggest ways to enhance personal life through movies, music, meditation, and other enriching activities.`

const jaAdvisorIntro = `あなたは個人の充実した生活をサポートするライフスタイルアドバイザーとして、以下の観点から分析を行います：
1. 趣味と個人の成長
2. エンターテインメントと創造性
3. 心身の健康とウェルビーイング
4. 文化的活動と自己表現
5. 社会的つながりと個人の満足度

重要: 映画、音楽、瞑想などの活動を通じて、より豊かな個人生活を実現する方法を提案してください。`

const enJSONInstructions = `Respond with ONLY a valid JSON object in the following format.
Each recommendation should focus on personal enrichment and life satisfaction.
All text must be in English and kept friendly and approachable.`

const jaJSONInstructions = `以下の形式の有効なJSONオブジェクトのみで応答してください。
各推薦は個人の充実した生活を実現するための具体的な提案としてください。
すべての文章は日本語で書き、親しみやすく説明してください。`

const enBilingualInstructions = `Respond with ONLY a JSON object in the following format.
Write every text field twice as two consecutive keys with the same name: first in Japanese, then in English.
Do not translate category values.`

const jaBilingualInstructions = `以下の形式のJSONオブジェクトのみで応答してください。
すべての文章フィールドは同じキー名で2回続けて書いてください。1回目は日本語、2回目は英語です。
category の値は翻訳しないでください。`

const recordSchema = `{
  "recommendations": [
    {
      "title": "activity title",
      "description": "what the activity is and how it enriches life (2-3 sentences)",
      "category": "%s",
      "rating": 1-5,
      "impact": {"primary": "main life impact area", "secondary": ["other positive effects"], "score": 0-1},
      "contextualRelevance": {"mood": ["suitable moods"], "timeOfDay": ["recommended times"], "energyRequired": 1-5},
      "personalizedInsights": {"alignmentReason": ["personality fit"], "benefitAreas": ["wellbeing"], "challengeAreas": ["getting started"]},
      "enjoymentFactors": {"shortTerm": "immediate joy", "longTerm": "lasting fulfillment", "relatedInterests": ["connected hobbies"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0-1, "personalGrowth": "growth aspects"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo/group/online", "socialInteractionLevel": 0-5}
    }
  ]
}`

const bilingualSchema = `{
  "recommendations": [
    {
      "title": "日本語のタイトル",
      "title": "English title",
      "description": "日本語の説明",
      "description": "English description",
      "category": "%s",
      "rating": 1-5,
      "impact": {"primary": "日本語", "primary": "English", "secondary": ["日本語"], "secondary": ["English"], "score": 0-1},
      "contextualRelevance": {"mood": ["relaxed"], "timeOfDay": ["evening"], "energyRequired": 1-5},
      "enjoymentFactors": {"shortTerm": "日本語", "shortTerm": "English", "longTerm": "日本語", "longTerm": "English", "relatedInterests": ["日本語"], "relatedInterests": ["English"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0-1, "personalGrowth": "日本語", "personalGrowth": "English"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo", "socialInteractionLevel": 0-5}
    }
  ]
}`

const enNotes = `Important Notes:
1. Produce exactly %d recommendations:
   - %d creative activities (art, music, cooking, etc.)
   - %d wellness activities (exercise, meditation, etc.)
   - %d social/cultural activities (group activities, cultural experiences)
2. Use only the listed category values
3. Each recommendation should focus on enhancing personal happiness`

const jaNotes = `重要な注意点:
1. 推薦はちょうど %d 件にしてください:
   - 創造的活動 %d 件（芸術、音楽、料理など）
   - 心身の健康活動 %d 件（運動、瞑想など）
   - 社会的/文化的活動 %d 件（グループ活動、文化体験など）
2. category には指定された値のみを使う
3. 各推薦は個人の幸福度向上に焦点を当てる`

const personalizationGuidelines = `Personalization Guidelines:
- For high energy levels: More active and engaging activities
- For low energy levels: Calming and restorative experiences
- Morning recommendations: Energizing and inspiring activities
- Evening recommendations: Relaxing and reflective pursuits
- Adapt to social preferences (solo vs. group activities)
- Account for current mood in activity selection`
