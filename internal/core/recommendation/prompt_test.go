package recommendation

import (
	"strings"
	"testing"
)

func samplePreferences(language string) UserPreferences {
	return UserPreferences{
		Language: language,
		Profile: Profile{
			Traits:    Traits{Openness: 5, Conscientiousness: 3, Extraversion: 2, Agreeableness: 4, Neuroticism: 2},
			Interests: []string{"art", "music"},
			Values:    []string{"growth"},
			Goals:     []string{"creative"},
		},
		Context: Context{
			Mood:        "creative",
			TimeOfDay:   "evening",
			EnergyLevel: 4,
		},
		Lifestyle: Lifestyle{ActivityLevel: "moderate", WorkStyle: "flexible", SocialStyle: "balanced"},
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	for _, format := range []Format{FormatStructuredJSON, FormatFreeText, FormatBilingualJSON} {
		for _, lang := range []string{"en", "ja"} {
			prefs := samplePreferences(lang)
			first := BuildPrompt(prefs, format)
			second := BuildPrompt(prefs, format)
			if first != second {
				t.Errorf("%s/%s: prompt is not deterministic", format, lang)
			}
		}
	}
}

func TestBuildPromptIgnoresTagOrder(t *testing.T) {
	a := samplePreferences("en")
	b := samplePreferences("en")
	b.Profile.Interests = []string{"music", " art ", "art"}

	if BuildPrompt(a, FormatStructuredJSON) != BuildPrompt(b, FormatStructuredJSON) {
		t.Error("tag order or duplicates changed the prompt")
	}
}

func TestBuildPromptDoesNotMutateInput(t *testing.T) {
	prefs := samplePreferences("en")
	prefs.Profile.Interests = []string{"music", "art"}
	_ = BuildPrompt(prefs, FormatStructuredJSON)
	if prefs.Profile.Interests[0] != "music" {
		t.Errorf("interests reordered: %v", prefs.Profile.Interests)
	}
}

func TestBuildPromptContent(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		format Format
		want   []string
	}{
		{
			name:   "structured english",
			lang:   "en",
			format: FormatStructuredJSON,
			want:   []string{"exactly 6 recommendations", `"openness": 5`, `"mood": "creative"`, `"energyLevel": 4`, `"workStyle": "flexible"`, "entertainment|creativity"},
		},
		{
			name:   "structured japanese",
			lang:   "ja",
			format: FormatStructuredJSON,
			want:   []string{"ちょうど 6 件", "プロフィール分析", `"interests": [`},
		},
		{
			name:   "free text english",
			lang:   "en",
			format: FormatFreeText,
			want:   []string{"10 movie recommendations", "Interests: art, music", "Movie Title (YYYY)"},
		},
		{
			name:   "free text japanese",
			lang:   "ja",
			format: FormatFreeText,
			want:   []string{"映画を 10 本", "興味: art、music"},
		},
		{
			name:   "bilingual",
			lang:   "en",
			format: FormatBilingualJSON,
			want:   []string{"first in Japanese, then in English", `"title": "English title"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(samplePreferences(tt.lang), tt.format)
			for _, w := range tt.want {
				if !strings.Contains(prompt, w) {
					t.Errorf("prompt missing %q", w)
				}
			}
		})
	}
}

func TestPromptBuilderCount(t *testing.T) {
	prompt := PromptBuilder{Format: FormatStructuredJSON, Count: 9}.Build(samplePreferences("en"))
	for _, w := range []string{"exactly 9 recommendations", "- 3 creative", "- 3 wellness", "- 3 social"} {
		if !strings.Contains(prompt, w) {
			t.Errorf("prompt missing %q", w)
		}
	}
}

func TestSplitCounts(t *testing.T) {
	tests := []struct {
		count int
		want  [3]int
	}{
		{6, [3]int{2, 2, 2}},
		{7, [3]int{3, 2, 2}},
		{5, [3]int{2, 2, 1}},
		{1, [3]int{1, 0, 0}},
	}
	for _, tt := range tests {
		if got := splitCounts(tt.count); got != tt.want {
			t.Errorf("splitCounts(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}
