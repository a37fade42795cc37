package recommendation

import "testing"

func TestCacheKeyStable(t *testing.T) {
	base := samplePreferences("en")
	key, err := CacheKey(base, FormatStructuredJSON)
	if err != nil {
		t.Fatalf("CacheKey() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*UserPreferences)
		same   bool
	}{
		{"identical", func(p *UserPreferences) {}, true},
		{"reordered interests", func(p *UserPreferences) { p.Profile.Interests = []string{"music", "art"} }, true},
		{"recent activities ignored", func(p *UserPreferences) { p.Context.RecentActivities = []string{"hiking"} }, true},
		{"stress level ignored", func(p *UserPreferences) { p.Context.StressLevel = 5 }, true},
		{"language", func(p *UserPreferences) { p.Language = "ja" }, false},
		{"trait", func(p *UserPreferences) { p.Profile.Traits.Openness = 1 }, false},
		{"mood", func(p *UserPreferences) { p.Context.Mood = "relaxed" }, false},
		{"energy", func(p *UserPreferences) { p.Context.EnergyLevel = 1 }, false},
		{"lifestyle", func(p *UserPreferences) { p.Lifestyle.SocialStyle = "introverted" }, false},
		{"goals", func(p *UserPreferences) { p.Profile.Goals = append(p.Profile.Goals, "calm") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := samplePreferences("en")
			tt.mutate(&prefs)
			got, err := CacheKey(prefs, FormatStructuredJSON)
			if err != nil {
				t.Fatalf("CacheKey() error = %v", err)
			}
			if (got == key) != tt.same {
				t.Errorf("key equal = %v, want %v", got == key, tt.same)
			}
		})
	}
}

func TestCacheKeyIncludesFormat(t *testing.T) {
	prefs := samplePreferences("en")
	a, _ := CacheKey(prefs, FormatStructuredJSON)
	b, _ := CacheKey(prefs, FormatFreeText)
	if a == b {
		t.Error("different formats share a cache key")
	}
}
