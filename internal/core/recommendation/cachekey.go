package recommendation

import (
	"persona-recommender/internal/core/ai/cache"
)

// keyProjection 參與快取鍵的欄位；近期活動與壓力值不影響推薦內容
type keyProjection struct {
	Language    string    `json:"language"`
	Format      Format    `json:"format"`
	Traits      Traits    `json:"traits"`
	Interests   []string  `json:"interests"`
	Values      []string  `json:"values"`
	Goals       []string  `json:"goals"`
	Mood        string    `json:"mood"`
	TimeOfDay   string    `json:"timeOfDay"`
	EnergyLevel int       `json:"energyLevel"`
	Lifestyle   Lifestyle `json:"lifestyle"`
}

// CacheKey 計算推薦結果的快取鍵
func CacheKey(prefs UserPreferences, format Format) (string, error) {
	return cache.Fingerprint(keyProjection{
		Language:    prefs.Language,
		Format:      format,
		Traits:      prefs.Profile.Traits,
		Interests:   normalizeTags(prefs.Profile.Interests),
		Values:      normalizeTags(prefs.Profile.Values),
		Goals:       normalizeTags(prefs.Profile.Goals),
		Mood:        prefs.Context.Mood,
		TimeOfDay:   prefs.Context.TimeOfDay,
		EnergyLevel: prefs.Context.EnergyLevel,
		Lifestyle:   prefs.Lifestyle,
	})
}
