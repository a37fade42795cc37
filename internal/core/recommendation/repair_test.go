package recommendation

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExtractFenced(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"missing closing fence", "```json\n{\"a\":", `{"a":`},
		{"no fence", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractFenced(tt.in); got != tt.want {
				t.Errorf("extractFenced() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepairTruncation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "open object inside array",
			in:   `{"recommendations":[{"title":"A","description":"B"`,
			want: `{"recommendations":[{"title":"A","description":"B"}]}`,
		},
		{
			name: "open string value",
			in:   `{"recommendations":[{"title":"A","description":"Half a sent`,
			want: `{"recommendations":[{"title":"A","description":"Half a sent"}]}`,
		},
		{
			name: "dangling colon",
			in:   `{"title":"A","rating":`,
			want: `{"title":"A","rating":null}`,
		},
		{
			name: "dangling key",
			in:   `{"title":"A","rat`,
			want: `{"title":"A","rat":null}`,
		},
		{
			name: "trailing comma",
			in:   `{"recommendations":[{"title":"A"},`,
			want: `{"recommendations":[{"title":"A"}]}`,
		},
		{
			name: "partial literal",
			in:   `{"title":"A","mindfulness":tr`,
			want: `{"title":"A","mindfulness":null}`,
		},
		{
			name: "escape at end",
			in:   `{"title":"A\`,
			want: `{"title":"A"}`,
		},
		{
			name: "braces inside strings are ignored",
			in:   `{"title":"{not a brace","tags":["[x"`,
			want: `{"title":"{not a brace","tags":["[x"]}`,
		},
		{
			name: "complete value with trailing prose",
			in:   `Sure! {"a":[1,2]} hope this helps {`,
			want: `{"a":[1,2]}`,
		},
		{
			name: "no json at all",
			in:   `just words`,
			want: `just words`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repairTruncation(tt.in)
			if got != tt.want {
				t.Errorf("repairTruncation() = %q, want %q", got, tt.want)
			}
			if strings.ContainsAny(tt.in, "{[") && !json.Valid([]byte(got)) {
				t.Errorf("repairTruncation() produced invalid JSON: %s", got)
			}
		})
	}
}

func TestDisambiguateBilingual(t *testing.T) {
	in := `{"title":"散歩","title":"Walk","description":"日本語","description":"English","category":"wellness"}`

	tests := []struct {
		language string
		wantIn   []string
		wantOut  []string
	}{
		{"en", []string{`"title": "Walk"`, `"description": "English"`}, []string{"散歩", "日本語"}},
		{"ja", []string{`"title": "散歩"`, `"description": "日本語"`}, []string{"Walk", "English"}},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			got := disambiguateBilingual(in, tt.language)
			for _, s := range tt.wantIn {
				if !strings.Contains(got, s) {
					t.Errorf("result %s missing %s", got, s)
				}
			}
			for _, s := range tt.wantOut {
				if strings.Contains(got, s) {
					t.Errorf("result %s still contains %s", got, s)
				}
			}
			if !strings.Contains(got, `"category":"wellness"`) {
				t.Errorf("unrelated key changed: %s", got)
			}
		})
	}
}

func TestDisambiguateBilingualArrays(t *testing.T) {
	in := `{"secondary":["集中"],"secondary":["focus"]}`
	got := disambiguateBilingual(in, "en")
	if got != `{"secondary": ["focus"]}` {
		t.Errorf("disambiguateBilingual() = %s", got)
	}
}

func TestDisambiguateBilingualFallsBackToPosition(t *testing.T) {
	// 兩個值都是英文時，ja 取第一個、en 取第二個
	in := `{"title":"First","title":"Second"}`
	if got := disambiguateBilingual(in, "ja"); got != `{"title": "First"}` {
		t.Errorf("ja: %s", got)
	}
	if got := disambiguateBilingual(in, "en"); got != `{"title": "Second"}` {
		t.Errorf("en: %s", got)
	}
}
