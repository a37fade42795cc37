package recommendation

import (
	"errors"
	"strings"
	"testing"

	"persona-recommender/internal/pkg/common"
)

func TestParseStrictJSON(t *testing.T) {
	text := "```json\n" + `{"recommendations":[
		{"title":"Sketching","description":"Draw outside","category":"Creativity","rating":5},
		{"title":"Yoga","description":"Stretch","category":"WELLNESS","rating":4},
		{"title":"Museum","description":"Visit","category":"culture","rating":"3"}
	]}` + "\n```"

	recs, err := NewParser(FormatStructuredJSON, "").Parse(text, "en")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	wantCategories := []string{"creativity", "wellness", "culture"}
	for i, rec := range recs {
		if want := string(rune('1' + i)); rec.ID != want {
			t.Errorf("recs[%d].ID = %q, want %q", i, rec.ID, want)
		}
		if rec.Category != wantCategories[i] {
			t.Errorf("recs[%d].Category = %q, want %q", i, rec.Category, wantCategories[i])
		}
	}
}

func TestParseTruncatedResponse(t *testing.T) {
	recs, err := NewParser(FormatStructuredJSON, "").Parse(`{"recommendations":[{"title":"A","description":"B"`, "en")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "A" || recs[0].Description != "B" {
		t.Fatalf("recs = %+v", recs)
	}
	if recs[0].Category != "entertainment" {
		t.Errorf("Category = %q, want format default", recs[0].Category)
	}
	if recs[0].Rating != 3 {
		t.Errorf("Rating = %d, want default 3", recs[0].Rating)
	}
}

func TestParseBilingualPicksLanguage(t *testing.T) {
	text := `{"recommendations":[{"title":"瞑想","title":"Meditation","description":"日本語","description":"English","category":"relaxation"}]}`
	p := NewParser(FormatBilingualJSON, "")

	en, err := p.Parse(text, "en")
	if err != nil {
		t.Fatalf("Parse(en) error = %v", err)
	}
	if en[0].Description != "English" || en[0].Title != "Meditation" {
		t.Errorf("en record = %+v", en[0])
	}

	ja, err := p.Parse(text, "ja")
	if err != nil {
		t.Fatalf("Parse(ja) error = %v", err)
	}
	if ja[0].Description != "日本語" || ja[0].Title != "瞑想" {
		t.Errorf("ja record = %+v", ja[0])
	}
}

func TestParseSalvagesValidObjects(t *testing.T) {
	text := `Here are some ideas:
{"title":"Pottery","description":"Shape clay","category":"creativity","rating":4}
and another one {"title":"Broken", "description": oops}
{"title":"No category","description":"missing"}`

	recs, err := NewParser(FormatStructuredJSON, "").Parse(text, "en")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want exactly 1: %+v", len(recs), recs)
	}
	if recs[0].Title != "Pottery" || recs[0].ID != "1" {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestParseFreeTextLines(t *testing.T) {
	text := `Here are my picks:

1. **The Matrix (1999)**: A mind-bending sci-fi classic.
2. The Lord of the Rings: The Fellowship of the Ring (2001): An epic fantasy journey.
3. Whiplash (2014):
An intense drama about a jazz drummer.
It rewards viewers who love music, discipline, and stories about the price of chasing greatness at any cost.`

	recs, err := NewParser(FormatFreeText, "").Parse(text, "en")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(recs), recs)
	}

	tests := []struct {
		title, description string
	}{
		{"The Matrix (1999)", "A mind-bending sci-fi classic."},
		{"The Lord of the Rings: The Fellowship of the Ring (2001)", "An epic fantasy journey."},
		{"Whiplash (2014)", "An intense drama about a jazz drummer. It rewards viewers who love music, discipline, and stories about the price of chasing greatness at any cost."},
	}
	for i, tt := range tests {
		if recs[i].Title != tt.title {
			t.Errorf("recs[%d].Title = %q, want %q", i, recs[i].Title, tt.title)
		}
		if recs[i].Description != tt.description {
			t.Errorf("recs[%d].Description = %q, want %q", i, recs[i].Description, tt.description)
		}
		if recs[i].Category != "movies" {
			t.Errorf("recs[%d].Category = %q, want movies", i, recs[i].Category)
		}
	}
}

func TestParseFreeTextUnnumbered(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  []string
		descs []string
	}{
		{
			name:  "title with year and explanation",
			text:  "Inception (2010): A mind-bending heist thriller.\nArrival (2016): A linguist decodes an alien language.",
			want:  []string{"Inception (2010)", "Arrival (2016)"},
			descs: []string{"A mind-bending heist thriller.", "A linguist decodes an alien language."},
		},
		{
			name:  "bare title then explanation",
			text:  "Inception\nA mind-bending heist thriller.\n\nArrival\nA linguist decodes an alien language.",
			want:  []string{"Inception", "Arrival"},
			descs: []string{"A mind-bending heist thriller.", "A linguist decodes an alien language."},
		},
		{
			name:  "bare titles without blank lines",
			text:  "Inception\nA mind-bending heist thriller.\nArrival\nA linguist decodes an alien language.",
			want:  []string{"Inception", "Arrival"},
			descs: []string{"A mind-bending heist thriller.", "A linguist decodes an alien language."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := NewParser(FormatFreeText, "").Parse(tt.text, "en")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(recs) != len(tt.want) {
				t.Fatalf("got %d records, want %d: %+v", len(recs), len(tt.want), recs)
			}
			for i := range tt.want {
				if recs[i].Title != tt.want[i] {
					t.Errorf("recs[%d].Title = %q, want %q", i, recs[i].Title, tt.want[i])
				}
				if recs[i].Description != tt.descs[i] {
					t.Errorf("recs[%d].Description = %q, want %q", i, recs[i].Description, tt.descs[i])
				}
			}
		})
	}
}

func TestParseFreeTextNumberedSplit(t *testing.T) {
	text := "1. Inception. A heist inside layered dreams that rewards close attention and repeat viewing for puzzle lovers. " +
		"2. Arrival. A linguist decodes an alien language in a quiet and moving science fiction story about time."

	recs, err := NewParser(FormatFreeText, "").Parse(text, "en")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(recs), recs)
	}
	if recs[0].Title != "Inception" || recs[1].Title != "Arrival" {
		t.Errorf("titles = %q, %q", recs[0].Title, recs[1].Title)
	}
	if !strings.HasPrefix(recs[1].Description, "A linguist decodes") {
		t.Errorf("recs[1].Description = %q", recs[1].Description)
	}
}

func TestNumberedSplitOnlyForFreeText(t *testing.T) {
	for _, s := range strategiesFor(FormatStructuredJSON) {
		if s.Name() == "numbered-split" || s.Name() == "lines" {
			t.Errorf("structured format uses %s strategy", s.Name())
		}
	}
}

func TestParseUnknownCategoryWithoutDefault(t *testing.T) {
	p := &Parser{Format: FormatStructuredJSON}
	text := `{"recommendations":[
		{"title":"A","description":"a","category":"gardening"},
		{"title":"B","description":"b","category":"Music"}
	]}`

	recs, err := p.Parse(text, "en")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "B" || recs[0].ID != "1" {
		t.Errorf("recs = %+v", recs)
	}
}

func TestParseZeroRecords(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		text   string
	}{
		{"prose", FormatStructuredJSON, "I'm sorry, I can't help with that."},
		{"empty array", FormatStructuredJSON, `{"recommendations":[]}`},
		{"records without titles", FormatStructuredJSON, `{"recommendations":[{"description":"x"}]}`},
		{"free text title without explanation", FormatFreeText, "No numbered lines here."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(tt.format, "").Parse(tt.text, "en")
			var pe *common.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error = %v, want *common.ParseError", err)
			}
			if pe.Raw != tt.text {
				t.Errorf("ParseError.Raw = %q", pe.Raw)
			}
		})
	}
}

func TestParseSimulatedResponses(t *testing.T) {
	for _, format := range []Format{FormatStructuredJSON, FormatFreeText, FormatBilingualJSON} {
		for _, lang := range []string{"en", "ja"} {
			t.Run(string(format)+"/"+lang, func(t *testing.T) {
				recs, err := NewParser(format, "").Parse(SimulatedResponse(format, lang), lang)
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				if len(recs) < 3 {
					t.Errorf("got %d records", len(recs))
				}
				for _, rec := range recs {
					if lang == "en" && containsJapanese(rec.Title) {
						t.Errorf("english batch has japanese title %q", rec.Title)
					}
					if strings.TrimSpace(rec.Description) == "" {
						t.Errorf("record %s has empty description", rec.ID)
					}
				}
			})
		}
	}
}
