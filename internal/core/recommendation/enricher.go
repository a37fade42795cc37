package recommendation

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed links.yaml
var defaultLinks []byte

const fallbackKey = "default"

// Link 推薦卡片的外部連結
type Link struct {
	URL         string `json:"url"`
	SourceLabel string `json:"sourceLabel,omitempty"`
}

type linkTable struct {
	Known  map[string][]knownTitle              `yaml:"known"`
	Search map[string]map[string]searchTemplate `yaml:"search"`
}

type knownTitle struct {
	Title   string              `yaml:"title"`
	Aliases []string            `yaml:"aliases"`
	Links   map[string]linkSpec `yaml:"links"`
}

type linkSpec struct {
	URL   string `yaml:"url"`
	Label string `yaml:"label"`
}

type searchTemplate struct {
	Template string `yaml:"template"`
	Label    string `yaml:"label"`
	Escape   string `yaml:"escape"`
}

var trailingYear = regexp.MustCompile(`\s*[(（]\d{4}[)）]\s*$`)

// Enricher 依類別與標題補上外部連結，結果以 category:title:language 快取
type Enricher struct {
	known  map[string]map[string]map[string]linkSpec // category -> title -> language
	search map[string]map[string]searchTemplate
	cache  sync.Map
}

// NewEnricher 使用內建連結表
func NewEnricher() (*Enricher, error) {
	return LoadEnricher(defaultLinks)
}

// LoadEnricher 從 YAML 建立
func LoadEnricher(data []byte) (*Enricher, error) {
	var table linkTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("解析連結表失敗: %w", err)
	}
	if _, ok := table.Search[fallbackKey][fallbackKey]; !ok {
		return nil, fmt.Errorf("連結表缺少 search.default.default")
	}

	e := &Enricher{
		known:  make(map[string]map[string]map[string]linkSpec, len(table.Known)),
		search: table.Search,
	}
	for category, titles := range table.Known {
		byTitle := make(map[string]map[string]linkSpec)
		for _, kt := range titles {
			for _, name := range append([]string{kt.Title}, kt.Aliases...) {
				byTitle[titleKey(name)] = kt.Links
			}
		}
		e.known[category] = byTitle
	}
	return e, nil
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(trailingYear.ReplaceAllString(title, "")))
}

// Enrich 取得外部連結；標題為空時回傳 false
func (e *Enricher) Enrich(category, title, language string) (Link, bool) {
	if strings.TrimSpace(title) == "" {
		return Link{}, false
	}
	cacheKey := category + ":" + title + ":" + language
	if v, ok := e.cache.Load(cacheKey); ok {
		return v.(Link), true
	}

	link := e.resolve(category, title, language)
	e.cache.Store(cacheKey, link)
	return link, true
}

func (e *Enricher) resolve(category, title, language string) Link {
	if links, ok := e.known[category][titleKey(title)]; ok {
		if spec, ok := links[language]; ok {
			return Link{URL: spec.URL, SourceLabel: spec.Label}
		}
		if spec, ok := links["en"]; ok {
			return Link{URL: spec.URL, SourceLabel: spec.Label}
		}
	}

	tmpl := e.template(category, language)
	query := strings.TrimSpace(trailingYear.ReplaceAllString(title, ""))
	return Link{
		URL:         strings.ReplaceAll(tmpl.Template, "{query}", escapeQuery(query, tmpl.Escape)),
		SourceLabel: tmpl.Label,
	}
}

func (e *Enricher) template(category, language string) searchTemplate {
	for _, c := range []string{category, fallbackKey} {
		byLang, ok := e.search[c]
		if !ok {
			continue
		}
		if t, ok := byLang[language]; ok {
			return t
		}
		if t, ok := byLang[fallbackKey]; ok {
			return t
		}
	}
	return e.search[fallbackKey][fallbackKey]
}

func escapeQuery(q, mode string) string {
	if mode == "path" {
		return url.PathEscape(q)
	}
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}

// EnrichAll 並行補上整批推薦的連結，結果依索引寫回
func (e *Enricher) EnrichAll(ctx context.Context, recs []Recommendation, language string, workers int) error {
	if workers <= 0 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range recs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if link, ok := e.Enrich(recs[i].Category, recs[i].Title, language); ok {
				recs[i].ExternalURL = link.URL
				recs[i].SourceLabel = link.SourceLabel
			}
			return nil
		})
	}
	return g.Wait()
}
