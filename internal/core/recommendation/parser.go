package recommendation

import (
	"strconv"

	"persona-recommender/internal/pkg/common"
	"persona-recommender/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Parser 將模型文字轉成正規化後的推薦；各策略依序嘗試，第一個產出有效記錄的策略勝出
type Parser struct {
	Format Format
	// DefaultCategory 為空時，類別不在集合內的記錄會被捨棄
	DefaultCategory string
}

// NewParser 建立解析器；defaultCategory 為空時使用格式本身的預設類別
func NewParser(format Format, defaultCategory string) *Parser {
	if defaultCategory == "" {
		defaultCategory = format.DefaultCategory()
	}
	return &Parser{Format: format, DefaultCategory: defaultCategory}
}

// Parse 解析模型回應；完全取不到記錄時回傳 *common.ParseError
func (p *Parser) Parse(text, language string) ([]Recommendation, error) {
	doc := p.prepare(text, language)

	for _, s := range strategiesFor(p.Format) {
		raws := s.Extract(doc)
		if len(raws) == 0 {
			continue
		}
		recs := p.normalizeAll(raws)
		if len(recs) == 0 {
			common.LogDebug("解析策略沒有有效記錄",
				zap.String("strategy", s.Name()),
				zap.Int("raw", len(raws)),
			)
			continue
		}

		metrics.ParseStrategyUsed.WithLabelValues(string(p.Format), s.Name()).Inc()
		common.LogDebug("解析成功",
			zap.String("strategy", s.Name()),
			zap.Int("count", len(recs)),
		)
		return recs, nil
	}

	metrics.ParseFailures.WithLabelValues(string(p.Format)).Inc()
	return nil, &common.ParseError{Raw: text, Reason: "no strategy produced a valid record"}
}

func (p *Parser) prepare(text, language string) document {
	extracted := extractFenced(text)
	if p.Format == FormatBilingualJSON {
		extracted = disambiguateBilingual(extracted, language)
	}
	return document{
		Raw:       text,
		Extracted: extracted,
		Repaired:  repairTruncation(extracted),
	}
}

// normalizeAll 捨棄無效記錄並依序編號
func (p *Parser) normalizeAll(raws []rawRecord) []Recommendation {
	out := make([]Recommendation, 0, len(raws))
	for i, raw := range raws {
		rec, err := normalizeRecord(raw, i, p.DefaultCategory)
		if err != nil {
			metrics.RecordsDropped.Inc()
			common.LogWarn("捨棄無效推薦記錄", zap.Error(err))
			continue
		}
		rec.ID = strconv.Itoa(len(out) + 1)
		out = append(out, rec)
	}
	return out
}
