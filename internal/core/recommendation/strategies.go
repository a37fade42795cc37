package recommendation

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"persona-recommender/internal/pkg/common"
)

// rawRecord 尚未驗證的單筆記錄
type rawRecord = map[string]interface{}

// document 各階段處理後的模型回應
type document struct {
	Raw       string // 模型原始文字
	Extracted string // 去除圍欄（雙語格式已收斂重複鍵）
	Repaired  string // 截斷修復後
}

// Strategy 從回應中取出原始記錄；取不到時回傳空切片
type Strategy interface {
	Name() string
	Extract(doc document) []rawRecord
}

// strategiesFor 依格式決定嘗試順序
func strategiesFor(format Format) []Strategy {
	switch format {
	case FormatFreeText:
		return []Strategy{strictStrategy{}, salvageStrategy{}, linesStrategy{}, numberedSplitStrategy{}}
	default:
		return []Strategy{strictStrategy{}, salvageStrategy{}}
	}
}

// strictStrategy 將修復後文字當成完整 JSON 解析
type strictStrategy struct{}

func (strictStrategy) Name() string { return "strict" }

func (strictStrategy) Extract(doc document) []rawRecord {
	for _, candidate := range []string{doc.Repaired, outerObject(doc.Extracted)} {
		if candidate == "" {
			continue
		}
		var v interface{}
		if err := common.ParseJSON(candidate, &v); err != nil {
			continue
		}
		if records := recordsFromContainer(v); len(records) > 0 {
			return records
		}
	}
	return nil
}

// outerObject 取第一個 { 到最後一個 } 之間的文字
func outerObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// recordsFromContainer 從 recommendations 陣列、任一物件陣列或頂層陣列取出記錄
func recordsFromContainer(v interface{}) []rawRecord {
	switch t := v.(type) {
	case []interface{}:
		return objectsIn(t)
	case map[string]interface{}:
		if arr, ok := t["recommendations"].([]interface{}); ok {
			return objectsIn(arr)
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if arr, ok := t[k].([]interface{}); ok {
				if records := objectsIn(arr); len(records) > 0 {
					return records
				}
			}
		}
	}
	return nil
}

func objectsIn(arr []interface{}) []rawRecord {
	out := make([]rawRecord, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

// salvageStrategy 逐一嘗試平衡的 {...} 片段，保留可解析且欄位齊全的記錄
type salvageStrategy struct{}

func (salvageStrategy) Name() string { return "salvage" }

func (salvageStrategy) Extract(doc document) []rawRecord {
	text := doc.Extracted
	var out []rawRecord

	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		end, ok := balancedObject(text, i)
		if !ok {
			continue
		}

		var obj map[string]interface{}
		if err := common.ParseJSON(text[i:end], &obj); err != nil {
			continue
		}
		if isRecordLike(obj) {
			out = append(out, obj)
			i = end - 1
			continue
		}
		if records := recordsFromContainer(obj); len(records) > 0 {
			out = append(out, records...)
			i = end - 1
		}
	}
	return out
}

// balancedObject 從 start 的 { 找到對應的 }，回傳結尾之後的位置
func balancedObject(text string, start int) (int, bool) {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// isRecordLike 具備標題、說明與類別等價欄位
func isRecordLike(obj map[string]interface{}) bool {
	return firstString(obj, titleKeys...) != "" &&
		firstString(obj, descriptionKeys...) != "" &&
		firstString(obj, categoryKeys...) != ""
}

var (
	titleLineYear = regexp.MustCompile(`^(?:\d+[.)]|[-*•])?\s*(?:\*\*)?(.*?)(?:\*\*)?\s*\((\d{4})\)\s*(?:\*\*)?\s*[:：]\s*(.*)$`)
	titleLine     = regexp.MustCompile(`^(?:\d+[.)]|[-*•])?\s*(?:\*\*)?(.*?)(?:\*\*)?\s*[:：]\s*(.*)$`)
	listMarker    = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s*`)
	itemNumber    = regexp.MustCompile(`\d+\.`)
)

const maxTitleLineRunes = 100

// linesStrategy 將「標題 (年份): 說明」或「標題」換行「說明」的文字轉成記錄，編號可有可無
type linesStrategy struct{}

func (linesStrategy) Name() string { return "lines" }

func (linesStrategy) Extract(doc document) []rawRecord {
	var (
		out     []rawRecord
		title   string
		details []string
	)

	flush := func() {
		if title == "" {
			return
		}
		out = append(out, rawRecord{
			"title":       title,
			"description": strings.Join(details, " "),
		})
		title, details = "", nil
	}

	for _, line := range strings.Split(doc.Extracted, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// 沒有開啟中的標題，或上一筆已有說明時，短行視為新標題
		open := title != ""
		if isTitleLine(line) || (isShortLine(line) && (!open || len(details) > 0)) {
			flush()
			title, details = splitTitleLine(line)
			continue
		}
		if open {
			details = append(details, stripMarkdown(line))
		}
	}
	flush()
	return out
}

// isTitleLine 含「標題 (年份):」的行不受長度限制；條列或粗體開頭的短行也算標題
func isTitleLine(line string) bool {
	if titleLineYear.MatchString(line) {
		return true
	}
	return (listMarker.MatchString(line) || strings.HasPrefix(line, "**")) && isShortLine(line)
}

func isShortLine(line string) bool {
	return utf8.RuneCountInString(line) < maxTitleLineRunes
}

func splitTitleLine(line string) (string, []string) {
	if m := titleLineYear.FindStringSubmatch(line); m != nil {
		title := stripMarkdown(m[1]) + " (" + m[2] + ")"
		return title, nonEmpty(stripMarkdown(m[3]))
	}
	if m := titleLine.FindStringSubmatch(line); m != nil && strings.TrimSpace(m[1]) != "" {
		return stripMarkdown(m[1]), nonEmpty(stripMarkdown(m[2]))
	}
	return stripMarkdown(listMarker.ReplaceAllString(line, "")), nil
}

func stripMarkdown(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// numberedSplitStrategy 最後手段：依「數字.」切段，第一句為標題，其餘為說明
type numberedSplitStrategy struct{}

func (numberedSplitStrategy) Name() string { return "numbered-split" }

func (numberedSplitStrategy) Extract(doc document) []rawRecord {
	parts := itemNumber.Split(doc.Extracted, -1)
	if len(parts) < 2 {
		return nil
	}

	var out []rawRecord
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		end := strings.Index(part, ".")
		if end <= 0 {
			continue
		}
		title := stripMarkdown(part[:end])
		if title == "" {
			continue
		}
		out = append(out, rawRecord{
			"title":       title,
			"description": stripMarkdown(strings.Join(strings.Fields(part[end+1:]), " ")),
		})
	}
	return out
}
