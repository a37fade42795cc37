package recommendation

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	fencedBlock = regexp.MustCompile("(?s)```[A-Za-z]*[ \\t]*\\n?(.*?)```")
	openFence   = regexp.MustCompile("(?s)```[A-Za-z]*[ \\t]*\\n?(.*)$")

	japaneseChars = regexp.MustCompile(`[\x{3000}-\x{303f}\x{3040}-\x{309f}\x{30a0}-\x{30ff}\x{ff00}-\x{ff9f}\x{4e00}-\x{9faf}]`)

	jsonValueExpr = `"(?:[^"\\]|\\.)*"|\[\s*(?:"(?:[^"\\]|\\.)*"\s*,?\s*)*\]`
	keyValuePair  = regexp.MustCompile(`"([A-Za-z_][A-Za-z0-9_]*)"\s*:\s*(` + jsonValueExpr + `)`)
	nextPair      = regexp.MustCompile(`^\s*,\s*"([A-Za-z_][A-Za-z0-9_]*)"\s*:\s*(` + jsonValueExpr + `)`)
)

// extractFenced 取出 ``` 區塊內容；缺少結尾圍欄時取開頭圍欄之後的全部文字
func extractFenced(text string) string {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := openFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// containsJapanese 是否包含假名、漢字或全形字元
func containsJapanese(s string) bool {
	return japaneseChars.MatchString(s)
}

// disambiguateBilingual 將相鄰的重複鍵收斂成一個，依語言保留對應的值
func disambiguateBilingual(text, language string) string {
	pos := 0
	for pos < len(text) {
		m := keyValuePair.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[0], pos+m[1]
		key := text[pos+m[2] : pos+m[3]]
		first := text[pos+m[4] : pos+m[5]]

		n := nextPair.FindStringSubmatchIndex(text[end:])
		if n == nil || text[end+n[2]:end+n[3]] != key {
			pos = end
			continue
		}
		second := text[end+n[4] : end+n[5]]

		chosen := pickLanguage(first, second, language)
		replacement := `"` + key + `": ` + chosen
		text = text[:start] + replacement + text[end+n[1]:]
		// 收斂後的鍵可能再與下一個重複鍵配對
		pos = start
	}
	return text
}

// pickLanguage 依內容判斷語言；判斷不出時依位置（日文在前、英文在後）
func pickLanguage(first, second, language string) string {
	firstJa, secondJa := containsJapanese(first), containsJapanese(second)
	if language == "ja" {
		switch {
		case firstJa && !secondJa:
			return first
		case secondJa && !firstJa:
			return second
		default:
			return first
		}
	}
	switch {
	case !firstJa && secondJa:
		return first
	case !secondJa && firstJa:
		return second
	default:
		return second
	}
}

type scanState int

const (
	expectValue scanState = iota
	expectKey
	expectColon
	afterValue
)

// repairTruncation 補齊被截斷的 JSON：關閉字串、補上 null、去掉尾逗號，再依堆疊順序關閉物件與陣列
func repairTruncation(text string) string {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	s := text[start:]

	var (
		stack        []byte
		state        = expectValue
		inString     bool
		escaped      bool
		stringIsKey  bool
		literalStart = -1
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				if stringIsKey {
					state = expectColon
				} else {
					state = afterValue
				}
			}
			continue
		}

		if literalStart >= 0 && !isLiteralByte(c) {
			literalStart = -1
		}

		switch c {
		case '"':
			inString = true
			stringIsKey = state == expectKey
		case '{':
			stack = append(stack, '{')
			state = expectKey
		case '[':
			stack = append(stack, '[')
			state = expectValue
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			state = afterValue
			if len(stack) == 0 {
				// 完整的值之後的文字一律捨棄
				return s[:i+1]
			}
		case ':':
			state = expectValue
		case ',':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				state = expectKey
			} else {
				state = expectValue
			}
		case ' ', '\t', '\n', '\r':
		default:
			if literalStart < 0 {
				literalStart = i
			}
			state = afterValue
		}
	}

	out := s
	switch {
	case inString:
		if escaped {
			out = out[:len(out)-1]
		}
		out += `"`
		if stringIsKey {
			state = expectColon
		} else {
			state = afterValue
		}
	case literalStart >= 0 && !completeLiteral(s[literalStart:]):
		out = s[:literalStart]
		state = expectValue
	}

	top := byte(0)
	if len(stack) > 0 {
		top = stack[len(stack)-1]
	}

	switch state {
	case expectColon:
		out += ":null"
	case expectValue:
		if top == '{' {
			out += "null"
		} else {
			out = trimTrailingComma(out)
		}
	case expectKey:
		out = trimTrailingComma(out)
	}

	var closing strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			closing.WriteByte('}')
		} else {
			closing.WriteByte(']')
		}
	}
	out += closing.String()

	if json.Valid([]byte(out)) {
		return out
	}
	if fallback := closeByCount(s); json.Valid([]byte(fallback)) {
		return fallback
	}
	return out
}

// closeByCount 只依括號數量補齊，堆疊修復失敗時使用
func closeByCount(s string) string {
	out := trimTrailingComma(s)
	braces := strings.Count(out, "{") - strings.Count(out, "}")
	brackets := strings.Count(out, "[") - strings.Count(out, "]")
	if braces > 0 {
		out += strings.Repeat("}", braces)
	}
	if brackets > 0 {
		out += strings.Repeat("]", brackets)
	}
	return out
}

func trimTrailingComma(s string) string {
	s = strings.TrimRight(s, " \t\r\n")
	return strings.TrimSuffix(s, ",")
}

func isLiteralByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'E'
}

func completeLiteral(token string) bool {
	token = strings.TrimSpace(token)
	switch token {
	case "true", "false", "null":
		return true
	}
	_, err := strconv.ParseFloat(token, 64)
	return err == nil
}
