package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
)

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v)
}

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v)
}

// DecodeJSON 使用統一設定解析 JSON
func DecodeJSON(r io.Reader, v interface{}) error {
	return decodeJSON(r, v)
}

func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return err
		}
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

// ValidJSON 檢查是否為單一合法 JSON 值
func ValidJSON(data []byte) bool {
	var v interface{}
	return ParseJSONBytes(data, &v) == nil
}

// CanonicalJSON 產生鍵排序後的 JSON（物件鍵順序不影響結果）。
// 數字保留原始寫法，1 與 1.0 會得到不同結果，只會多一次快取未命中
func CanonicalJSON(v interface{}) ([]byte, error) {
	raw, err := gojson.Marshal(v)
	if err != nil {
		return nil, err
	}

	// 轉成泛型值再編碼一次，map 鍵會被排序
	var generic interface{}
	if err := ParseJSONBytes(raw, &generic); err != nil {
		return nil, err
	}
	return gojson.Marshal(generic)
}

// StringSliceToString 將字符串切片轉換為分隔字符串（日文使用「、」）
func StringSliceToString(slice []string, language string) string {
	if len(slice) == 0 {
		return ""
	}
	if language == "ja" {
		return strings.Join(slice, "、")
	}
	return strings.Join(slice, ", ")
}
