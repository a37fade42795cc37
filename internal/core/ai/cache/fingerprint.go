package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"persona-recommender/internal/pkg/common"
)

// Fingerprint 以正規化 JSON 計算快取鍵，物件鍵順序不影響結果
func Fingerprint(v interface{}) (string, error) {
	canonical, err := common.CanonicalJSON(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// FingerprintJSON 計算原始 JSON 請求體的快取鍵，非法 JSON 回傳錯誤；
// 空白與鍵順序不影響結果，數字寫法（1 與 1.0）會影響
func FingerprintJSON(raw []byte) (string, error) {
	if !common.ValidJSON(raw) {
		return "", fmt.Errorf("fingerprint: invalid JSON")
	}
	return Fingerprint(json.RawMessage(raw))
}
