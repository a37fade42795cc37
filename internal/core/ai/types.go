package ai

// GenerateRequest generateContent 請求
type GenerateRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content 對話內容
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part 內容片段
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig 生成參數
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GenerateResponse generateContent 響應
type GenerateResponse struct {
	Candidates    []Candidate    `json:"candidates"`
	UsageMetadata *UsageMetadata `json:"usageMetadata,omitempty"`
}

// Candidate 候選結果
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// UsageMetadata 使用量
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// NewTextRequest 建立單一使用者文字訊息的請求
func NewTextRequest(prompt string, cfg *GenerationConfig) *GenerateRequest {
	return &GenerateRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: cfg,
	}
}

// FirstText 回傳第一個候選的第一段文字（不做任何修改）與結束原因
func (r *GenerateResponse) FirstText() (string, string) {
	if len(r.Candidates) == 0 {
		return "", ""
	}
	c := r.Candidates[0]
	if len(c.Content.Parts) == 0 {
		return "", c.FinishReason
	}
	return c.Content.Parts[0].Text, c.FinishReason
}
