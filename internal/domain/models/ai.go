package models

type TokenUsage struct {
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	TotalTokens  int    `json:"total_tokens"`
	Model        string `json:"model,omitempty"`
	DurationMs   int64  `json:"duration_ms,omitempty"`
}

// DraftResult is the AI-written text for the 'Describe the bug' section.
type DraftResult struct {
	Text  string
	Usage *TokenUsage
}
