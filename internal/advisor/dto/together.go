package dto

// TogetherCompletionRequest is the request payload for the Together
// completions API.
type TogetherCompletionRequest struct {
	Model             string   `json:"model"`
	Prompt            string   `json:"prompt"`
	MaxTokens         int      `json:"max_tokens"`
	Temperature       float64  `json:"temperature"`
	TopP              float64  `json:"top_p"`
	TopK              int      `json:"top_k"`
	RepetitionPenalty float64  `json:"repetition_penalty"`
	Stop              []string `json:"stop,omitempty"`
}

// TogetherCompletionResponse is the response from the Together completions API.
type TogetherCompletionResponse struct {
	ID      string           `json:"id"`
	Choices []TogetherChoice `json:"choices"`
	Error   *TogetherError   `json:"error,omitempty"`
}

type TogetherChoice struct {
	Text string `json:"text"`
}

type TogetherError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
