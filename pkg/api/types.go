package api

// ChatRequest is the body of POST /chat. Message is required; the other
// fields are optional and filled from configured defaults during
// normalization. Pointers distinguish "absent" from a legitimate zero.
type ChatRequest struct {
	Message     string   `json:"message"`
	Model       string   `json:"model,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// ChatResponse is the successful result of POST /chat.
type ChatResponse struct {
	Reply      string `json:"reply"`
	ModelUsed  string `json:"model_used"`
	TokensUsed int    `json:"tokens_used"`
}

// DetailResponse is the body of every non-2xx response.
type DetailResponse struct {
	Detail string `json:"detail"`
}
