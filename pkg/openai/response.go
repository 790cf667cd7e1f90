package openai

import "encoding/json"

// Response is the reply of every endpoint. Each endpoint fills a different
// subset of the fields.
type Response struct {
	ID      string `json:"id,omitempty"`
	Object  string `json:"object,omitempty"`
	Created int64  `json:"created,omitempty"`
	Model   string `json:"model,omitempty"`

	// Completions and edits
	Choices []Choice `json:"choices,omitempty"`

	// Search
	Data []Data `json:"data,omitempty"`

	// Classification
	Completion       string            `json:"completion,omitempty"`
	Label            string            `json:"label,omitempty"`
	SearchModel      Model             `json:"search_model,omitempty"`
	SelectedExamples []SelectedExample `json:"selected_examples,omitempty"`

	// Answers
	Answers           []string           `json:"answers,omitempty"`
	SelectedDocuments []SelectedDocument `json:"selected_documents,omitempty"`

	// Prompt is set when the request asked for return_prompt.
	Prompt string `json:"prompt,omitempty"`

	Usage *Usage `json:"usage,omitempty"`
}

// Choice is one generated completion or edit.
type Choice struct {
	Text         string    `json:"text"`
	Index        int       `json:"index"`
	Logprobs     *Logprobs `json:"logprobs,omitempty"`
	FinishReason string    `json:"finish_reason,omitempty"`
}

// Logprobs holds per-token log probabilities when requested.
type Logprobs struct {
	Tokens        []string             `json:"tokens,omitempty"`
	TokenLogprobs []float64            `json:"token_logprobs,omitempty"`
	TopLogprobs   []map[string]float64 `json:"top_logprobs,omitempty"`
	TextOffset    []int                `json:"text_offset,omitempty"`
}

// Data is one ranked search result.
type Data struct {
	Document int     `json:"document"`
	Object   string  `json:"object"`
	Score    float64 `json:"score"`
	// Metadata is passed through as sent; it is usually a string.
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// SelectedExample is an example the classifier ranked as relevant.
type SelectedExample struct {
	Document int    `json:"document"`
	Label    string `json:"label"`
	Text     string `json:"text"`
}

// SelectedDocument is a document the answer was drawn from.
type SelectedDocument struct {
	Document int    `json:"document"`
	Text     string `json:"text"`
}

// Usage reports the tokens billed for a call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
