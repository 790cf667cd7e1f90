package openai

// Completion asks the model to continue a prompt.
type Completion struct {
	// Prompt to complete. Defaults to the document separator, so an empty
	// request generates from the start of a new document.
	Prompt string `json:"prompt"`

	// Suffix that comes after the inserted completion.
	Suffix *string `json:"suffix,omitempty"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens"`

	// Temperature controls sampling: higher values take more risks, 0 is
	// argmax sampling. Alter this or TopP, not both.
	Temperature float64 `json:"temperature"`

	// TopP is the nucleus sampling probability mass. 0.1 means only the
	// tokens in the top 10% mass are considered.
	TopP float64 `json:"top_p"`

	// N is how many completions to generate for the prompt.
	N int `json:"n"`

	// Logprobs includes the log probabilities of that many most likely
	// tokens. The maximum is 5.
	Logprobs *int `json:"logprobs,omitempty"`

	// Echo returns the prompt in addition to the completion.
	Echo bool `json:"echo"`

	// Stop holds up to 4 sequences where generation stops. The returned
	// text does not contain the stop sequence.
	Stop []string `json:"stop,omitempty"`

	PresencePenalty  float64 `json:"presence_penalty"`
	FrequencyPenalty float64 `json:"frequency_penalty"`

	// BestOf generates that many completions server-side and returns the
	// best. Must be at least N.
	BestOf int `json:"best_of"`

	// LogitBias maps token ids to a bias between -100 and 100 added to the
	// logits before sampling.
	LogitBias map[string]int `json:"logit_bias,omitempty"`

	// User identifies the end-user for abuse monitoring.
	User string `json:"user,omitempty"`
}

// NewCompletion returns a Completion with the documented defaults.
func NewCompletion() *Completion {
	return &Completion{
		Prompt:      "<|endoftext|>",
		MaxTokens:   16,
		Temperature: 1,
		TopP:        1,
		N:           1,
		BestOf:      1,
	}
}

// Request implements Endpoint. The engine id is required.
func (c *Completion) Request(baseURL, engineID string) (*Request, error) {
	path, err := enginePath(engineID, "completions")
	if err != nil {
		return nil, err
	}
	return post(baseURL, path, c)
}
