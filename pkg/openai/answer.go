package openai

// AnswerPath is the URL path of the answer endpoint.
const AnswerPath = "/v1/answers"

// Answer generates an answer to Question from a set of documents and some
// question/answer examples.
//
// Either Documents or File should be set, not both. This is not checked.
type Answer struct {
	// Model used for the completion step.
	Model Model `json:"model"`

	Question string `json:"question"`

	// Examples are [question, answer] pairs that show the expected style.
	Examples [][2]string `json:"examples,omitempty"`

	// ExamplesContext is the text the examples were answered from.
	ExamplesContext string `json:"examples_context"`

	// Documents the answer is derived from. When empty the question is
	// answered from the examples alone.
	Documents []string `json:"documents,omitempty"`

	// File is the id of an uploaded file holding the documents.
	File *string `json:"file,omitempty"`

	// SearchModel is the engine used for the search step.
	SearchModel Model `json:"search_model"`

	// MaxRerank is the number of documents ranked by search when File is
	// used.
	MaxRerank int `json:"max_rerank"`

	Temperature float64 `json:"temperature"`
	Logprobs    int     `json:"logprobs"`

	// MaxTokens bounds the generated answer.
	MaxTokens int `json:"max_tokens"`

	// Stop holds up to 4 sequences where generation stops.
	Stop []string `json:"stop,omitempty"`

	// N is how many answers to generate.
	N int `json:"n"`

	LogitBias      map[string]int `json:"logit_bias,omitempty"`
	ReturnMetadata bool           `json:"return_metadata"`
	ReturnPrompt   bool           `json:"return_prompt"`
	Expand         []string       `json:"expand,omitempty"`
	User           string         `json:"user,omitempty"`
}

// NewAnswer returns an Answer with the documented defaults.
func NewAnswer() *Answer {
	return &Answer{
		Model:       DefaultModel,
		SearchModel: DefaultModel,
		MaxRerank:   DefaultMaxRerank,
		MaxTokens:   16,
		N:           1,
	}
}

// Request implements Endpoint. The engine id is ignored.
func (a *Answer) Request(baseURL, _ string) (*Request, error) {
	return post(baseURL, AnswerPath, a)
}
