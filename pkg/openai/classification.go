package openai

// ClassificationPath is the URL path of the classification endpoint.
const ClassificationPath = "/v1/classifications"

// DefaultMaxExamples is the default number of examples ranked by search
// when classifying against a file.
const DefaultMaxExamples = 200

// Classification predicts the most likely label for Query from labeled
// examples.
//
// Either Examples or File should be set, not both. This is not checked.
type Classification struct {
	// Model used for the completion step.
	Model Model `json:"model"`

	// Query to be classified.
	Query string `json:"query"`

	// Examples are [text, label] pairs, e.g.
	// [["The movie is so interesting.", "Positive"]]. Labels are
	// normalized to be capitalized by the API.
	Examples [][2]string `json:"examples,omitempty"`

	// File is the id of an uploaded file holding training examples.
	File *string `json:"file,omitempty"`

	// Labels is the set of categories. When empty the API collects them
	// from the examples.
	Labels []string `json:"labels,omitempty"`

	// SearchModel is the engine used for the search step.
	SearchModel Model `json:"search_model"`

	Temperature float64 `json:"temperature"`

	// Logprobs includes the log probabilities of that many most likely
	// tokens. The maximum is 5.
	Logprobs int `json:"logprobs"`

	// MaxExamples is the number of examples ranked by search when File is
	// used.
	MaxExamples int `json:"max_examples"`

	LogitBias map[string]int `json:"logit_bias,omitempty"`

	// ReturnPrompt adds the final prompt to the reply, for debugging.
	ReturnPrompt bool `json:"return_prompt"`

	// ReturnMetadata adds a "metadata" field to each returned example.
	// Only effective when File is set.
	ReturnMetadata bool `json:"return_metadata"`

	// Expand lists object types (completion, file) returned in full
	// instead of by id.
	Expand []string `json:"expand,omitempty"`

	User string `json:"user,omitempty"`
}

// NewClassification returns a Classification with the documented defaults.
func NewClassification() *Classification {
	return &Classification{
		Model:       ModelDavinci,
		SearchModel: DefaultModel,
		MaxExamples: DefaultMaxExamples,
	}
}

// Request implements Endpoint. The engine id is ignored.
func (c *Classification) Request(baseURL, _ string) (*Request, error) {
	return post(baseURL, ClassificationPath, c)
}
