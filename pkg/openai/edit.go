package openai

// Edit asks the model to rewrite Input following Instruction.
type Edit struct {
	// Input is the text to use as a starting point for the edit.
	Input string `json:"input"`

	// Instruction tells the model how to edit the input.
	Instruction string `json:"instruction"`

	// Temperature controls sampling. Alter this or TopP, not both.
	Temperature float64 `json:"temperature"`

	// TopP is the nucleus sampling probability mass.
	TopP float64 `json:"top_p"`

	// N is how many edits to generate.
	N int `json:"n"`
}

// NewEdit returns an Edit with the documented defaults. Temperature and
// TopP are 1 as the API documents, not 0, which would make every edit
// greedy.
func NewEdit() *Edit {
	return &Edit{
		Temperature: 1,
		TopP:        1,
		N:           1,
	}
}

// Request implements Endpoint. The engine id is required.
func (e *Edit) Request(baseURL, engineID string) (*Request, error) {
	path, err := enginePath(engineID, "edits")
	if err != nil {
		return nil, err
	}
	return post(baseURL, path, e)
}
