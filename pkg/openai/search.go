package openai

// DefaultMaxRerank is the default number of documents re-ranked by search.
const DefaultMaxRerank = 200

// Search ranks documents by semantic similarity to Query.
//
// Either Documents or File should be set, not both. This is not checked.
type Search struct {
	// Query to search against the documents.
	Query string `json:"query"`

	// Documents holds up to 200 documents to search over.
	Documents []string `json:"documents,omitempty"`

	// File is the id of an uploaded file containing the documents.
	File *string `json:"file,omitempty"`

	// MaxRerank limits how many documents are re-ranked and returned.
	// Only effective when File is set.
	MaxRerank int `json:"max_rerank"`

	// ReturnMetadata adds a "metadata" field to each returned document.
	// Only effective when File is set.
	ReturnMetadata bool `json:"return_metadata"`

	User string `json:"user,omitempty"`
}

// NewSearch returns a Search with the documented defaults.
func NewSearch() *Search {
	return &Search{
		MaxRerank: DefaultMaxRerank,
	}
}

// Request implements Endpoint. The engine id is required.
func (s *Search) Request(baseURL, engineID string) (*Request, error) {
	path, err := enginePath(engineID, "search")
	if err != nil {
		return nil, err
	}
	return post(baseURL, path, s)
}
