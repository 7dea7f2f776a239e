package core

// Sample is one corpus record: a query and the expected place name.
// ID is the 1-based record number within the corpus.
type Sample struct {
	ID       string            `json:"id" yaml:"id"`
	Input    string            `json:"input" yaml:"input"`
	Expected string            `json:"expected" yaml:"expected"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
