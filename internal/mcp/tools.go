package mcp

// SearchInput defines the input schema for the search tool.
type SearchInput struct {
	Term  string `json:"term" jsonschema:"substring to look for, matched case-sensitively against whole file contents"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of matches to return, default 10"`
}

// SearchOutput defines the output schema for the search tool.
type SearchOutput struct {
	Total   int           `json:"total" jsonschema:"number of matching files before the limit was applied"`
	Matches []MatchOutput `json:"matches" jsonschema:"matching files"`
}

// MatchOutput is a single matching file.
type MatchOutput struct {
	Path    string `json:"path" jsonschema:"absolute path of the matching file"`
	Root    string `json:"root" jsonschema:"registered root the file was found under"`
	Content string `json:"content" jsonschema:"full file content"`
}

// ListSourcesInput defines the input schema for the list_sources tool (no parameters).
type ListSourcesInput struct{}

// ListSourcesOutput defines the output schema for the list_sources tool.
type ListSourcesOutput struct {
	Sources []string `json:"sources" jsonschema:"registered search roots"`
}
