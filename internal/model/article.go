package model

// UntitledArticle is the title used when the input has no level-1 heading.
const UntitledArticle = "Untitled"

// ParsedArticle holds the fields extracted from pasted article content.
type ParsedArticle struct {
	Title    string   `json:"title"`
	Headings []string `json:"headings"`
	Summary  string   `json:"summary"`
}
