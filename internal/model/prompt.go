package model

// PromptKind identifies one of the four generated outputs.
type PromptKind string

const (
	PromptFAQ           PromptKind = "faq"
	PromptAIOverview    PromptKind = "ai_overview"
	PromptPeopleAlsoAsk PromptKind = "people_also_ask"
	PromptEntities      PromptKind = "entities"
)

// PromptKinds lists every kind in pipeline order.
var PromptKinds = []PromptKind{PromptFAQ, PromptAIOverview, PromptPeopleAlsoAsk, PromptEntities}

// PromptSet holds one text per prompt kind. It is used both for the filled
// templates and for the completions returned by the model.
type PromptSet struct {
	FAQ           string `json:"faq"`
	AIOverview    string `json:"aiOverview"`
	PeopleAlsoAsk string `json:"peopleAlsoAsk"`
	Entities      string `json:"entities"`
}

// Get returns the text stored for kind.
func (s PromptSet) Get(kind PromptKind) string {
	switch kind {
	case PromptFAQ:
		return s.FAQ
	case PromptAIOverview:
		return s.AIOverview
	case PromptPeopleAlsoAsk:
		return s.PeopleAlsoAsk
	case PromptEntities:
		return s.Entities
	}
	return ""
}

// Set stores text for kind. Unknown kinds are ignored.
func (s *PromptSet) Set(kind PromptKind, text string) {
	switch kind {
	case PromptFAQ:
		s.FAQ = text
	case PromptAIOverview:
		s.AIOverview = text
	case PromptPeopleAlsoAsk:
		s.PeopleAlsoAsk = text
	case PromptEntities:
		s.Entities = text
	}
}

// GenerationResult is the outcome of one generate run.
type GenerationResult struct {
	RunID   int64         `json:"runId,string"`
	Article ParsedArticle `json:"article"`
	Prompts PromptSet     `json:"prompts"`
	Results PromptSet     `json:"results"`
}
