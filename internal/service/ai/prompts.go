package ai

import (
	"errors"
	"strconv"
	"strings"

	"articleprompts/internal/model"
)

// SystemPrompt is sent as the system message with every completion.
const SystemPrompt = "You are an expert SEO editor and knowledge architect."

const (
	// DefaultFAQCount is the number of FAQs requested when none is given.
	DefaultFAQCount = 4
	MinFAQCount     = 1
	MaxFAQCount     = 10
)

// ErrFAQCountOutOfRange is returned for FAQ counts outside MinFAQCount..MaxFAQCount.
var ErrFAQCountOutOfRange = errors.New("faq count must be between 1 and 10")

// Templates use {name} placeholders. The wording is the product; edit with care.
const (
	FAQTemplate = `
Generate {faq_count} SEO-compliant FAQs based on the article below.

Rules:
- Questions must reflect real user intent
- Answers must be 50–80 words
- Neutral, factual tone
- No marketing language

Context:
Title: {title}
Key Topics: {headings}
Summary: {summary}

Format:
Q: ...
A: ...
`

	AIOverviewTemplate = `
Explain the core topic of this article in a way suitable for AI-generated answers.
Under 120 words.

Context:
{summary}
`

	PeopleAlsoAskTemplate = `
List common informational questions users may ask after reading this article.
Questions only.

Context:
{summary}
`

	EntitiesTemplate = `
Extract key entities and explain their relationships clearly.

Context:
{summary}
`
)

// Template returns the template used for kind.
func Template(kind model.PromptKind) string {
	switch kind {
	case model.PromptFAQ:
		return FAQTemplate
	case model.PromptAIOverview:
		return AIOverviewTemplate
	case model.PromptPeopleAlsoAsk:
		return PeopleAlsoAskTemplate
	case model.PromptEntities:
		return EntitiesTemplate
	}
	return ""
}

// ValidateFAQCount reports whether n is an accepted FAQ count.
func ValidateFAQCount(n int) error {
	if n < MinFAQCount || n > MaxFAQCount {
		return ErrFAQCountOutOfRange
	}
	return nil
}

// BuildPrompts fills the four templates from article.
// Substitution is a single pass, so placeholder-like text inside the article is left alone.
func BuildPrompts(article model.ParsedArticle, faqCount int) model.PromptSet {
	r := strings.NewReplacer(
		"{title}", article.Title,
		"{headings}", strings.Join(article.Headings, ", "),
		"{summary}", article.Summary,
		"{faq_count}", strconv.Itoa(faqCount),
	)

	var set model.PromptSet
	for _, kind := range model.PromptKinds {
		set.Set(kind, r.Replace(Template(kind)))
	}
	return set
}
