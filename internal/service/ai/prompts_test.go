package ai_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"articleprompts/internal/model"
	"articleprompts/internal/service/ai"
)

func catsArticle() model.ParsedArticle {
	return model.ParsedArticle{
		Title:    "Cats",
		Headings: []string{"Diet", "Health"},
		Summary:  "Cats are obligate carnivores.",
	}
}

func TestBuildPrompts_FAQ(t *testing.T) {
	prompts := ai.BuildPrompts(catsArticle(), ai.DefaultFAQCount)

	want := `
Generate 4 SEO-compliant FAQs based on the article below.

Rules:
- Questions must reflect real user intent
- Answers must be 50–80 words
- Neutral, factual tone
- No marketing language

Context:
Title: Cats
Key Topics: Diet, Health
Summary: Cats are obligate carnivores.

Format:
Q: ...
A: ...
`
	require.Equal(t, want, prompts.FAQ)
}

func TestBuildPrompts_SummaryOnlyTemplates(t *testing.T) {
	prompts := ai.BuildPrompts(catsArticle(), 4)

	require.Equal(t, "\nExplain the core topic of this article in a way suitable for AI-generated answers.\nUnder 120 words.\n\nContext:\nCats are obligate carnivores.\n", prompts.AIOverview)
	require.Equal(t, "\nList common informational questions users may ask after reading this article.\nQuestions only.\n\nContext:\nCats are obligate carnivores.\n", prompts.PeopleAlsoAsk)
	require.Equal(t, "\nExtract key entities and explain their relationships clearly.\n\nContext:\nCats are obligate carnivores.\n", prompts.Entities)
}

func TestBuildPrompts_FAQCount(t *testing.T) {
	prompts := ai.BuildPrompts(catsArticle(), 10)
	require.True(t, strings.HasPrefix(prompts.FAQ, "\nGenerate 10 SEO-compliant FAQs"))
}

func TestBuildPrompts_Deterministic(t *testing.T) {
	article := catsArticle()
	first := ai.BuildPrompts(article, 7)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, ai.BuildPrompts(article, 7))
	}
}

func TestBuildPrompts_NoHeadings(t *testing.T) {
	prompts := ai.BuildPrompts(model.ParsedArticle{Title: "Untitled", Headings: []string{}}, 4)
	require.Contains(t, prompts.FAQ, "Key Topics: \n")
	require.Contains(t, prompts.FAQ, "Summary: \n")
}

func TestBuildPrompts_PlaceholdersInContentNotExpanded(t *testing.T) {
	article := model.ParsedArticle{
		Title:    "{summary}",
		Headings: []string{"{title}"},
		Summary:  "literal {faq_count}",
	}
	prompts := ai.BuildPrompts(article, 3)
	require.Contains(t, prompts.FAQ, "Title: {summary}\n")
	require.Contains(t, prompts.FAQ, "Key Topics: {title}\n")
	require.Contains(t, prompts.FAQ, "Summary: literal {faq_count}\n")
	require.Contains(t, prompts.Entities, "literal {faq_count}")
}

func TestBuildPrompts_NoPlaceholdersLeft(t *testing.T) {
	prompts := ai.BuildPrompts(catsArticle(), 4)
	for _, kind := range model.PromptKinds {
		text := prompts.Get(kind)
		require.NotEmpty(t, text, "kind %s", kind)
		require.NotContains(t, text, "{", "kind %s", kind)
	}
}

func TestValidateFAQCount(t *testing.T) {
	for n := ai.MinFAQCount; n <= ai.MaxFAQCount; n++ {
		require.NoError(t, ai.ValidateFAQCount(n))
	}
	for _, n := range []int{-1, 0, 11, 100} {
		require.ErrorIs(t, ai.ValidateFAQCount(n), ai.ErrFAQCountOutOfRange)
	}
}

func TestTemplate_UnknownKind(t *testing.T) {
	require.Empty(t, ai.Template(model.PromptKind("headline")))
}
