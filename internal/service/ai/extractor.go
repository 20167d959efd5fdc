package ai

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"articleprompts/internal/model"
)

const (
	// MaxHeadings is the number of h2/h3 headings kept from an article.
	MaxHeadings = 8
	// SummaryParagraphs is the number of leading paragraphs joined into the summary.
	SummaryParagraphs = 5
	// MaxSummaryChars is the hard cut applied to the joined paragraphs, in characters.
	MaxSummaryChars = 1500
)

// Extract derives the title, headings and summary from pasted article HTML or text.
// Malformed markup never fails: unmatched elements leave the field at its default.
func Extract(content string) model.ParsedArticle {
	article := model.ParsedArticle{
		Title:    model.UntitledArticle,
		Headings: []string{},
	}

	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return article
	}
	doc := goquery.NewDocumentFromNode(root)

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		article.Title = strippedText(h1.Get(0))
	}

	doc.Find("h2, h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		article.Headings = append(article.Headings, strippedText(sel.Get(0)))
		return len(article.Headings) < MaxHeadings
	})

	paragraphs := make([]string, 0, SummaryParagraphs)
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		paragraphs = append(paragraphs, strippedText(sel.Get(0)))
		return len(paragraphs) < SummaryParagraphs
	})
	article.Summary = truncateChars(strings.Join(paragraphs, " "), MaxSummaryChars)

	return article
}

// strippedText concatenates every descendant text node of n, each trimmed of
// surrounding whitespace, with empty fragments dropped and no separator added.
func strippedText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			if text := strings.TrimSpace(node.Data); text != "" {
				buf.WriteString(text)
			}
			return
		case html.ElementNode:
			switch node.Data {
			case "script", "style", "template":
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

// truncateChars keeps the first limit characters of s. The cut ignores word boundaries.
func truncateChars(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
