package services

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagRe = regexp.MustCompile(`<[a-zA-Z!/][^>]*>`)

type JobDescriptionCleaner interface {
	Normalize(raw string) string
}

type jobDescriptionCleaner struct{}

func NewJobDescriptionCleaner() JobDescriptionCleaner {
	return &jobDescriptionCleaner{}
}

// Normalize turns a pasted job description into plain text. Postings copied
// from job boards often arrive as HTML fragments; those are reduced to their
// visible text blocks before submission.
func (c *jobDescriptionCleaner) Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if htmlTagRe.MatchString(raw) {
		return c.extractText(raw)
	}

	return collapseLines(raw)
}

func (c *jobDescriptionCleaner) extractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return stripTags(html)
	}

	// Drop everything that never belongs in a posting body
	doc.Find("script, style, nav, header, footer, iframe, noscript").Remove()

	var textBlocks []string
	doc.Find("p, li, h1, h2, h3, h4, h5, h6").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > 0 {
			textBlocks = append(textBlocks, text)
		}
	})
	if len(textBlocks) > 0 {
		return strings.Join(textBlocks, "\n\n")
	}

	bodyText := strings.TrimSpace(doc.Find("body").Text())
	if len(bodyText) > 0 {
		return collapseLines(bodyText)
	}

	return collapseLines(doc.Text())
}

func stripTags(html string) string {
	re := regexp.MustCompile("<[^>]*>")
	text := re.ReplaceAllString(html, " ")
	re = regexp.MustCompile(`\s+`)
	return strings.TrimSpace(re.ReplaceAllString(text, " "))
}

// collapseLines trims every line and drops the empty ones so the text keeps
// its paragraph structure without runs of blank lines.
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
