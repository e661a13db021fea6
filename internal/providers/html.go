package providers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText converts page content to whitespace-collapsed text. HTML is parsed with goquery and
// stripped of script, style and navigation chrome; anything else is returned with whitespace collapsed.
func PlainText(content string) string {
	if !looksLikeHTML(content) {
		return collapseWhitespace(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return collapseWhitespace(content)
	}
	doc.Find("script, style, noscript, nav, header, footer, svg").Remove()

	var parts []string
	doc.Find("title, h1, h2, h3, h4, p, li, td, blockquote").Each(func(i int, s *goquery.Selection) {
		if s.Children().Filter("p, li, td").Length() > 0 {
			return
		}
		if text := collapseWhitespace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return collapseWhitespace(doc.Text())
	}
	return strings.Join(parts, " ")
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "</") && (strings.Contains(lower, "<p") ||
		strings.Contains(lower, "<div") ||
		strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<li"))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
