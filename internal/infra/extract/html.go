package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Content outside the article body. Matched by tag name only.
const strippedElements = "script, style, nav, footer, header, aside"

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "main": true, "blockquote": true, "pre": true,
	"table": true, "tr": true, "td": true, "th": true, "dd": true, "dt": true,
	"figcaption": true, "hr": true,
}

func htmlText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("create document from reader: %w", err)
	}
	doc.Find(strippedElements).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var b strings.Builder
	collectText(root, &b)
	return collapseWhitespace(b.String()), nil
}

func collectText(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if name == "#text" {
			b.WriteString(s.Text())
			return
		}
		block := blockElements[name]
		if block {
			b.WriteString("\n")
		}
		collectText(s, b)
		if block {
			b.WriteString("\n")
		}
	})
}

// collapseWhitespace squeezes runs of spaces inside lines and drops blank lines.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if clean := strings.Join(strings.Fields(line), " "); clean != "" {
			out = append(out, clean)
		}
	}
	return strings.Join(out, "\n")
}
