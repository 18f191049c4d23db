package extract

import (
	"errors"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
)

func isFeedContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "rss") || strings.Contains(ct, "atom") || strings.Contains(ct, "xml")
}

// feedText flattens an RSS/Atom/JSON feed into title and item lines.
func feedText(r io.Reader) (string, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return "", err
	}

	var parts []string
	if title := strings.TrimSpace(feed.Title); title != "" {
		parts = append(parts, title)
	}
	if desc := plain(feed.Description); desc != "" {
		parts = append(parts, desc)
	}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		if title := strings.TrimSpace(item.Title); title != "" {
			parts = append(parts, title)
		}
		body := item.Content
		if strings.TrimSpace(body) == "" {
			body = item.Description
		}
		if text := plain(body); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("feed has no text")
	}
	return strings.Join(parts, "\n"), nil
}

func plain(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	text, err := htmlText(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return text
}
