package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespace = regexp.MustCompile(`\s+`)

// Extract returns the whitespace-collapsed text of every element matching
// selector. With a pattern, only matching texts are kept: the first capture
// group when the pattern has one, else the whole match.
func Extract(html, selector string, pattern *regexp.Regexp) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	items := []string{}
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(whitespace.ReplaceAllString(sel.Text(), " "))
		if text == "" {
			return
		}
		if pattern == nil {
			items = append(items, text)
			return
		}
		m := pattern.FindStringSubmatch(text)
		switch {
		case m == nil:
		case len(m) > 1:
			items = append(items, strings.TrimSpace(m[1]))
		default:
			items = append(items, m[0])
		}
	})
	return items, nil
}
