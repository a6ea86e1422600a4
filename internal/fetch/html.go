package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxSegmentLength caps how long a contiguous text block may grow before
// a newline is inserted. The downstream extraction service rejects very
// long unbroken segments.
const maxSegmentLength = 5000

// ExtractText returns the visible text of the paragraph and span
// elements in htmlContent, one block per line.
func ExtractText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", &Error{Message: "failed to parse HTML", Cause: err}
	}

	var sb strings.Builder
	doc.Find("p, span").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		for len(text) > maxSegmentLength {
			sb.WriteString(text[:maxSegmentLength])
			sb.WriteByte('\n')
			text = text[maxSegmentLength:]
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	})
	return sb.String(), nil
}

// ExtractAnchors returns the href values of anchors in htmlContent that
// start with prefix, deduplicated in document order.
func ExtractAnchors(htmlContent, prefix string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &Error{Message: "failed to parse HTML", Cause: err}
	}

	seen := make(map[string]struct{})
	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || !strings.HasPrefix(href, prefix) {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		hrefs = append(hrefs, href)
	})
	return hrefs, nil
}
