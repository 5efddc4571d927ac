// Package scraper extracts article candidates from the campus websites.
// Each site gets its own Extractor variant because markup conventions
// differ; the variants are composed from the shared fallback-chain
// helpers below.
package scraper

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gsuconnect/ingest/internal/news"
)

// ErrMissingField marks a candidate missing a required field after all
// fallbacks. The caller drops the item and continues.
var ErrMissingField = errors.New("missing required field")

// Extractor pulls article links and fields out of one campus site.
type Extractor interface {
	Campus() string
	Homepage() string
	DiscoverLinks(doc *goquery.Document) []string
	ExtractArticle(doc *goquery.Document, pageURL string) (news.Candidate, error)
}

// ForSource returns the extractor variant for a configured source kind.
func ForSource(kind, campus, homepage string) (Extractor, error) {
	switch kind {
	case "main":
		return &MainCampus{campus: campus, homepage: homepage}, nil
	case "cst":
		return &CST{campus: campus, homepage: homepage}, nil
	default:
		return nil, fmt.Errorf("unknown extractor kind %q", kind)
	}
}

var (
	leadingDateRe  = regexp.MustCompile(`^([A-Za-z]+\s+\d{1,2},\s+\d{4})`)
	postedOnRe     = regexp.MustCompile(`Posted on\s+([A-Za-z]+\s+\d{1,2},\s+\d{4})`)
	monthInBodyRe  = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}`)
	shortTitleWord = 3
)

// firstText walks the selector chain and returns the first non-empty
// trimmed text, short-circuiting on success.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// joinedParagraphs tries each selector until one yields at least one
// non-empty paragraph, then joins them with a blank line.
func joinedParagraphs(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		var paragraphs []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n\n")
		}
	}
	return ""
}

// titleWordImage picks the image whose src, alt, or class mentions a word
// from the title. With several images on a page this favors the one that
// belongs to this specific article.
func titleWordImage(doc *goquery.Document, title string) string {
	words := strings.Fields(strings.ToLower(title))
	var found string
	doc.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		alt, _ := img.Attr("alt")
		class, _ := img.Attr("class")
		haystack := strings.ToLower(src + " " + alt + " " + class)
		for _, w := range words {
			if len(w) > shortTitleWord && strings.Contains(haystack, w) {
				found = src
				return false
			}
		}
		return true
	})
	return found
}

// selectorImage walks the chain of known image containers and returns the
// first plausible src.
func selectorImage(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		img := doc.Find(sel).First()
		if img.Length() == 0 {
			continue
		}
		src, _ := img.Attr("src")
		if src != "" && (strings.HasPrefix(src, "http") || strings.HasPrefix(src, "/")) {
			return src
		}
	}
	return ""
}

// firstImage is the last-resort image fallback.
func firstImage(doc *goquery.Document) string {
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

// metaPublishedTime reads the machine-readable published_time meta tag
// and returns the canonical date form, or "".
func metaPublishedTime(doc *goquery.Document) string {
	content, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content")
	if !ok || content == "" {
		return ""
	}
	t, err := news.ParseDate(content)
	if err != nil {
		return ""
	}
	return news.CanonicalDate(t)
}

// leadingContentDate matches a date-like prefix at the start of the body,
// the "Month DD, YYYY | Location" style both sites use.
func leadingContentDate(content string) string {
	m := leadingDateRe.FindStringSubmatch(strings.TrimSpace(content))
	if m == nil {
		return ""
	}
	return reformatDate(m[1])
}

// postedOnDate finds explicit "Posted on <date>" fragments in the body.
func postedOnDate(doc *goquery.Document) string {
	var date string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		m := postedOnRe.FindStringSubmatch(p.Text())
		if m == nil {
			return true
		}
		date = reformatDate(m[1])
		return date == ""
	})
	return date
}

// bodyDate scans the whole body text for the first month-name date.
func bodyDate(content string) string {
	m := monthInBodyRe.FindString(content)
	if m == "" {
		return ""
	}
	return reformatDate(m)
}

// reformatDate validates a matched date string and re-emits it in the one
// canonical form, guarding against regex matches like "Foo 99, 2025".
func reformatDate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	t, err := news.ParseDate(s)
	if err != nil {
		return ""
	}
	return news.CanonicalDate(t)
}

// sameSite reports whether href belongs to the scraped site. Relative
// links count; absolute links must share the host (www prefix ignored).
func sameSite(homepage, href string) bool {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	if ref.Host == "" {
		return ref.Path != ""
	}
	home, err := url.Parse(homepage)
	if err != nil {
		return false
	}
	return strings.TrimPrefix(ref.Hostname(), "www.") == strings.TrimPrefix(home.Hostname(), "www.")
}
