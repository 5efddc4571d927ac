package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gsuconnect/ingest/internal/news"
)

// MainCampus scrapes the university's main website, a classic WordPress
// theme with an "entry" based markup.
type MainCampus struct {
	campus   string
	homepage string
}

func (e *MainCampus) Campus() string   { return e.campus }
func (e *MainCampus) Homepage() string { return e.homepage }

// DiscoverLinks collects candidate article URLs from the homepage.
// Strategy order: date-stamped paths first, then the news panels.
// Accepted hrefs are resolved against the homepage so relative links
// come out fetchable and dedup against their absolute feed form.
func (e *MainCampus) DiscoverLinks(doc *goquery.Document) []string {
	var datePaths, panels []string

	doc.Find(`a[href*="/20"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if sameSite(e.homepage, href) && news.DateFromPath(href) != "" {
			datePaths = append(datePaths, news.ResolveURL(e.homepage, href))
		}
	})

	doc.Find(".news-updates a, .featured-news a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if sameSite(e.homepage, href) {
			panels = append(panels, news.ResolveURL(e.homepage, href))
		}
	})

	return MergeLinks(datePaths, panels)
}

func (e *MainCampus) ExtractArticle(doc *goquery.Document, pageURL string) (news.Candidate, error) {
	title := firstText(doc, []string{"h1.entry-title", "h1.h1", "h1"})
	if title == "" {
		return news.Candidate{}, fmt.Errorf("%w: title in %s", ErrMissingField, pageURL)
	}

	content := joinedParagraphs(doc, []string{
		".entry-content p",
		".post-content p",
		"article p",
		".content p",
	})
	if content == "" {
		content = strings.TrimSpace(doc.Find(".entry-content").Text())
	}
	if content == "" {
		return news.Candidate{}, fmt.Errorf("%w: content in %s", ErrMissingField, pageURL)
	}

	published := e.extractDate(doc, content, pageURL)
	if published == "" {
		return news.Candidate{}, fmt.Errorf("%w: published date in %s", ErrMissingField, pageURL)
	}

	return news.Candidate{
		Title:     title,
		Content:   content,
		SourceURL: pageURL,
		ImageURL:  e.extractImage(doc, title),
		Campus:    e.campus,
		Published: published,
	}, nil
}

// extractDate tries the date heuristics in order. The main site has no
// today-fallback: an undatable article is dropped.
func (e *MainCampus) extractDate(doc *goquery.Document, content, pageURL string) string {
	if d := postedOnDate(doc); d != "" {
		return d
	}
	if d := metaPublishedTime(doc); d != "" {
		return d
	}
	if d := news.DateFromPath(pageURL); d != "" {
		return d
	}
	return leadingContentDate(content)
}

func (e *MainCampus) extractImage(doc *goquery.Document, title string) string {
	if src := titleWordImage(doc, title); src != "" {
		return src
	}
	if src := selectorImage(doc, []string{
		".wp-block-post-featured-image img",
		".entry-thumbnail img",
		".post-thumbnail img",
		".featured-image img",
		".entry-content img",
		"article img",
		`img[src*="uploads"]`,
		`img[src*="wp-content"]`,
	}); src != "" {
		return src
	}
	return firstImage(doc)
}
