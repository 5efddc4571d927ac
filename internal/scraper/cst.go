package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gsuconnect/ingest/internal/news"
)

// CST scrapes the College of Science and Technology site, a WordPress
// block theme with figure-based featured images.
type CST struct {
	campus   string
	homepage string
}

func (e *CST) Campus() string   { return e.campus }
func (e *CST) Homepage() string { return e.homepage }

// DiscoverLinks collects candidate article URLs from the homepage.
// Strategy order: featured-image figures, article container links with a
// date-stamped path, then the main content area. Accepted hrefs are
// resolved against the homepage so relative links come out fetchable.
func (e *CST) DiscoverLinks(doc *goquery.Document) []string {
	var figures, articles, mains []string

	doc.Find("figure.wp-block-post-featured-image a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if sameSite(e.homepage, href) {
			figures = append(figures, news.ResolveURL(e.homepage, href))
		}
	})

	doc.Find("article a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if sameSite(e.homepage, href) && news.DateFromPath(href) != "" {
			articles = append(articles, news.ResolveURL(e.homepage, href))
		}
	})

	doc.Find("main a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if sameSite(e.homepage, href) && news.DateFromPath(href) != "" {
			mains = append(mains, news.ResolveURL(e.homepage, href))
		}
	})

	return MergeLinks(figures, articles, mains)
}

func (e *CST) ExtractArticle(doc *goquery.Document, pageURL string) (news.Candidate, error) {
	title := firstText(doc, []string{"h1"})
	if title == "" {
		return news.Candidate{}, fmt.Errorf("%w: title in %s", ErrMissingField, pageURL)
	}

	content := joinedParagraphs(doc, []string{
		".entry-content p",
		".wp-block-post-content p",
		"article p",
	})
	if content == "" {
		content = strings.TrimSpace(doc.Find(".entry-content").Text())
	}
	if content == "" {
		return news.Candidate{}, fmt.Errorf("%w: content in %s", ErrMissingField, pageURL)
	}

	return news.Candidate{
		Title:     title,
		Content:   content,
		SourceURL: pageURL,
		ImageURL:  e.extractImage(doc, title),
		Campus:    e.campus,
		Published: e.extractDate(doc, content, pageURL),
	}, nil
}

// extractDate tries the date heuristics in order. The block theme puts
// "Month DD, YYYY | Location" at the top of the body, so that comes
// first. Articles on this site are all recent, so falling back to
// today's date beats dropping the item.
func (e *CST) extractDate(doc *goquery.Document, content, pageURL string) string {
	if d := leadingContentDate(content); d != "" {
		return d
	}
	if d := news.DateFromPath(pageURL); d != "" {
		return d
	}
	if d := metaPublishedTime(doc); d != "" {
		return d
	}
	if d := bodyDate(content); d != "" {
		return d
	}
	return news.CanonicalDate(time.Now())
}

func (e *CST) extractImage(doc *goquery.Document, title string) string {
	if src := titleWordImage(doc, title); src != "" {
		return src
	}
	if src := selectorImage(doc, []string{
		".wp-block-post-featured-image img",
		"figure.wp-block-post-featured-image img",
		".wp-block-image img",
		".entry-content img",
		"img.wp-post-image",
		`img[src*="uploads"]`,
		`img[src*="wp-content"]`,
	}); src != "" {
		return src
	}
	return firstImage(doc)
}
