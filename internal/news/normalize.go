package news

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical human-readable date form all extractors
// reduce their source formats to before storage.
const DateLayout = "January 2, 2006"

// ErrInvalidDate marks a date string that survived extraction but cannot
// be parsed. Storing a corrupt timestamp is worse than dropping the item.
var ErrInvalidDate = errors.New("invalid date")

var (
	urlDateRe  = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`)
	imageExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)
)

// dateLayouts are the accepted input forms, tried in order.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// CanonicalDate formats a timestamp in the canonical date form.
func CanonicalDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate converts a date string into a timestamp. Returns ErrInvalidDate
// when none of the accepted layouts match.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// DateFromPath pulls a /YYYY/MM/DD/ fragment out of a URL path and returns
// it in canonical form, or "" when the path carries no date.
func DateFromPath(link string) string {
	m := urlDateRe.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes impossible dates (Feb 30 becomes Mar 2);
	// a changed component means the path fragment was not a real date.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return ""
	}
	return CanonicalDate(t)
}

// ResolveURL makes href absolute against the site origin.
// "/foo/bar" on https://example.edu becomes https://example.edu/foo/bar.
func ResolveURL(origin, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(origin)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// NormalizeImageURL validates a discovered image URL: absolutize, strip
// query parameters, and require a known image extension. Anything else is
// treated as absent.
func NormalizeImageURL(origin, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	abs := ResolveURL(origin, raw)
	if i := strings.IndexByte(abs, '?'); i >= 0 {
		abs = abs[:i]
	}
	if !imageExtRe.MatchString(abs) {
		return ""
	}
	return abs
}

// Normalize converts a raw extractor candidate into a canonical Article.
// The date must parse (ErrInvalidDate otherwise) and the image URL is
// coerced to absent when it fails validation.
func Normalize(c Candidate, origin string) (Article, error) {
	published, err := ParseDate(c.Published)
	if err != nil {
		return Article{}, err
	}
	return Article{
		Title:       strings.TrimSpace(c.Title),
		Content:     CollapseWhitespace(c.Content),
		SourceURL:   ResolveURL(origin, c.SourceURL),
		ImageURL:    NormalizeImageURL(origin, c.ImageURL),
		Campus:      c.Campus,
		PublishedAt: published,
	}, nil
}

// CollapseWhitespace squeezes runs of spaces and blank lines: inner
// whitespace collapses to one space, paragraph breaks stay as one blank line.
func CollapseWhitespace(s string) string {
	paragraphs := strings.Split(s, "\n\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
