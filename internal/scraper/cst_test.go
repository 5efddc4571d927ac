package scraper

import (
	"testing"
	"time"

	"github.com/gsuconnect/ingest/internal/news"
)

const cstHomepageFixture = `
<html><body><main>
	<figure class="wp-block-post-featured-image">
		<a href="https://cst.gsu.edu.ph/2025/05/05/admissions-now-open/"><img src="/uploads/admissions.jpg"></a>
	</figure>
	<article>
		<a href="https://cst.gsu.edu.ph/2025/05/05/admissions-now-open/">Admissions</a>
		<a href="https://cst.gsu.edu.ph/2025/04/30/rane-launch/">RANE</a>
		<a href="https://cst.gsu.edu.ph/faculty/">Faculty</a>
	</article>
	<a href="https://cst.gsu.edu.ph/2025/04/18/lea-seminar/">LEA</a>
</main></body></html>`

func TestCST_DiscoverLinks(t *testing.T) {
	doc := mustDoc(t, cstHomepageFixture)
	ex := &CST{campus: "CST", homepage: "https://cst.gsu.edu.ph/"}

	got := ex.DiscoverLinks(doc)
	want := []string{
		"https://cst.gsu.edu.ph/2025/05/05/admissions-now-open/",
		"https://cst.gsu.edu.ph/2025/04/30/rane-launch/",
		"https://cst.gsu.edu.ph/2025/04/18/lea-seminar/",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d links %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCST_DiscoverLinksResolvesRelativeHrefs(t *testing.T) {
	doc := mustDoc(t, `
		<main>
			<figure class="wp-block-post-featured-image">
				<a href="/2025/05/05/relative-story/"><img src="/uploads/x.jpg"></a>
			</figure>
		</main>`)
	ex := &CST{campus: "CST", homepage: "https://cst.gsu.edu.ph/"}

	got := ex.DiscoverLinks(doc)
	if len(got) != 1 {
		t.Fatalf("got %d links %v, want 1", len(got), got)
	}
	if got[0] != "https://cst.gsu.edu.ph/2025/05/05/relative-story/" {
		t.Errorf("links[0] = %q, want absolute URL", got[0])
	}
}

const cstArticleFixture = `
<html><body><main>
	<h1>Admissions Now Open for BSEMC and BLIS Programs</h1>
	<div class="entry-content">
		<p>May 5, 2025 | Salvador Benedicto</p>
		<p>The College of Science and Technology opens admissions for two new programs.</p>
	</div>
	<img src="/uploads/campus-drone-shot.png">
	<img src="/uploads/2025/05/admissions-poster.jpg" alt="admissions poster">
</main></body></html>`

func TestCST_ExtractArticle(t *testing.T) {
	doc := mustDoc(t, cstArticleFixture)
	ex := &CST{campus: "CST", homepage: "https://cst.gsu.edu.ph/"}

	c, err := ex.ExtractArticle(doc, "https://cst.gsu.edu.ph/2025/05/05/admissions-now-open/")
	if err != nil {
		t.Fatalf("ExtractArticle error: %v", err)
	}
	if c.Published != "May 5, 2025" {
		t.Errorf("Published = %q, want leading content date", c.Published)
	}
	// The poster mentions "admissions" from the title; the drone shot does not.
	if c.ImageURL != "/uploads/2025/05/admissions-poster.jpg" {
		t.Errorf("ImageURL = %q", c.ImageURL)
	}
	if c.Campus != "CST" {
		t.Errorf("Campus = %q", c.Campus)
	}
}

func TestCST_TodayFallbackWhenNoDateAnywhere(t *testing.T) {
	doc := mustDoc(t, `
		<h1>Org Fair This Week</h1>
		<div class="entry-content"><p>Booths open at the quadrangle.</p></div>`)
	ex := &CST{campus: "CST", homepage: "https://cst.gsu.edu.ph/"}

	c, err := ex.ExtractArticle(doc, "https://cst.gsu.edu.ph/org-fair/")
	if err != nil {
		t.Fatalf("ExtractArticle error: %v", err)
	}
	if c.Published != news.CanonicalDate(time.Now()) {
		t.Errorf("Published = %q, want today's date fallback", c.Published)
	}
}

func TestCST_BodyDateWhenNotLeading(t *testing.T) {
	doc := mustDoc(t, `
		<h1>Seminar Recap</h1>
		<div class="entry-content"><p>The seminar concluded on April 18, 2025 with a workshop.</p></div>`)
	ex := &CST{campus: "CST", homepage: "https://cst.gsu.edu.ph/"}

	c, err := ex.ExtractArticle(doc, "https://cst.gsu.edu.ph/seminar-recap/")
	if err != nil {
		t.Fatalf("ExtractArticle error: %v", err)
	}
	if c.Published != "April 18, 2025" {
		t.Errorf("Published = %q, want date found in body", c.Published)
	}
}
