package news

import (
	"testing"
	"time"
)

var may5 = time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)

func storedFixture() []Stored {
	return []Stored{
		{
			ID:          1,
			Title:       "Admissions Now Open",
			Content:     "Admissions are now open for the BSEMC and BLIS programs starting May 5, 2025.",
			SourceURL:   "https://cst.gsu.edu.ph/2025/05/05/admissions-now-open/",
			ImageURL:    "https://cst.gsu.edu.ph/uploads/admissions.jpg",
			PublishedAt: may5,
		},
	}
}

func TestClassify_DuplicateByTitleCaseInsensitive(t *testing.T) {
	existing := storedFixture()
	candidate := Article{
		Title:     "admissions now open",
		Content:   existing[0].Content,
		SourceURL: "https://cst.gsu.edu.ph/admissions/",
		ImageURL:  existing[0].ImageURL,
	}
	m := Classify(candidate, existing)
	if m.Verdict != VerdictDuplicate {
		t.Errorf("Verdict = %v, want duplicate", m.Verdict)
	}
}

func TestClassify_UpdateWhenTitleMatchBringsNewImage(t *testing.T) {
	existing := storedFixture()
	existing[0].ImageURL = ""
	candidate := Article{
		Title:     "Admissions Now Open",
		Content:   existing[0].Content,
		SourceURL: existing[0].SourceURL,
		ImageURL:  "https://cst.gsu.edu.ph/uploads/new-banner.jpg",
	}
	m := Classify(candidate, existing)
	if m.Verdict != VerdictUpdate {
		t.Fatalf("Verdict = %v, want update", m.Verdict)
	}
	if m.Existing == nil || m.Existing.ID != 1 {
		t.Errorf("update should target the matched row")
	}
}

func TestClassify_UpdateWhenContentChanged(t *testing.T) {
	existing := storedFixture()
	candidate := Article{
		Title:     "Admissions Now Open",
		Content:   "Admissions are now open. The application deadline has been extended to June 15, 2025.",
		SourceURL: existing[0].SourceURL,
	}
	m := Classify(candidate, existing)
	if m.Verdict != VerdictUpdate {
		t.Errorf("Verdict = %v, want update", m.Verdict)
	}
}

func TestClassify_DuplicateBySimilarURL(t *testing.T) {
	existing := storedFixture()
	candidate := Article{
		Title:     "CST Opens Admissions for New Programs",
		Content:   "A completely different teaser paragraph about the announcement.",
		SourceURL: "https://cst.gsu.edu.ph/2025/05/05/admissions-now-open",
	}
	m := Classify(candidate, existing)
	if m.Verdict != VerdictDuplicate {
		t.Errorf("Verdict = %v, want duplicate (similar URL)", m.Verdict)
	}
}

func TestClassify_DuplicateBySimilarContent(t *testing.T) {
	existing := storedFixture()
	candidate := Article{
		Title:     "BSEMC and BLIS Applications Accepted",
		Content:   "Admissions are now open for the BSEMC and BLIS programs starting May 5, 2025!",
		SourceURL: "https://cst.gsu.edu.ph/news/applications-accepted/",
	}
	m := Classify(candidate, existing)
	if m.Verdict != VerdictDuplicate {
		t.Errorf("Verdict = %v, want duplicate (similar content)", m.Verdict)
	}
}

func TestClassify_NewArticle(t *testing.T) {
	existing := storedFixture()
	candidate := Article{
		Title:     "Research Symposium Scheduled This August",
		Content:   "The annual research symposium gathers faculty presenters from every department.",
		SourceURL: "https://cst.gsu.edu.ph/2025/07/10/research-symposium/",
	}
	m := Classify(candidate, existing)
	if m.Verdict != VerdictNew {
		t.Errorf("Verdict = %v, want new", m.Verdict)
	}
}

func TestClassify_EmptyStoreIsNew(t *testing.T) {
	m := Classify(Article{Title: "Anything", Content: "body"}, nil)
	if m.Verdict != VerdictNew {
		t.Errorf("Verdict = %v, want new", m.Verdict)
	}
}

func TestClassify_SecondRunIsIdempotent(t *testing.T) {
	existing := storedFixture()
	// Same article scraped again, byte-identical fields.
	candidate := Article{
		Title:       existing[0].Title,
		Content:     existing[0].Content,
		SourceURL:   existing[0].SourceURL,
		ImageURL:    existing[0].ImageURL,
		PublishedAt: existing[0].PublishedAt,
	}
	m := Classify(candidate, existing)
	if m.Verdict == VerdictNew {
		t.Error("unchanged article must never classify as new on a second run")
	}
}
