package news

import "testing"

func TestTitlesEqual_CaseInsensitive(t *testing.T) {
	if !TitlesEqual("Admissions Now Open", "admissions now open") {
		t.Error("expected case-insensitive titles to match")
	}
	if TitlesEqual("Admissions Now Open", "Enrollment Now Open") {
		t.Error("different titles should not match")
	}
}

func TestSimilarURL(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{
			"identical modulo protocol and trailing slash",
			"https://cst.gsu.edu.ph/2025/05/05/admissions-now-open/",
			"http://cst.gsu.edu.ph/2025/05/05/admissions-now-open",
			true,
		},
		{
			"one contains the other",
			"https://cst.gsu.edu.ph/admissions-now-open/",
			"https://www.cst.gsu.edu.ph/admissions-now-open",
			true,
		},
		{
			"unrelated paths",
			"https://www.gsu.edu.ph/2025/04/01/board-exam-results/",
			"https://cst.gsu.edu.ph/2025/05/05/admissions-now-open/",
			false,
		},
	}
	for _, tc := range cases {
		if got := SimilarURL(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: SimilarURL = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSimilarContent_HighWordOverlap(t *testing.T) {
	// 6 of 8 distinct words shared: 0.75 overlap, past the 0.7 threshold.
	a := "alpha bravo charlie delta echo foxtrot golf hotel"
	b := "alpha bravo charlie delta echo foxtrot india juliet"
	if !SimilarContent(a, b) {
		t.Error("75% word overlap should classify as similar")
	}
}

func TestSimilarContent_LowOverlap(t *testing.T) {
	// 4 of 10 words shared, none of them consecutive: 0.4 word overlap
	// and zero 3-word phrase overlap.
	a := "alpha one bravo two charlie three delta four echo five"
	b := "alpha six bravo seven charlie eight delta nine golf ten"
	if SimilarContent(a, b) {
		t.Error("40% word overlap with no phrase overlap should not be similar")
	}
}

func TestSimilarContent_PhraseOverlap(t *testing.T) {
	// Over half the 3-word windows are shared even though the tail differs.
	a := "the college of science and technology opens admissions today"
	b := "the college of science and technology opens admissions tomorrow morning everyone"
	if !SimilarContent(a, b) {
		t.Error("shared phrases should classify as similar")
	}
}

func TestSimilarContent_EmptyInput(t *testing.T) {
	if SimilarContent("", "anything at all here") {
		t.Error("empty content should never be similar")
	}
}

func TestNormalizeText(t *testing.T) {
	got := normalizeText("Hello,  World! It's   2025.")
	want := "hello world its 2025"
	if got != want {
		t.Errorf("normalizeText = %q, want %q", got, want)
	}
}
