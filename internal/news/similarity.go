package news

import (
	"regexp"
	"strings"
)

// Thresholds for the fuzzy comparisons. Word overlap and phrase overlap
// are checked independently; either one past its threshold marks a pair
// of contents as the same story.
const (
	wordOverlapThreshold   = 0.7
	phraseOverlapThreshold = 0.5
	urlSegmentThreshold    = 0.7
	phraseLen              = 3
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	nonWordURLRe = regexp.MustCompile(`[^\w\s-]`)
	protocolRe   = regexp.MustCompile(`^https?://`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// normalizeText lowercases, strips punctuation and collapses whitespace
// so contents can be compared word by word.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalizeURL reduces a URL to a hyphen-delimited token string:
// no protocol, no trailing slash, no punctuation.
func normalizeURL(s string) string {
	s = strings.ToLower(s)
	s = protocolRe.ReplaceAllString(s, "")
	s = strings.TrimSuffix(s, "/")
	s = nonWordURLRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, "-")
	return s
}

// TitlesEqual reports whether two titles denote the same article
// (case-insensitive exact match).
func TitlesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SimilarURL reports whether two URLs likely point at the same article.
// After normalization: one contains the other, or they share more than
// 70% of their hyphen-delimited segments. CMS restructuring keeps most
// slug segments intact, so segment overlap survives small path changes.
func SimilarURL(a, b string) bool {
	na, nb := normalizeURL(a), normalizeURL(b)
	if na == "" || nb == "" {
		return false
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	segsA := strings.Split(na, "-")
	segsB := strings.Split(nb, "-")
	inB := make(map[string]bool, len(segsB))
	for _, s := range segsB {
		inB[s] = true
	}
	common := 0
	for _, s := range segsA {
		if inB[s] {
			common++
		}
	}
	longest := len(segsA)
	if len(segsB) > longest {
		longest = len(segsB)
	}
	if longest == 0 {
		return false
	}
	return float64(common)/float64(longest) > urlSegmentThreshold
}

// SimilarContent reports whether two article bodies tell the same story.
// It checks word-set overlap and shared 3-word phrases; titles get
// rephrased between teaser and article, bodies rarely do.
func SimilarContent(a, b string) bool {
	wordsA := strings.Fields(normalizeText(a))
	wordsB := strings.Fields(normalizeText(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}

	if wordOverlap(wordsA, wordsB) > wordOverlapThreshold {
		return true
	}
	return phraseOverlap(wordsA, wordsB) > phraseOverlapThreshold
}

// wordOverlap computes |A ∩ B| / max(|A|, |B|) over word sets.
func wordOverlap(wordsA, wordsB []string) float64 {
	setA := toSet(wordsA)
	setB := toSet(wordsB)

	common := 0
	for w := range setA {
		if setB[w] {
			common++
		}
	}
	longest := len(setA)
	if len(setB) > longest {
		longest = len(setB)
	}
	return float64(common) / float64(longest)
}

// phraseOverlap computes the fraction of shared 3-word sliding windows.
func phraseOverlap(wordsA, wordsB []string) float64 {
	phrasesA := phrases(wordsA)
	phrasesB := phrases(wordsB)
	if len(phrasesA) == 0 || len(phrasesB) == 0 {
		return 0
	}

	inB := make(map[string]bool, len(phrasesB))
	for _, p := range phrasesB {
		inB[p] = true
	}
	common := 0
	for _, p := range phrasesA {
		if inB[p] {
			common++
		}
	}
	longest := len(phrasesA)
	if len(phrasesB) > longest {
		longest = len(phrasesB)
	}
	return float64(common) / float64(longest)
}

func phrases(words []string) []string {
	if len(words) < phraseLen {
		return nil
	}
	out := make([]string, 0, len(words)-phraseLen+1)
	for i := 0; i+phraseLen <= len(words); i++ {
		out = append(out, strings.Join(words[i:i+phraseLen], " "))
	}
	return out
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
