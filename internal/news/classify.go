package news

// Verdict says what the reconciler should do with a candidate.
type Verdict int

const (
	VerdictNew Verdict = iota
	VerdictUpdate
	VerdictDuplicate
)

func (v Verdict) String() string {
	switch v {
	case VerdictNew:
		return "new"
	case VerdictUpdate:
		return "update"
	case VerdictDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Match is the classification of one candidate against the stored set.
type Match struct {
	Verdict  Verdict
	Existing *Stored // row to update for VerdictUpdate, matched row for VerdictDuplicate
	Reason   string
}

// Classify compares a candidate against the already-stored articles of the
// same campus using three layered signals, checked in order:
//
//  1. title, case-insensitive. This is the stable matching key: a title
//     hit with changed content or a newly discovered image is an update
//     (articles get edited and enriched after publish), otherwise duplicate.
//  2. source URL, exact or fuzzy. Always a duplicate; the CMS sometimes
//     restructures paths, so a fuzzy URL hit is not trusted for updates.
//  3. content similarity. Duplicate, same story under a rephrased title.
//
// No signal firing means the candidate is new.
func Classify(candidate Article, existing []Stored) Match {
	for i := range existing {
		st := &existing[i]
		if !TitlesEqual(st.Title, candidate.Title) {
			continue
		}
		if contentChanged(candidate, st) || imageChanged(candidate, st) {
			return Match{Verdict: VerdictUpdate, Existing: st, Reason: "title match with changed fields"}
		}
		return Match{Verdict: VerdictDuplicate, Existing: st, Reason: "duplicate title"}
	}

	for i := range existing {
		st := &existing[i]
		if st.SourceURL == candidate.SourceURL || SimilarURL(st.SourceURL, candidate.SourceURL) {
			return Match{Verdict: VerdictDuplicate, Existing: st, Reason: "duplicate source URL"}
		}
	}

	for i := range existing {
		st := &existing[i]
		if SimilarContent(st.Content, candidate.Content) {
			return Match{Verdict: VerdictDuplicate, Existing: st, Reason: "similar content"}
		}
	}

	return Match{Verdict: VerdictNew}
}

// contentChanged compares bodies after text normalization so whitespace
// and punctuation churn does not trigger writes.
func contentChanged(candidate Article, st *Stored) bool {
	if candidate.Content == "" {
		return false
	}
	return normalizeText(candidate.Content) != normalizeText(st.Content)
}

// imageChanged is true when the candidate brings an image the stored row
// lacks or replaces.
func imageChanged(candidate Article, st *Stored) bool {
	return candidate.ImageURL != "" && candidate.ImageURL != st.ImageURL
}
