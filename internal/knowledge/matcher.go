package knowledge

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Cutoff is the minimum similarity for a known question to count as a match.
const Cutoff = 0.6

// Similarity returns the difflib ratio 2*M/T of a and b compared rune by
// rune, in [0,1]. Two empty strings are identical.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// FindBestMatch returns the candidate most similar to query, provided its
// score reaches Cutoff. Ties go to the first candidate seen.
func FindBestMatch(query string, candidates []string) (string, bool) {
	q := runes(query)
	best, bestScore, found := "", 0.0, false

	for _, c := range candidates {
		// candidate is the first sequence so difflib's autojunk heuristic
		// applies to the query.
		m := difflib.NewMatcher(runes(c), q)
		if m.RealQuickRatio() < Cutoff || m.QuickRatio() < Cutoff {
			continue
		}
		score := m.Ratio()
		if score < Cutoff {
			continue
		}
		if !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}

// GetAnswer returns the answer of the first record whose question equals
// question exactly.
func GetAnswer(question string, kb *KnowledgeBase) (string, bool) {
	for _, r := range kb.Questions {
		if r.Question == question {
			return r.Answer, true
		}
	}
	return "", false
}

func runes(s string) []string {
	return strings.Split(s, "")
}
