package services

import (
	"strings"
	"unicode"
)

// suggestMatch returns the catalog name most similar to value when its
// trigram similarity is strictly above the threshold. Ties keep the earlier
// candidate.
func suggestMatch(value string, candidates []string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := trigramSimilarity(value, c)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore > suggestionThreshold {
		return best, true
	}
	return "", false
}

// trigramSimilarity reproduces pg_trgm semantics: both strings are folded to
// lower case and split into alphanumeric words, each word is padded with two
// leading and one trailing space before extraction, and the score is the
// Jaccard ratio of the two trigram sets.
func trigramSimilarity(a, b string) float64 {
	ta := trigramSet(a)
	tb := trigramSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

func trigramSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range splitWords(strings.ToLower(s)) {
		padded := "  " + word + " "
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			set[string(runes[i:i+3])] = struct{}{}
		}
	}
	return set
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
