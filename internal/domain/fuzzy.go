package domain

import (
	"strings"
	"unicode"
)

// FuzzyScore calculates a relevance score for how well target matches query.
// Zero means no match.
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if query == "" {
		return 0
	}

	// Substring match beats any scattered match
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	t, q := []rune(target), []rune(query)
	score := 0
	qi := 0
	prev := -1

	for i := 0; i < len(t) && qi < len(q); i++ {
		if t[i] != q[qi] {
			continue
		}
		if prev == i-1 {
			score += 10 // consecutive
		}
		if i == 0 {
			score += 15
		}
		if i > 0 && isSeparator(t[i-1]) {
			score += 10
		}
		score++
		prev = i
		qi++
	}

	if qi == len(q) {
		return score
	}
	return 0
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(".-_/", r)
}
