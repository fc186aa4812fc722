package domain

import (
	"math"
	"strings"
)

// Similarity scores a guess against the target word as the percentage
// of positions holding an identical character, case-insensitively.
// A length mismatch (or empty word) scores 0; the result is rounded
// to the nearest whole percent.
func Similarity(guess, word string) int {
	g := []rune(strings.ToLower(guess))
	w := []rune(strings.ToLower(word))

	if len(w) == 0 || len(g) != len(w) {
		return 0
	}

	matches := 0
	for i := range w {
		if g[i] == w[i] {
			matches++
		}
	}

	return int(math.Round(float64(matches) / float64(len(w)) * 100))
}
