package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_ExactMatch(t *testing.T) {
	assert.Equal(t, 100, Similarity("cat", "cat"))
	assert.Equal(t, 100, Similarity("elephant", "elephant"))
}

func TestSimilarity_CaseInsensitive(t *testing.T) {
	assert.Equal(t, 100, Similarity("CAT", "cat"))
	assert.Equal(t, 100, Similarity("CaT", "cAt"))
}

func TestSimilarity_LengthMismatchScoresZero(t *testing.T) {
	assert.Equal(t, 0, Similarity("cats", "cat"))
	assert.Equal(t, 0, Similarity("ca", "cat"))
	assert.Equal(t, 0, Similarity("", "cat"))
}

func TestSimilarity_EmptyWordScoresZero(t *testing.T) {
	assert.Equal(t, 0, Similarity("", ""))
	assert.Equal(t, 0, Similarity("a", ""))
}

func TestSimilarity_PositionalPercentage(t *testing.T) {
	// 2 of 3 positions match, rounded from 66.67
	assert.Equal(t, 67, Similarity("dig", "dog"))
	// 1 of 3
	assert.Equal(t, 33, Similarity("dzz", "dog"))
	// 0 of 3
	assert.Equal(t, 0, Similarity("xyz", "dog"))
	// 3 of 4
	assert.Equal(t, 75, Similarity("bird", "bard"))
}

func TestSimilarity_SameLetterDifferentPosition(t *testing.T) {
	// Only positional matches count
	assert.Equal(t, 0, Similarity("abc", "bca"))
}
