// Package wordbank holds the static categorized word lists and the
// round-to-difficulty mapping used to pick a word for each turn.
package wordbank

import "math/rand"

// Difficulty selects which word list a turn draws from.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// String returns the string representation of the difficulty.
func (d Difficulty) String() string {
	return string(d)
}

// ForRound returns the difficulty for a given round number: rounds
// 1-5 draw easy words, 6-10 medium, and 11 onward hard.
func ForRound(round int) Difficulty {
	switch {
	case round <= 5:
		return Easy
	case round <= 10:
		return Medium
	default:
		return Hard
	}
}

// Entry is a drawable word with the hint shown to the drawer.
type Entry struct {
	Word string
	Hint string
}

var lists = map[Difficulty][]Entry{
	Easy:   easyWords,
	Medium: mediumWords,
	Hard:   hardWords,
}

var hints = buildHintIndex()

func buildHintIndex() map[string]string {
	index := make(map[string]string)
	for _, list := range lists {
		for _, e := range list {
			index[e.Word] = e.Hint
		}
	}
	return index
}

// Pick returns a random entry from the list for the given difficulty.
func Pick(difficulty Difficulty) Entry {
	list, ok := lists[difficulty]
	if !ok {
		list = easyWords
	}
	return list[rand.Intn(len(list))]
}

// PickForRound picks a word at the difficulty derived from the round.
func PickForRound(round int) Entry {
	return Pick(ForRound(round))
}

// Hint returns the hint for a known word, or the empty string.
func Hint(word string) string {
	return hints[word]
}

// Words returns all words for a difficulty, for listing and tests.
func Words(difficulty Difficulty) []string {
	list := lists[difficulty]
	words := make([]string, 0, len(list))
	for _, e := range list {
		words = append(words, e.Word)
	}
	return words
}
