package abbrev

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// LetterSet holds the candidate letters for one position of an abbreviation.
// Letters are unique and kept in first-occurrence order.
type LetterSet []rune

// String returns the letters of the set as a string
func (s LetterSet) String() string {
	return string(s)
}

// Contains reports whether r is one of the candidate letters
func (s LetterSet) Contains(r rune) bool {
	for _, l := range s {
		if l == r {
			return true
		}
	}
	return false
}

// DefaultWords returns the word list used when none is supplied
func DefaultWords() []string {
	return []string{"HeRe", "are", "THe", "Default", "words"}
}

// BuildLetterSets returns one letter set per word, in the same order.
//
// Upper-case letters in a word mark the letters that may be picked for that
// position. A word without any upper-case letter contributes all of its
// distinct letters instead, case preserved.
func BuildLetterSets(words []string) []LetterSet {
	sets := make([]LetterSet, len(words))
	for i, word := range words {
		sets[i] = buildLetterSet(norm.NFC.String(word))
	}
	return sets
}

func buildLetterSet(word string) LetterSet {
	var all, marked LetterSet
	seen := make(map[rune]bool)

	for _, r := range word {
		if seen[r] {
			continue
		}
		seen[r] = true
		all = append(all, r)
		if unicode.IsUpper(r) {
			marked = append(marked, r)
		}
	}

	if len(marked) > 0 {
		return marked
	}
	return all
}
