package abbrev

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// FormatGroupName spells word back into the original words. Each original
// word is lower-cased and the first occurrence of its chosen letter is
// upper-cased; the results are joined with single spaces.
//
// word must have exactly one letter per original word. Anything else is a
// caller bug and panics.
func FormatGroupName(words []string, word string) string {
	letters := []rune(norm.NFC.String(word))
	if len(letters) != len(words) {
		panic(fmt.Sprintf("abbrev: %q has %d letters for %d words", word, len(letters), len(words)))
	}

	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = markLetter(strings.ToLower(norm.NFC.String(w)), letters[i])
	}
	return strings.Join(parts, " ")
}

// markLetter upper-cases the first occurrence of letter in a lower-case word
func markLetter(lower string, letter rune) string {
	target := unicode.ToLower(letter)
	for i, r := range lower {
		if r == target {
			return lower[:i] + string(unicode.ToUpper(letter)) + lower[i+utf8.RuneLen(r):]
		}
	}
	return lower
}
