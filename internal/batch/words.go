// Package batch reads input word lists from files.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadWordsFile reads input words from a file.
// Supports formats:
// - One word per line: "Software"
// - Several words per line, separated by spaces or commas: "SysTem, security"
// - Comments: everything after '#' on a line is ignored
//
// Word order is kept, since each word supplies one letter position.
func ReadWordsFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read words file: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		words = append(words, SplitWords(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words file: %w", err)
	}

	return words, nil
}

// SplitWords splits s on whitespace and commas, dropping empty tokens
func SplitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
}

// SplitAll applies SplitWords to every token, keeping order
func SplitAll(tokens []string) []string {
	var words []string
	for _, tok := range tokens {
		words = append(words, SplitWords(tok)...)
	}
	return words
}
