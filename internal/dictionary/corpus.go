package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Corpus is an immutable set of English words, stored as written.
// Proper nouns such as "Aaron" keep their capital letter.
type Corpus struct {
	words map[string]struct{}
}

// NewCorpus builds a corpus from a word list
func NewCorpus(words []string) *Corpus {
	c := &Corpus{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		c.add(w)
	}
	return c
}

// ParseCorpus reads a corpus with one word per line. Blank lines are ignored.
func ParseCorpus(r io.Reader) (*Corpus, error) {
	c := &Corpus{words: make(map[string]struct{})}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	return c, nil
}

func (c *Corpus) add(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	c.words[word] = struct{}{}
}

// Contains reports whether the lower-cased word is in the corpus, so "HAT"
// matches "hat" but "ADA" does not match "Ada"
func (c *Corpus) Contains(word string) bool {
	_, ok := c.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct words
func (c *Corpus) Len() int {
	return len(c.words)
}
