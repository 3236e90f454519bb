package abbrev

import (
	"errors"
	"fmt"
	"math"
)

// ErrTooManyCombinations is returned when the candidate count does not fit in an int
var ErrTooManyCombinations = errors.New("too many letter combinations")

// Count returns the number of combinations Combinations would produce
func Count(sets []LetterSet) (int, error) {
	n := 1
	for i, s := range sets {
		if len(s) == 0 {
			return 0, nil
		}
		if n > math.MaxInt/len(s) {
			return 0, fmt.Errorf("%w: %d letter sets, overflow at position %d", ErrTooManyCombinations, len(sets), i+1)
		}
		n *= len(s)
	}
	return n, nil
}

// Combinations returns the Cartesian product of the letter sets. The last
// position varies fastest. No sets yield a single empty candidate, while any
// empty set yields none. It panics when Count reports an error, so callers
// with untrusted input check Count first.
func Combinations(sets []LetterSet) []string {
	total, err := Count(sets)
	if err != nil {
		panic(err)
	}
	out := make([]string, 0, total)
	if total == 0 {
		return out
	}

	idx := make([]int, len(sets))
	buf := make([]rune, len(sets))
	for {
		for i, s := range sets {
			buf[i] = s[idx[i]]
		}
		out = append(out, string(buf))

		// Advance like an odometer, carrying leftwards.
		i := len(sets) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(sets[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}
