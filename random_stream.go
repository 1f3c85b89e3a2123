package unagi

import (
	"math/rand"
	"strings"
)

// RandomData returns a reproducible string of characters drawn from
// alphabet. The stream is seeded with seed, skip+n characters are drawn, and
// the result starts at the nearest word start at or before index skip. If
// there is no word start in (0, skip] the whole skip+n characters are
// returned, so the result is not always n characters long.
//
// The same seed gives the same output on every run, but only with Go's
// math/rand source; the characters differ from other implementations.
func RandomData(seed int64, skip, n int, alphabet string) string {
	if skip < 0 {
		skip = 0
	}
	if n < 0 {
		n = 0
	}
	letters := []rune(alphabet)
	if len(letters) == 0 {
		return ""
	}

	r := rand.New(rand.NewSource(seed))
	s := make([]rune, skip+n)
	for i := range s {
		s[i] = letters[r.Intn(len(letters))]
	}

	for i := skip; i > 0; i-- {
		// With n == 0 there is nothing at index skip to start a word
		if i >= len(s) {
			continue
		}
		if !isSpace(s[i]) && isSpace(s[i-1]) {
			return string(s[i:])
		}
	}
	return string(s)
}

func isSpace(r rune) bool {
	return strings.ContainsRune(Whitespace, r)
}
