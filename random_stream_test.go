package unagi

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRandomDataDeterministic(t *testing.T) {
	a := RandomData(1234, 100, 500, "ab")
	b := RandomData(1234, 100, 500, "ab")
	if a != b {
		t.Errorf("Expected identical output for identical seeds, got\n%s\n%s", a, b)
	}

	c := RandomData(4321, 100, 500, "ab")
	if a == c {
		t.Errorf("Expected different seeds to give different output")
	}

	// No whitespace means no word boundary, so everything comes back
	if len(a) != 600 {
		t.Errorf("Expected 600 characters without whitespace in the alphabet, got %d", len(a))
	}
	if strings.Trim(a, "ab") != "" {
		t.Errorf("Expected only 'a' and 'b', got %q", a)
	}
}

func TestRandomDataNoSkip(t *testing.T) {
	for _, n := range []int{0, 1, 17, 500, 10000} {
		s := RandomData(42, 0, n, Letters)
		if utf8.RuneCountInString(s) != n {
			t.Errorf("Expected %d characters with skip=0, got %d", n, utf8.RuneCountInString(s))
		}
	}
}

func TestRandomDataWordBoundary(t *testing.T) {
	var tests = []struct {
		seed int64
		skip int
		n    int
	}{
		{1, 10, 50},
		{2, 100, 500},
		{3, 1000, 20},
		{1234, 3, 3},
		{99, 50, 0},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			full := []rune(RandomData(tt.seed, 0, tt.skip+tt.n, Letters))
			got := []rune(RandomData(tt.seed, tt.skip, tt.n, Letters))

			// Result is always a suffix of the full draw
			if !strings.HasSuffix(string(full), string(got)) {
				t.Fatalf("Expected %q to be a suffix of %q", string(got), string(full))
			}

			start := len(full) - len(got)
			if start == 0 {
				// Fallback: no word start in (0, skip]
				for i := tt.skip; i > 0; i-- {
					if i < len(full) && !isSpace(full[i]) && isSpace(full[i-1]) {
						t.Errorf("Missed a word start at %d", i)
					}
				}
				return
			}

			if start > tt.skip {
				t.Errorf("Expected start <= skip (%d), got %d", tt.skip, start)
			}
			if isSpace(full[start]) || !isSpace(full[start-1]) {
				t.Errorf("Expected result to start at a word boundary, got index %d in %q", start, string(full))
			}
			// And it must be the closest one to skip
			for i := tt.skip; i > start; i-- {
				if i < len(full) && !isSpace(full[i]) && isSpace(full[i-1]) {
					t.Errorf("Expected closest word start to skip, found %d before %d", i, start)
				}
			}
		})
	}
}

func TestRandomDataUnicodeAlphabet(t *testing.T) {
	s := RandomData(7, 0, 100, "あい う")
	if utf8.RuneCountInString(s) != 100 {
		t.Errorf("Expected 100 characters, got %d", utf8.RuneCountInString(s))
	}
	if strings.Trim(s, "あい う") != "" {
		t.Errorf("Unexpected characters in %q", s)
	}
}

func TestRandomDataEmptyAlphabet(t *testing.T) {
	if s := RandomData(1, 10, 10, ""); s != "" {
		t.Errorf("Expected empty output for empty alphabet, got %q", s)
	}
}
