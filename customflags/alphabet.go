package customflags

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/msiebuhr/unagi"
)

// Named alphabets for the data generator
var alphabets = map[string]string{
	"letters": unagi.Letters,
	"lower":   "abcdefghijklmnopqrstuvwxyz" + strings.Repeat(" ", 9),
	"ab":      "ab",
	"digits":  "0123456789",
}

// Alphabet is either one of the named alphabets or a literal set of
// characters. Literals understand Go escapes, so "ab\t" includes a tab.
type Alphabet string

func (a *Alphabet) String() string {
	for name, chars := range alphabets {
		if chars == string(*a) {
			return name
		}
	}
	return strconv.Quote(string(*a))
}

func (a *Alphabet) Set(s string) error {
	if chars, ok := alphabets[s]; ok {
		*a = Alphabet(chars)
		return nil
	}

	chars, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return fmt.Errorf("invalid alphabet %q: %s", s, err)
	}
	if chars == "" {
		return fmt.Errorf("empty alphabet; use a literal or one of %s", strings.Join(AlphabetNames(), ", "))
	}
	*a = Alphabet(chars)
	return nil
}

func (a *Alphabet) UnmarshalText(text []byte) error {
	return a.Set(string(text))
}

func NewAlphabet(chars string) *Alphabet {
	a := Alphabet(chars)
	return &a
}

func AlphabetNames() []string {
	names := make([]string, 0, len(alphabets))
	for name := range alphabets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
