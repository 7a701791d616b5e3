package lang

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gertd/go-pluralize"
)

const (
	DefaultPattern   = "%s"
	DefaultSeparator = ","
	DefaultOperator  = "and"
)

var pluralizer = pluralize.NewClient()

type Enumerator struct {
	Pattern   string
	Separator string
	Operator  string
}

func (e Enumerator) Do(elements ...string) string {
	pattern, separator, operator := DefaultPattern, DefaultSeparator, DefaultOperator
	if e.Pattern != "" {
		pattern = e.Pattern
	}
	if e.Separator != "" {
		separator = e.Separator
	}
	if e.Operator != "" {
		operator = e.Operator
	}
	res := &bytes.Buffer{}
	for idx, element := range elements {
		if idx+2 < len(elements) {
			fmt.Fprintf(res, fmt.Sprintf("%s%%s ", pattern), element, separator)
		} else if idx+1 < len(elements) {
			fmt.Fprintf(res, fmt.Sprintf("%s%%s %%s ", pattern), element, separator, operator)
		} else {
			fmt.Fprintf(res, pattern, element)
		}
	}
	return res.String()
}

func Plural(word string) string {
	return pluralizer.Plural(word)
}

var smallNumbers = []string{"no", "one", "two", "three"}

// Card renders count of word the way a narrator would: "no swords", "a
// sword", "two swords", "4 swords".
func Card(count int, word string) string {
	switch {
	case count == 1:
		return fmt.Sprintf("%s %s", Article(word), word)
	case count >= 0 && count < len(smallNumbers):
		return fmt.Sprintf("%s %s", smallNumbers[count], Plural(word))
	}
	return fmt.Sprintf("%d %s", count, Plural(word))
}

var (
	silentH      = []string{"hour", "honest", "honor", "honour", "heir"}
	consonantYou = []string{"uni", "use", "usu", "one", "once", "eu"}
)

// Article returns "a" or "an" for word.
func Article(word string) string {
	lower := strings.ToLower(word)
	for _, prefix := range silentH {
		if strings.HasPrefix(lower, prefix) {
			return "an"
		}
	}
	for _, prefix := range consonantYou {
		if strings.HasPrefix(lower, prefix) {
			return "a"
		}
	}
	if lower != "" && strings.ContainsRune("aeiou8", rune(lower[0])) {
		return "an"
	}
	return "a"
}

// Capitalize upper cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Decapitalize lower cases the first rune of s.
func Decapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// TrimRight drops trailing whitespace.
func TrimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// Punctuate ends s with a period unless it already ends with '.', '!' or '?'.
// Trailing whitespace is dropped first.
func Punctuate(s string) string {
	s = TrimRight(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

// Sentence capitalizes and punctuates s.
func Sentence(s string) string {
	return Punctuate(Capitalize(s))
}
