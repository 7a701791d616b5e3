package command

import "unicode"

// Line is a tokenized input line. Every token remembers its byte offset in
// Full so that free text tails are cut straight out of the original input.
type Line struct {
	Full   string
	Tokens []string
	starts []int
}

// Tokenize splits s on runs of whitespace, keeping case and offsets.
// An empty or all whitespace line yields no tokens.
func Tokenize(s string) Line {
	line := Line{Full: s}
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				line.Tokens = append(line.Tokens, s[start:i])
				line.starts = append(line.starts, start)
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		line.Tokens = append(line.Tokens, s[start:])
		line.starts = append(line.starts, start)
	}
	return line
}

func (l Line) Empty() bool {
	return len(l.Tokens) == 0
}

// Rest returns Full from the start of token k, untouched. Whitespace
// inside the tail is preserved exactly. Rest returns "" when there are k
// or fewer tokens.
func (l Line) Rest(k int) string {
	if k < 0 {
		k = 0
	}
	if k >= len(l.starts) {
		return ""
	}
	return l.Full[l.starts[k]:]
}
