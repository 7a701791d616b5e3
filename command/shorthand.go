package command

import "strings"

type shorthand struct {
	marker byte
	prefix string
	keep   bool
}

var shorthands = []shorthand{
	{marker: '\'', prefix: "say "},
	{marker: ';', prefix: "emote ", keep: true},
	{marker: '*', prefix: "ooc "},
	{marker: '@', prefix: "display -c "},
	{marker: '$', prefix: "mask "},
	{marker: '#', prefix: "roll 1d"},
}

// Expand rewrites a line starting with a shorthand marker into its canonical
// command. The marker consumes no following space, and the expansion is
// applied once: an expanded line is never expanded again.
// The emote marker is kept since emote uses it as the name placeholder.
func Expand(line string) string {
	if line == "" {
		return line
	}
	for _, sh := range shorthands {
		if line[0] != sh.marker {
			continue
		}
		b := &strings.Builder{}
		b.WriteString(sh.prefix)
		if sh.keep {
			b.WriteString(line)
		} else {
			b.WriteString(line[1:])
		}
		return b.String()
	}
	return line
}

// Markers returns the recognized shorthand markers and their expansions.
func Markers() map[string]string {
	result := map[string]string{}
	for _, sh := range shorthands {
		prefix := sh.prefix
		if sh.keep {
			prefix += string(sh.marker)
		}
		result[string(sh.marker)] = prefix
	}
	return result
}
