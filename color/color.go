// Package color renders text in the fixed set of named terminal colors
// that players may pick from.
package color

import (
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

const (
	Default = "default"
	White   = "white"
	BGray   = "bgray"
	DGray   = "dgray"
	Black   = "black"
	Blue    = "blue"
	BBlue   = "bblue"
	Cyan    = "cyan"
	BCyan   = "bcyan"
	Green   = "green"
	BGreen  = "bgreen"
	Yellow  = "yellow"
	BYellow = "byellow"
	Red     = "red"
	BRed    = "bred"
	Purple  = "purple"
	BPurple = "bpurple"
)

type swatch struct {
	color termenv.ANSIColor
	bold  bool
}

var swatches = map[string]swatch{
	Default: {termenv.ANSIBlue, true},
	White:   {termenv.ANSIWhite, true},
	BGray:   {termenv.ANSIWhite, false},
	DGray:   {termenv.ANSIBlack, true},
	Black:   {termenv.ANSIBlack, false},
	Blue:    {termenv.ANSIBlue, false},
	BBlue:   {termenv.ANSIBlue, true},
	Cyan:    {termenv.ANSICyan, false},
	BCyan:   {termenv.ANSICyan, true},
	Green:   {termenv.ANSIGreen, false},
	BGreen:  {termenv.ANSIGreen, true},
	Yellow:  {termenv.ANSIYellow, false},
	BYellow: {termenv.ANSIYellow, true},
	Red:     {termenv.ANSIRed, false},
	BRed:    {termenv.ANSIRed, true},
	Purple:  {termenv.ANSIMagenta, false},
	BPurple: {termenv.ANSIMagenta, true},
}

// Valid reports whether name, in any case, is a known color.
func Valid(name string) bool {
	_, found := swatches[strings.ToLower(name)]
	return found
}

// Names returns the known colors, with Default first.
func Names() []string {
	result := make([]string, 0, len(swatches))
	for name := range swatches {
		if name != Default {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return append([]string{Default}, result...)
}

// Colorize wraps text in the escape sequences for the named color. Unknown
// names and empty text return text unchanged.
func Colorize(text string, name string) string {
	sw, found := swatches[strings.ToLower(name)]
	if !found || text == "" {
		return text
	}
	style := termenv.ANSI.String(text).Foreground(sw.color)
	if sw.bold {
		style = style.Bold()
	}
	return style.String()
}

// Strip removes terminal escape sequences from text.
func Strip(text string) string {
	return ansi.Strip(text)
}
