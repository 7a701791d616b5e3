package game

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 16

// reservedNames would read as the markings the room prints itself, like
// "[SERVER]", "[OOC ...]", "[DICE]" or "(DM)", or as the "You" of
// self messages.
var reservedNames = map[string]bool{
	"server": true,
	"dm":     true,
	"ooc":    true,
	"dice":   true,
	"you":    true,
}

// InvalidNameError is returned when a name can't be used in a session.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e InvalidNameError) Error() string {
	return fmt.Sprintf("Invalid name %q: %s.", e.Name, e.Reason)
}

func isNameLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// validateName accepts 1-16 ASCII letters, digits, hyphens or underscores
// starting with a letter, so a name is always a single token that no
// shorthand marker or flag can be mistaken for.
func validateName(name string) error {
	switch {
	case name == "":
		return InvalidNameError{Name: name, Reason: "it is empty"}
	case utf8.RuneCountInString(name) > maxNameLength:
		return InvalidNameError{Name: name, Reason: fmt.Sprintf("it must be at most %d characters", maxNameLength)}
	case !isNameLetter(name[0]):
		return InvalidNameError{Name: name, Reason: "it must start with a letter"}
	case reservedNames[strings.ToLower(name)]:
		return InvalidNameError{Name: name, Reason: "it is reserved"}
	}
	for i := 1; i < len(name); i++ {
		if c := name[i]; !isNameLetter(c) && !(c >= '0' && c <= '9') && c != '-' && c != '_' {
			return InvalidNameError{Name: name, Reason: "it may only contain letters, digits, hyphens and underscores"}
		}
	}
	return nil
}
