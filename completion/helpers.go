package completion

import (
	"regexp"
	"strings"
)

var (
	nonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	plainWord     = regexp.MustCompile(`^[A-Za-z0-9_.:+@%-]+$`)
)

// identifier derives a shell function name fragment from a program name
func identifier(programName string) string {
	return nonIdentifier.ReplaceAllString(programName, "")
}

// bashWord single-quotes word for bash unless it is a plain word. Quoted words are
// taken literally both as case patterns and as array elements.
func bashWord(word string) string {
	if plainWord.MatchString(word) {
		return word
	}
	return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
}

// fishWord quotes a fish argument unless it is a plain word
func fishWord(word string) string {
	if plainWord.MatchString(word) {
		return word
	}
	return "'" + escapeFish(word) + "'"
}

func escapeFish(desc string) string {
	desc = strings.ReplaceAll(desc, `\`, `\\`)
	return strings.ReplaceAll(desc, "'", "\\'")
}
