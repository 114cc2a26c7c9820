package completion

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/shlex"
	"github.com/napalu/firecomplete/introspect"
)

// CompleteLine returns the completions for a partially typed command line, e.g. "mytool db ba".
func CompleteLine(component any, line string, verbose bool) ([]string, error) {
	return defaultFilter.CompleteLine(component, line, verbose)
}

// CompleteLine splits line like a shell, follows its bare words through the members of component
// and returns the completions of the component reached which start with the word being typed.
// The first word is the program name. Flags are skipped; an unknown word ends the walk.
func (f *Filter) CompleteLine(component any, line string, verbose bool) ([]string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split command line: %w", err)
	}
	if len(tokens) > 0 {
		tokens = tokens[1:]
	}

	partial := ""
	if r, _ := utf8.DecodeLastRuneInString(line); len(tokens) > 0 && !unicode.IsSpace(r) {
		partial = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	current := component
	for _, token := range tokens {
		if isOption(token) {
			continue
		}
		next, ok := f.lookup(current, token, verbose)
		if !ok {
			break
		}
		current = next
	}

	completions, err := f.Completions(current, verbose)
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0, len(completions))
	for _, c := range completions {
		if strings.HasPrefix(c, partial) {
			matches = append(matches, c)
		}
	}

	return matches, nil
}

func (f *Filter) lookup(component any, token string, verbose bool) (any, bool) {
	if introspect.KindOf(component) == introspect.Callable {
		return nil, false
	}
	for _, m := range f.VisibleMembers(component, map[string]introspect.ClassAttr{}, verbose) {
		if m.Name == token || FormatToken(m.Name) == token {
			return m.Value, true
		}
	}

	return nil, false
}
