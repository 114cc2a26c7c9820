package completion

import (
	"sort"
	"strings"
)

// Set is an unordered collection of tokens
type Set map[string]struct{}

// NewSet creates a set holding items
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	s.Add(items...)
	return s
}

func (s Set) Add(items ...string) {
	for _, item := range items {
		s[item] = struct{}{}
	}
}

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s Set) Clone() Set {
	c := make(Set, len(s))
	for item := range s {
		c[item] = struct{}{}
	}
	return c
}

// Union returns a new set holding the items of s and other
func (s Set) Union(other Set) Set {
	u := s.Clone()
	for item := range other {
		u[item] = struct{}{}
	}
	return u
}

// Sorted returns the items in lexical order
func (s Set) Sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Index maps every command to the subcommands and flags which may follow it
type Index struct {
	Root          string
	GlobalOptions Set
	Options       map[string]Set
	Subcommands   map[string]Set
	defaults      Set
}

// BuildIndex compiles command paths into an Index. Single-token flags are global; single-token
// commands belong to rootName. Longer paths register their last token under the preceding one,
// both as spelled and with underscores replaced by hyphens. Every command accepts defaultOptions.
func BuildIndex(rootName string, paths []Path, defaultOptions []string) *Index {
	idx := &Index{
		Root:          rootName,
		GlobalOptions: NewSet(defaultOptions...),
		Options:       map[string]Set{},
		Subcommands:   map[string]Set{},
		defaults:      NewSet(defaultOptions...),
	}

	for _, path := range paths {
		switch {
		case len(path) == 1:
			if isOption(path[0]) {
				idx.GlobalOptions.Add(path[0])
			} else {
				idx.subcommands(rootName).Add(path[0])
			}
		case len(path) >= 2:
			parent := path[len(path)-2]
			tail := FormatToken(path[len(path)-1])
			target := idx.subcommands
			if isOption(tail) {
				target = idx.options
			}
			target(parent).Add(tail)
			target(strings.ReplaceAll(parent, "_", "-")).Add(tail)
		}
	}

	return idx
}

func (idx *Index) options(command string) Set {
	s, ok := idx.Options[command]
	if !ok {
		s = idx.defaults.Clone()
		idx.Options[command] = s
	}
	return s
}

func (idx *Index) subcommands(command string) Set {
	s, ok := idx.Subcommands[command]
	if !ok {
		s = Set{}
		idx.Subcommands[command] = s
	}
	return s
}

// OptionsFor returns the flags of command. Unknown commands accept the default options.
func (idx *Index) OptionsFor(command string) Set {
	if s, ok := idx.Options[command]; ok {
		return s
	}
	return idx.defaults.Clone()
}

// SubcommandsFor returns the subcommands of command
func (idx *Index) SubcommandsFor(command string) Set {
	if s, ok := idx.Subcommands[command]; ok {
		return s
	}
	return Set{}
}

// DefaultOptions returns a copy of the options every command accepts
func (idx *Index) DefaultOptions() Set {
	return idx.defaults.Clone()
}

// Commands returns every known command name in lexical order, the root included when includeRoot is set
func (idx *Index) Commands(includeRoot bool) []string {
	names := Set{}
	if includeRoot {
		names.Add(idx.Root)
	}
	for name := range idx.Subcommands {
		names.Add(name)
	}
	for name := range idx.Options {
		names.Add(name)
	}

	return names.Sorted()
}
