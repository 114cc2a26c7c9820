package completion

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/ef-ds/deque"
	"github.com/napalu/firecomplete/introspect"
)

// DefaultDepth is how far Commands descends below the root
const DefaultDepth = 3

// Path is one reachable command, one token per level
type Path []string

func (p Path) String() string {
	return strings.Join(p, " ")
}

func (p Path) with(token string) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = token
	return next
}

// FormatToken converts a member name to its command-line form. Underscores become hyphens unless
// the token starts with an underscore, so private names are never mistaken for flags.
func FormatToken(token any) string {
	s, ok := token.(string)
	if !ok {
		s = fmt.Sprint(token)
	}
	if strings.HasPrefix(s, "_") {
		return s
	}

	return strings.ReplaceAll(s, "_", "-")
}

func isOption(token string) bool {
	return strings.HasPrefix(token, "-")
}

func completionsFromArgs(args []string) []string {
	completions := make([]string, 0, len(args))
	for _, arg := range args {
		completions = append(completions, "--"+strings.ReplaceAll(arg, "_", "-"))
	}

	return completions
}

// Completions returns the tokens which may follow a command resolving to component
func Completions(component any, verbose bool) ([]string, error) {
	return defaultFilter.Completions(component, verbose)
}

// Completions returns the tokens which may follow a command resolving to component.
// Callables and classes complete to their flags, sequences to their indices and lazy
// sequences to nothing.
func (f *Filter) Completions(component any, verbose bool) ([]string, error) {
	switch introspect.KindOf(component) {
	case introspect.Callable, introspect.ClassLike:
		spec, err := introspect.FullArgSpec(component)
		if err != nil {
			return nil, err
		}
		return completionsFromArgs(spec.All()), nil
	case introspect.Sequence:
		n := len(introspect.Members(component))
		indices := make([]string, n)
		for i := range indices {
			indices[i] = strconv.Itoa(i)
		}
		return indices, nil
	case introspect.LazySequence:
		return []string{}, nil
	}

	members := f.VisibleMembers(component, nil, verbose)
	completions := make([]string, 0, len(members))
	for _, m := range members {
		completions = append(completions, FormatToken(m.Name))
	}

	return completions, nil
}

type frame struct {
	prefix    Path
	component any
	depth     int
	emit      bool
}

// Commands enumerates every command reachable from component, down to depth levels of members.
func Commands(component any, depth int) iter.Seq2[Path, error] {
	return defaultFilter.Commands(component, depth)
}

// Commands enumerates every command reachable from component in depth-first pre-order.
//
// Callables and classes first yield one flag path per argument; callables are leaves. Every visible
// member then yields its own path followed by its sub-commands. Methods of classes are kept visible.
// Visited components are not tracked: depth alone bounds cyclic graphs. A resolver error is yielded
// once and ends the sequence.
func (f *Filter) Commands(component any, depth int) iter.Seq2[Path, error] {
	return func(yield func(Path, error) bool) {
		stack := deque.New()
		stack.PushBack(frame{component: component, depth: depth})

		for stack.Len() > 0 {
			v, _ := stack.PopBack()
			fr := v.(frame)
			if fr.emit && !yield(fr.prefix, nil) {
				return
			}

			kind := introspect.KindOf(fr.component)
			if kind == introspect.Callable || kind == introspect.ClassLike {
				spec, err := introspect.FullArgSpec(fr.component)
				if err != nil {
					yield(nil, fmt.Errorf("resolving arguments of %q: %w", fr.prefix.String(), err))
					return
				}
				for _, flag := range completionsFromArgs(spec.All()) {
					if !yield(fr.prefix.with(flag), nil) {
						return
					}
				}
			}
			if kind == introspect.Callable || fr.depth < 1 {
				continue
			}

			members := f.VisibleMembers(fr.component, map[string]introspect.ClassAttr{}, false)
			for i := len(members) - 1; i >= 0; i-- {
				stack.PushBack(frame{
					prefix:    fr.prefix.with(FormatToken(members[i].Name)),
					component: members[i].Value,
					depth:     fr.depth - 1,
					emit:      true,
				})
			}
		}
	}
}

// CollectCommands drains Commands into a slice
func CollectCommands(component any, depth int) ([]Path, error) {
	return defaultFilter.CollectCommands(component, depth)
}

// CollectCommands drains Commands into a slice
func (f *Filter) CollectCommands(component any, depth int) ([]Path, error) {
	var paths []Path
	for path, err := range f.Commands(component, depth) {
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
