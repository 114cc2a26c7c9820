// Package surface builds command surfaces from explicit metadata instead of reflection:
// YAML or TOML manifests and cobra command trees.
package surface

import "github.com/napalu/firecomplete/introspect"

// Node is one command of an explicitly declared surface. A node without subcommands is a
// callable leaf; a node with both arguments and subcommands behaves like a class.
type Node struct {
	Name     string   `yaml:"name" toml:"name"`
	Args     []string `yaml:"args,omitempty" toml:"args,omitempty"`
	KwOnly   []string `yaml:"kwonly,omitempty" toml:"kwonly,omitempty"`
	Commands []*Node  `yaml:"commands,omitempty" toml:"commands,omitempty"`
}

func (n *Node) ComponentKind() introspect.Kind {
	switch {
	case len(n.Commands) == 0:
		return introspect.Callable
	case len(n.Args) > 0 || len(n.KwOnly) > 0:
		return introspect.ClassLike
	default:
		return introspect.Object
	}
}

func (n *Node) ListMembers() []introspect.Member {
	members := make([]introspect.Member, 0, len(n.Commands))
	for _, c := range n.Commands {
		members = append(members, introspect.Member{Name: c.Name, Value: c})
	}
	return members
}

func (n *Node) ArgSpec() (introspect.ArgSpec, error) {
	return introspect.ArgSpec{Args: n.Args, KwOnlyArgs: n.KwOnly}, nil
}

// ClassAttrs is empty: subcommands of a node are reachable whether or not it takes arguments
func (n *Node) ClassAttrs() map[string]introspect.ClassAttr {
	return map[string]introspect.ClassAttr{}
}

// Command follows names down the tree. It returns nil when a name is missing.
func (n *Node) Command(names ...string) *Node {
	current := n
	for _, name := range names {
		var next *Node
		for _, c := range current.Commands {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}

	return current
}
