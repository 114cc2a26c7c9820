package surface

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FromCobra converts a cobra command tree. Persistent flags of the root become the default options;
// every other visible flag belongs to the command defining it and, when persistent, to its
// descendants. Unavailable commands are skipped.
func FromCobra(root *cobra.Command) (*Node, []string) {
	var defaults []string
	global := map[string]bool{}
	root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		global[f.Name] = true
		if !f.Hidden {
			defaults = append(defaults, "--"+f.Name)
		}
	})

	node := &Node{Name: root.Name()}
	node.KwOnly = flagNames(root.LocalNonPersistentFlags(), nil)
	node.Commands = cobraChildren(root, global)

	return node, defaults
}

func fromCobraCommand(cmd *cobra.Command, global map[string]bool) *Node {
	kwOnly := flagNames(cmd.LocalFlags(), nil)
	kwOnly = append(kwOnly, flagNames(cmd.InheritedFlags(), global)...)

	return &Node{
		Name:     cmd.Name(),
		KwOnly:   kwOnly,
		Commands: cobraChildren(cmd, global),
	}
}

func cobraChildren(cmd *cobra.Command, global map[string]bool) []*Node {
	var children []*Node
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		children = append(children, fromCobraCommand(sub, global))
	}
	return children
}

// flagNames lists the visible flags of flags, leaving out those in skip
func flagNames(flags *pflag.FlagSet, skip map[string]bool) []string {
	var names []string
	flags.VisitAll(func(f *pflag.Flag) {
		if !f.Hidden && !skip[f.Name] {
			names = append(names, f.Name)
		}
	})
	return names
}
