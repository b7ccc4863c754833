package reactor

import (
	"fmt"

	"github.com/fenwick-rx/reactor/internal"
	"github.com/m1gwings/treedrawer/tree"
)

// DebugTree renders this scope's ownership tree — cells, effects, and
// nested scopes — as ASCII art, for diagnosing an unexpectedly large or
// long-lived subgraph.
func (s *Scope) DebugTree() string {
	root := tree.NewTree(tree.NodeString(fmt.Sprintf("Scope#%d", s.scope.ID())))
	addChildren(root, s.scope.Children())
	return root.String()
}

func addChildren(parent *tree.Tree, children []internal.Disposable) {
	for _, child := range children {
		label := describeDisposable(child)
		node := parent.AddChild(tree.NodeString(label))
		if sc, ok := child.(*internal.Scope); ok {
			addChildren(node, sc.Children())
		}
	}
}

func describeDisposable(d internal.Disposable) string {
	switch v := d.(type) {
	case *internal.Source:
		return fmt.Sprintf("Signal#%d", v.ID())
	case *internal.Derived:
		return fmt.Sprintf("Computed#%d", v.ID())
	case *internal.Effect:
		return fmt.Sprintf("Effect#%d", v.ID())
	case *internal.Scope:
		return fmt.Sprintf("Scope#%d", v.ID())
	default:
		return "?"
	}
}
