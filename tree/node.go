package tree

import (
	"github.com/pbanos/sapling/attribute"
)

/*
Node is a node of the tree
*/
type Node struct {
	// The constraint a tuple value must satisfy to descend into this
	// node from its parent. It is nil only on the root of a tree.
	Rule attribute.Rule
	// The attribute whose value decides which child to descend into.
	// It is set exactly on nodes with children: the value the tuple
	// takes for it is tested against the children's rules in order.
	Attribute string
	// The class predicted for tuples that satisfied node rules from
	// the root of the tree down to this node. It is set exactly on
	// nodes without children.
	Class string
	// The nodes directly under this node, in the order the split that
	// created them declared their values. A node owns its children
	// exclusively: nodes are never shared between trees.
	Children []*Node
}

/*
Leaf returns a boolean indicating whether the node has no children and
therefore predicts a class.
*/
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}
