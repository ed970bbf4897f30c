package tree

import (
	"fmt"
	"strings"
)

// Tree represents a decision-tree classifier. It is composed of
// the root node of an exclusively-owned node graph: every node
// reachable from Root belongs to this tree and no other.
type Tree struct {
	Root *Node
}

// New takes the root node of a node graph and returns a tree
// classifying with it.
func New(root *Node) *Tree {
	return &Tree{root}
}

// Traverse takes a bottomup boolean and an error-returning
// function that takes a node as parameter, and goes through
// the tree running the function with every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. If a call
// to the function returns an error, the traversing is
// aborted and the error is returned.
func (t *Tree) Traverse(bottomup bool, f func(*Node) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	return t.traverse(t.Root, bottomup, f)
}

func (t *Tree) traverse(n *Node, bottomup bool, f func(*Node) error) error {
	if !bottomup {
		if err := f(n); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := t.traverse(child, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		if err := f(n); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return "[]\n"
	}
	return t.subtreeString(t.Root)
}

func (t *Tree) subtreeString(n *Node) string {
	var result string
	if n.Leaf() {
		result = fmt.Sprintf("[%s]\n", n.Class)
	} else {
		result = fmt.Sprintf("[%s]\n", n.Attribute)
	}
	if n.Rule != nil {
		result = fmt.Sprintf("%s{ %v }\n", result, n.Rule)
	}
	if len(n.Children) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	} else {
		result = fmt.Sprintf("%s \n", result)
	}
	for i, child := range n.Children {
		for j, line := range strings.Split(t.subtreeString(child), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(n.Children)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
