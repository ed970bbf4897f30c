/*
Package sapling grows decision-tree classifiers from labeled datasets.

A tree is grown by recursively splitting the dataset on the attribute
whose partition leaves the least entropy on the class attribute, until
a subset shares a single class or no attribute remains to split on.
Continuous attributes are discretized into binary interval labels over
the full dataset before any splitting happens. The grown trees can be
serialized with the tree/text package and applied with the Classify
method of the tree package.
*/
package sapling

import (
	"fmt"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/tree"
)

/*
Grow takes a set of labeled tuples, the attributes available to split
it and the class attribute whose value the grown tree will predict,
and returns a tree classifying the set or an error.

Growing mutates its input: continuous attributes are discretized in
place, rewriting the tuples' numeric values into interval labels, and
the attrs slice is reordered freely. Tuples must define a value for
every attribute and their classes must belong to the class attribute's
values.
*/
func Grow(s *dataset.Set, attrs []attribute.Attribute, label *attribute.Discrete) (*tree.Tree, error) {
	if s.Count() == 0 {
		return nil, fmt.Errorf("growing tree: %v", dataset.ErrNoTuples)
	}
	if err := Discretize(s, attrs, label); err != nil {
		return nil, fmt.Errorf("growing tree: %v", err)
	}
	root := &tree.Node{}
	if err := develop(root, s, attrs, label); err != nil {
		return nil, fmt.Errorf("growing tree: %v", err)
	}
	return tree.New(root), nil
}

/*
develop fills the given node to classify the given set, recursing into
a child per non-empty subset of the best partition. In order of
priority: an empty set cannot be developed and fails, as children are
only ever created for non-empty subsets; a set with no splittable
attribute left becomes a leaf with the set's majority class; a set
whose tuples all share a class becomes a leaf with it; any other set is
split on the splittable attribute leaving the least entropy, and each
child recurses with a fresh copy of the attribute list minus the
winner, so that removals only propagate along the ancestor path.
*/
func develop(n *tree.Node, s *dataset.Set, attrs []attribute.Attribute, label *attribute.Discrete) error {
	if s.Count() == 0 {
		return fmt.Errorf("cannot develop a node for an empty set")
	}
	eligible := splittableAttributes(attrs)
	if len(eligible) == 0 {
		class, err := s.Majority(label)
		if err != nil {
			return err
		}
		n.Class = class
		return nil
	}
	if class, ok := s.UniformClass(); ok {
		n.Class = class
		return nil
	}
	selected, err := selectPartition(s, eligible, label)
	if err != nil {
		return err
	}
	n.Attribute = selected.attribute.Name()
	remaining := make([]attribute.Attribute, 0, len(attrs)-1)
	for _, a := range attrs {
		if a != selected.attribute {
			remaining = append(remaining, a)
		}
	}
	for i, rule := range selected.rules {
		child := &tree.Node{Rule: rule}
		n.Children = append(n.Children, child)
		err := develop(child, selected.subsets[i], append([]attribute.Attribute{}, remaining...), label)
		if err != nil {
			return err
		}
	}
	return nil
}

func selectPartition(s *dataset.Set, attrs []attribute.Attribute, label *attribute.Discrete) (*partition, error) {
	var selected *partition
	for _, a := range attrs {
		p, err := newPartition(s, a, label)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		if selected == nil || p.entropy < selected.entropy {
			selected = p
		}
	}
	return selected, nil
}
