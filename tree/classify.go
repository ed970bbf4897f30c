package tree

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
)

// ClassificationError represents an error related with classifications
type ClassificationError string

/*
ErrUnclassifiable is the error returned by the Classify method of a tree
when no classification can be made because no child rule is satisfied by
the tuple's value at some node, as opposed to cases where the value for
an attribute cannot be obtained or compared. Callers decide whether to
substitute a default class or report the tuple as unclassified.
*/
const ErrUnclassifiable = ClassificationError("no branch matches this kind of tuple")

func (ce ClassificationError) Error() string {
	return string(ce)
}

/*
Classify takes a tuple and returns the class the tree assigns to it or
an error if the classification could not be made. Starting at the root,
it takes the tuple's value for the node's attribute and descends into
the first child whose rule the value satisfies, until it reaches a leaf
and returns its class. When no child rule is satisfied it fails with
ErrUnclassifiable.
*/
func (t *Tree) Classify(v dataset.Valuer) (string, error) {
	if t == nil || t.Root == nil {
		return "", fmt.Errorf("nil tree cannot classify tuples")
	}
	n := t.Root
	for !n.Leaf() {
		value, err := v.ValueFor(n.Attribute)
		if err != nil {
			return "", fmt.Errorf("classifying tuple: %v", err)
		}
		var selected *Node
		for _, child := range n.Children {
			ok, err := child.Rule.SatisfiedBy(value)
			if err != nil {
				return "", fmt.Errorf("classifying tuple: testing %s: %v", n.Attribute, err)
			}
			if ok {
				selected = child
				break
			}
		}
		if selected == nil {
			return "", ErrUnclassifiable
		}
		n = selected
	}
	if n.Class == "" {
		return "", ErrUnclassifiable
	}
	return n.Class, nil
}

/*
ClassifyTuple takes a tuple, classifies it with Classify and sets the
obtained class on the tuple. The tuple is left untouched when the
classification fails.
*/
func (t *Tree) ClassifyTuple(tp *dataset.Tuple) error {
	class, err := t.Classify(tp)
	if err != nil {
		return err
	}
	tp.SetClass(class)
	return nil
}

/*
Test takes a set of labeled tuples and returns three values:
 * the classification success rate of the tree over the given set
 * the number of tuples that failed to classify with ErrUnclassifiable
 * an error if a class could not be obtained for reasons other than the
   tree not being able to do so. If this is not nil, the other values
   will be 0.0 and 0 respectively
*/
func (t *Tree) Test(s *dataset.Set) (float64, int, error) {
	if s.Count() == 0 {
		return 0.0, 0, dataset.ErrNoTuples
	}
	var result float64
	var errCount int
	for _, tuple := range s.Tuples() {
		class, err := t.Classify(tuple)
		if err != nil {
			if err != ErrUnclassifiable {
				return 0.0, 0, err
			}
			errCount++
		} else if class == tuple.Class() {
			result += 1.0
		}
	}
	result = result / float64(s.Count())
	return result, errCount, nil
}
