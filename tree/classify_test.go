package tree

import (
	"testing"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func golfTree() *Tree {
	return New(&Node{
		Attribute: "outlook",
		Children: []*Node{
			{Rule: attribute.NewEqualsRule("sunny"), Attribute: "humidity", Children: []*Node{
				{Rule: attribute.NewLessOrEqualRule(75), Class: "yes"},
				{Rule: attribute.NewGreaterThanRule(75), Class: "no"},
			}},
			{Rule: attribute.NewEqualsRule("overcast"), Class: "yes"},
			{Rule: attribute.NewEqualsRule("rainy"), Class: "no"},
		},
	})
}

func TestClassifyDescendsIntoFirstSatisfiedRule(t *testing.T) {
	testCases := []struct {
		name     string
		values   map[string]string
		expected string
	}{
		{"discrete then numeric", map[string]string{"outlook": "sunny", "humidity": "70"}, "yes"},
		{"numeric at threshold", map[string]string{"outlook": "sunny", "humidity": "75"}, "yes"},
		{"numeric above threshold", map[string]string{"outlook": "sunny", "humidity": "80"}, "no"},
		{"leaf right under root", map[string]string{"outlook": "overcast"}, "yes"},
		{"last declared value", map[string]string{"outlook": "rainy"}, "no"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			class, err := golfTree().Classify(dataset.NewTuple(tc.values))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, class)
		})
	}
}

func TestClassifyUnmatchedValueFailsWithErrUnclassifiable(t *testing.T) {
	tuple := dataset.NewTuple(map[string]string{"outlook": "snowy"})
	_, err := golfTree().Classify(tuple)
	require.Equal(t, ErrUnclassifiable, err)
	assert.Empty(t, tuple.Class())
}

func TestClassifyMissingValueFails(t *testing.T) {
	_, err := golfTree().Classify(dataset.NewTuple(map[string]string{"outlook": "sunny"}))
	require.Error(t, err)
	require.NotEqual(t, ErrUnclassifiable, err, "a missing value is not an unclassifiable tuple")
}

func TestClassifyNonNumericValueAgainstThresholdFails(t *testing.T) {
	tuple := dataset.NewTuple(map[string]string{"outlook": "sunny", "humidity": "damp"})
	_, err := golfTree().Classify(tuple)
	require.Error(t, err)
	require.NotEqual(t, ErrUnclassifiable, err)
}

func TestClassifyTupleSetsClass(t *testing.T) {
	tuple := dataset.NewTuple(map[string]string{"outlook": "overcast"})
	require.NoError(t, golfTree().ClassifyTuple(tuple))
	assert.Equal(t, "yes", tuple.Class())
}

func TestClassifyTupleLeavesUnclassifiableTupleUntouched(t *testing.T) {
	tuple := dataset.NewTuple(map[string]string{"outlook": "snowy"})
	require.Equal(t, ErrUnclassifiable, golfTree().ClassifyTuple(tuple))
	assert.Empty(t, tuple.Class())
}

func TestTest(t *testing.T) {
	tuples := []*dataset.Tuple{
		dataset.NewTuple(map[string]string{"outlook": "overcast"}),
		dataset.NewTuple(map[string]string{"outlook": "rainy"}),
		dataset.NewTuple(map[string]string{"outlook": "sunny", "humidity": "80"}),
		dataset.NewTuple(map[string]string{"outlook": "snowy"}),
	}
	tuples[0].SetClass("yes")
	tuples[1].SetClass("no")
	tuples[2].SetClass("yes")
	tuples[3].SetClass("no")

	successRate, unclassifiable, err := golfTree().Test(dataset.New(tuples))
	require.NoError(t, err)
	assert.Equal(t, 1, unclassifiable)
	assert.InDelta(t, 0.5, successRate, 1e-9)
}

func TestTestOnEmptySetFails(t *testing.T) {
	_, _, err := golfTree().Test(dataset.New(nil))
	require.Equal(t, dataset.ErrNoTuples, err)
}

func TestTraverse(t *testing.T) {
	var preorder []string
	err := golfTree().Traverse(false, func(n *Node) error {
		if n.Leaf() {
			preorder = append(preorder, n.Class)
		} else {
			preorder = append(preorder, n.Attribute)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"outlook", "humidity", "yes", "no", "yes", "no"}, preorder)
}
