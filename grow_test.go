package sapling

import (
	"testing"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowSplitsOnCleanlySeparatingAttribute(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	weather := attribute.NewDiscrete("weather", []string{"sunny", "rainy"})
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"weather": "sunny"}, "no"),
		makeTuple(map[string]string{"weather": "sunny"}, "no"),
		makeTuple(map[string]string{"weather": "rainy"}, "yes"),
		makeTuple(map[string]string{"weather": "rainy"}, "yes"),
	})
	grown, err := Grow(s, []attribute.Attribute{weather}, label)
	require.NoError(t, err)

	root := grown.Root
	assert.Equal(t, "weather", root.Attribute)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "=sunny", root.Children[0].Rule.String())
	assert.Equal(t, "no", root.Children[0].Class)
	assert.Equal(t, "=rainy", root.Children[1].Rule.String())
	assert.Equal(t, "yes", root.Children[1].Class)

	class, err := grown.Classify(dataset.NewTuple(map[string]string{"weather": "sunny"}))
	require.NoError(t, err)
	assert.Equal(t, "no", class)
}

func TestGrowFallsBackToMajorityClassWithoutSplittableAttributes(t *testing.T) {
	label := attribute.NewDiscrete("class", []string{"cls1", "cls2"})
	id := attribute.NewIgnored("id")
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"id": "1"}, "cls1"),
		makeTuple(map[string]string{"id": "2"}, "cls2"),
		makeTuple(map[string]string{"id": "3"}, "cls2"),
	})
	grown, err := Grow(s, []attribute.Attribute{id}, label)
	require.NoError(t, err)
	require.True(t, grown.Root.Leaf())
	assert.Equal(t, "cls2", grown.Root.Class)
}

func TestGrowUniformSetYieldsSingleLeaf(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	weather := attribute.NewDiscrete("weather", []string{"sunny", "rainy"})
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"weather": "sunny"}, "yes"),
		makeTuple(map[string]string{"weather": "rainy"}, "yes"),
	})
	grown, err := Grow(s, []attribute.Attribute{weather}, label)
	require.NoError(t, err)
	require.True(t, grown.Root.Leaf())
	assert.Equal(t, "yes", grown.Root.Class)
}

func TestGrowPrefersFirstAttributeAmongEquallyGoodOnes(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	a := attribute.NewDiscrete("A", []string{"a1", "a2"})
	b := attribute.NewDiscrete("B", []string{"b1", "b2"})
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"A": "a1", "B": "b1"}, "yes"),
		makeTuple(map[string]string{"A": "a1", "B": "b1"}, "yes"),
		makeTuple(map[string]string{"A": "a2", "B": "b2"}, "no"),
		makeTuple(map[string]string{"A": "a2", "B": "b2"}, "no"),
	})
	grown, err := Grow(s, []attribute.Attribute{a, b}, label)
	require.NoError(t, err)
	assert.Equal(t, "A", grown.Root.Attribute)
}

func TestGrowSiblingsSplitOnTheSameAttribute(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	a := attribute.NewDiscrete("A", []string{"a1", "a2"})
	b := attribute.NewDiscrete("B", []string{"b1", "b2"})
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"A": "a1", "B": "b1"}, "yes"),
		makeTuple(map[string]string{"A": "a1", "B": "b2"}, "no"),
		makeTuple(map[string]string{"A": "a2", "B": "b1"}, "no"),
		makeTuple(map[string]string{"A": "a2", "B": "b2"}, "yes"),
	})
	grown, err := Grow(s, []attribute.Attribute{a, b}, label)
	require.NoError(t, err)

	root := grown.Root
	assert.Equal(t, "A", root.Attribute)
	require.Len(t, root.Children, 2)
	for _, child := range root.Children {
		assert.Equal(t, "B", child.Attribute, "removing the split attribute must not hide others from siblings")
		require.Len(t, child.Children, 2)
	}
	for _, values := range []map[string]string{
		{"A": "a1", "B": "b1"},
		{"A": "a1", "B": "b2"},
		{"A": "a2", "B": "b1"},
		{"A": "a2", "B": "b2"},
	} {
		expected := "no"
		if (values["A"] == "a1") == (values["B"] == "b1") {
			expected = "yes"
		}
		class, err := grown.Classify(dataset.NewTuple(values))
		require.NoError(t, err)
		assert.Equal(t, expected, class)
	}
}

func TestGrowSkipsValuesTakenByNoTuple(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	weather := attribute.NewDiscrete("weather", []string{"sunny", "overcast", "rainy"})
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"weather": "sunny"}, "no"),
		makeTuple(map[string]string{"weather": "rainy"}, "yes"),
	})
	grown, err := Grow(s, []attribute.Attribute{weather}, label)
	require.NoError(t, err)
	require.Len(t, grown.Root.Children, 2, "a declared value with no tuples must produce no child")

	_, err = grown.Classify(dataset.NewTuple(map[string]string{"weather": "overcast"}))
	assert.Equal(t, "no branch matches this kind of tuple", err.Error())
}

func TestGrowDiscretizesContinuousAttributes(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	temperature := attribute.NewContinuous("temperature")
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"temperature": "1"}, "yes"),
		makeTuple(map[string]string{"temperature": "2"}, "yes"),
		makeTuple(map[string]string{"temperature": "3"}, "no"),
		makeTuple(map[string]string{"temperature": "4"}, "no"),
	})
	grown, err := Grow(s, []attribute.Attribute{temperature}, label)
	require.NoError(t, err)

	root := grown.Root
	assert.Equal(t, "temperature", root.Attribute)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "<=2.50", root.Children[0].Rule.String())
	assert.Equal(t, "yes", root.Children[0].Class)
	assert.Equal(t, ">2.50", root.Children[1].Rule.String())
	assert.Equal(t, "no", root.Children[1].Class)

	class, err := grown.Classify(dataset.NewTuple(map[string]string{"temperature": "1.7"}))
	require.NoError(t, err)
	assert.Equal(t, "yes", class)
	class, err = grown.Classify(dataset.NewTuple(map[string]string{"temperature": "3.9"}))
	require.NoError(t, err)
	assert.Equal(t, "no", class)
}

func TestGrowFailsOnEmptySet(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	_, err := Grow(dataset.New(nil), nil, label)
	require.Error(t, err)
}

func TestGrowFailsOnValuesOutsideDeclaredOnes(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	weather := attribute.NewDiscrete("weather", []string{"sunny", "rainy"})
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"weather": "sunny"}, "no"),
		makeTuple(map[string]string{"weather": "snowy"}, "yes"),
	})
	_, err := Grow(s, []attribute.Attribute{weather}, label)
	require.Error(t, err)
}
