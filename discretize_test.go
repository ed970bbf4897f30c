package sapling

import (
	"testing"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTuple(values map[string]string, class string) *dataset.Tuple {
	t := dataset.NewTuple(values)
	t.SetClass(class)
	return t
}

func TestDiscretizeSelectsCleanlySeparatingMidpoint(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	temperature := attribute.NewContinuous("temperature")
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"temperature": "1"}, "yes"),
		makeTuple(map[string]string{"temperature": "2"}, "yes"),
		makeTuple(map[string]string{"temperature": "3"}, "no"),
		makeTuple(map[string]string{"temperature": "4"}, "no"),
	})
	require.NoError(t, Discretize(s, []attribute.Attribute{temperature}, label))

	require.True(t, temperature.Discretized())
	assert.Equal(t, []string{"<=2.50", ">2.50"}, temperature.Values())
	for i, expected := range []string{"<=2.50", "<=2.50", ">2.50", ">2.50"} {
		v, err := s.Tuples()[i].ValueFor("temperature")
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}
}

func TestDiscretizeKeepsFirstMidpointAmongEquallyGoodOnes(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	temperature := attribute.NewContinuous("temperature")
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"temperature": "1"}, "yes"),
		makeTuple(map[string]string{"temperature": "2"}, "yes"),
		makeTuple(map[string]string{"temperature": "3"}, "yes"),
	})
	require.NoError(t, Discretize(s, []attribute.Attribute{temperature}, label))
	assert.Equal(t, []string{"<=1.50", ">1.50"}, temperature.Values())
}

func TestDiscretizeConsidersUnsortedAndDuplicateValues(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	temperature := attribute.NewContinuous("temperature")
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"temperature": "4"}, "no"),
		makeTuple(map[string]string{"temperature": "1"}, "yes"),
		makeTuple(map[string]string{"temperature": "4"}, "no"),
		makeTuple(map[string]string{"temperature": "2"}, "yes"),
	})
	require.NoError(t, Discretize(s, []attribute.Attribute{temperature}, label))
	assert.Equal(t, []string{"<=3.00", ">3.00"}, temperature.Values())
}

func TestDiscretizeLeavesSingleObservationAttributeUntouched(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	temperature := attribute.NewContinuous("temperature")
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"temperature": "1"}, "yes"),
	})
	require.NoError(t, Discretize(s, []attribute.Attribute{temperature}, label))
	assert.False(t, temperature.Discretized())
	v, err := s.Tuples()[0].ValueFor("temperature")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestDiscretizeFailsOnNonNumericValues(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	temperature := attribute.NewContinuous("temperature")
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"temperature": "1"}, "yes"),
		makeTuple(map[string]string{"temperature": "warm"}, "no"),
	})
	require.Error(t, Discretize(s, []attribute.Attribute{temperature}, label))
}

func TestDiscretizeSkipsDiscreteAndAlreadyDiscretizedAttributes(t *testing.T) {
	label := attribute.NewDiscrete("play", []string{"yes", "no"})
	outlook := attribute.NewDiscrete("outlook", []string{"sunny", "rainy"})
	temperature := attribute.NewContinuous("temperature")
	temperature.Discretize(10)
	s := dataset.New([]*dataset.Tuple{
		makeTuple(map[string]string{"outlook": "sunny", "temperature": "<=10.00"}, "yes"),
		makeTuple(map[string]string{"outlook": "rainy", "temperature": ">10.00"}, "no"),
	})
	require.NoError(t, Discretize(s, []attribute.Attribute{outlook, temperature}, label))
	assert.Equal(t, []string{"<=10.00", ">10.00"}, temperature.Values())
}
