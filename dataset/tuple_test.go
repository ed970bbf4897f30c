package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTupleValueFor(t *testing.T) {
	tuple := NewTuple(map[string]string{"outlook": "sunny", "temperature": "85"})
	v, err := tuple.ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "sunny", v)

	_, err = tuple.ValueFor("humidity")
	require.Error(t, err)
}

func TestTupleSetValueRewrites(t *testing.T) {
	tuple := NewTuple(map[string]string{"temperature": "85"})
	tuple.SetValue("temperature", ">70.00")
	v, err := tuple.ValueFor("temperature")
	require.NoError(t, err)
	assert.Equal(t, ">70.00", v)
}

func TestTupleClass(t *testing.T) {
	tuple := NewTuple(nil)
	assert.Empty(t, tuple.Class())
	tuple.SetClass("yes")
	assert.Equal(t, "yes", tuple.Class())
}
