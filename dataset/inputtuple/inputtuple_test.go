package inputtuple

import (
	"strings"
	"testing"

	"github.com/pbanos/sapling/attribute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRequester struct {
	requested []string
	rejected  []string
}

func (r *recordingRequester) RequestValueFor(a attribute.Attribute) error {
	r.requested = append(r.requested, a.Name())
	return nil
}

func (r *recordingRequester) RejectValueFor(a attribute.Attribute, value string) error {
	r.rejected = append(r.rejected, value)
	return nil
}

func TestValueForReadsAndRemembersAnswers(t *testing.T) {
	outlook := attribute.NewDiscrete("outlook", []string{"sunny", "rainy"})
	requester := &recordingRequester{}
	tp := New(strings.NewReader("sunny\n"), []attribute.Attribute{outlook}, requester)

	v, err := tp.ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "sunny", v)

	v, err = tp.ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "sunny", v)
	assert.Equal(t, []string{"outlook"}, requester.requested, "remembered values must not be asked for again")
	assert.Empty(t, requester.rejected)
}

func TestValueForRejectsInvalidAnswersUntilAValidOne(t *testing.T) {
	temperature := attribute.NewContinuous("temperature")
	requester := &recordingRequester{}
	tp := New(strings.NewReader("warm\nvery warm\n23.5\n"), []attribute.Attribute{temperature}, requester)

	v, err := tp.ValueFor("temperature")
	require.NoError(t, err)
	assert.Equal(t, "23.5", v)
	assert.Equal(t, []string{"warm", "very warm"}, requester.rejected)
}

func TestValueForDiscreteAttributeOnlyAcceptsDeclaredValues(t *testing.T) {
	outlook := attribute.NewDiscrete("outlook", []string{"sunny", "rainy"})
	requester := &recordingRequester{}
	tp := New(strings.NewReader("cloudy\nrainy\n"), []attribute.Attribute{outlook}, requester)

	v, err := tp.ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "rainy", v)
	assert.Equal(t, []string{"cloudy"}, requester.rejected)
}

func TestValueForUnknownAttributeFails(t *testing.T) {
	outlook := attribute.NewDiscrete("outlook", []string{"sunny", "rainy"})
	tp := New(strings.NewReader("sunny\n"), []attribute.Attribute{outlook}, &recordingRequester{})

	_, err := tp.ValueFor("humidity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "humidity")
}

func TestValueForFailsWhenInputEndsWithoutAValidAnswer(t *testing.T) {
	outlook := attribute.NewDiscrete("outlook", []string{"sunny", "rainy"})
	tp := New(strings.NewReader("cloudy\n"), []attribute.Attribute{outlook}, &recordingRequester{})

	_, err := tp.ValueFor("outlook")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outlook")
}
