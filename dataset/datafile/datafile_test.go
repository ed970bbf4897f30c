package datafile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pbanos/sapling/attribute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const golfTrainingFile = `4
outlook sunny overcast rainy
temperature continuous
humidity continuous
windy true false
play yes no
sunny 85 85 false no
sunny 80 90 true no
overcast 83 78 false yes
rainy 70 96 false yes
rainy 65 70 true no
`

func TestReadTraining(t *testing.T) {
	td, err := ReadTraining(strings.NewReader(golfTrainingFile))
	require.NoError(t, err)

	require.Len(t, td.Attributes, 4)
	outlook, ok := td.Attributes[0].(*attribute.Discrete)
	require.True(t, ok, "expected a discrete attribute, got %T", td.Attributes[0])
	assert.Equal(t, []string{"sunny", "overcast", "rainy"}, outlook.Values())
	_, ok = td.Attributes[1].(*attribute.Continuous)
	require.True(t, ok, "expected a continuous attribute, got %T", td.Attributes[1])
	windy, ok := td.Attributes[3].(*attribute.Discrete)
	require.True(t, ok)
	assert.Equal(t, "windy", windy.Name())

	assert.Equal(t, "play", td.Label.Name())
	assert.Equal(t, []string{"yes", "no"}, td.Label.Values())

	require.Equal(t, 5, td.Set.Count())
	first := td.Set.Tuples()[0]
	v, err := first.ValueFor("outlook")
	require.NoError(t, err)
	assert.Equal(t, "sunny", v)
	v, err = first.ValueFor("humidity")
	require.NoError(t, err)
	assert.Equal(t, "85", v)
	assert.Equal(t, "no", first.Class())
}

func TestReadTrainingIgnoreDeclaration(t *testing.T) {
	document := "2\nid ignore\nweather sunny rainy\nplay yes no\n1 sunny yes\n"
	td, err := ReadTraining(strings.NewReader(document))
	require.NoError(t, err)
	_, ok := td.Attributes[0].(*attribute.Ignored)
	require.True(t, ok, "expected an ignored attribute, got %T", td.Attributes[0])
	v, err := td.Set.Tuples()[0].ValueFor("id")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestReadTrainingErrors(t *testing.T) {
	testCases := []struct {
		name     string
		document string
		wantLine string
	}{
		{"empty document", "", ""},
		{"bad attribute count", "four\noutlook sunny\n", "line 1"},
		{"fewer declarations than declared", "3\noutlook sunny rainy\nplay yes no\n", ""},
		{"attribute without values", "1\noutlook\nplay yes no\n", "line 2"},
		{"duplicate attribute", "2\noutlook sunny\noutlook rainy\nplay yes no\n", "line 3"},
		{"class clashing with attribute", "1\nplay sunny rainy\nplay yes no\n", "line 3"},
		{"continuous class", "1\noutlook sunny rainy\nplay continuous\n", "line 3"},
		{"tuple with too few tokens", "2\noutlook sunny\nwindy true false\nplay yes no\nsunny yes\n", "line 5"},
		{"tuple with too many tokens", "1\noutlook sunny\nplay yes no\nsunny extra yes\n", "line 4"},
		{"undeclared discrete value", "1\noutlook sunny rainy\nplay yes no\novercast yes\n", "line 4"},
		{"undeclared class", "1\noutlook sunny\nplay yes no\nsunny maybe\n", "line 4"},
		{"non-numeric continuous value", "1\ntemperature continuous\nplay yes no\nwarm yes\n", "line 4"},
		{"comparator in attribute name", "1\nout<look sunny\nplay yes no\n", "line 2"},
		{"comparator in value", "1\noutlook sun=ny\nplay yes no\n", "line 2"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			td, err := ReadTraining(strings.NewReader(tc.document))
			require.Error(t, err)
			assert.Nil(t, td)
			if tc.wantLine != "" {
				assert.Contains(t, err.Error(), tc.wantLine)
			}
		})
	}
}

func TestWriteTrainingRoundTrip(t *testing.T) {
	td, err := ReadTraining(strings.NewReader(golfTrainingFile))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteTraining(&buf, td))
	assert.Equal(t, golfTrainingFile, buf.String())
}

func TestWriteTrainingRejectsDiscretizedAttributes(t *testing.T) {
	td, err := ReadTraining(strings.NewReader(golfTrainingFile))
	require.NoError(t, err)
	td.Attributes[1].(*attribute.Continuous).Discretize(75)
	require.Error(t, WriteTraining(&bytes.Buffer{}, td))
}

func TestReadClassificationInput(t *testing.T) {
	document := "outlook temperature humidity windy\nsunny 85 85 false\nrainy 70 96 true\n"
	order, tuples, err := ReadClassificationInput(strings.NewReader(document))
	require.NoError(t, err)
	assert.Equal(t, []string{"outlook", "temperature", "humidity", "windy"}, order)
	require.Len(t, tuples, 2)
	v, err := tuples[1].ValueFor("windy")
	require.NoError(t, err)
	assert.Equal(t, "true", v)
	assert.Empty(t, tuples[0].Class())
}

func TestReadClassificationInputErrors(t *testing.T) {
	_, _, err := ReadClassificationInput(strings.NewReader(""))
	require.Error(t, err)
	_, _, err = ReadClassificationInput(strings.NewReader("outlook windy\nsunny\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
