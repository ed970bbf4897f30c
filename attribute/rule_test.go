package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	testCases := []struct {
		name     string
		rule     string
		expected Rule
	}{
		{"equals", "=sunny", NewEqualsRule("sunny")},
		{"less or equal", "<=2.50", NewLessOrEqualRule(2.5)},
		{"greater than", ">2.50", NewGreaterThanRule(2.5)},
		{"negative threshold", "<=-0.75", NewLessOrEqualRule(-0.75)},
		{"equals with digits", "=85", NewEqualsRule("85")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ParseRule(tc.rule)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, r)
			assert.Equal(t, tc.rule, r.String())
		})
	}
}

func TestParseRuleErrors(t *testing.T) {
	testCases := []struct {
		name string
		rule string
	}{
		{"no comparator", "sunny"},
		{"empty", ""},
		{"bad less or equal threshold", "<=abc"},
		{"bad greater than threshold", ">abc"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ParseRule(tc.rule)
			require.Error(t, err)
			assert.Nil(t, r)
		})
	}
}

func TestRuleSatisfiedBy(t *testing.T) {
	testCases := []struct {
		name      string
		rule      Rule
		value     string
		satisfied bool
	}{
		{"equals match", NewEqualsRule("sunny"), "sunny", true},
		{"equals mismatch", NewEqualsRule("sunny"), "rainy", false},
		{"equals is not numeric", NewEqualsRule("2.5"), "2.50", false},
		{"below threshold", NewLessOrEqualRule(2.5), "1.8", true},
		{"at threshold", NewLessOrEqualRule(2.5), "2.5", true},
		{"above threshold", NewLessOrEqualRule(2.5), "3.1", false},
		{"strictly above", NewGreaterThanRule(2.5), "3.1", true},
		{"not strictly above", NewGreaterThanRule(2.5), "2.5", false},
		{"below lower bound", NewGreaterThanRule(2.5), "1.8", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			satisfied, err := tc.rule.SatisfiedBy(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.satisfied, satisfied)
		})
	}
}

func TestNumericRulesRejectNonNumericValues(t *testing.T) {
	for _, r := range []Rule{NewLessOrEqualRule(2.5), NewGreaterThanRule(2.5)} {
		_, err := r.SatisfiedBy("overcast")
		require.Error(t, err)
	}
}

func TestRuleStringFormatsThresholdsWithTwoDecimals(t *testing.T) {
	assert.Equal(t, "<=2.50", NewLessOrEqualRule(2.5).String())
	assert.Equal(t, ">70.00", NewGreaterThanRule(70).String())
	assert.Equal(t, "<=0.33", NewLessOrEqualRule(1.0/3.0).String())
}
