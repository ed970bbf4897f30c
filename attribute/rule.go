package attribute

import (
	"fmt"
	"strconv"
	"strings"
)

/*
Rule represents a constraint a tuple value must satisfy to descend into a
branch of a tree.

Its SatisfiedBy method takes a value string and returns a boolean
indicating whether the value satisfies the rule.

Its String method returns the serialized form of the rule, the form
ParseRule accepts.
*/
type Rule interface {
	SatisfiedBy(value string) (bool, error)
	String() string
}

/*
EqualsRule represents a constraint on a discrete attribute: the exact
value it must take.
*/
type EqualsRule struct {
	value string
}

/*
LessOrEqualRule represents a constraint on a continuous attribute: an
upper bound its numeric value must not exceed.
*/
type LessOrEqualRule struct {
	threshold float64
}

/*
GreaterThanRule represents a constraint on a continuous attribute: a
lower bound its numeric value must strictly exceed.
*/
type GreaterThanRule struct {
	threshold float64
}

/*
NewEqualsRule takes a value string and returns an EqualsRule satisfied
exactly by that value.
*/
func NewEqualsRule(value string) *EqualsRule {
	return &EqualsRule{value}
}

/*
NewLessOrEqualRule takes a threshold and returns a LessOrEqualRule
satisfied by numeric values up to and including the threshold.
*/
func NewLessOrEqualRule(threshold float64) *LessOrEqualRule {
	return &LessOrEqualRule{threshold}
}

/*
NewGreaterThanRule takes a threshold and returns a GreaterThanRule
satisfied by numeric values strictly above the threshold.
*/
func NewGreaterThanRule(threshold float64) *GreaterThanRule {
	return &GreaterThanRule{threshold}
}

/*
ParseRule takes the serialized form of a rule and returns the rule it
describes, or an error if the string does not start with a comparator.
The rule kind is decided here, once, by the comparator: "<=" yields a
LessOrEqualRule, ">" a GreaterThanRule and "=" an EqualsRule.
*/
func ParseRule(s string) (Rule, error) {
	switch {
	case strings.HasPrefix(s, "<="):
		threshold, err := strconv.ParseFloat(s[2:], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing threshold of rule %q: %v", s, err)
		}
		return NewLessOrEqualRule(threshold), nil
	case strings.HasPrefix(s, ">"):
		threshold, err := strconv.ParseFloat(s[1:], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing threshold of rule %q: %v", s, err)
		}
		return NewGreaterThanRule(threshold), nil
	case strings.HasPrefix(s, "="):
		return NewEqualsRule(s[1:]), nil
	}
	return nil, fmt.Errorf("cannot parse rule %q: no comparator", s)
}

/*
CheckSerializable returns an error when the given text cannot appear in a
serialized classifier. The serialized form relies on the =, < and >
comparators to tell rule lines from class lines, so attribute names and
discrete values containing them are rejected when declared.
*/
func CheckSerializable(text string) error {
	if text == "" {
		return fmt.Errorf("empty names and values cannot be serialized")
	}
	if strings.ContainsAny(text, "=<>") {
		return fmt.Errorf("%q contains a comparator character reserved by the rule syntax", text)
	}
	return nil
}

/*
SatisfiedBy receives a value string and returns a boolean indicating
whether the value equals the rule's value.
*/
func (r *EqualsRule) SatisfiedBy(value string) (bool, error) {
	return r.value == value, nil
}

/*
Value returns the value string the rule requires.
*/
func (r *EqualsRule) Value() string {
	return r.value
}

func (r *EqualsRule) String() string {
	return "=" + r.value
}

/*
SatisfiedBy receives a value string and returns a boolean indicating
whether the value, parsed as a number, is lower than or equal to the
rule's threshold. A value that cannot be parsed as a number yields an
error.
*/
func (r *LessOrEqualRule) SatisfiedBy(value string) (bool, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false, fmt.Errorf("comparing %q against threshold %s: %v", value, formatThreshold(r.threshold), err)
	}
	return v <= r.threshold, nil
}

/*
Threshold returns the rule's upper bound.
*/
func (r *LessOrEqualRule) Threshold() float64 {
	return r.threshold
}

func (r *LessOrEqualRule) String() string {
	return "<=" + formatThreshold(r.threshold)
}

/*
SatisfiedBy receives a value string and returns a boolean indicating
whether the value, parsed as a number, is strictly greater than the
rule's threshold. A value that cannot be parsed as a number yields an
error.
*/
func (r *GreaterThanRule) SatisfiedBy(value string) (bool, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false, fmt.Errorf("comparing %q against threshold %s: %v", value, formatThreshold(r.threshold), err)
	}
	return v > r.threshold, nil
}

/*
Threshold returns the rule's lower bound.
*/
func (r *GreaterThanRule) Threshold() float64 {
	return r.threshold
}

func (r *GreaterThanRule) String() string {
	return ">" + formatThreshold(r.threshold)
}
