package sapling

import (
	"fmt"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
)

/*
partition represents the split of a set by one attribute: one subset
per declared attribute value holding the tuples that take that value,
scored with the entropy that remains after the split. Subsets keep the
declared value order and values taken by no tuple are dropped, so a
partition never contains an empty subset. Each subset is paired with
the rule that selects it: an equality rule on the declared value for
discrete attributes, and the rule a discretized interval label parses
into for continuous ones.
*/
type partition struct {
	attribute attribute.Attribute
	rules     []attribute.Rule
	subsets   []*dataset.Set
	entropy   float64
}

/*
newPartition takes a set, an attribute and the class attribute and
returns the partition of the set by the attribute, or nil when the
attribute cannot split anything: ignored attributes and continuous
attributes that could not be discretized have no values to partition
by. A tuple holding a value outside the attribute's declared values is
an error.
*/
func newPartition(s *dataset.Set, a attribute.Attribute, label *attribute.Discrete) (*partition, error) {
	values := splittableValues(a)
	if len(values) == 0 {
		return nil, nil
	}
	groups := make(map[string][]*dataset.Tuple, len(values))
	for _, t := range s.Tuples() {
		v, err := t.ValueFor(a.Name())
		if err != nil {
			return nil, fmt.Errorf("partitioning by %s: %v", a.Name(), err)
		}
		groups[v] = append(groups[v], t)
	}
	var grouped int
	rules := make([]attribute.Rule, 0, len(values))
	subsets := make([]*dataset.Set, 0, len(values))
	for _, v := range values {
		tuples := groups[v]
		if len(tuples) == 0 {
			continue
		}
		grouped += len(tuples)
		rule, err := ruleFor(a, v)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
		subsets = append(subsets, dataset.New(tuples))
	}
	if grouped != s.Count() {
		return nil, fmt.Errorf("partitioning by %s: %d tuples hold values outside its declared values", a.Name(), s.Count()-grouped)
	}
	entropy, err := s.PartitionEntropy(subsets, label)
	if err != nil {
		return nil, fmt.Errorf("partitioning by %s: %v", a.Name(), err)
	}
	return &partition{a, rules, subsets, entropy}, nil
}

/*
splittableAttributes filters the given attributes down to the ones a
set can be partitioned by: discrete attributes and continuous ones
that have been discretized into interval labels. Ignored attributes
never qualify.
*/
func splittableAttributes(attrs []attribute.Attribute) []attribute.Attribute {
	var splittable []attribute.Attribute
	for _, a := range attrs {
		if len(splittableValues(a)) > 0 {
			splittable = append(splittable, a)
		}
	}
	return splittable
}

func splittableValues(a attribute.Attribute) []string {
	switch a := a.(type) {
	case *attribute.Discrete:
		return a.Values()
	case *attribute.Continuous:
		return a.Values()
	}
	return nil
}

/*
ruleFor returns the rule that selects the tuples taking the given value
of the given attribute. Interval labels of discretized attributes are
the string forms of their rules, so they parse back into the rule that
tests them; any other value is matched by equality.
*/
func ruleFor(a attribute.Attribute, value string) (attribute.Rule, error) {
	if _, ok := a.(*attribute.Continuous); ok {
		rule, err := attribute.ParseRule(value)
		if err != nil {
			return nil, fmt.Errorf("building rule for %s interval %q: %v", a.Name(), value, err)
		}
		return rule, nil
	}
	return attribute.NewEqualsRule(value), nil
}
