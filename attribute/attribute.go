package attribute

import (
	"fmt"
	"strconv"
)

/*
Attribute represents a named property that can be observed on a tuple
*/
type Attribute interface {
	Name() string
}

/*
Discrete represents a property that can only take a value among a finite
set. The order of its values is meaningful: partitions, tree children and
majority-class tie-breaks follow it.
*/
type Discrete struct {
	name   string
	values []string
}

/*
Continuous represents a property that takes a numeric value. It has no
values until it is discretized, after which it behaves as a two-valued
discrete property with synthetic interval labels.
*/
type Continuous struct {
	name   string
	values []string
}

/*
Ignored represents a property that is present on tuples but excluded
from tree construction.
*/
type Ignored struct {
	name string
}

/*
NewDiscrete takes a name string and a slice of value strings and returns
a discrete attribute with the given name and values.
*/
func NewDiscrete(name string, values []string) *Discrete {
	return &Discrete{name, values}
}

/*
NewContinuous takes a name string and returns a continuous attribute with
the given name.
*/
func NewContinuous(name string) *Continuous {
	return &Continuous{name: name}
}

/*
NewIgnored takes a name string and returns an ignored attribute with the
given name.
*/
func NewIgnored(name string) *Ignored {
	return &Ignored{name}
}

/*
Name returns a string with the name of the attribute
*/
func (da *Discrete) Name() string {
	return da.name
}

/*
Values returns a string slice with the values the attribute can take, in
their declared order.
*/
func (da *Discrete) Values() []string {
	return da.values
}

/*
Valid receives a value string and returns a boolean and an error. When
the value is one of the attribute's values the method returns true and
nil. Otherwise it returns false and an error describing the reason.
*/
func (da *Discrete) Valid(value string) (bool, error) {
	for _, v := range da.values {
		if v == value {
			return true, nil
		}
	}
	return false, fmt.Errorf("discrete attribute %s got unknown value %s", da.name, value)
}

func (da *Discrete) String() string {
	return da.name
}

/*
Name returns a string with the name of the attribute
*/
func (ca *Continuous) Name() string {
	return ca.name
}

/*
Values returns a string slice with the interval labels the attribute can
take. It is nil until the attribute is discretized.
*/
func (ca *Continuous) Values() []string {
	return ca.values
}

/*
Discretize takes a threshold and replaces the attribute's values with the
two interval labels it induces, lower interval first. The labels are the
string forms of the rules that test them, so a label can be parsed back
into the rule that selects its tuples.
*/
func (ca *Continuous) Discretize(threshold float64) {
	ca.values = []string{
		NewLessOrEqualRule(threshold).String(),
		NewGreaterThanRule(threshold).String(),
	}
}

/*
Discretized returns a boolean indicating whether the attribute has been
discretized into interval labels.
*/
func (ca *Continuous) Discretized() bool {
	return ca.values != nil
}

func (ca *Continuous) String() string {
	return ca.name
}

/*
Name returns a string with the name of the attribute
*/
func (ia *Ignored) Name() string {
	return ia.name
}

func (ia *Ignored) String() string {
	return ia.name
}

func formatThreshold(threshold float64) string {
	return strconv.FormatFloat(threshold, 'f', 2, 64)
}
