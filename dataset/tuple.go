package dataset

import (
	"fmt"
	"sort"
	"strings"
)

/*
Valuer represents something a classifier can be applied to.

Its ValueFor method returns the value corresponding to the attribute
name passed as parameter, or an error when it defines no value for it.
*/
type Valuer interface {
	ValueFor(name string) (string, error)
}

/*
Tuple represents an item to learn from or to classify: a set of
attribute values and, when known or once assigned, a class.
*/
type Tuple struct {
	class  string
	values map[string]string
}

/*
NewTuple takes a map of attribute names to values and returns a tuple
with those values and no class.
*/
func NewTuple(values map[string]string) *Tuple {
	if values == nil {
		values = map[string]string{}
	}
	return &Tuple{values: values}
}

/*
ValueFor returns the value of the tuple for the attribute with the given
name, or an error when the tuple defines no value for it.
*/
func (t *Tuple) ValueFor(name string) (string, error) {
	v, ok := t.values[name]
	if !ok {
		return "", fmt.Errorf("tuple defines no value for attribute %s", name)
	}
	return v, nil
}

/*
SetValue sets the value of the tuple for the attribute with the given
name, replacing any previous value. Discretization uses it to rewrite
numeric values into interval labels.
*/
func (t *Tuple) SetValue(name, value string) {
	t.values[name] = value
}

/*
Class returns the class of the tuple, which is empty until it is read
from labeled data or assigned by a classifier.
*/
func (t *Tuple) Class() string {
	return t.class
}

/*
SetClass sets the class of the tuple.
*/
func (t *Tuple) SetClass(class string) {
	t.class = class
}

func (t *Tuple) String() string {
	names := make([]string, 0, len(t.values))
	for name := range t.values {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s:%s", name, t.values[name]))
	}
	return fmt.Sprintf("[%s class:%s]", strings.Join(pairs, " "), t.class)
}
